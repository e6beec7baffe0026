package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/querycache"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, optionally filtered by assignee or status.

Examples:
  naxum tasks list
  naxum tasks list --status pending
  naxum tasks list --assigned-to 7 --status in_progress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assignedTo, _ := cmd.Flags().GetInt64("assigned-to")
		status, _ := cmd.Flags().GetString("status")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		filter := api.TaskFilter{AssignedTo: assignedTo, Status: api.TaskStatus(status)}
		tasks, err := querycache.Fetch(cmd.Context(), a.cache, querycache.TasksKey(filter),
			func(ctx context.Context) ([]api.Task, error) {
				return a.client.ListTasks(ctx, filter)
			})
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, task := range tasks {
			printTask(task)
		}
		return nil
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Long: `Create a task and assign it to a team member.

Examples:
  naxum tasks create --title "Call the new leads" --assigned-to 7 --due 2026-09-15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := api.CreateTaskInput{}
		input.Title, _ = cmd.Flags().GetString("title")
		input.Description, _ = cmd.Flags().GetString("description")
		input.AssignedTo, _ = cmd.Flags().GetInt64("assigned-to")
		input.DueDate, _ = cmd.Flags().GetString("due")

		if input.Title == "" {
			return errors.New(errors.ErrCodeTitleRequired, "task title is required").
				WithSuggestion("Pass --title with a short description of the work")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		task, err := querycache.Mutate(cmd.Context(), a.cache, querycache.MutationTaskCreate,
			func(ctx context.Context) (*api.Task, error) {
				return a.client.CreateTask(ctx, input)
			})
		if err != nil {
			return err
		}

		fmt.Printf("Created task %d: %s\n", task.ID, task.Title)
		return nil
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update a task. Only the flags you pass are sent; everything else is
left unchanged.

Examples:
  naxum tasks update 42 --status in_progress
  naxum tasks update 42 --title "Call the new leads today" --assigned-to 9`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		input := api.UpdateTaskInput{}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			input.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			input.Description = &description
		}
		if cmd.Flags().Changed("assigned-to") {
			assignedTo, _ := cmd.Flags().GetInt64("assigned-to")
			input.AssignedTo = &assignedTo
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			taskStatus := api.TaskStatus(status)
			input.Status = &taskStatus
		}
		if cmd.Flags().Changed("due") {
			due, _ := cmd.Flags().GetString("due")
			input.DueDate = &due
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		task, err := querycache.Mutate(cmd.Context(), a.cache, querycache.MutationTaskUpdate,
			func(ctx context.Context) (*api.Task, error) {
				return a.client.UpdateTask(ctx, id, input)
			})
		if err != nil {
			return err
		}

		fmt.Printf("Updated task %d: %s [%s]\n", task.ID, task.Title, task.Status)
		return nil
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		status := api.TaskCompleted
		task, err := querycache.Mutate(cmd.Context(), a.cache, querycache.MutationTaskUpdate,
			func(ctx context.Context) (*api.Task, error) {
				return a.client.UpdateTask(ctx, id, api.UpdateTaskInput{Status: &status})
			})
		if err != nil {
			return err
		}

		fmt.Printf("Completed task %d: %s\n", task.ID, task.Title)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		_, err = querycache.Mutate(cmd.Context(), a.cache, querycache.MutationTaskDelete,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, a.client.DeleteTask(ctx, id)
			})
		if err != nil {
			return err
		}

		fmt.Printf("Deleted task %d\n", id)
		return nil
	},
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %q", arg)
	}
	return id, nil
}

func printTask(task api.Task) {
	fmt.Printf("%-6d %-12s %s", task.ID, task.Status, task.Title)
	if task.AssignedToName != "" {
		fmt.Printf("  (assigned to %s)", task.AssignedToName)
	}
	if task.DueDate != "" {
		fmt.Printf("  due %s", task.DueDate)
	}
	fmt.Println()
}

func init() {
	tasksListCmd.Flags().Int64("assigned-to", 0, "filter by assignee user ID")
	tasksListCmd.Flags().String("status", "", "filter by status: pending, in_progress, completed")

	tasksCreateCmd.Flags().String("title", "", "task title")
	tasksCreateCmd.Flags().String("description", "", "task description")
	tasksCreateCmd.Flags().Int64("assigned-to", 0, "assignee user ID")
	tasksCreateCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")

	tasksUpdateCmd.Flags().String("title", "", "new title")
	tasksUpdateCmd.Flags().String("description", "", "new description")
	tasksUpdateCmd.Flags().Int64("assigned-to", 0, "new assignee user ID")
	tasksUpdateCmd.Flags().String("status", "", "new status: pending, in_progress, completed")
	tasksUpdateCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksUpdateCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
