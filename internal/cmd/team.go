package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/querycache"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Inspect the team",
}

var teamMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "List every team member",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		members, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyTeamMembers, a.client.TeamMembers)
		if err != nil {
			return err
		}

		printMembers(members)
		return nil
	},
}

var teamMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the members you invited",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		members, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyMyTeam, a.client.MyTeam)
		if err != nil {
			return err
		}

		printMembers(members)
		return nil
	},
}

var teamHierarchyCmd = &cobra.Command{
	Use:   "hierarchy",
	Short: "Show the team as an invitation tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		nodes, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyTeamHierarchy, a.client.TeamHierarchy)
		if err != nil {
			return err
		}

		if len(nodes) == 0 {
			fmt.Println("No team members.")
			return nil
		}
		for _, node := range nodes {
			printHierarchy(node, 0)
		}
		return nil
	},
}

var teamStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show team statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		stats, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyTeamStats, a.client.TeamStats)
		if err != nil {
			return err
		}

		fmt.Printf("Members:         %d (%d active)\n", stats.TotalMembers, stats.ActiveMembers)
		fmt.Printf("Tasks:           %d (%d completed)\n", stats.TotalTasks, stats.CompletedTasks)
		fmt.Printf("Completion rate: %.0f%%\n", stats.CompletionRate*100)

		if len(stats.RecentActivity) > 0 {
			fmt.Println("\nRecent activity:")
			for _, activity := range stats.RecentActivity {
				fmt.Printf("  %s  %s: %s\n", activity.Timestamp, activity.UserName, activity.Description)
			}
		}
		return nil
	},
}

var teamLeaderCmd = &cobra.Command{
	Use:   "leader",
	Short: "Show the team leader",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}

		leader, err := querycache.Fetch(cmd.Context(), a.cache, querycache.KeyTeamLeader, a.client.TeamLeader)
		if err != nil {
			return err
		}

		if leader == nil {
			fmt.Println("No team leader.")
			return nil
		}
		fmt.Printf("%s (%s)\n", leader.Name, leader.Email)
		return nil
	},
}

func printMembers(members []api.TeamMember) {
	if len(members) == 0 {
		fmt.Println("No team members.")
		return
	}
	for _, member := range members {
		fmt.Printf("%-6d %-8s %-24s %s  tasks %d/%d\n",
			member.ID, member.Role, member.Name, member.Email,
			member.TasksCompleted, member.TasksTotal)
	}
}

func printHierarchy(node api.HierarchyNode, depth int) {
	fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", depth), node.Name, node.Role)
	for _, report := range node.Reports {
		printHierarchy(report, depth+1)
	}
}

func init() {
	teamCmd.AddCommand(teamMembersCmd)
	teamCmd.AddCommand(teamMineCmd)
	teamCmd.AddCommand(teamHierarchyCmd)
	teamCmd.AddCommand(teamStatsCmd)
	teamCmd.AddCommand(teamLeaderCmd)
	rootCmd.AddCommand(teamCmd)
}
