package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Query returns the filter's canonical query string, empty when unfiltered.
// Parameter order is fixed so equal filters always produce equal strings.
func (f TaskFilter) Query() string {
	params := url.Values{}
	if f.AssignedTo != 0 {
		params.Set("assignedTo", strconv.FormatInt(f.AssignedTo, 10))
	}
	if f.Status != "" {
		params.Set("status", string(f.Status))
	}
	return params.Encode()
}

// ListTasks retrieves tasks matching the filter
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	path := "/tasks"
	if q := filter.Query(); q != "" {
		path += "?" + q
	}

	var tasks []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// CreateTask creates a task and returns the authoritative record
func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask applies a partial update and returns the authoritative record
func (c *Client) UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.do(ctx, http.MethodPut, path, input, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/tasks/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
