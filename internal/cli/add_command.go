package cli

import (
	"context"
	"strings"

	"task-manager/internal/api"
)

// AddOptions holds the add command flags
type AddOptions struct {
	Priority    string
	DueDate     string
	Category    string
	Description string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute adds a task titled by the joined arguments. A blank title is
// ignored without output.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return nil
	}

	task, err := c.app.businessAPI.AddTask(ctx, api.TaskInput{
		Title:       title,
		Priority:    c.opts.Priority,
		DueDate:     c.opts.DueDate,
		Category:    c.opts.Category,
		Description: c.opts.Description,
	})
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task: %s (%s)\n", task.Title, task.ID)
	return nil
}
