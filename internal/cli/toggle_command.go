package cli

import (
	"context"

	"task-manager/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the completed flag of one task
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	id := args[0]
	if err := c.app.businessAPI.ToggleTask(ctx, id); err != nil {
		return c.app.errorHandler.Handle("toggle task", err)
	}

	task, err := c.app.businessAPI.GetTask(ctx, id)
	if errors.IsNotFound(err) {
		c.app.println("Task not found")
		return nil
	}
	if err != nil {
		return c.app.errorHandler.Handle("toggle task", err)
	}

	if task.Completed {
		c.app.printf("Completed task: %s\n", task.Title)
	} else {
		c.app.printf("Reopened task: %s\n", task.Title)
	}
	return nil
}
