package cli

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints the details of one task
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.businessAPI.GetTask(ctx, args[0])
	if errors.IsNotFound(err) {
		c.app.println("Task not found")
		return nil
	}
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}

	c.printDetails(task)
	return nil
}

// printDetails prints every field of task, one per line
func (c *ShowCommand) printDetails(task *domain.Task) {
	status := "Pending"
	if task.Completed {
		status = "Completed"
	} else if c.app.businessAPI.Calendar().IsOverdue(task) {
		status = "Overdue"
	}

	category := task.Category
	if category == "" {
		category = "-"
	}
	description := task.Description
	if description == "" {
		description = "No description provided."
	}

	c.app.printf("Title:       %s\n", task.Title)
	c.app.printf("Status:      %s\n", status)
	c.app.printf("Priority:    %s\n", domain.Capitalize(task.Priority.String()))
	c.app.printf("Due:         %s\n", c.app.formatDueDate(task.DueDate))
	c.app.printf("Category:    %s\n", category)
	c.app.printf("Description: %s\n", description)
	c.app.printf("ID:          %s\n", task.ID)
}
