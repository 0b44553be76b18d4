package cli

import (
	"context"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// EditOptions holds the edit command flags. Nil fields keep the stored value.
type EditOptions struct {
	Title       *string
	Priority    *string
	DueDate     *string
	Category    *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether no field is being changed
func (o EditOptions) IsEmpty() bool {
	return o.Title == nil && o.Priority == nil && o.DueDate == nil &&
		o.Category == nil && o.Description == nil && o.Completed == nil
}

// EditCommand handles the edit command
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute replaces the given fields of one task in place
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.businessAPI.GetTask(ctx, args[0])
	if errors.IsNotFound(err) {
		c.app.println("Task not found")
		return nil
	}
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	if c.opts.IsEmpty() {
		c.app.println("Nothing to change")
		return nil
	}
	// a blank title is dropped like a blank add
	if c.opts.Title != nil && strings.TrimSpace(*c.opts.Title) == "" {
		return nil
	}

	updated := c.apply(*task)
	if err := c.app.businessAPI.UpdateTask(ctx, updated); err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	c.app.printf("Updated task: %s\n", strings.TrimSpace(updated.Title))
	return nil
}

// apply returns task with the set options written over it
func (c *EditCommand) apply(task domain.Task) domain.Task {
	if c.opts.Title != nil {
		task.Title = *c.opts.Title
	}
	if c.opts.Priority != nil {
		task.Priority = domain.Priority(*c.opts.Priority)
	}
	if c.opts.DueDate != nil {
		task.DueDate = *c.opts.DueDate
	}
	if c.opts.Category != nil {
		task.Category = *c.opts.Category
	}
	if c.opts.Description != nil {
		task.Description = *c.opts.Description
	}
	if c.opts.Completed != nil {
		task.Completed = *c.opts.Completed
	}
	return task
}
