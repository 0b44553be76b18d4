package cli

import (
	"bufio"
	"context"
	"strings"

	"task-manager/internal/errors"
)

// DeleteOptions holds the delete command flags
type DeleteOptions struct {
	Yes bool
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app  *App
	opts DeleteOptions
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App, opts DeleteOptions) *DeleteCommand {
	return &DeleteCommand{app: app, opts: opts}
}

// Execute removes one task after a y/n confirmation
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.businessAPI.GetTask(ctx, args[0])
	if errors.IsNotFound(err) {
		c.app.println("Task not found")
		return nil
	}
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	if !c.opts.Yes && !c.confirm("Delete task \""+task.Title+"\"? [y/N]: ") {
		c.app.println("Delete cancelled.")
		return nil
	}

	if err := c.app.businessAPI.DeleteTask(ctx, task.ID); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	c.app.printf("Deleted task: %s\n", task.Title)
	return nil
}

// confirm prints prompt and reports whether the answer starts with y
func (c *DeleteCommand) confirm(prompt string) bool {
	c.app.printf("%s", prompt)

	reader := bufio.NewReader(c.app.in)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return strings.HasPrefix(answer, "y")
}
