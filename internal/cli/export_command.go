package cli

import (
	"context"
)

// ExportOptions holds the export command flags
type ExportOptions struct {
	Format string
}

// ExportCommand handles the export command
type ExportCommand struct {
	app  *App
	opts ExportOptions
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, opts ExportOptions) *ExportCommand {
	return &ExportCommand{app: app, opts: opts}
}

// Execute writes every task to the output stream in the selected format
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format := c.opts.Format
	if format == "" {
		format = c.app.config.Commands.ExportDefaultFormat
	}

	if err := c.app.businessAPI.ExportTasks(ctx, c.app.out, format); err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}
	return nil
}
