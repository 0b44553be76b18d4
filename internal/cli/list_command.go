package cli

import (
	"context"
	"fmt"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/domain"
)

// ListOptions holds the list command flags
type ListOptions struct {
	Tab    string
	Search string
}

// ListCommand handles the list command
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute runs the list command. Positional arguments are joined into the
// search query when --search is not given.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	tab := c.app.config.DefaultTab()
	if c.opts.Tab != "" {
		parsed, err := domain.ParseTab(c.opts.Tab)
		if err != nil {
			return c.app.errorHandler.Handle("list tasks", err)
		}
		tab = parsed
	}

	query := c.opts.Search
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}

	tasks, err := c.app.businessAPI.ListTasks(ctx, tab, query)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	return c.printTasks(ctx, tab, tasks)
}

// printTasks prints the tab header, one line per task and the progress footer
func (c *ListCommand) printTasks(ctx context.Context, tab domain.Tab, tasks []*domain.Task) error {
	c.app.println(tabHeader(tab))

	if len(tasks) == 0 {
		c.app.println("No tasks found")
	}
	for _, task := range tasks {
		c.app.println(c.app.formatTaskLine(task))
	}

	progress, err := c.app.businessAPI.GetProgress(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("summarize tasks", err)
	}
	c.app.println(progressLine(progress))
	return nil
}

// tabHeader renders the tab bar with the selected tab in brackets
func tabHeader(selected domain.Tab) string {
	labels := make([]string, len(domain.Tabs))
	for i, tab := range domain.Tabs {
		if tab == selected {
			labels[i] = "[" + tab.Label() + "]"
		} else {
			labels[i] = " " + tab.Label() + " "
		}
	}
	return strings.Join(labels, " ")
}

// progressLine renders the completion summary shown under the list
func progressLine(s api.Summary) string {
	return fmt.Sprintf("%d of %d tasks completed (%d%%)", s.Completed, s.Total, s.CompletionRate)
}
