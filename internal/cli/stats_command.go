package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
)

// StatsOptions holds the stats command flags
type StatsOptions struct {
	Month  string
	Format string
}

// StatsCommand handles the stats command
type StatsCommand struct {
	app  *App
	opts StatsOptions
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App, opts StatsOptions) *StatsCommand {
	return &StatsCommand{app: app, opts: opts}
}

// Execute prints the statistics screen for the selected month
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	month := c.app.businessAPI.CurrentMonth()
	if c.opts.Month != "" {
		parsed, err := services.ParseMonthCursor(c.opts.Month)
		if err != nil {
			return c.app.errorHandler.Handle("show statistics", err)
		}
		month = parsed
	}

	stats, err := c.app.businessAPI.GetStatistics(ctx, month)
	if err != nil {
		return c.app.errorHandler.Handle("show statistics", err)
	}

	switch strings.ToLower(c.opts.Format) {
	case "", "text":
		c.printText(stats)
		return nil
	case "json":
		encoder := json.NewEncoder(c.app.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	case "yaml":
		encoder := yaml.NewEncoder(c.app.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(stats); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return c.app.errorHandler.Handle("show statistics",
			errors.NewInvalidInputError("format", c.opts.Format, "must be one of text, json, yaml"))
	}
}

// printText renders the statistics as plain text sections
func (c *StatsCommand) printText(stats *api.Statistics) {
	overall := stats.Overall
	c.app.println("Overview")
	c.app.printf("  Total: %d  Completed: %d  Pending: %d  Completion rate: %d%%\n",
		overall.Total, overall.Completed, overall.Pending, overall.CompletionRate)

	c.app.println("Priority")
	for _, p := range domain.Priorities {
		count := stats.Priorities.Get(p)
		c.app.printf("  %-8s %3d  %s %d%%\n", domain.Capitalize(p.String()), count,
			bar(services.PriorityShare(count, overall.Total), 20), services.PriorityShare(count, overall.Total))
	}

	c.app.println("Categories")
	if len(stats.Categories) == 0 {
		c.app.println("  No categorized tasks")
	}
	for _, cc := range stats.Categories {
		c.app.printf("  %-12s %3d\n", cc.Label, cc.Count)
	}

	c.app.println("This week")
	for _, day := range stats.Weekly {
		c.app.printf("  %s %s  done %d  pending %d\n", day.Weekday, day.Date, day.Completed, day.Pending)
	}

	monthly := stats.Monthly
	c.app.printf("%s\n", stats.Month)
	c.app.printf("  Total: %d  Completed: %d  Pending: %d  Completion rate: %d%%\n",
		monthly.Total, monthly.Completed, monthly.Pending, monthly.CompletionRate)
}

// bar draws a percentage as a fixed-width text bar
func bar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s]", strings.Repeat("#", filled), strings.Repeat(".", width-filled))
}
