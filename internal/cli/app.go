package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// App represents the main CLI application
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	out          io.Writer
	in           io.Reader
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application instance writing to stdout
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	return NewAppWithIO(businessAPI, cfg, os.Stdout, os.Stdin)
}

// NewAppWithIO creates a new CLI application instance with explicit streams
func NewAppWithIO(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer, in io.Reader) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI:  businessAPI,
		config:       cfg,
		out:          out,
		in:           in,
		errorHandler: NewErrorHandler(),
	}
}

// BusinessAPI returns the API the application runs against
func (a *App) BusinessAPI() api.BusinessAPI {
	return a.businessAPI
}

// Config returns the application configuration
func (a *App) Config() *config.Config {
	return a.config
}

// Out returns the stream command output is written to
func (a *App) Out() io.Writer {
	return a.out
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// formatDueDate renders a stored due date with the configured display format
func (a *App) formatDueDate(date string) string {
	return a.businessAPI.Calendar().FormatDueDate(date, a.config.Time.DisplayDateFormat)
}

// formatTaskLine renders one task as a single list line:
// [x] title  priority  due date  #category  (id)
func (a *App) formatTaskLine(task *domain.Task) string {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	title := truncate(task.Title, a.titleWidth())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-*s  %-6s  %s", check, a.titleWidth(), title, task.Priority, a.formatDueDate(task.DueDate))
	if task.HasCategory() {
		fmt.Fprintf(&b, "  #%s", task.Category)
	}
	if a.businessAPI.Calendar().IsOverdue(task) {
		b.WriteString("  overdue")
	}
	fmt.Fprintf(&b, "  (%s)", task.ID)
	return b.String()
}

// titleWidth is the column width left for titles in a list line
func (a *App) titleWidth() int {
	width := a.config.Display.ListWidth - 40
	if width < 12 {
		return 12
	}
	return width
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
