package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC)
}

func openTestSession(ctx context.Context, cfg *config.Config) (*api.Session, error) {
	return api.OpenSessionWithClock(ctx, cfg, fixedClock)
}

// setupTestApp creates an app over a seeded session; output is captured in the returned buffer
func setupTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := config.NewConfig()
	session, err := openTestSession(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	var out bytes.Buffer
	return NewAppWithIO(session.API, cfg, &out, strings.NewReader(input)), &out
}

// runRoot executes tm with args against a fresh seeded session
func runRoot(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	tuiRuns := 0
	root := newRootCommand(config.NewConfig(), openTestSession, func(ctx context.Context, app *App) error {
		tuiRuns++
		app.println("interactive UI")
		return nil
	})

	var out, errOut bytes.Buffer
	root.SetIO(strings.NewReader(input), &out, &errOut)
	root.SetArgs(args)

	err := root.Execute()
	assert.Nil(t, root.session, "session is closed after the command")
	return out.String(), err
}

func TestNewApp(t *testing.T) {
	app := NewApp(nil, nil)
	require.NotNil(t, app)
	assert.NotNil(t, app.Config())
	assert.NotNil(t, app.Out())
	assert.NotNil(t, app.errorHandler)
}

func TestApp_FormatTaskLine(t *testing.T) {
	app, _ := setupTestApp(t, "")

	tests := []struct {
		name     string
		task     domain.Task
		contains []string
		excludes []string
	}{
		{
			name:     "pending task due today",
			task:     domain.Task{ID: "1", Title: "Complete project proposal", Priority: domain.PriorityHigh, DueDate: "2023-06-15", Category: "work"},
			contains: []string{"[ ] Complete project proposal", "high", "Jun 15, 2023", "#work", "(1)"},
			excludes: []string{"overdue"},
		},
		{
			name:     "completed task in the past",
			task:     domain.Task{ID: "2", Title: "Buy groceries", Completed: true, Priority: domain.PriorityMedium, DueDate: "2023-06-10"},
			contains: []string{"[x] Buy groceries", "Jun 10, 2023"},
			excludes: []string{"overdue", "#"},
		},
		{
			name:     "pending task in the past",
			task:     domain.Task{ID: "4", Title: "File taxes", Priority: domain.PriorityLow, DueDate: "2023-06-01"},
			contains: []string{"overdue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := app.formatTaskLine(&tt.task)
			for _, s := range tt.contains {
				assert.Contains(t, line, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, line, s)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long ...", truncate("a long title indeed", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "héllo", truncate("héllo", 5))
}

func TestRootCommand_Commands(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "no command opens the interactive UI",
			args:     []string{},
			contains: []string{"interactive UI"},
		},
		{
			name:     "tui command opens the interactive UI",
			args:     []string{"tui"},
			contains: []string{"interactive UI"},
		},
		{
			name:     "list shows every seeded task",
			args:     []string{"list"},
			contains: []string{"[All]", "Complete project proposal", "Buy groceries", "Schedule dentist appointment", "1 of 3 tasks completed (33%)"},
		},
		{
			name:     "list filters by tab",
			args:     []string{"list", "--tab", "upcoming"},
			contains: []string{"[Upcoming]", "Schedule dentist appointment"},
			excludes: []string{"Complete project proposal", "Buy groceries"},
		},
		{
			name:     "list filters by search text",
			args:     []string{"list", "--search", "GROC"},
			contains: []string{"Buy groceries"},
			excludes: []string{"Complete project proposal"},
		},
		{
			name:     "list takes search text as arguments",
			args:     []string{"list", "-t", "today", "project"},
			contains: []string{"[Today]", "Complete project proposal"},
		},
		{
			name:     "list reports an empty result",
			args:     []string{"list", "--tab", "completed", "--search", "dentist"},
			contains: []string{"No tasks found"},
		},
		{
			name:     "default tab comes from configuration",
			args:     []string{"list", "--default-tab", "completed"},
			contains: []string{"[Completed]", "Buy groceries"},
			excludes: []string{"Schedule dentist appointment"},
		},
		{
			name:     "add prints the new task",
			args:     []string{"add", "Water", "plants", "--priority", "low", "--category", "home"},
			contains: []string{"Added task: Water plants"},
		},
		{
			name: "add with a blank title prints nothing",
			args: []string{"add", "  "},
		},
		{
			name:     "show prints task details",
			args:     []string{"show", "3"},
			contains: []string{"Title:       Schedule dentist appointment", "Status:      Pending", "Priority:    Low", "Due:         Jun 20, 2023", "Category:    health"},
		},
		{
			name:     "show reports a missing task",
			args:     []string{"show", "999"},
			contains: []string{"Task not found"},
		},
		{
			name:     "date format flag changes due dates",
			args:     []string{"show", "1", "--date-format", "02/01/2006"},
			contains: []string{"Due:         15/06/2023"},
		},
		{
			name:     "edit changes the given fields",
			args:     []string{"edit", "1", "--title", "Send proposal", "--priority", "low"},
			contains: []string{"Updated task: Send proposal"},
		},
		{
			name:     "edit without flags changes nothing",
			args:     []string{"edit", "1"},
			contains: []string{"Nothing to change"},
		},
		{
			name: "edit with a blank title prints nothing",
			args: []string{"edit", "1", "--title", " "},
		},
		{
			name:     "edit reports a missing task",
			args:     []string{"edit", "999", "--title", "x"},
			contains: []string{"Task not found"},
		},
		{
			name:     "toggle completes a pending task",
			args:     []string{"toggle", "1"},
			contains: []string{"Completed task: Complete project proposal"},
		},
		{
			name:     "toggle reopens a completed task",
			args:     []string{"toggle", "2"},
			contains: []string{"Reopened task: Buy groceries"},
		},
		{
			name:     "toggle of a missing task is a no-op",
			args:     []string{"toggle", "999"},
			contains: []string{"Task not found"},
		},
		{
			name:     "delete asks for confirmation",
			input:    "y\n",
			args:     []string{"delete", "2"},
			contains: []string{"Delete task \"Buy groceries\"? [y/N]: ", "Deleted task: Buy groceries"},
		},
		{
			name:     "delete is cancelled without a yes",
			input:    "n\n",
			args:     []string{"delete", "2"},
			contains: []string{"Delete cancelled."},
			excludes: []string{"Deleted task"},
		},
		{
			name:     "delete with --yes skips the prompt",
			args:     []string{"delete", "3", "--yes"},
			contains: []string{"Deleted task: Schedule dentist appointment"},
			excludes: []string{"[y/N]"},
		},
		{
			name:     "delete reports a missing task",
			args:     []string{"delete", "999", "-y"},
			contains: []string{"Task not found"},
		},
		{
			name:     "stats prints every section",
			args:     []string{"stats"},
			contains: []string{"Overview", "Total: 3  Completed: 1  Pending: 2  Completion rate: 33%", "Priority", "High", "Categories", "Work", "This week", "Thu 2023-06-15", "June 2023"},
		},
		{
			name:     "stats for another month",
			args:     []string{"stats", "--month", "2023-05"},
			contains: []string{"May 2023", "Total: 0  Completed: 0  Pending: 0  Completion rate: 0%"},
		},
		{
			name:     "stats as yaml",
			args:     []string{"stats", "--format", "yaml"},
			contains: []string{"overall:", "completion_rate: 33"},
		},
		{
			name:     "stats as json",
			args:     []string{"stats", "-f", "json"},
			contains: []string{`"overall": {`, `"total": 3`},
		},
		{
			name:     "categories lists progress",
			args:     []string{"categories"},
			contains: []string{"Personal", "purple", "1/1 completed", "Work", "0/1 completed", "Finance", "0/0 completed"},
		},
		{
			name:     "categories list subcommand",
			args:     []string{"categories", "list"},
			contains: []string{"Health"},
		},
		{
			name:     "categories add",
			args:     []string{"categories", "add", "Errands", "--color", "red"},
			contains: []string{"Added category: Errands"},
		},
		{
			name:     "categories edit",
			args:     []string{"categories", "edit", "4", "--name", "Money"},
			contains: []string{"Updated category: Money"},
		},
		{
			name:     "categories delete",
			args:     []string{"categories", "delete", "2"},
			contains: []string{"Deleted category: Work"},
		},
		{
			name:     "categories edit reports a missing category",
			args:     []string{"categories", "edit", "42", "--name", "x"},
			contains: []string{"Category not found"},
		},
		{
			name:     "settings shows defaults",
			args:     []string{"settings"},
			contains: []string{"Theme:               Light", "Notifications:       on", "Email notifications: off", "Sound effects:       on"},
		},
		{
			name:     "settings applies changes",
			args:     []string{"settings", "--theme", "dark", "--sound-effects=false"},
			contains: []string{"Theme:               Dark", "Sound effects:       off"},
		},
		{
			name:     "export defaults to csv",
			args:     []string{"export"},
			contains: []string{"id,title,completed,priority,due_date,category,description", "1,Complete project proposal,false,high,2023-06-15,work,"},
		},
		{
			name:     "export as json",
			args:     []string{"export", "--format", "json"},
			contains: []string{`"title": "Buy groceries"`},
		},
		{
			name:     "export format flag sets the default",
			args:     []string{"export", "--export-format", "yaml"},
			contains: []string{"title: Schedule dentist appointment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRoot(t, tt.input, tt.args...)
			require.NoError(t, err)

			if len(tt.contains) == 0 {
				assert.Empty(t, out)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRootCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"unknown tab", []string{"list", "--tab", "someday"}, "failed to list tasks: invalid input for tab"},
		{"bad priority", []string{"add", "Call mom", "--priority", "urgent"}, "failed to add task:"},
		{"bad due date", []string{"add", "Call mom", "--due", "tomorrow"}, "failed to add task:"},
		{"bad month", []string{"stats", "--month", "June"}, "failed to show statistics:"},
		{"bad stats format", []string{"stats", "--format", "xml"}, "invalid input for format"},
		{"bad export format", []string{"export", "--format", "xml"}, "failed to export tasks: invalid input for format"},
		{"bad theme", []string{"settings", "--theme", "blue"}, "failed to update settings: invalid input for theme"},
		{"bad color", []string{"categories", "add", "Misc", "--color", "orange"}, "failed to add category:"},
		{"invalid configuration", []string{"list", "--timezone", "Mars/Olympus"}, "time.timezone"},
		{"missing seed file", []string{"list", "--seed-file", "/does/not/exist.json"}, "failed to open task store"},
		{"missing argument", []string{"show"}, "accepts 1 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRootCommand_ConfigFromFlags(t *testing.T) {
	cfg := config.NewConfig()
	root := newRootCommand(cfg, openTestSession, func(ctx context.Context, app *App) error { return nil })

	var out bytes.Buffer
	root.SetIO(strings.NewReader(""), &out, &out)
	root.SetArgs([]string{"list", "--list-width", "100", "--app-timeout", "5s", "--verbose", "--log-format", "json", "--title-max-length", "80"})
	require.NoError(t, root.Execute())

	assert.Equal(t, 100, cfg.Display.ListWidth)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "json", cfg.Application.LogFormat)
	assert.Equal(t, 80, cfg.Validation.TitleMaxLength)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
}
