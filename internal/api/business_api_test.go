package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

func TestListTasks(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		tab      domain.Tab
		query    string
		expected []string
	}{
		{"should list every seeded task in order", domain.TabAll, "", []string{"1", "2", "3"}},
		{"should list tasks due today", domain.TabToday, "", []string{"1"}},
		{"should list upcoming incomplete tasks", domain.TabUpcoming, "", []string{"3"}},
		{"should list completed tasks", domain.TabCompleted, "", []string{"2"}},
		{"should search titles case-insensitively", domain.TabAll, "DENTIST", []string{"3"}},
		{"should return empty list when nothing matches", domain.TabToday, "groceries", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := businessAPI.ListTasks(ctx, tt.tab, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(tasks))
		})
	}
}

func TestGetTask(t *testing.T) {
	tests := []struct {
		name           string
		taskID         string
		expectedTitle  string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:          "should return existing task when valid ID is provided",
			taskID:        "1",
			expectedTitle: "Complete project proposal",
		},
		{
			name:   "should return not found error when task does not exist",
			taskID: "999",
			errorAssertion: func(t *testing.T, err error) {
				var appErr *errors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
				assert.Contains(t, err.Error(), "task")
			},
		},
		{
			name:   "should return validation error when ID is blank",
			taskID: "",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			businessAPI := setupTestBusinessAPI(t)

			task, err := businessAPI.GetTask(context.Background(), tt.taskID)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTitle, task.Title)
		})
	}
}

func TestTaskMutations(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)
	ctx := context.Background()

	t.Run("add prepends with defaults", func(t *testing.T) {
		task, err := businessAPI.AddTask(ctx, TaskInput{Title: "Call the bank", Priority: "high"})
		require.NoError(t, err)
		assert.Equal(t, "2023-06-15", task.DueDate)
		assert.Equal(t, domain.DefaultCategory, task.Category)

		tasks, err := businessAPI.ListTasks(ctx, domain.TabAll, "")
		require.NoError(t, err)
		assert.Equal(t, task.ID, tasks[0].ID)

		require.NoError(t, businessAPI.DeleteTask(ctx, task.ID))
		tasks, err = businessAPI.ListTasks(ctx, domain.TabAll, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, ids(tasks))
	})

	t.Run("empty title adds nothing", func(t *testing.T) {
		_, err := businessAPI.AddTask(ctx, TaskInput{Title: " "})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

		tasks, err := businessAPI.ListTasks(ctx, domain.TabAll, "")
		require.NoError(t, err)
		assert.Len(t, tasks, 3)
	})

	t.Run("toggle moves a task between tabs", func(t *testing.T) {
		require.NoError(t, businessAPI.ToggleTask(ctx, "1"))
		completed, err := businessAPI.ListTasks(ctx, domain.TabCompleted, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, ids(completed))

		require.NoError(t, businessAPI.ToggleTask(ctx, "1"))
		require.NoError(t, businessAPI.ToggleTask(ctx, "nope"))
	})

	t.Run("update replaces fields in place", func(t *testing.T) {
		task, err := businessAPI.GetTask(ctx, "3")
		require.NoError(t, err)
		task.Title = "Schedule dentist cleaning"
		task.Description = "call before noon"
		require.NoError(t, businessAPI.UpdateTask(ctx, *task))

		tasks, err := businessAPI.ListTasks(ctx, domain.TabAll, "")
		require.NoError(t, err)
		assert.Equal(t, "Schedule dentist cleaning", tasks[2].Title)
		assert.Equal(t, "call before noon", tasks[2].Description)

		require.NoError(t, businessAPI.UpdateTask(ctx, domain.Task{ID: "nope", Title: "x", Priority: domain.PriorityLow}))
	})
}

func TestStatistics(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)
	ctx := context.Background()

	progress, err := businessAPI.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 3, Completed: 1, Pending: 2, CompletionRate: 33}, progress)

	month := businessAPI.CurrentMonth()
	assert.Equal(t, MonthCursor{Year: 2023, Month: time.June}, month)

	stats, err := businessAPI.GetStatistics(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, PriorityCounts{High: 1, Medium: 1, Low: 1}, stats.Priorities)
	assert.Equal(t, 3, stats.Monthly.Total)

	stats, err = businessAPI.GetStatistics(ctx, month.Next())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Monthly.Total)
	assert.Equal(t, 3, stats.Overall.Total)
}

func TestCategories(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)
	ctx := context.Background()

	progress, err := businessAPI.ListCategoryProgress(ctx)
	require.NoError(t, err)
	require.Len(t, progress, 4)
	assert.Equal(t, "Personal", progress[0].Category.Name)
	assert.Equal(t, 1, progress[0].Total)
	assert.Equal(t, 1, progress[0].Completed)
	assert.Equal(t, 0, progress[3].Total, "Finance has no tasks")

	added, err := businessAPI.AddCategory(ctx, "Hobbies", "red")
	require.NoError(t, err)

	categories, err := businessAPI.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 5)
	assert.Equal(t, added.ID, categories[4].ID)

	added.Color = domain.ColorPurple
	require.NoError(t, businessAPI.UpdateCategory(ctx, *added))
	require.NoError(t, businessAPI.DeleteCategory(ctx, added.ID))

	_, err = businessAPI.AddCategory(ctx, "", "red")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestPreferences(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)

	prefs := businessAPI.GetPreferences()
	assert.Equal(t, domain.ThemeLight, prefs.Theme)
	assert.True(t, prefs.Notifications)

	dark := domain.ThemeDark
	off := false
	prefs = businessAPI.UpdatePreferences(domain.PreferencesUpdate{Theme: &dark, Notifications: &off})
	assert.Equal(t, domain.ThemeDark, prefs.Theme)
	assert.False(t, businessAPI.GetPreferences().Notifications)
}

func TestDueToday(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)

	tasks, err := businessAPI.DueToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(tasks))
}

func TestExportTasks(t *testing.T) {
	businessAPI := setupTestBusinessAPI(t)
	ctx := context.Background()

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, businessAPI.ExportTasks(ctx, &buf, "csv"))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, CSVHeader, records[0])
		assert.Equal(t, []string{"2", "Buy groceries", "true", "medium", "2023-06-10", "personal", ""}, records[2])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, businessAPI.ExportTasks(ctx, &buf, "JSON"))

		var exported []ExportedTask
		require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
		require.Len(t, exported, 3)
		assert.Equal(t, "high", exported[0].Priority)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, businessAPI.ExportTasks(ctx, &buf, "yaml"))
		assert.Contains(t, buf.String(), "title: Complete project proposal")

		var exported []ExportedTask
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &exported))
		assert.Equal(t, "Schedule dentist appointment", exported[2].Title)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := businessAPI.ExportTasks(ctx, &bytes.Buffer{}, "xml")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestOpenSession_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	content := `{"tasks": [{"id": "x", "title": "Only task", "completed": false, "priority": "low", "dueDate": "2023-06-15"}], "categories": []}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := config.NewConfig()
	cfg.Store.SeedFile = path

	session, err := OpenSessionWithClock(context.Background(), cfg, fixedClock)
	require.NoError(t, err)
	defer session.Close()

	tasks, err := session.API.ListTasks(context.Background(), domain.TabAll, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(tasks))

	cfg.Store.SeedFile = filepath.Join(t.TempDir(), "missing.json")
	_, err = OpenSession(context.Background(), cfg)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeSeed))
}

func TestOpenSession_FileStoreIsSeededOnce(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Store.DSN = filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	first, err := OpenSessionWithClock(ctx, cfg, fixedClock)
	require.NoError(t, err)
	_, err = first.API.AddTask(ctx, TaskInput{Title: "Kept"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSessionWithClock(ctx, cfg, fixedClock)
	require.NoError(t, err)
	defer second.Close()

	tasks, err := second.API.ListTasks(ctx, domain.TabAll, "")
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
	assert.True(t, strings.EqualFold(tasks[0].Title, "kept"))
}

// fixedClock is Thursday 15 June 2023, the due date of the first seeded task.
func fixedClock() time.Time {
	return time.Date(2023, time.June, 15, 9, 0, 0, 0, time.UTC)
}

func ids(tasks []*domain.Task) []string {
	result := make([]string, len(tasks))
	for i, task := range tasks {
		result[i] = task.ID
	}
	return result
}

// setupTestBusinessAPI opens a seeded in-memory session with a fixed clock
func setupTestBusinessAPI(t *testing.T) BusinessAPI {
	session, err := OpenSessionWithClock(context.Background(), config.NewConfig(), fixedClock)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session.API
}
