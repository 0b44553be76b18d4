package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
)

func TestTaskService_AddTask(t *testing.T) {
	tests := []struct {
		name           string
		input          TaskInput
		expected       func(t *testing.T, task *domain.Task)
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should fill in defaults",
			input: TaskInput{Title: "Buy groceries"},
			expected: func(t *testing.T, task *domain.Task) {
				assert.NotEmpty(t, task.ID)
				assert.Equal(t, "Buy groceries", task.Title)
				assert.False(t, task.Completed)
				assert.Equal(t, domain.PriorityMedium, task.Priority)
				assert.Equal(t, "2023-06-15", task.DueDate)
				assert.Equal(t, domain.DefaultCategory, task.Category)
			},
		},
		{
			name: "should keep explicit fields",
			input: TaskInput{
				Title:       "  Finish report ",
				Priority:    "HIGH",
				DueDate:     "2023-06-20",
				Category:    "Work",
				Description: "Quarterly numbers",
			},
			expected: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, "Finish report", task.Title)
				assert.Equal(t, domain.PriorityHigh, task.Priority)
				assert.Equal(t, "2023-06-20", task.DueDate)
				assert.Equal(t, "Work", task.Category)
				assert.Equal(t, "Quarterly numbers", task.Description)
			},
		},
		{
			name:  "should reject empty title",
			input: TaskInput{Title: "   "},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "title")
			},
		},
		{
			name:  "should reject overlong title",
			input: TaskInput{Title: strings.Repeat("x", 300)},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name:  "should reject unknown priority",
			input: TaskInput{Title: "Call mom", Priority: "urgent"},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, errors.GetUserMessage(err), "priority")
			},
		},
		{
			name:  "should reject malformed due date",
			input: TaskInput{Title: "Call mom", DueDate: "6/15/2023"},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, errors.GetUserMessage(err), "due_date")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, _ := setupTaskService(t)

			// Act
			result, err := service.AddTask(context.Background(), tt.input)

			// Assert
			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			tt.expected(t, result)
		})
	}
}

func TestTaskService_AddTaskPrepends(t *testing.T) {
	service, _ := setupTaskService(t)
	ctx := context.Background()

	first, err := service.AddTask(ctx, TaskInput{Title: "first"})
	require.NoError(t, err)
	second, err := service.AddTask(ctx, TaskInput{Title: "second"})
	require.NoError(t, err)

	tasks, err := service.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTaskService_AddThenDeleteRestoresSequence(t *testing.T) {
	service, _ := setupTaskServiceWithData(t, sampleTasks())
	ctx := context.Background()

	before, err := service.ListTasks(ctx)
	require.NoError(t, err)

	added, err := service.AddTask(ctx, TaskInput{Title: "temporary"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteTask(ctx, added.ID))

	after, err := service.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTaskService_GetTask(t *testing.T) {
	service, _ := setupTaskServiceWithData(t, sampleTasks())
	ctx := context.Background()

	task, err := service.GetTask(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries", task.Title)

	_, err = service.GetTask(ctx, "999")
	assert.True(t, errors.IsNotFound(err))

	_, err = service.GetTask(ctx, " ")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestTaskService_ToggleTask(t *testing.T) {
	service, _ := setupTaskServiceWithData(t, sampleTasks())
	ctx := context.Background()

	require.NoError(t, service.ToggleTask(ctx, "1"))
	task, err := service.GetTask(ctx, "1")
	require.NoError(t, err)
	assert.True(t, task.Completed)

	require.NoError(t, service.ToggleTask(ctx, "1"))
	task, err = service.GetTask(ctx, "1")
	require.NoError(t, err)
	assert.False(t, task.Completed, "toggling twice restores the flag")

	assert.NoError(t, service.ToggleTask(ctx, "missing"), "toggling a missing task is a no-op")
}

func TestTaskService_DeleteTask(t *testing.T) {
	service, _ := setupTaskServiceWithData(t, sampleTasks())
	ctx := context.Background()

	require.NoError(t, service.DeleteTask(ctx, "2"))
	tasks, err := service.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, taskIDs(tasks))

	require.NoError(t, service.DeleteTask(ctx, "2"), "deleting twice is a no-op")
	tasks, err = service.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestTaskService_UpdateTask(t *testing.T) {
	tests := []struct {
		name           string
		update         domain.Task
		errorAssertion func(t *testing.T, err error)
		check          func(t *testing.T, service TaskService)
	}{
		{
			name: "should replace every field and keep position",
			update: domain.Task{
				ID: "2", Title: "Buy vegetables", Completed: true,
				Priority: domain.PriorityLow, DueDate: "2023-06-18", Category: "", Description: "market",
			},
			check: func(t *testing.T, service TaskService) {
				tasks, err := service.ListTasks(context.Background())
				require.NoError(t, err)
				assert.Equal(t, []string{"1", "2", "3"}, taskIDs(tasks))

				updated := tasks[1]
				assert.Equal(t, "Buy vegetables", updated.Title)
				assert.True(t, updated.Completed)
				assert.Equal(t, domain.PriorityLow, updated.Priority)
				assert.Equal(t, "2023-06-18", updated.DueDate)
				assert.Empty(t, updated.Category)
				assert.Equal(t, "market", updated.Description)
			},
		},
		{
			name:   "should do nothing for a missing id",
			update: domain.Task{ID: "404", Title: "ghost", Priority: domain.PriorityLow},
			check: func(t *testing.T, service TaskService) {
				tasks, err := service.ListTasks(context.Background())
				require.NoError(t, err)
				assert.Len(t, tasks, 3)
			},
		},
		{
			name:   "should reject an empty title",
			update: domain.Task{ID: "2", Title: "", Priority: domain.PriorityLow},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name:   "should require an id",
			update: domain.Task{Title: "no id", Priority: domain.PriorityLow},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, errors.GetUserMessage(err), "id")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupTaskServiceWithData(t, sampleTasks())

			err := service.UpdateTask(context.Background(), tt.update)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, service)
		})
	}
}

func TestTaskService_CancelledContext(t *testing.T) {
	service, _ := setupTaskServiceWithData(t, sampleTasks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.ToggleTask(ctx, "1")
	assert.Error(t, err, "infrastructure errors are not swallowed")
	assert.False(t, errors.IsNotFound(err))
}

// Helper functions

// fixedNow is Thursday 15 June 2023.
var fixedNow = time.Date(2023, time.June, 15, 10, 30, 0, 0, time.UTC)

func fixedTimeService() TimeService {
	return NewTimeServiceWithClock(time.UTC, func() time.Time { return fixedNow })
}

// sampleTasks returns tasks in sequence order relative to fixedNow
func sampleTasks() []*domain.Task {
	return []*domain.Task{
		{ID: "1", Title: "Complete project proposal", Priority: domain.PriorityHigh, DueDate: "2023-06-15", Category: "work"},
		{ID: "2", Title: "Buy groceries", Priority: domain.PriorityMedium, DueDate: "2023-06-16", Category: "personal"},
		{ID: "3", Title: "Schedule dentist appointment", Completed: true, Priority: domain.PriorityLow, DueDate: "2023-06-20", Category: "health"},
	}
}

func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func setupRepository(t *testing.T) sqlite.Repository {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// seedTasks stores tasks so that ListTasks returns them in the given order
func seedTasks(t *testing.T, repo sqlite.Repository, tasks []*domain.Task) {
	mapper := domain.NewMapper()
	for i := len(tasks) - 1; i >= 0; i-- {
		dbTask := mapper.Task.ToDatabase(*tasks[i])
		require.NoError(t, repo.CreateTask(context.Background(), &dbTask))
		tasks[i].ID = dbTask.ID
	}
}

func setupTaskService(t *testing.T) (TaskService, sqlite.Repository) {
	return setupTaskServiceWithData(t, nil)
}

func setupTaskServiceWithData(t *testing.T, tasks []*domain.Task) (TaskService, sqlite.Repository) {
	repo := setupRepository(t)
	seedTasks(t, repo, tasks)
	return NewTaskService(repo, fixedTimeService()), repo
}
