package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
)

func TestLoad_Embedded(t *testing.T) {
	data, err := Load("")
	require.NoError(t, err)

	require.Len(t, data.Tasks, 3)
	assert.Equal(t, Task{
		ID: "1", Title: "Complete project proposal", Priority: "high", DueDate: "2023-06-15", Category: "work",
	}, data.Tasks[0])
	assert.True(t, data.Tasks[1].Completed)

	require.Len(t, data.Categories, 4)
	assert.Equal(t, Category{ID: "1", Name: "Personal", Color: "purple"}, data.Categories[0])
	assert.Equal(t, "Finance", data.Categories[3].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		location string
	}{
		{"not json", `{"tasks": [`, ""},
		{"missing categories", `{"tasks": []}`, "/"},
		{"bad priority", `{"tasks": [{"id": "1", "title": "x", "completed": false, "priority": "urgent", "dueDate": "2023-06-15"}], "categories": []}`, "/tasks/0/priority"},
		{"bad due date", `{"tasks": [{"id": "1", "title": "x", "completed": false, "priority": "low", "dueDate": "15/06/2023"}], "categories": []}`, "/tasks/0/dueDate"},
		{"blank title", `{"tasks": [{"id": "1", "title": "  ", "completed": false, "priority": "low", "dueDate": "2023-06-15"}], "categories": []}`, "/tasks/0/title"},
		{"bad color", `{"tasks": [], "categories": [{"id": "1", "name": "Misc", "color": "orange"}]}`, "/categories/0/color"},
		{"unknown field", `{"tasks": [], "categories": [], "owner": "me"}`, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Parse([]byte(tt.raw), "test.json")

			require.Error(t, err)
			assert.Nil(t, data)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeSeed))
			assert.Contains(t, err.Error(), "test.json")
			if tt.location != "" {
				assert.Contains(t, err.Error(), tt.location+":")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "seed.json")
	content := `{"tasks": [{"id": "a", "title": "Water plants", "completed": false, "priority": "low", "dueDate": "2024-01-02", "description": "ferns"}], "categories": []}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, "ferns", data.Tasks[0].Description)
	assert.Empty(t, data.Categories)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeSeed))
}

func TestApply(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	ctx := context.Background()

	require.NoError(t, LoadAndApply(ctx, repo, ""))

	mapper := domain.NewMapper()

	dbTasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	tasks := mapper.Task.FromDatabaseSlice(dbTasks)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	assert.True(t, tasks[1].Completed)

	dbCategories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	categories := mapper.Category.FromDatabaseSlice(dbCategories)
	require.Len(t, categories, 4)
	assert.Equal(t, "Personal", categories[0].Name)
	assert.Equal(t, domain.ColorYellow, categories[3].Color)

	err = LoadAndApply(ctx, repo, "")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeSeed), "duplicate ids are rejected by the store")
}
