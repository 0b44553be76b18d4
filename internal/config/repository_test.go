package config

import (
	"context"
	"testing"

	"task-manager/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := CreateRepository(cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	err = repo.CreateTask(context.Background(), &sqlite.Task{Title: "Test Task", Priority: "medium"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := repo.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("ListTasks() returned %d tasks, want 1", len(tasks))
	}
}

func TestCreateTestRepository_Isolated(t *testing.T) {
	first, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer first.Close()

	second, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer second.Close()

	if err := first.CreateTask(context.Background(), &sqlite.Task{Title: "only here", Priority: "low"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := second.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("in-memory repositories should not share state, got %d tasks", len(tasks))
	}
}
