package config

import (
	"fmt"

	"task-manager/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	repo, err := sqlite.New(config.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task store: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an empty in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test task store: %w", err)
	}

	return repo, nil
}
