package api

import (
	"context"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/seed"
)

// Session is one seeded task store and the API over it
type Session struct {
	API  BusinessAPI
	repo sqlite.Repository
}

// OpenSession creates the task store named by cfg, loads the seed data and
// returns the API over it
func OpenSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	return OpenSessionWithClock(ctx, cfg, time.Now)
}

// OpenSessionWithClock is OpenSession with an injected clock
func OpenSessionWithClock(ctx context.Context, cfg *config.Config, now func() time.Time) (*Session, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	if err := seedIfEmpty(ctx, repo, cfg.Store.SeedFile); err != nil {
		repo.Close()
		return nil, err
	}

	return &Session{
		API:  NewBusinessAPIWithClock(repo, cfg, now),
		repo: repo,
	}, nil
}

// seedIfEmpty loads the seed unless a file-backed store already holds data
func seedIfEmpty(ctx context.Context, repo sqlite.Repository, seedFile string) error {
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(tasks) > 0 || len(categories) > 0 {
		logging.Debugf("store holds %d task(s) and %d category(ies), skipping seed", len(tasks), len(categories))
		return nil
	}
	return seed.LoadAndApply(ctx, repo, seedFile)
}

// Close releases the task store
func (s *Session) Close() error {
	return s.repo.Close()
}
