package services

import (
	"context"
	"fmt"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/repository/sqlite"
)

// reminderServiceImpl implements the ReminderService interface
type reminderServiceImpl struct {
	repo        sqlite.Repository
	timeService TimeService
	mapper      *domain.Mapper
}

// NewReminderService creates a new ReminderService instance
func NewReminderService(repo sqlite.Repository, timeService TimeService) ReminderService {
	return &reminderServiceImpl{
		repo:        repo,
		timeService: timeService,
		mapper:      domain.NewMapper(),
	}
}

// DueToday returns the incomplete tasks due today, in sequence order
func (r *reminderServiceImpl) DueToday(ctx context.Context) ([]*domain.Task, error) {
	today := r.timeService.Now()
	completed := false
	dbTasks, err := r.repo.SearchTasks(ctx, sqlite.SearchOptions{
		DueFrom:   &today,
		DueTo:     &today,
		Completed: &completed,
	})
	if err != nil {
		return nil, err
	}
	return r.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// ReminderDigest renders a one-line reminder for tasks due today
func ReminderDigest(tasks []*domain.Task) string {
	switch len(tasks) {
	case 0:
		return "Nothing due today."
	case 1:
		return fmt.Sprintf("1 task due today: %s", tasks[0].Title)
	}

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return fmt.Sprintf("%d tasks due today: %s", len(tasks), strings.Join(titles, ", "))
}
