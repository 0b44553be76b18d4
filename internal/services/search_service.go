package services

import (
	"context"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/repository/sqlite"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	repo     sqlite.Repository
	calendar Calendar
	mapper   *domain.Mapper
}

// NewSearchService creates a new SearchService instance
func NewSearchService(repo sqlite.Repository, calendar Calendar) SearchService {
	return &searchServiceImpl{
		repo:     repo,
		calendar: calendar,
		mapper:   domain.NewMapper(),
	}
}

// SearchTasks returns the tasks visible under tab whose titles match query
func (s *searchServiceImpl) SearchTasks(ctx context.Context, tab domain.Tab, query string) ([]*domain.Task, error) {
	dbTasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return FilterTasks(s.mapper.Task.FromDatabaseSlice(dbTasks), tab, query, s.calendar), nil
}

// FilterTasks returns the tasks, in their original order, whose titles
// contain query case-insensitively and which belong to tab. An empty query
// matches every title.
func FilterTasks(tasks []*domain.Task, tab domain.Tab, query string, cal Calendar) []*domain.Task {
	filtered := make([]*domain.Task, 0, len(tasks))
	needle := strings.ToLower(query)

	var today, tomorrow string
	switch tab {
	case domain.TabToday:
		today = cal.Today()
	case domain.TabUpcoming:
		tomorrow = cal.Tomorrow()
	}

	for _, task := range tasks {
		if !matchesTitle(task.Title, needle) {
			continue
		}
		if !inTab(task, tab, today, tomorrow) {
			continue
		}
		filtered = append(filtered, task)
	}
	return filtered
}

// matchesTitle checks if a title contains the lowercased needle
func matchesTitle(title, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), needle)
}

func inTab(task *domain.Task, tab domain.Tab, today, tomorrow string) bool {
	switch tab {
	case domain.TabToday:
		return task.DueDate == today
	case domain.TabUpcoming:
		return task.DueDate >= tomorrow && !task.Completed
	case domain.TabCompleted:
		return task.Completed
	default:
		return true
	}
}
