package api

import (
	"context"
	"io"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// Business domain types shared with the service layer
type (
	TaskInput      = services.TaskInput
	Summary        = services.Summary
	Statistics     = services.Statistics
	MonthCursor    = services.MonthCursor
	CategoryStats  = services.CategoryStats
	PriorityCounts = services.PriorityCounts
)

// BusinessAPI defines the business-logic-only interface for task management operations
type BusinessAPI interface {
	// ========== Task Operations ==========

	// ListTasks returns the tasks visible under tab whose titles contain query
	ListTasks(ctx context.Context, tab domain.Tab, query string) ([]*domain.Task, error)

	// GetTask returns a single task by ID, or a not-found error
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// AddTask validates and prepends a new task
	AddTask(ctx context.Context, input TaskInput) (*domain.Task, error)

	// ToggleTask flips the completed flag; a missing id is a no-op
	ToggleTask(ctx context.Context, id string) error

	// DeleteTask removes a task; a missing id is a no-op
	DeleteTask(ctx context.Context, id string) error

	// UpdateTask replaces every field of a task in place; a missing id is a no-op
	UpdateTask(ctx context.Context, task domain.Task) error

	// ========== Statistics ==========

	// GetProgress summarizes completion over every task
	GetProgress(ctx context.Context) (Summary, error)

	// GetStatistics returns the statistics screen for month
	GetStatistics(ctx context.Context, month MonthCursor) (*Statistics, error)

	// CurrentMonth returns the month containing today
	CurrentMonth() MonthCursor

	// ========== Categories ==========

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListCategoryProgress(ctx context.Context) ([]CategoryStats, error)
	AddCategory(ctx context.Context, name, color string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// ========== Preferences ==========

	GetPreferences() domain.Preferences
	UpdatePreferences(update domain.PreferencesUpdate) domain.Preferences

	// ========== Reminders and Export ==========

	// DueToday returns the incomplete tasks due today
	DueToday(ctx context.Context) ([]*domain.Task, error)

	// ExportTasks writes every task to w as csv, json or yaml
	ExportTasks(ctx context.Context, w io.Writer, format string) error

	// Calendar returns the calendar used for today/tomorrow
	Calendar() services.TimeService

	// Services exposes the underlying services for background jobs
	Services() *services.ServiceContainer
}

// businessAPIImpl implements BusinessAPI using the service layer
type businessAPIImpl struct {
	services *services.ServiceContainer
}

// NewBusinessAPI creates a new BusinessAPI over repo using cfg for the
// calendar, validation limits and default preferences
func NewBusinessAPI(repo sqlite.Repository, cfg *config.Config) BusinessAPI {
	return NewBusinessAPIWithClock(repo, cfg, time.Now)
}

// NewBusinessAPIWithClock creates a BusinessAPI whose calendar reads now
func NewBusinessAPIWithClock(repo sqlite.Repository, cfg *config.Config, now func() time.Time) BusinessAPI {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	timeService := services.NewTimeServiceWithClock(cfg.Location(), now)
	validator := validation.NewValidatorWithConfig(cfg)

	return &businessAPIImpl{
		services: &services.ServiceContainer{
			TimeService:       timeService,
			TaskService:       services.NewTaskServiceWithValidator(repo, timeService, validator),
			CategoryService:   services.NewCategoryServiceWithValidator(repo, validator),
			SearchService:     services.NewSearchService(repo, timeService),
			StatisticsService: services.NewStatisticsService(repo, timeService),
			SettingsService:   services.NewSettingsService(cfg.DefaultPreferences()),
			ReminderService:   services.NewReminderService(repo, timeService),
		},
	}
}

// ListTasks returns the filtered task list
func (b *businessAPIImpl) ListTasks(ctx context.Context, tab domain.Tab, query string) ([]*domain.Task, error) {
	return b.services.SearchService.SearchTasks(ctx, tab, query)
}

// GetTask returns a single task by ID
func (b *businessAPIImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return b.services.TaskService.GetTask(ctx, id)
}

// AddTask validates and prepends a new task
func (b *businessAPIImpl) AddTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	return b.services.TaskService.AddTask(ctx, input)
}

// ToggleTask flips the completed flag of a task
func (b *businessAPIImpl) ToggleTask(ctx context.Context, id string) error {
	return b.services.TaskService.ToggleTask(ctx, id)
}

// DeleteTask removes a task
func (b *businessAPIImpl) DeleteTask(ctx context.Context, id string) error {
	return b.services.TaskService.DeleteTask(ctx, id)
}

// UpdateTask replaces the fields of a task
func (b *businessAPIImpl) UpdateTask(ctx context.Context, task domain.Task) error {
	return b.services.TaskService.UpdateTask(ctx, task)
}

// GetProgress summarizes completion over every task
func (b *businessAPIImpl) GetProgress(ctx context.Context) (Summary, error) {
	return b.services.StatisticsService.GetProgress(ctx)
}

// GetStatistics returns the statistics screen for month
func (b *businessAPIImpl) GetStatistics(ctx context.Context, month MonthCursor) (*Statistics, error) {
	return b.services.StatisticsService.GetStatistics(ctx, month)
}

// CurrentMonth returns the month containing today
func (b *businessAPIImpl) CurrentMonth() MonthCursor {
	return b.services.TimeService.CurrentMonth()
}

// ListCategories returns every category in insertion order
func (b *businessAPIImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return b.services.CategoryService.ListCategories(ctx)
}

// ListCategoryProgress returns task counts for each category
func (b *businessAPIImpl) ListCategoryProgress(ctx context.Context) ([]CategoryStats, error) {
	return b.services.StatisticsService.ListCategoryProgress(ctx)
}

// AddCategory appends a new category
func (b *businessAPIImpl) AddCategory(ctx context.Context, name, color string) (*domain.Category, error) {
	return b.services.CategoryService.AddCategory(ctx, name, color)
}

// UpdateCategory renames or recolors a category
func (b *businessAPIImpl) UpdateCategory(ctx context.Context, category domain.Category) error {
	return b.services.CategoryService.UpdateCategory(ctx, category)
}

// DeleteCategory removes a category
func (b *businessAPIImpl) DeleteCategory(ctx context.Context, id string) error {
	return b.services.CategoryService.DeleteCategory(ctx, id)
}

// GetPreferences returns the session preferences
func (b *businessAPIImpl) GetPreferences() domain.Preferences {
	return b.services.SettingsService.Get()
}

// UpdatePreferences applies update to the session preferences
func (b *businessAPIImpl) UpdatePreferences(update domain.PreferencesUpdate) domain.Preferences {
	return b.services.SettingsService.Update(update)
}

// DueToday returns the incomplete tasks due today
func (b *businessAPIImpl) DueToday(ctx context.Context) ([]*domain.Task, error) {
	return b.services.ReminderService.DueToday(ctx)
}

// ExportTasks writes every task to w in format
func (b *businessAPIImpl) ExportTasks(ctx context.Context, w io.Writer, format string) error {
	tasks, err := b.services.TaskService.ListTasks(ctx)
	if err != nil {
		return err
	}
	return WriteTasks(w, tasks, format)
}

// Calendar returns the calendar used for today/tomorrow
func (b *businessAPIImpl) Calendar() services.TimeService {
	return b.services.TimeService
}

// Services exposes the underlying services
func (b *businessAPIImpl) Services() *services.ServiceContainer {
	return b.services
}
