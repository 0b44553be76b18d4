package services

import (
	"context"
	"time"

	"task-manager/internal/domain"
)

// Calendar supplies the day strings the tab filters compare due dates against.
type Calendar interface {
	Today() string
	Tomorrow() string
}

// MonthCursor identifies a calendar month on the statistics screen
type MonthCursor struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// TaskInput carries the fields of a task being added. Empty fields take
// their defaults: medium priority, due today, the personal category.
type TaskInput struct {
	Title       string
	Priority    string
	DueDate     string
	Category    string
	Description string
}

// Summary holds completion counts over a set of tasks
type Summary struct {
	Total          int `json:"total" yaml:"total"`
	Completed      int `json:"completed" yaml:"completed"`
	Pending        int `json:"pending" yaml:"pending"`
	CompletionRate int `json:"completion_rate" yaml:"completion_rate"`
}

// PriorityCounts holds the number of tasks at each priority
type PriorityCounts struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Get returns the count for p.
func (pc PriorityCounts) Get(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return pc.High
	case domain.PriorityMedium:
		return pc.Medium
	case domain.PriorityLow:
		return pc.Low
	}
	return 0
}

// CategoryCount is one row of the per-category breakdown
type CategoryCount struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryStats holds task counts for one category
type CategoryStats struct {
	Category  *domain.Category `json:"category" yaml:"category"`
	Total     int              `json:"total" yaml:"total"`
	Completed int              `json:"completed" yaml:"completed"`
}

// DayCount holds completed and pending counts for tasks due on one day
type DayCount struct {
	Date      string `json:"date" yaml:"date"`
	Weekday   string `json:"weekday" yaml:"weekday"`
	Completed int    `json:"completed" yaml:"completed"`
	Pending   int    `json:"pending" yaml:"pending"`
}

// Statistics is everything the statistics screen shows
type Statistics struct {
	Overall    Summary         `json:"overall" yaml:"overall"`
	Priorities PriorityCounts  `json:"priorities" yaml:"priorities"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
	Weekly     []DayCount      `json:"weekly" yaml:"weekly"`
	Month      MonthCursor     `json:"month" yaml:"month"`
	Monthly    Summary         `json:"monthly" yaml:"monthly"`
}

// TimeService handles calendar operations
type TimeService interface {
	Calendar

	Now() time.Time
	Location() *time.Location

	// Due date operations
	ParseDueDate(s string) (time.Time, error)
	FormatDueDate(date, layout string) string
	IsOverdue(task *domain.Task) bool

	// Ranges
	WeekStart() time.Time
	CurrentMonth() MonthCursor
}

// TaskService handles the task lifecycle
type TaskService interface {
	AddTask(ctx context.Context, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	ToggleTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// CategoryService handles the category lifecycle
type CategoryService interface {
	AddCategory(ctx context.Context, name, color string) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// SearchService handles filtered views of the task sequence
type SearchService interface {
	SearchTasks(ctx context.Context, tab domain.Tab, query string) ([]*domain.Task, error)
}

// StatisticsService handles aggregate views of the task sequence
type StatisticsService interface {
	GetProgress(ctx context.Context) (Summary, error)
	GetStatistics(ctx context.Context, month MonthCursor) (*Statistics, error)
	ListCategoryProgress(ctx context.Context) ([]CategoryStats, error)
}

// SettingsService holds the session preferences
type SettingsService interface {
	Get() domain.Preferences
	Update(update domain.PreferencesUpdate) domain.Preferences
	SetTheme(theme domain.Theme)
	SetNotifications(on bool)
	SetEmailNotifications(on bool)
	SetSoundEffects(on bool)
}

// ReminderService finds tasks that need attention today
type ReminderService interface {
	DueToday(ctx context.Context) ([]*domain.Task, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService       TimeService
	TaskService       TaskService
	CategoryService   CategoryService
	SearchService     SearchService
	StatisticsService StatisticsService
	SettingsService   SettingsService
	ReminderService   ReminderService
}
