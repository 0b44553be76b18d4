package domain

import (
	"strings"

	"task-manager/internal/errors"
)

// DateLayout is the layout of Task.DueDate. Dates in this layout sort
// lexically in calendar order, which the tab filters rely on.
const DateLayout = "2006-01-02"

// DefaultCategory is assigned to tasks added without a category.
const DefaultCategory = "personal"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", errors.NewInvalidInputError("priority", s, "must be one of low, medium, high")
}

func (p Priority) String() string {
	return string(p)
}

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          string
	Title       string
	Completed   bool
	Priority    Priority
	DueDate     string
	Category    string
	Description string
}

// NewTask creates an incomplete task in the default category.
func NewTask(title string, priority Priority, dueDate string) Task {
	return Task{
		Title:    title,
		Priority: priority,
		DueDate:  dueDate,
		Category: DefaultCategory,
	}
}

// IsValid checks if the task has a non-blank title.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != ""
}

// HasCategory reports whether the task carries a category label.
func (t Task) HasCategory() bool {
	return t.Category != ""
}

// InCategory reports whether the task belongs to the named category.
// Membership is a case-insensitive name match.
func (t Task) InCategory(name string) bool {
	return t.HasCategory() && strings.EqualFold(t.Category, name)
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
