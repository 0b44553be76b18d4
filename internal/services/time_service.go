package services

import (
	"fmt"
	"strings"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	loc *time.Location
	now func() time.Time
}

// NewTimeService creates a new TimeService reading the system clock in loc
func NewTimeService(loc *time.Location) TimeService {
	return NewTimeServiceWithClock(loc, time.Now)
}

// NewTimeServiceWithClock creates a TimeService with an injected clock
func NewTimeServiceWithClock(loc *time.Location, now func() time.Time) TimeService {
	if loc == nil {
		loc = time.UTC
	}
	return &timeServiceImpl{loc: loc, now: now}
}

// Now returns the current time in the configured location
func (t *timeServiceImpl) Now() time.Time {
	return t.now().In(t.loc)
}

// Location returns the configured location
func (t *timeServiceImpl) Location() *time.Location {
	return t.loc
}

// Today returns the current date as YYYY-MM-DD
func (t *timeServiceImpl) Today() string {
	return t.Now().Format(domain.DateLayout)
}

// Tomorrow returns the date after today as YYYY-MM-DD
func (t *timeServiceImpl) Tomorrow() string {
	return t.Now().AddDate(0, 0, 1).Format(domain.DateLayout)
}

// ParseDueDate parses a YYYY-MM-DD date in the configured location
func (t *timeServiceImpl) ParseDueDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(s), t.loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("due_date", s, "expected YYYY-MM-DD")
	}
	return date, nil
}

// FormatDueDate renders a stored due date with layout. Dates that do not
// parse are returned unchanged.
func (t *timeServiceImpl) FormatDueDate(date, layout string) string {
	parsed, err := t.ParseDueDate(date)
	if err != nil {
		return date
	}
	return parsed.Format(layout)
}

// IsOverdue reports whether an incomplete task was due before today
func (t *timeServiceImpl) IsOverdue(task *domain.Task) bool {
	return !task.Completed && task.DueDate != "" && task.DueDate < t.Today()
}

// WeekStart returns midnight on the Monday of the current week
func (t *timeServiceImpl) WeekStart() time.Time {
	now := t.Now()
	offset := (int(now.Weekday()) + 6) % 7
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc)
	return day.AddDate(0, 0, -offset)
}

// CurrentMonth returns the cursor for the current month
func (t *timeServiceImpl) CurrentMonth() MonthCursor {
	now := t.Now()
	return MonthCursor{Year: now.Year(), Month: now.Month()}
}

// ParseMonthCursor parses a month written as YYYY-MM
func ParseMonthCursor(s string) (MonthCursor, error) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return MonthCursor{}, errors.NewInvalidInputError("month", s, "expected YYYY-MM")
	}
	return MonthCursor{Year: parsed.Year(), Month: parsed.Month()}, nil
}

// Prev returns the previous month, wrapping into the previous year
func (m MonthCursor) Prev() MonthCursor {
	if m.Month == time.January {
		return MonthCursor{Year: m.Year - 1, Month: time.December}
	}
	return MonthCursor{Year: m.Year, Month: m.Month - 1}
}

// Next returns the following month, wrapping into the next year
func (m MonthCursor) Next() MonthCursor {
	if m.Month == time.December {
		return MonthCursor{Year: m.Year + 1, Month: time.January}
	}
	return MonthCursor{Year: m.Year, Month: m.Month + 1}
}

// Contains reports whether a YYYY-MM-DD date falls in the month
func (m MonthCursor) Contains(date string) bool {
	return strings.HasPrefix(date, m.Key()+"-")
}

// Key returns the month as YYYY-MM
func (m MonthCursor) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// String returns the month as "June 2023"
func (m MonthCursor) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
