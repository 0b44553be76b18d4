package sqlite

import (
	"time"
)

const dateLayout = "2006-01-02"

// FormatDateForDB formats the calendar date of t as stored in due_date.
// The date is taken in t's own location.
func FormatDateForDB(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDatePtrForDB formats a *time.Time as a date, returning nil if the pointer is nil
func FormatDatePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatDateForDB(*t)
}

// FormatBoolForDB stores booleans as 0 or 1.
func FormatBoolForDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
