package sqlite

import (
	"database/sql"
	"time"
)

// Task is a row of the tasks table.
// Position orders the sequence; smaller comes first.
type Task struct {
	ID          string
	Title       string
	Completed   bool
	Priority    string
	DueDate     string
	Category    sql.NullString
	Description string
	Position    int64
}

// Category is a row of the categories table.
type Category struct {
	ID       string
	Name     string
	Color    string
	Position int64
}

// SearchOptions narrows a task listing. Nil fields are ignored.
// DueFrom and DueTo are inclusive and compared by calendar date in their
// own location.
type SearchOptions struct {
	DueFrom   *time.Time
	DueTo     *time.Time
	Completed *bool
}
