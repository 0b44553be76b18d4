package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *bool:
			*v = ts.data[i].(bool)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}

	return nil
}

// testRows replays a fixed list of scanners as sql.Rows would.
type testRows struct {
	rows []*TestScanner
	i    int
	err  error
}

func (r *testRows) Next() bool {
	r.i++
	return r.i <= len(r.rows)
}

func (r *testRows) Scan(dest ...interface{}) error {
	return r.rows[r.i-1].Scan(dest...)
}

func (r *testRows) Err() error {
	return r.err
}

func taskRow(id, title string, completed bool, category sql.NullString, position int64) *TestScanner {
	return &TestScanner{data: []interface{}{id, title, completed, "high", "2023-06-15", category, "", position}}
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Task
		expectError bool
	}{
		{
			name:    "task with category",
			scanner: taskRow("1", "Complete project proposal", false, sql.NullString{String: "work", Valid: true}, -3),
			expected: &Task{
				ID: "1", Title: "Complete project proposal", Priority: "high", DueDate: "2023-06-15",
				Category: sql.NullString{String: "work", Valid: true}, Position: -3,
			},
		},
		{
			name:    "completed task without category",
			scanner: taskRow("2", "Buy groceries", true, sql.NullString{}, -2),
			expected: &Task{
				ID: "2", Title: "Buy groceries", Completed: true, Priority: "high", DueDate: "2023-06-15",
				Position: -2,
			},
		},
		{
			name:        "scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)
			if tt.expectError {
				assert.ErrorIs(t, err, sql.ErrNoRows)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanTasks(t *testing.T) {
	rows := &testRows{rows: []*TestScanner{
		taskRow("a", "First", false, sql.NullString{}, -2),
		taskRow("b", "Second", false, sql.NullString{}, -1),
	}}

	tasks, err := ScanTasks(rows)
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)

	empty, err := ScanTasks(&testRows{})
	assert.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = ScanTasks(&testRows{err: errors.New("interrupted")})
	assert.EqualError(t, err, "interrupted")
}

func TestScanCategories(t *testing.T) {
	rows := &testRows{rows: []*TestScanner{
		{data: []interface{}{"c1", "Personal", "purple", int64(1)}},
		{data: []interface{}{"c2", "Work", "blue", int64(2)}},
	}}

	categories, err := ScanCategories(rows)
	assert.NoError(t, err)
	assert.Equal(t, []*Category{
		{ID: "c1", Name: "Personal", Color: "purple", Position: 1},
		{ID: "c2", Name: "Work", Color: "blue", Position: 2},
	}, categories)

	_, err = ScanCategory(&TestScanner{err: errors.New("bad row")})
	assert.Error(t, err)
}
