package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error
	CreateCategory(ctx context.Context, category *Category) error

	// Read operations
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	SearchTasks(ctx context.Context, opts SearchOptions) ([]*Task, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	// Update operations
	UpdateTask(ctx context.Context, task *Task) error
	ToggleTask(ctx context.Context, id string) error
	UpdateCategory(ctx context.Context, category *Category) error

	// Delete operations
	DeleteTask(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens the database at dsn and brings its schema up to date.
// A dsn of ":memory:" gives a database that lives as long as the repository.
func New(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection serializes writers and keeps one :memory: database
	// shared by every query.
	db.SetMaxOpenConns(1)

	if _, err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const taskColumns = `id, title, completed, priority, due_date, category, description, position`

// CreateTask inserts the task at the front of the sequence. A task without
// an id is assigned a new UUID.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query := `
	INSERT INTO tasks (id, title, completed, priority, due_date, category, description, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MIN(position), 0) - 1 FROM tasks))
	RETURNING position`

	row := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, FormatBoolForDB(task.Completed), task.Priority,
		task.DueDate, task.Category, task.Description)
	if err := row.Scan(&task.Position); err != nil {
		return HandleDatabaseError("insert task", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// ListTasks retrieves all tasks in sequence order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY position ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// SearchTasks lists the tasks matching opts in sequence order
func (r *SQLiteRepository) SearchTasks(ctx context.Context, opts SearchOptions) ([]*Task, error) {
	var conditions []string
	var args []interface{}

	if opts.DueFrom != nil {
		conditions = append(conditions, "due_date >= ?")
		args = append(args, FormatDatePtrForDB(opts.DueFrom))
	}
	if opts.DueTo != nil {
		conditions = append(conditions, "due_date <= ?")
		args = append(args, FormatDatePtrForDB(opts.DueTo))
	}
	if opts.Completed != nil {
		conditions = append(conditions, "completed = ?")
		args = append(args, FormatBoolForDB(*opts.Completed))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY position ASC"

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// UpdateTask replaces every field of the task except its position
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET title = ?, completed = ?, priority = ?, due_date = ?, category = ?, description = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.ID,
		task.Title, FormatBoolForDB(task.Completed), task.Priority, task.DueDate,
		task.Category, task.Description, task.ID)
}

// ToggleTask flips the completed flag of a task
func (r *SQLiteRepository) ToggleTask(ctx context.Context, id string) error {
	query := `UPDATE tasks SET completed = NOT completed WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}

const categoryColumns = `id, name, color, position`

// CreateCategory appends the category to the end of the sequence.
// A category without an id is assigned a new UUID.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, category *Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	query := `
	INSERT INTO categories (id, name, color, position)
	VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories))
	RETURNING position`

	row := r.db.QueryRowContext(ctx, query, category.ID, category.Name, category.Color)
	if err := row.Scan(&category.Position); err != nil {
		return HandleDatabaseError("insert category", err)
	}
	return nil
}

// GetCategory retrieves a category by ID
func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanCategory, "category", id, id)
}

// ListCategories retrieves all categories in insertion order
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY position ASC`
	return QueryMultiple(ctx, r.db, query, ScanCategories, "categories")
}

// UpdateCategory renames or recolors a category
func (r *SQLiteRepository) UpdateCategory(ctx context.Context, category *Category) error {
	query := `UPDATE categories SET name = ?, color = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "category", category.ID,
		category.Name, category.Color, category.ID)
}

// DeleteCategory deletes a category by ID. Tasks labelled with it are kept.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "category", id, id)
}
