package domain

import (
	"database/sql"

	"task-manager/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
// An empty category is stored as NULL.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:          domainTask.ID,
		Title:       domainTask.Title,
		Completed:   domainTask.Completed,
		Priority:    string(domainTask.Priority),
		DueDate:     domainTask.DueDate,
		Category:    sql.NullString{String: domainTask.Category, Valid: domainTask.Category != ""},
		Description: domainTask.Description,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Completed:   dbTask.Completed,
		Priority:    Priority(dbTask.Priority),
		DueDate:     dbTask.DueDate,
		Category:    dbTask.Category.String,
		Description: dbTask.Description,
	}
}

// FromDatabaseSlice converts database Tasks to domain Tasks, keeping order.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, len(dbTasks))
	for i, task := range dbTasks {
		t := m.FromDatabase(*task)
		domainTasks[i] = &t
	}
	return domainTasks
}

// CategoryMapper handles conversion between domain and database Category models.
type CategoryMapper struct{}

// NewCategoryMapper creates a new CategoryMapper instance.
func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

// ToDatabase converts a domain Category to a database Category.
func (m *CategoryMapper) ToDatabase(domainCategory Category) sqlite.Category {
	return sqlite.Category{
		ID:    domainCategory.ID,
		Name:  domainCategory.Name,
		Color: string(domainCategory.Color),
	}
}

// FromDatabase converts a database Category to a domain Category.
func (m *CategoryMapper) FromDatabase(dbCategory sqlite.Category) Category {
	return Category{
		ID:    dbCategory.ID,
		Name:  dbCategory.Name,
		Color: Color(dbCategory.Color),
	}
}

// FromDatabaseSlice converts database Categories to domain Categories, keeping order.
func (m *CategoryMapper) FromDatabaseSlice(dbCategories []*sqlite.Category) []*Category {
	domainCategories := make([]*Category, len(dbCategories))
	for i, category := range dbCategories {
		c := m.FromDatabase(*category)
		domainCategories[i] = &c
	}
	return domainCategories
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task     *TaskMapper
	Category *CategoryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:     NewTaskMapper(),
		Category: NewCategoryMapper(),
	}
}
