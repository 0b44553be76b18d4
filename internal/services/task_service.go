package services

import (
	"context"
	stderrors "errors"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	timeService   TimeService
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance with default validation limits
func NewTaskService(repo sqlite.Repository, timeService TimeService) TaskService {
	return NewTaskServiceWithValidator(repo, timeService, validation.NewValidator())
}

// NewTaskServiceWithValidator creates a TaskService validating with v
func NewTaskServiceWithValidator(repo sqlite.Repository, timeService TimeService, v *validation.Validator) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		timeService:   timeService,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWithValidator(v),
	}
}

// asValidationFailure converts collected field errors into an AppError
func asValidationFailure(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.AsAppError()
	}
	return err
}

// normalizePriority returns the canonical priority, or the raw value for
// the validator to reject
func normalizePriority(raw string) domain.Priority {
	if p, err := domain.ParsePriority(raw); err == nil {
		return p
	}
	return domain.Priority(raw)
}

// AddTask validates input, fills in defaults and puts the task at the
// front of the sequence
func (t *taskServiceImpl) AddTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	title, err := t.taskValidator.GetValidTitle(input.Title)
	if err != nil {
		return nil, asValidationFailure(err)
	}

	priority := domain.PriorityMedium
	if strings.TrimSpace(input.Priority) != "" {
		priority = normalizePriority(input.Priority)
	}

	dueDate := strings.TrimSpace(input.DueDate)
	if dueDate == "" {
		dueDate = t.timeService.Today()
	}

	task := domain.NewTask(title, priority, dueDate)
	if category := strings.TrimSpace(input.Category); category != "" {
		task.Category = category
	}
	task.Description = strings.TrimSpace(input.Description)

	if err := t.taskValidator.ValidateTask(task); err != nil {
		return nil, asValidationFailure(err)
	}

	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	created := t.mapper.Task.FromDatabase(dbTask)
	return &created, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("invalid task id", nil)
	}

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ListTasks returns every task in sequence order
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// UpdateTask replaces every field of the task with the matching id,
// keeping its position. Updating a missing task does nothing.
func (t *taskServiceImpl) UpdateTask(ctx context.Context, task domain.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	task.Priority = normalizePriority(string(task.Priority))
	task.DueDate = strings.TrimSpace(task.DueDate)
	task.Category = strings.TrimSpace(task.Category)

	if err := t.taskValidator.ValidateTaskForUpdate(task); err != nil {
		return asValidationFailure(err)
	}

	dbTask := t.mapper.Task.ToDatabase(task)
	return t.ignoreMissing("update", task.ID, t.repo.UpdateTask(ctx, &dbTask))
}

// ToggleTask flips the completed flag of the matching task
func (t *taskServiceImpl) ToggleTask(ctx context.Context, id string) error {
	return t.ignoreMissing("toggle", id, t.repo.ToggleTask(ctx, id))
}

// DeleteTask removes the matching task
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	return t.ignoreMissing("delete", id, t.repo.DeleteTask(ctx, id))
}

// ignoreMissing turns a not-found error into a no-op
func (t *taskServiceImpl) ignoreMissing(op, id string, err error) error {
	if errors.IsNotFound(err) {
		logging.Debugf("%s task %q: no such task, nothing to do", op, id)
		return nil
	}
	return err
}
