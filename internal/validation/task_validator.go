package validation

import (
	"task-manager/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithValidator creates a task validator sharing v's limits
func NewTaskValidatorWithValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	tv.collectTitleErrors(validationError, title)
	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (tv *TaskValidator) collectTitleErrors(ve *ValidationError, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("title")
		return
	}

	minLen, maxLen := tv.validator.TitleLengthLimits()
	if !tv.validator.IsValidStringLength(trimmed, minLen, maxLen) {
		ve.AddInvalidLengthError("title", trimmed, minLen, maxLen)
	}
	if tv.validator.HasControlCharacters(trimmed) {
		ve.AddInvalidCharacterError("title", trimmed)
	}
}

// ValidateTask validates every field of a task. An empty due date is
// accepted; a non-empty one must be a YYYY-MM-DD date.
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	tv.collectTitleErrors(validationError, task.Title)

	if _, err := domain.ParsePriority(string(task.Priority)); err != nil {
		validationError.AddInvalidValueError("priority", task.Priority, "must be one of low, medium, high")
	}

	if task.DueDate != "" && !tv.validator.IsValidDate(task.DueDate) {
		validationError.AddInvalidFormatError("due_date", task.DueDate, "YYYY-MM-DD")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskForUpdate validates a task that must already carry an id
func (tv *TaskValidator) ValidateTaskForUpdate(task domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(task.ID) {
		validationError.AddRequiredError("id")
	}

	if err := tv.ValidateTask(task); err != nil {
		if fieldErrs, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, fieldErrs.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
