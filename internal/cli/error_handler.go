package cli

import (
	"errors"
	"fmt"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	eh.log(operation, err)

	// Field-level validation errors carry their own summary
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) && !apperrors.IsAppError(err) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if _, ok := apperrors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, apperrors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) && !apperrors.IsAppError(err) {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := apperrors.AsAppError(err); ok {
		return fmt.Errorf("%s", apperrors.GetUserMessage(err))
	}

	return err
}

// log records system errors; user errors are only reported to the user
func (eh *ErrorHandler) log(operation string, err error) {
	if err == nil || !apperrors.ShouldLogError(err) || validation.IsValidationError(err) {
		return
	}
	logging.Error("command failed", "operation", operation, "code", apperrors.GetErrorCode(err), "err", err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return apperrors.IsErrorType(err, apperrors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return apperrors.IsNotFound(err)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return apperrors.GetErrorCode(err)
}
