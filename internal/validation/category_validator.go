package validation

import (
	"task-manager/internal/domain"
)

// CategoryValidator provides validation for Category-related operations
type CategoryValidator struct {
	validator *Validator
}

// NewCategoryValidator creates a new category validator with default limits
func NewCategoryValidator() *CategoryValidator {
	return &CategoryValidator{validator: NewValidator()}
}

// NewCategoryValidatorWithValidator creates a category validator sharing v's limits
func NewCategoryValidatorWithValidator(v *Validator) *CategoryValidator {
	return &CategoryValidator{validator: v}
}

// ValidateCategory validates a category name and color
func (cv *CategoryValidator) ValidateCategory(category domain.Category) error {
	validationError := NewValidationError()

	name := cv.validator.TrimAndValidateString(category.Name)
	if !cv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	} else {
		maxLen := cv.validator.CategoryNameMaxLength()
		if !cv.validator.IsValidStringLength(name, 1, maxLen) {
			validationError.AddInvalidLengthError("name", name, 0, maxLen)
		}
		if cv.validator.HasControlCharacters(name) {
			validationError.AddInvalidCharacterError("name", name)
		}
	}

	if _, err := domain.ParseColor(string(category.Color)); err != nil || category.Color == "" {
		validationError.AddInvalidValueError("color", category.Color, "must be one of blue, green, yellow, red, purple")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
