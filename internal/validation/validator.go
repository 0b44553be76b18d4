package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed string has between min and max characters
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// HasControlCharacters reports whether s contains newlines, tabs or other control characters
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidDate checks that s is a real calendar date written as YYYY-MM-DD
func (v *Validator) IsValidDate(s string) bool {
	t, err := time.Parse(domain.DateLayout, s)
	return err == nil && t.Format(domain.DateLayout) == s
}

// IsValidID checks that an identifier is present
func (v *Validator) IsValidID(id string) bool {
	return v.IsNonEmptyString(id)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleLengthLimits returns configured title length limits or defaults
func (v *Validator) TitleLengthLimits() (int, int) {
	if v.config != nil {
		return v.config.Validation.TitleMinLength, v.config.Validation.TitleMaxLength
	}
	return 1, 255
}

// CategoryNameMaxLength returns the configured category name limit or default
func (v *Validator) CategoryNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.CategoryNameMaxLength
	}
	return 50
}
