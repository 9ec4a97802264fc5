package models

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// SanitizeString removes extra whitespace and trims the string
func SanitizeString(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fieldName + " is required",
			Value:   value,
		}
	}
	return nil
}

// ValidateStringLength validates string length constraints
func ValidateStringLength(value, fieldName string, minLength, maxLength int) error {
	length := len(strings.TrimSpace(value))

	if minLength > 0 && length < minLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be at least %d characters", fieldName, minLength),
			Value:   value,
		}
	}

	if maxLength > 0 && length > maxLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s cannot exceed %d characters", fieldName, maxLength),
			Value:   value,
		}
	}

	return nil
}

// ValidateIntRange validates that an integer lies within [min, max]
func ValidateIntRange(value int, fieldName string, min, max int) error {
	if value < min || value > max {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be between %d and %d", fieldName, min, max),
			Value:   value,
		}
	}
	return nil
}

// ValidatePositiveID validates that a reference id points at a stored row
func ValidatePositiveID(value int64, fieldName string) error {
	if value <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fieldName + " must be a positive integer",
			Value:   value,
		}
	}
	return nil
}

// collect appends err to errs when it is a field validation error
func collect(errs ValidationErrors, err error) ValidationErrors {
	if err == nil {
		return errs
	}
	if ve, ok := err.(*ValidationError); ok {
		return append(errs, ve)
	}
	return append(errs, &ValidationError{Message: err.Error()})
}
