package models

import (
	"strings"
)

// Camp constraints
const (
	// MinCamperAge is the youngest age accepted for a camper
	MinCamperAge = 8

	// MaxCamperAge is the oldest age accepted for a camper
	MaxCamperAge = 18

	// MinSignupTime is the earliest hour of day a signup can be scheduled for
	MinSignupTime = 0

	// MaxSignupTime is the latest hour of day a signup can be scheduled for
	MaxSignupTime = 23

	// MaxNameLength bounds camper and activity names
	MaxNameLength = 255
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// ValidationErrors collects every field failure found while validating an entity
type ValidationErrors []*ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Fields returns the names of the fields that failed validation
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, err := range ve {
		fields = append(fields, err.Field)
	}
	return fields
}

// orNil returns nil when no validation error was collected so callers can
// compare the result against nil without tripping over a typed nil slice
func (ve ValidationErrors) orNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}
