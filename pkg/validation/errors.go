package validation

import (
	"fmt"
	"strings"
)

// ErrorCode constants for machine-readable error identification
const (
	ErrCodeRequired    = "required"
	ErrCodeType        = "type"
	ErrCodeMinLength   = "min_length"
	ErrCodePattern     = "pattern"
	ErrCodeMin         = "min"
	ErrCodeSchema      = "schema"
	ErrCodeInvalidJSON = "invalid_json"
)

// FieldError represents a detailed validation error for a single field.
type FieldError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Hint provides a user-friendly suggestion for fixing the error
	Hint string `json:"hint,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Result contains the outcome of validation.
type Result struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors contains validation errors (when Valid is false)
	Errors []*FieldError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// HasErrors returns true if there are any validation errors
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Fields returns the names of the fields with errors, in report order.
func (r *Result) Fields() []string {
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// Summary returns a one-line description of the errors.
func (r *Result) Summary() string {
	switch len(r.Errors) {
	case 0:
		return ""
	case 1:
		return r.Errors[0].Error()
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(r.Errors), strings.Join(msgs, "; "))
}

// NewRequiredError creates an error for a missing required field
func NewRequiredError(field string) *FieldError {
	return &FieldError{
		Field:   field,
		Code:    ErrCodeRequired,
		Message: fmt.Sprintf("field '%s' is required", field),
		Hint:    fmt.Sprintf("Add the '%s' field to your request body", field),
	}
}

// NewInvalidJSONError creates an error for malformed JSON
func NewInvalidJSONError(message string) *FieldError {
	return &FieldError{
		Code:    ErrCodeInvalidJSON,
		Message: fmt.Sprintf("invalid JSON: %s", message),
		Hint:    "Ensure your request body is valid JSON",
	}
}
