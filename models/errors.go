package models

import "fmt"

// ValidationError rejects an operation before any mutation takes place. Field
// names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError marks a referenced entity that does not exist. Removal paths
// treat absence as a tolerant no-op instead of returning this error.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given entity kind and id.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}
