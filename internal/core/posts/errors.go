package posts

import (
	"errors"
)

var (
	// ErrPostNotFound is returned when a post lookup finds no matching row
	ErrPostNotFound = errors.New("post not found")
)

// ValidationError indicates a required field is missing or empty.
// Handlers map it to a 400 with the message shown to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound checks if an error indicates a missing post
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}
