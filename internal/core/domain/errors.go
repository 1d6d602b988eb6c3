package domain

import (
	"errors"
	"fmt"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrDuplicateEmail = errors.New("a customer with this email already exists")

// Stable machine-readable error codes exposed at the API boundary.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidDomain      = "INVALID_DOMAIN"
	CodeInvalidHealthScore = "INVALID_HEALTH_SCORE"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicate          = "DUPLICATE_ERROR"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
)

// ValidationError reports a single malformed or out-of-range input field.
// Code is one of the Code* constants above; it defaults to CodeValidation.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError with the generic code.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeValidation, Message: message}
}

// NewValidationErrorCode builds a ValidationError with a specific code.
func NewValidationErrorCode(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}
