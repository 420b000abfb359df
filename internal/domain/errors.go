package domain

import (
	"fmt"
	"time"
)

// APIError is the standardized error envelope returned by the HTTP layer.
type APIError struct {
	Code          string    `json:"code"`
	Message       string    `json:"message"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for the different failure scenarios.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeAuthentication = "AUTHENTICATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal       = "INTERNAL_SERVER_ERROR"
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewAPIError creates a new APIError with a UTC timestamp.
func NewAPIError(code, message, details, correlationID string) *APIError {
	return &APIError{
		Code:          code,
		Message:       message,
		Details:       details,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
