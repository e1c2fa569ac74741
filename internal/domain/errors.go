package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error codes for different failure scenarios.
const (
	ErrInvalidInput   = "INVALID_INPUT"
	ErrInvalidRecord  = "INVALID_RECORD"
	ErrCalculation    = "CALCULATION_ERROR"
	ErrStorage        = "STORAGE_ERROR"
	ErrInsight        = "INSIGHT_ERROR"
	ErrNotFoundCode   = "NOT_FOUND"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
)

// ErrNotFound is returned by stores when no record matches.
var ErrNotFound = errors.New("not found")

// APIError represents a standardized error response.
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates a new APIError with timestamp.
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// FieldError reports a patient-record field outside its validated range.
// Reaching a calculator with one of these is a defect of the upstream
// validator; the engine fails fast rather than score a bad record.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid record field '%s': %s (got %v)", e.Field, e.Message, e.Value)
}

// NewFieldError creates a new FieldError.
func NewFieldError(field, message string, value interface{}) *FieldError {
	return &FieldError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// IsFieldError reports whether err is (or wraps) a FieldError.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
