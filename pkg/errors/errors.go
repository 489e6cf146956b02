package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrRepaymentNotFound = errors.New("repayment not found")
	ErrUserNotFound      = errors.New("user not found")
)

// Error codes
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeForbidden  = "FORBIDDEN"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeDatabase   = "DATABASE_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// APIError is a domain error that maps to a single HTTP status code.
// It terminates the request at the point of detection; nothing is retried.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewValidation reports malformed or missing input.
func NewValidation(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: message}
}

// NewForbidden reports an authenticated caller acting outside its rights.
func NewForbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: ErrCodeForbidden, Message: message}
}

// NewNotFound reports an absent entity.
func NewNotFound(message string, err error) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message, Err: err}
}

// NewConflict reports a valid request that violates current entity state,
// e.g. approving an already-approved loan or editing a completed task.
func NewConflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: message}
}

// WrapDatabaseError wraps a failed store round-trip.
func WrapDatabaseError(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeDatabase, Message: "database operation failed", Err: err}
}

// WrapInternal wraps an invariant failure.
func WrapInternal(message string, err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Err: err}
}

// From normalizes any error into an APIError. Unknown errors become 500s.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return WrapInternal("internal server error", err)
}
