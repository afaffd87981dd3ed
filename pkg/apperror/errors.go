package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindPersistence  Kind = "persistence"
	KindDelivery     Kind = "delivery"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrTooManyRequests    = &AppError{Code: http.StatusTooManyRequests, Kind: KindRateLimited, Message: "Too many requests"}
)

// NewValidationError creates a validation error carrying per-field details
func NewValidationError(message string, fieldErrors ...FieldError) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewPersistenceError wraps a storage failure. The cause is kept for logging and
// never shown to the caller.
func NewPersistenceError(op string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistence,
		Message: "Error " + op,
		Err:     err,
	}
}

// NewDeliveryError wraps a message-channel failure.
func NewDeliveryError(err error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindDelivery,
		Message: "Message delivery failed",
		Err:     err,
	}
}

// IsKind checks whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindPersistence,
		Message: "Server error",
		Err:     err,
	}
}
