package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
// Two kinds may share a status code (Validation and UnsupportedStatus are both 400)
// but are rendered differently.
type Kind string

const (
	KindInternal          Kind = "internal"
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindUnsupportedStatus Kind = "unsupported_status"
	KindConflict          Kind = "conflict"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Error classification
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
// The kind is derived from the status code.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
		Err:     err,
	}
}

// NotFound creates a 404 error.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Validation creates a 400 error for malformed or rejected input.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// UnsupportedStatus creates the error returned for an unknown state filter value.
// The offending value is kept in Err so callers can echo it back.
func UnsupportedStatus(value string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindUnsupportedStatus,
		Message: "Unknown state: " + value,
		Err:     UnsupportedValue(value),
	}
}

// UnsupportedValue carries the raw value rejected by UnsupportedStatus.
type UnsupportedValue string

func (v UnsupportedValue) Error() string {
	return "unsupported value " + string(v)
}

// KindOf reports the kind of err, or KindInternal if err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	default:
		return KindInternal
	}
}
