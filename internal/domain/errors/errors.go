package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrMalformedAPIKey = errors.New("malformed api key")
	ErrUnknownAPIKey   = errors.New("unknown api key")
	ErrRevokedAPIKey   = errors.New("api key revoked")
	ErrInvalidAmount   = errors.New("amount must be a finite positive number")
	ErrPersistence     = errors.New("persistence failure")
)

// AppError represents an application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// Persistence wraps a storage failure. The storage cause is kept for logs
// but never exposed in the external message.
func Persistence(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "failed to store transaction", errors.Join(ErrPersistence, err))
}

// IsAuthError reports whether err is one of the credential failure kinds.
// All of them surface as the same opaque unauthorized outcome.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMalformedAPIKey) ||
		errors.Is(err, ErrUnknownAPIKey) ||
		errors.Is(err, ErrRevokedAPIKey)
}
