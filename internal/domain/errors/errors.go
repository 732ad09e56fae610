package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource already exists")
	ErrBadRequest   = errors.New("bad request")
	ErrReferential  = errors.New("dangling reference")
	ErrProvider     = errors.New("chain data provider unavailable")
	ErrSystemLocked = errors.New("system catalog cannot be modified")
	ErrForeignKey   = errors.New("referenced entity vanished")
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "VALIDATION", message, ErrValidation)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message, ErrConflict)
}

func SystemLocked(message string) *AppError {
	return NewAppError(http.StatusForbidden, "SYSTEM_CATALOG", message, ErrSystemLocked)
}

func Provider(network string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, "PROVIDER", "fetch failed for network "+network, errors.Join(ErrProvider, err))
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL", "internal server error", err)
}
