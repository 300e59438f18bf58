package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an application error.
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrMalformedInput
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrStoreUnavailable
)

// AppError is an application error carrying a classification code and
// a user-facing message. The wrapped error stays out of responses.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func MalformedInput(message string) *AppError {
	return &AppError{Code: ErrMalformedInput, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: ErrForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: ErrNotFound, Message: message}
}

func StoreUnavailable(err error) *AppError {
	return &AppError{Code: ErrStoreUnavailable, Message: "store unavailable", Err: err}
}

// CodeOf returns the classification of err, or ErrStoreUnavailable for
// anything that is not an AppError (unexpected failures are treated as
// store/connectivity faults at the boundary).
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrStoreUnavailable
}
