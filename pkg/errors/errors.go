// Package errors defines the application-level error envelope used at
// the API boundary and the mapping from domain errors to HTTP codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"remindly/domain/shared"
)

type ErrorCode string

const (
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeTooManyRequest     ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
	CodeConcurrentModify   ErrorCode = "CONCURRENT_MODIFICATION"
	CodeUnknownTransaction ErrorCode = "UNKNOWN_TRANSACTION"
)

// AppError is the error shape serialized to API clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeConcurrentModify:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether err carries the given application error code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError maps a domain error to an AppError by its sentinel.
// Each domain error is wrapped exactly once; an error that is already
// an AppError passes through unchanged.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var field string
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		field = domainErr.Field
	} else {
		var fielder interface{ Field() string }
		if errors.As(err, &fielder) {
			field = fielder.Field()
		}
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return &AppError{Code: CodeNotFound, Message: err.Error(), Field: field, Err: err}
	case errors.Is(err, shared.ErrConcurrentModification):
		return &AppError{Code: CodeConcurrentModify, Message: err.Error(), Field: field, Err: err}
	case errors.Is(err, shared.ErrConflict):
		return &AppError{Code: CodeConflict, Message: err.Error(), Field: field, Err: err}
	case errors.Is(err, shared.ErrInvalidInput):
		return &AppError{Code: CodeValidation, Message: err.Error(), Field: field, Err: err}
	case errors.Is(err, shared.ErrUnknownTransaction):
		return &AppError{Code: CodeUnknownTransaction, Message: err.Error(), Err: err}
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
