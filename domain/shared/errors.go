/*
Package shared holds the building blocks common to every subdomain:
domain events, the event bus, the unit-of-work contract, aggregate root
interfaces and the domain error taxonomy.

Error conventions:
 1. Sentinel errors support errors.Is() checks across layers.
 2. DomainError captures its stack at creation time but formats it lazily.
 3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Carried by DomainError via Unwrap so callers can use
// errors.Is() without depending on concrete error types.
var (
	// ErrNotFound entity absent, or not visible to the calling owner.
	ErrNotFound = errors.New("not found")

	// ErrConflict uniqueness violation; not retryable.
	ErrConflict = errors.New("conflict")

	// ErrConcurrentModification optimistic-lock failure; the retry
	// layer treats it as retryable, unlike plain conflicts.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrInvalidInput malformed input that reached the service layer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTransaction an event was queued against a unit of work
	// that is not executing (never started, or already resolved).
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrInternal unexpected persistence or infrastructure failure.
	ErrInternal = errors.New("internal error")
)

// DomainError is a structured error carrying business context and the
// stack of its creation point.
type DomainError struct {
	// Err is the underlying sentinel, used for errors.Is() checks.
	Err error

	// Entity names the aggregate the error belongs to ("client", ...).
	Entity string

	// Message is the human readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string { return e.Message }

// Unwrap exposes the sentinel for errors.Is() and errors.As().
func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured stack on demand, one string per frame.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// CaptureStack records the current call stack. skip is the number of
// frames to drop (usually 3: Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError builds a not-found domain error for an entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError builds a conflict (already exists) domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError builds a validation domain error for a field.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewUnknownTransactionError reports an event registration against a
// unit of work that has already been resolved or was never started.
func NewUnknownTransactionError(detail string) error {
	return &DomainError{
		Err:     ErrUnknownTransaction,
		Entity:  "unit_of_work",
		Message: "unknown transaction: " + detail,
		stack:   CaptureStack(3),
	}
}

// NewInternalError wraps an unexpected infrastructure failure, keeping
// the original message as context.
func NewInternalError(operation string, cause error) error {
	msg := operation + " failed"
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &DomainError{
		Err:     ErrInternal,
		Message: msg,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can report the stack of their
// creation point. The API layer uses it when logging failures.
type Stacker interface {
	Stack() []string
}
