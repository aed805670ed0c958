package client

import (
	"remindly/domain/shared"
)

// NewClientNotFoundError covers both a missing row and a row owned by
// a different user; callers cannot tell the two apart.
func NewClientNotFoundError(clientID string) error {
	return &clientDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "client",
		message:  "client not found: " + clientID,
		stack:    shared.CaptureStack(3),
	}
}

func NewClientAlreadyExistsError(field, value string) error {
	return &clientDomainError{
		sentinel: shared.ErrConflict,
		entity:   "client",
		field:    field,
		message:  "client with " + field + " " + value + " already exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidClientError(field, reason string) error {
	return &clientDomainError{
		sentinel: shared.ErrInvalidInput,
		entity:   "client",
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(clientID string) error {
	return &clientDomainError{
		sentinel: shared.ErrConcurrentModification,
		entity:   "client",
		message:  "client " + clientID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type clientDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *clientDomainError) Error() string   { return e.message }
func (e *clientDomainError) Unwrap() error   { return e.sentinel }
func (e *clientDomainError) Field() string   { return e.field }
func (e *clientDomainError) Stack() []string { return shared.FormatStack(e.stack) }
