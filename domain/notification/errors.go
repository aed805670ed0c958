package notification

import "remindly/domain/shared"

func NewNotificationNotFoundError(id string) error {
	return &notificationDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "notification",
		message:  "notification not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidNotificationError(field, reason string) error {
	return &notificationDomainError{
		sentinel: shared.ErrInvalidInput,
		entity:   "notification",
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidStatusTransitionError(id string, from, to Status) error {
	return &notificationDomainError{
		sentinel: shared.ErrConflict,
		entity:   "notification",
		field:    "status",
		message:  "notification " + id + " cannot move from " + string(from) + " to " + string(to),
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(id string) error {
	return &notificationDomainError{
		sentinel: shared.ErrConcurrentModification,
		entity:   "notification",
		message:  "notification " + id + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type notificationDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *notificationDomainError) Error() string   { return e.message }
func (e *notificationDomainError) Unwrap() error   { return e.sentinel }
func (e *notificationDomainError) Field() string   { return e.field }
func (e *notificationDomainError) Stack() []string { return shared.FormatStack(e.stack) }
