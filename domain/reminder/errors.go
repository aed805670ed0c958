package reminder

import "remindly/domain/shared"

func NewReminderNotFoundError(id string) error {
	return &reminderDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "reminder",
		message:  "reminder not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidReminderError(field, reason string) error {
	return &reminderDomainError{
		sentinel: shared.ErrInvalidInput,
		entity:   "reminder",
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

func NewRecipientAlreadyAddedError(reminderID, clientID string) error {
	return &reminderDomainError{
		sentinel: shared.ErrConflict,
		entity:   "reminder",
		message:  "client " + clientID + " is already a recipient of reminder " + reminderID,
		stack:    shared.CaptureStack(3),
	}
}

func NewRecipientNotFoundError(reminderID, clientID string) error {
	return &reminderDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "reminder",
		message:  "client " + clientID + " is not a recipient of reminder " + reminderID,
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(id string) error {
	return &reminderDomainError{
		sentinel: shared.ErrConcurrentModification,
		entity:   "reminder",
		message:  "reminder " + id + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type reminderDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *reminderDomainError) Error() string   { return e.message }
func (e *reminderDomainError) Unwrap() error   { return e.sentinel }
func (e *reminderDomainError) Field() string   { return e.field }
func (e *reminderDomainError) Stack() []string { return shared.FormatStack(e.stack) }
