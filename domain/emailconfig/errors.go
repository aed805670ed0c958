package emailconfig

import "remindly/domain/shared"

func NewEmailConfigurationNotFoundError(id string) error {
	return &configDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "email_configuration",
		message:  "email configuration not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

func NewEmailConfigurationAlreadyExistsError(field, value string) error {
	return &configDomainError{
		sentinel: shared.ErrConflict,
		entity:   "email_configuration",
		field:    field,
		message:  "email configuration with " + field + " " + value + " already exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidConfigurationError(field, reason string) error {
	return &configDomainError{
		sentinel: shared.ErrInvalidInput,
		entity:   "email_configuration",
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(id string) error {
	return &configDomainError{
		sentinel: shared.ErrConcurrentModification,
		entity:   "email_configuration",
		message:  "email configuration " + id + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type configDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *configDomainError) Error() string   { return e.message }
func (e *configDomainError) Unwrap() error   { return e.sentinel }
func (e *configDomainError) Field() string   { return e.field }
func (e *configDomainError) Stack() []string { return shared.FormatStack(e.stack) }
