package reminder

import "context"

// ListFilter narrows FindByUserID.
type ListFilter struct {
	Skip       int
	Limit      int
	ActiveOnly bool
	Type       ReminderType
}

// Repository persists the Reminder aggregate including its recipient
// links.
type Repository interface {
	Save(ctx context.Context, r *Reminder) error

	FindByID(ctx context.Context, id string) (*Reminder, error)

	FindByUserID(ctx context.Context, userID string, filter ListFilter) ([]*Reminder, error)

	// FindByEmailConfigurationID lists reminders bound to an email
	// configuration; used to block deleting a configuration in use.
	FindByEmailConfigurationID(ctx context.Context, emailConfigurationID string) ([]*Reminder, error)

	Remove(ctx context.Context, id string) error
}
