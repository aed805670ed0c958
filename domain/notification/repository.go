package notification

import "context"

// ListFilter narrows list queries; zero values mean "no filter".
type ListFilter struct {
	Skip       int
	Limit      int
	ReminderID string
	ClientID   string
	Status     Status
}

// Repository persists the Notification aggregate.
type Repository interface {
	Save(ctx context.Context, n *Notification) error

	FindByID(ctx context.Context, id string) (*Notification, error)

	FindByUserID(ctx context.Context, userID string, filter ListFilter) ([]*Notification, error)

	Remove(ctx context.Context, id string) error
}
