package emailconfig

import "context"

// ListFilter narrows FindByUserID.
type ListFilter struct {
	Skip       int
	Limit      int
	ActiveOnly bool
}

// Repository persists the EmailConfiguration aggregate. Uniqueness
// lookups return (nil, nil) when nothing matches.
type Repository interface {
	Save(ctx context.Context, c *EmailConfiguration) error

	FindByID(ctx context.Context, id string) (*EmailConfiguration, error)

	// FindByName resolves the per-owner configuration-name uniqueness.
	FindByName(ctx context.Context, userID, configurationName string) (*EmailConfiguration, error)

	// FindByEmailFrom resolves the per-owner sender-address uniqueness.
	FindByEmailFrom(ctx context.Context, userID, emailFrom string) (*EmailConfiguration, error)

	// FindDefault returns the owner's default configuration, or nil.
	FindDefault(ctx context.Context, userID string) (*EmailConfiguration, error)

	FindByUserID(ctx context.Context, userID string, filter ListFilter) ([]*EmailConfiguration, error)

	Remove(ctx context.Context, id string) error
}
