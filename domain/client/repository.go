package client

import "context"

// ListFilter narrows FindByUserID. Ownership scoping is always the
// caller's user id; the repository trusts its caller for authorization.
type ListFilter struct {
	Skip          int
	Limit         int
	ActiveOnly    bool
	Search        string // matches name or email, substring
	ContactMethod ContactMethod
}

// Repository persists the Client aggregate. Lookup methods used for
// uniqueness checks return (nil, nil) when nothing matches; FindByID
// returns a not-found domain error.
type Repository interface {
	// Save creates the aggregate when IsNew(), otherwise performs an
	// optimistic-lock update keyed on the current version.
	Save(ctx context.Context, c *Client) error

	FindByID(ctx context.Context, id string) (*Client, error)

	// FindByEmail scopes the uniqueness check to one owner.
	FindByEmail(ctx context.Context, userID, email string) (*Client, error)

	FindByPhoneNumber(ctx context.Context, userID, phoneNumber string) (*Client, error)

	FindByUserID(ctx context.Context, userID string, filter ListFilter) ([]*Client, error)

	// Remove deletes the aggregate. The service checks ownership first.
	Remove(ctx context.Context, id string) error
}
