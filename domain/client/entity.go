/*
Package client holds the Client aggregate: a person or company the user
sends reminders to. Uniqueness of email and phone number is scoped per
owning user, not global.
*/
package client

import (
	"regexp"
	"strings"
	"time"

	"remindly/domain/shared"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ContactMethod is the client's preferred notification channel.
type ContactMethod string

const (
	ContactEmail    ContactMethod = "EMAIL"
	ContactSMS      ContactMethod = "SMS"
	ContactWhatsApp ContactMethod = "WHATSAPP"
)

func (m ContactMethod) valid() bool {
	switch m {
	case ContactEmail, ContactSMS, ContactWhatsApp:
		return true
	}
	return false
}

// Client aggregate root. All fields are private; state changes go
// through behavior methods which record domain events. The
// optimistic-lock version is owned by the repository.
type Client struct {
	id            string
	userID        string
	name          string
	email         string
	phoneNumber   string
	address       string
	notes         string
	contactMethod ContactMethod
	isActive      bool
	version       int
	isNew         bool
	createdAt     time.Time
	updatedAt     time.Time

	events []shared.DomainEvent
}

// CreateParams collects the fields of a new client. Email, phone,
// address and notes are optional; ContactMethod defaults to EMAIL.
type CreateParams struct {
	UserID        string
	Name          string
	Email         string
	PhoneNumber   string
	Address       string
	Notes         string
	ContactMethod ContactMethod
}

// NewClient validates the params, creates the aggregate and records
// the client.created event. Creation is one mutation and records
// exactly one event, whichever optional fields are set.
func NewClient(params CreateParams) (*Client, error) {
	if params.UserID == "" {
		return nil, NewInvalidClientError("user_id", "owning user is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, NewInvalidClientError("name", "name cannot be empty")
	}
	if params.Email != "" && !emailPattern.MatchString(params.Email) {
		return nil, NewInvalidClientError("email", "invalid email format: "+params.Email)
	}
	if err := validatePhone(params.PhoneNumber); err != nil {
		return nil, err
	}
	method := params.ContactMethod
	if method == "" {
		method = ContactEmail
	}
	if !method.valid() {
		return nil, NewInvalidClientError("contact_method", "unknown contact method: "+string(method))
	}

	now := time.Now()
	c := &Client{
		id:            uuid.New().String(),
		userID:        params.UserID,
		name:          strings.TrimSpace(params.Name),
		email:         params.Email,
		phoneNumber:   params.PhoneNumber,
		address:       params.Address,
		notes:         params.Notes,
		contactMethod: method,
		isActive:      true,
		version:       0,
		isNew:         true,
		createdAt:     now,
		updatedAt:     now,
		events:        make([]shared.DomainEvent, 0),
	}
	c.events = append(c.events, NewClientCreatedEvent(c))
	return c, nil
}

func validatePhone(phoneNumber string) error {
	if phoneNumber == "" {
		return nil
	}
	trimmed := strings.TrimPrefix(phoneNumber, "+")
	if len(trimmed) < 5 || len(trimmed) > 20 {
		return NewInvalidClientError("phone_number", "phone number must be 5 to 20 digits")
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return NewInvalidClientError("phone_number", "phone number may contain digits and a leading + only")
		}
	}
	return nil
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name          *string
	Email         *string
	PhoneNumber   *string
	Address       *string
	Notes         *string
	ContactMethod *ContactMethod
	IsActive      *bool
}

// Update applies the partial change set, validates it, bumps the
// version and records a client.updated event naming the changed fields.
func (c *Client) Update(params UpdateParams) error {
	changed := make([]string, 0, 4)

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return NewInvalidClientError("name", "name cannot be empty")
		}
		c.name = strings.TrimSpace(*params.Name)
		changed = append(changed, "name")
	}
	if params.Email != nil {
		if *params.Email != "" && !emailPattern.MatchString(*params.Email) {
			return NewInvalidClientError("email", "invalid email format: "+*params.Email)
		}
		c.email = *params.Email
		changed = append(changed, "email")
	}
	if params.PhoneNumber != nil {
		if err := validatePhone(*params.PhoneNumber); err != nil {
			return err
		}
		c.phoneNumber = *params.PhoneNumber
		changed = append(changed, "phone_number")
	}
	if params.Address != nil {
		c.address = *params.Address
		changed = append(changed, "address")
	}
	if params.Notes != nil {
		c.notes = *params.Notes
		changed = append(changed, "notes")
	}
	if params.ContactMethod != nil {
		if !params.ContactMethod.valid() {
			return NewInvalidClientError("contact_method", "unknown contact method: "+string(*params.ContactMethod))
		}
		c.contactMethod = *params.ContactMethod
		changed = append(changed, "contact_method")
	}
	if params.IsActive != nil {
		c.isActive = *params.IsActive
		changed = append(changed, "is_active")
	}

	if len(changed) == 0 {
		return nil
	}

	c.updatedAt = time.Now()
	c.events = append(c.events, NewClientUpdatedEvent(c, changed))
	return nil
}

// Deactivate stops the client from receiving reminders.
func (c *Client) Deactivate() {
	active := false
	_ = c.Update(UpdateParams{IsActive: &active})
}

// Activate re-enables the client.
func (c *Client) Activate() {
	active := true
	_ = c.Update(UpdateParams{IsActive: &active})
}

func (c *Client) ID() string                   { return c.id }
func (c *Client) UserID() string               { return c.userID }
func (c *Client) Name() string                 { return c.name }
func (c *Client) Email() string                { return c.email }
func (c *Client) PhoneNumber() string          { return c.phoneNumber }
func (c *Client) Address() string              { return c.address }
func (c *Client) Notes() string                { return c.notes }
func (c *Client) ContactMethod() ContactMethod { return c.contactMethod }
func (c *Client) IsActive() bool               { return c.isActive }
func (c *Client) Version() int                 { return c.version }
func (c *Client) CreatedAt() time.Time         { return c.createdAt }
func (c *Client) UpdatedAt() time.Time         { return c.updatedAt }

// IsNew reports whether the aggregate has never been persisted.
func (c *Client) IsNew() bool { return c.isNew }

// ClearNewFlag is called by the repository after the first save.
func (c *Client) ClearNewFlag() { c.isNew = false }

// IncrementVersionForSave syncs the in-memory version after an
// optimistic-lock update succeeded. The version is owned by the
// repository, not by behavior methods.
func (c *Client) IncrementVersionForSave() { c.version++ }

// PullEvents returns the recorded events and clears the list.
func (c *Client) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(c.events))
	copy(events, c.events)
	c.events = make([]shared.DomainEvent, 0)
	return events
}

// ReconstructionDTO rebuilds a Client from persistence. Repository use
// only.
type ReconstructionDTO struct {
	ID            string
	UserID        string
	Name          string
	Email         string
	PhoneNumber   string
	Address       string
	Notes         string
	ContactMethod string
	IsActive      bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO restores an aggregate without recording any events.
func RebuildFromDTO(dto ReconstructionDTO) *Client {
	return &Client{
		id:            dto.ID,
		userID:        dto.UserID,
		name:          dto.Name,
		email:         dto.Email,
		phoneNumber:   dto.PhoneNumber,
		address:       dto.Address,
		notes:         dto.Notes,
		contactMethod: ContactMethod(dto.ContactMethod),
		isActive:      dto.IsActive,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
		events:        []shared.DomainEvent{},
	}
}

var _ shared.AggregateRoot = (*Client)(nil)
