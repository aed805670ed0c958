/*
Package notification holds the Notification aggregate: the record of
one delivery attempt produced for a reminder and a client. Transport
(SMTP, SMS, WhatsApp) is out of scope; this package tracks status only.

Status transitions: PENDING -> SENT | FAILED | CANCELLED. Terminal
states never change.
*/
package notification

import (
	"time"

	"remindly/domain/shared"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSent      Status = "SENT"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Channel mirrors the reminder's notification channel.
type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelSMS      Channel = "SMS"
	ChannelWhatsApp Channel = "WHATSAPP"
)

func (c Channel) valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp:
		return true
	}
	return false
}

// Notification aggregate root.
type Notification struct {
	id           string
	userID       string
	reminderID   string
	clientID     string
	channel      Channel
	message      string
	status       Status
	sentAt       time.Time
	errorMessage string
	version      int
	isNew        bool
	createdAt    time.Time
	updatedAt    time.Time

	events []shared.DomainEvent
}

// NewNotification creates a PENDING notification and records the
// notification.created event.
func NewNotification(userID, reminderID, clientID string, channel Channel, message string) (*Notification, error) {
	if userID == "" {
		return nil, NewInvalidNotificationError("user_id", "owning user is required")
	}
	if reminderID == "" {
		return nil, NewInvalidNotificationError("reminder_id", "reminder id is required")
	}
	if clientID == "" {
		return nil, NewInvalidNotificationError("client_id", "client id is required")
	}
	if !channel.valid() {
		return nil, NewInvalidNotificationError("notification_type", "unknown notification channel: "+string(channel))
	}

	now := time.Now()
	n := &Notification{
		id:         uuid.New().String(),
		userID:     userID,
		reminderID: reminderID,
		clientID:   clientID,
		channel:    channel,
		message:    message,
		status:     StatusPending,
		version:    0,
		isNew:      true,
		createdAt:  now,
		updatedAt:  now,
		events:     make([]shared.DomainEvent, 0),
	}
	n.events = append(n.events, NewNotificationCreatedEvent(n))
	return n, nil
}

// MarkSent transitions PENDING -> SENT.
func (n *Notification) MarkSent() error {
	if n.status != StatusPending {
		return NewInvalidStatusTransitionError(n.id, n.status, StatusSent)
	}
	n.status = StatusSent
	n.sentAt = time.Now()
	n.updatedAt = n.sentAt
	n.events = append(n.events, NewNotificationSentEvent(n))
	return nil
}

// MarkFailed transitions PENDING -> FAILED, keeping the failure reason.
func (n *Notification) MarkFailed(errorMessage string) error {
	if n.status != StatusPending {
		return NewInvalidStatusTransitionError(n.id, n.status, StatusFailed)
	}
	n.status = StatusFailed
	n.errorMessage = errorMessage
	n.updatedAt = time.Now()
	n.events = append(n.events, NewNotificationFailedEvent(n))
	return nil
}

// Cancel transitions PENDING -> CANCELLED.
func (n *Notification) Cancel() error {
	if n.status != StatusPending {
		return NewInvalidStatusTransitionError(n.id, n.status, StatusCancelled)
	}
	n.status = StatusCancelled
	n.updatedAt = time.Now()
	n.events = append(n.events, NewNotificationCancelledEvent(n))
	return nil
}

func (n *Notification) ID() string               { return n.id }
func (n *Notification) UserID() string           { return n.userID }
func (n *Notification) ReminderID() string       { return n.reminderID }
func (n *Notification) ClientID() string         { return n.clientID }
func (n *Notification) Channel() Channel         { return n.channel }
func (n *Notification) Message() string          { return n.message }
func (n *Notification) Status() Status           { return n.status }
func (n *Notification) SentAt() time.Time        { return n.sentAt }
func (n *Notification) ErrorMessage() string     { return n.errorMessage }
func (n *Notification) Version() int             { return n.version }
func (n *Notification) CreatedAt() time.Time     { return n.createdAt }
func (n *Notification) UpdatedAt() time.Time     { return n.updatedAt }
func (n *Notification) IsNew() bool              { return n.isNew }
func (n *Notification) ClearNewFlag()            { n.isNew = false }
func (n *Notification) IncrementVersionForSave() { n.version++ }

// PullEvents returns the recorded events and clears the list.
func (n *Notification) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(n.events))
	copy(events, n.events)
	n.events = make([]shared.DomainEvent, 0)
	return events
}

// ReconstructionDTO rebuilds the aggregate from persistence.
// Repository use only.
type ReconstructionDTO struct {
	ID           string
	UserID       string
	ReminderID   string
	ClientID     string
	Channel      string
	Message      string
	Status       string
	SentAt       time.Time
	ErrorMessage string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Notification {
	return &Notification{
		id:           dto.ID,
		userID:       dto.UserID,
		reminderID:   dto.ReminderID,
		clientID:     dto.ClientID,
		channel:      Channel(dto.Channel),
		message:      dto.Message,
		status:       Status(dto.Status),
		sentAt:       dto.SentAt,
		errorMessage: dto.ErrorMessage,
		version:      dto.Version,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
		events:       []shared.DomainEvent{},
	}
}

var _ shared.AggregateRoot = (*Notification)(nil)
