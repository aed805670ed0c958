/*
Package reminder holds the Reminder aggregate: a scheduled prompt that,
when it fires, produces notifications for its recipient clients. The
recipient list is part of the aggregate; firing and delivery are not
handled here.
*/
package reminder

import (
	"strings"
	"time"

	"remindly/domain/client"
	"remindly/domain/shared"

	"github.com/google/uuid"
)

// ReminderType categorizes what the reminder is about.
type ReminderType string

const (
	TypePayment      ReminderType = "PAYMENT"
	TypeDeadline     ReminderType = "DEADLINE"
	TypeNotification ReminderType = "NOTIFICATION"
)

func (t ReminderType) valid() bool {
	switch t {
	case TypePayment, TypeDeadline, TypeNotification:
		return true
	}
	return false
}

// NotificationChannel is the delivery channel for the reminder.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "EMAIL"
	ChannelSMS      NotificationChannel = "SMS"
	ChannelWhatsApp NotificationChannel = "WHATSAPP"
)

func (c NotificationChannel) valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp:
		return true
	}
	return false
}

// Reminder aggregate root.
type Reminder struct {
	id                   string
	userID               string
	title                string
	description          string
	reminderType         ReminderType
	notificationChannel  NotificationChannel
	emailConfigurationID string
	isRecurring          bool
	recurrencePattern    string
	reminderDate         time.Time
	isActive             bool
	recipientClientIDs   []string
	version              int
	isNew                bool
	createdAt            time.Time
	updatedAt            time.Time

	events []shared.DomainEvent
}

// CreateParams collects the settings for a new reminder.
type CreateParams struct {
	UserID               string
	Title                string
	Description          string
	ReminderType         ReminderType
	NotificationChannel  NotificationChannel
	EmailConfigurationID string
	IsRecurring          bool
	RecurrencePattern    string
	ReminderDate         time.Time
}

// NewReminder validates and creates the aggregate, recording the
// reminder.created event. An email configuration is required for the
// EMAIL channel only.
func NewReminder(params CreateParams) (*Reminder, error) {
	if params.UserID == "" {
		return nil, NewInvalidReminderError("user_id", "owning user is required")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, NewInvalidReminderError("title", "title cannot be empty")
	}
	if !params.ReminderType.valid() {
		return nil, NewInvalidReminderError("reminder_type", "unknown reminder type: "+string(params.ReminderType))
	}
	if !params.NotificationChannel.valid() {
		return nil, NewInvalidReminderError("notification_type", "unknown notification channel: "+string(params.NotificationChannel))
	}
	if params.NotificationChannel == ChannelEmail && params.EmailConfigurationID == "" {
		return nil, NewInvalidReminderError("email_configuration_id", "email reminders need an email configuration")
	}
	if params.ReminderDate.IsZero() {
		return nil, NewInvalidReminderError("reminder_date", "reminder date is required")
	}
	if params.IsRecurring && strings.TrimSpace(params.RecurrencePattern) == "" {
		return nil, NewInvalidReminderError("recurrence_pattern", "recurring reminders need a recurrence pattern")
	}

	now := time.Now()
	r := &Reminder{
		id:                   uuid.New().String(),
		userID:               params.UserID,
		title:                strings.TrimSpace(params.Title),
		description:          params.Description,
		reminderType:         params.ReminderType,
		notificationChannel:  params.NotificationChannel,
		emailConfigurationID: params.EmailConfigurationID,
		isRecurring:          params.IsRecurring,
		recurrencePattern:    params.RecurrencePattern,
		reminderDate:         params.ReminderDate,
		isActive:             true,
		recipientClientIDs:   make([]string, 0),
		version:              0,
		isNew:                true,
		createdAt:            now,
		updatedAt:            now,
		events:               make([]shared.DomainEvent, 0),
	}
	r.events = append(r.events, NewReminderCreatedEvent(r))
	return r, nil
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Title                *string
	Description          *string
	ReminderType         *ReminderType
	NotificationChannel  *NotificationChannel
	EmailConfigurationID *string
	IsRecurring          *bool
	RecurrencePattern    *string
	ReminderDate         *time.Time
	IsActive             *bool
}

// Update applies the change set and records a reminder.updated event.
func (r *Reminder) Update(params UpdateParams) error {
	changed := make([]string, 0, 4)

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return NewInvalidReminderError("title", "title cannot be empty")
		}
		r.title = strings.TrimSpace(*params.Title)
		changed = append(changed, "title")
	}
	if params.Description != nil {
		r.description = *params.Description
		changed = append(changed, "description")
	}
	if params.ReminderType != nil {
		if !params.ReminderType.valid() {
			return NewInvalidReminderError("reminder_type", "unknown reminder type: "+string(*params.ReminderType))
		}
		r.reminderType = *params.ReminderType
		changed = append(changed, "reminder_type")
	}
	if params.NotificationChannel != nil {
		if !params.NotificationChannel.valid() {
			return NewInvalidReminderError("notification_type", "unknown notification channel: "+string(*params.NotificationChannel))
		}
		r.notificationChannel = *params.NotificationChannel
		changed = append(changed, "notification_type")
	}
	if params.EmailConfigurationID != nil {
		r.emailConfigurationID = *params.EmailConfigurationID
		changed = append(changed, "email_configuration_id")
	}
	if params.IsRecurring != nil {
		r.isRecurring = *params.IsRecurring
		changed = append(changed, "is_recurring")
	}
	if params.RecurrencePattern != nil {
		r.recurrencePattern = *params.RecurrencePattern
		changed = append(changed, "recurrence_pattern")
	}
	if params.ReminderDate != nil {
		if params.ReminderDate.IsZero() {
			return NewInvalidReminderError("reminder_date", "reminder date is required")
		}
		r.reminderDate = *params.ReminderDate
		changed = append(changed, "reminder_date")
	}
	if params.IsActive != nil {
		r.isActive = *params.IsActive
		changed = append(changed, "is_active")
	}

	if len(changed) == 0 {
		return nil
	}
	if r.notificationChannel == ChannelEmail && r.emailConfigurationID == "" {
		return NewInvalidReminderError("email_configuration_id", "email reminders need an email configuration")
	}

	r.updatedAt = time.Now()
	r.events = append(r.events, NewReminderUpdatedEvent(r, changed))
	return nil
}

// AddRecipient links a client to this reminder and records the
// client.added_to_reminder event. Adding twice is a conflict.
func (r *Reminder) AddRecipient(clientID string) error {
	if clientID == "" {
		return NewInvalidReminderError("client_id", "client id is required")
	}
	for _, id := range r.recipientClientIDs {
		if id == clientID {
			return NewRecipientAlreadyAddedError(r.id, clientID)
		}
	}
	r.recipientClientIDs = append(r.recipientClientIDs, clientID)
	r.updatedAt = time.Now()
	r.events = append(r.events, client.NewClientAddedToReminderEvent(clientID, r.userID, r.id))
	return nil
}

// RemoveRecipient unlinks a client and records the
// client.removed_from_reminder event.
func (r *Reminder) RemoveRecipient(clientID string) error {
	for i, id := range r.recipientClientIDs {
		if id == clientID {
			r.recipientClientIDs = append(r.recipientClientIDs[:i], r.recipientClientIDs[i+1:]...)
			r.updatedAt = time.Now()
			r.events = append(r.events, client.NewClientRemovedFromReminderEvent(clientID, r.userID, r.id))
			return nil
		}
	}
	return NewRecipientNotFoundError(r.id, clientID)
}

// HasRecipient reports whether the client is already linked.
func (r *Reminder) HasRecipient(clientID string) bool {
	for _, id := range r.recipientClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

func (r *Reminder) ID() string                               { return r.id }
func (r *Reminder) UserID() string                           { return r.userID }
func (r *Reminder) Title() string                            { return r.title }
func (r *Reminder) Description() string                      { return r.description }
func (r *Reminder) ReminderType() ReminderType               { return r.reminderType }
func (r *Reminder) NotificationChannel() NotificationChannel { return r.notificationChannel }
func (r *Reminder) EmailConfigurationID() string             { return r.emailConfigurationID }
func (r *Reminder) IsRecurring() bool                        { return r.isRecurring }
func (r *Reminder) RecurrencePattern() string                { return r.recurrencePattern }
func (r *Reminder) ReminderDate() time.Time                  { return r.reminderDate }
func (r *Reminder) IsActive() bool                           { return r.isActive }
func (r *Reminder) Version() int                             { return r.version }
func (r *Reminder) CreatedAt() time.Time                     { return r.createdAt }
func (r *Reminder) UpdatedAt() time.Time                     { return r.updatedAt }
func (r *Reminder) IsNew() bool                              { return r.isNew }
func (r *Reminder) ClearNewFlag()                            { r.isNew = false }
func (r *Reminder) IncrementVersionForSave()                 { r.version++ }

// RecipientClientIDs returns a copy of the linked client ids.
func (r *Reminder) RecipientClientIDs() []string {
	ids := make([]string, len(r.recipientClientIDs))
	copy(ids, r.recipientClientIDs)
	return ids
}

// PullEvents returns the recorded events and clears the list.
func (r *Reminder) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(r.events))
	copy(events, r.events)
	r.events = make([]shared.DomainEvent, 0)
	return events
}

// ReconstructionDTO rebuilds the aggregate from persistence.
// Repository use only.
type ReconstructionDTO struct {
	ID                   string
	UserID               string
	Title                string
	Description          string
	ReminderType         string
	NotificationChannel  string
	EmailConfigurationID string
	IsRecurring          bool
	RecurrencePattern    string
	ReminderDate         time.Time
	IsActive             bool
	RecipientClientIDs   []string
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Reminder {
	recipients := make([]string, len(dto.RecipientClientIDs))
	copy(recipients, dto.RecipientClientIDs)
	return &Reminder{
		id:                   dto.ID,
		userID:               dto.UserID,
		title:                dto.Title,
		description:          dto.Description,
		reminderType:         ReminderType(dto.ReminderType),
		notificationChannel:  NotificationChannel(dto.NotificationChannel),
		emailConfigurationID: dto.EmailConfigurationID,
		isRecurring:          dto.IsRecurring,
		recurrencePattern:    dto.RecurrencePattern,
		reminderDate:         dto.ReminderDate,
		isActive:             dto.IsActive,
		recipientClientIDs:   recipients,
		version:              dto.Version,
		createdAt:            dto.CreatedAt,
		updatedAt:            dto.UpdatedAt,
		events:               []shared.DomainEvent{},
	}
}

var _ shared.AggregateRoot = (*Reminder)(nil)
