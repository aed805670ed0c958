package client

import "remindly/domain/shared"

// ClientCreatedEvent is recorded when a new client is created.
type ClientCreatedEvent struct {
	shared.BaseEvent
	name        string
	email       string
	phoneNumber string
	isActive    bool
}

func NewClientCreatedEvent(c *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseEvent:   shared.NewBaseEvent(c.ID(), c.UserID()),
		name:        c.Name(),
		email:       c.Email(),
		phoneNumber: c.PhoneNumber(),
		isActive:    c.IsActive(),
	}
}

func (e *ClientCreatedEvent) EventName() string { return "client.created" }
func (e *ClientCreatedEvent) ClientName() string { return e.name }
func (e *ClientCreatedEvent) Email() string      { return e.email }

func (e *ClientCreatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_id":    e.GetAggregateID(),
		"user_id":      e.UserID(),
		"name":         e.name,
		"email":        e.email,
		"phone_number": e.phoneNumber,
		"is_active":    e.isActive,
	}
}

// ClientUpdatedEvent is recorded on every successful partial update and
// names the fields that changed.
type ClientUpdatedEvent struct {
	shared.BaseEvent
	name          string
	email         string
	changedFields []string
}

func NewClientUpdatedEvent(c *Client, changedFields []string) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseEvent:     shared.NewBaseEvent(c.ID(), c.UserID()),
		name:          c.Name(),
		email:         c.Email(),
		changedFields: changedFields,
	}
}

func (e *ClientUpdatedEvent) EventName() string       { return "client.updated" }
func (e *ClientUpdatedEvent) ChangedFields() []string { return e.changedFields }

func (e *ClientUpdatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_id":      e.GetAggregateID(),
		"user_id":        e.UserID(),
		"name":           e.name,
		"email":          e.email,
		"changed_fields": e.changedFields,
	}
}

// ClientDeletedEvent is queued by the service when a client is removed.
type ClientDeletedEvent struct {
	shared.BaseEvent
	name string
}

func NewClientDeletedEvent(c *Client) *ClientDeletedEvent {
	return &ClientDeletedEvent{
		BaseEvent: shared.NewBaseEvent(c.ID(), c.UserID()),
		name:      c.Name(),
	}
}

func (e *ClientDeletedEvent) EventName() string { return "client.deleted" }

func (e *ClientDeletedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_id": e.GetAggregateID(),
		"user_id":   e.UserID(),
		"name":      e.name,
	}
}

// ClientAddedToReminderEvent is recorded when a client becomes a
// recipient of a reminder.
type ClientAddedToReminderEvent struct {
	shared.BaseEvent
	reminderID string
}

func NewClientAddedToReminderEvent(clientID, userID, reminderID string) *ClientAddedToReminderEvent {
	return &ClientAddedToReminderEvent{
		BaseEvent:  shared.NewBaseEvent(clientID, userID),
		reminderID: reminderID,
	}
}

func (e *ClientAddedToReminderEvent) EventName() string  { return "client.added_to_reminder" }
func (e *ClientAddedToReminderEvent) ReminderID() string { return e.reminderID }

func (e *ClientAddedToReminderEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_id":   e.GetAggregateID(),
		"user_id":     e.UserID(),
		"reminder_id": e.reminderID,
	}
}

// ClientRemovedFromReminderEvent mirrors ClientAddedToReminderEvent.
type ClientRemovedFromReminderEvent struct {
	shared.BaseEvent
	reminderID string
}

func NewClientRemovedFromReminderEvent(clientID, userID, reminderID string) *ClientRemovedFromReminderEvent {
	return &ClientRemovedFromReminderEvent{
		BaseEvent:  shared.NewBaseEvent(clientID, userID),
		reminderID: reminderID,
	}
}

func (e *ClientRemovedFromReminderEvent) EventName() string  { return "client.removed_from_reminder" }
func (e *ClientRemovedFromReminderEvent) ReminderID() string { return e.reminderID }

func (e *ClientRemovedFromReminderEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"client_id":   e.GetAggregateID(),
		"user_id":     e.UserID(),
		"reminder_id": e.reminderID,
	}
}
