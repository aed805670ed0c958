package notification

import "remindly/domain/shared"

type NotificationCreatedEvent struct {
	shared.BaseEvent
	reminderID string
	clientID   string
	channel    Channel
}

func NewNotificationCreatedEvent(n *Notification) *NotificationCreatedEvent {
	return &NotificationCreatedEvent{
		BaseEvent:  shared.NewBaseEvent(n.ID(), n.UserID()),
		reminderID: n.ReminderID(),
		clientID:   n.ClientID(),
		channel:    n.Channel(),
	}
}

func (e *NotificationCreatedEvent) EventName() string { return "notification.created" }

func (e *NotificationCreatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"notification_id":   e.GetAggregateID(),
		"user_id":           e.UserID(),
		"reminder_id":       e.reminderID,
		"client_id":         e.clientID,
		"notification_type": string(e.channel),
	}
}

type NotificationSentEvent struct {
	shared.BaseEvent
	reminderID string
	clientID   string
}

func NewNotificationSentEvent(n *Notification) *NotificationSentEvent {
	return &NotificationSentEvent{
		BaseEvent:  shared.NewBaseEvent(n.ID(), n.UserID()),
		reminderID: n.ReminderID(),
		clientID:   n.ClientID(),
	}
}

func (e *NotificationSentEvent) EventName() string { return "notification.sent" }

func (e *NotificationSentEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"notification_id": e.GetAggregateID(),
		"user_id":         e.UserID(),
		"reminder_id":     e.reminderID,
		"client_id":       e.clientID,
	}
}

type NotificationFailedEvent struct {
	shared.BaseEvent
	reminderID   string
	clientID     string
	errorMessage string
}

func NewNotificationFailedEvent(n *Notification) *NotificationFailedEvent {
	return &NotificationFailedEvent{
		BaseEvent:    shared.NewBaseEvent(n.ID(), n.UserID()),
		reminderID:   n.ReminderID(),
		clientID:     n.ClientID(),
		errorMessage: n.ErrorMessage(),
	}
}

func (e *NotificationFailedEvent) EventName() string { return "notification.failed" }

func (e *NotificationFailedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"notification_id": e.GetAggregateID(),
		"user_id":         e.UserID(),
		"reminder_id":     e.reminderID,
		"client_id":       e.clientID,
		"error_message":   e.errorMessage,
	}
}

type NotificationCancelledEvent struct {
	shared.BaseEvent
	reminderID string
	clientID   string
}

func NewNotificationCancelledEvent(n *Notification) *NotificationCancelledEvent {
	return &NotificationCancelledEvent{
		BaseEvent:  shared.NewBaseEvent(n.ID(), n.UserID()),
		reminderID: n.ReminderID(),
		clientID:   n.ClientID(),
	}
}

func (e *NotificationCancelledEvent) EventName() string { return "notification.cancelled" }

func (e *NotificationCancelledEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"notification_id": e.GetAggregateID(),
		"user_id":         e.UserID(),
		"reminder_id":     e.reminderID,
		"client_id":       e.clientID,
	}
}
