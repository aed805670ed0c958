package reminder

import "remindly/domain/shared"

type ReminderCreatedEvent struct {
	shared.BaseEvent
	title        string
	reminderType ReminderType
	channel      NotificationChannel
}

func NewReminderCreatedEvent(r *Reminder) *ReminderCreatedEvent {
	return &ReminderCreatedEvent{
		BaseEvent:    shared.NewBaseEvent(r.ID(), r.UserID()),
		title:        r.Title(),
		reminderType: r.ReminderType(),
		channel:      r.NotificationChannel(),
	}
}

func (e *ReminderCreatedEvent) EventName() string { return "reminder.created" }

func (e *ReminderCreatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"reminder_id":       e.GetAggregateID(),
		"user_id":           e.UserID(),
		"title":             e.title,
		"reminder_type":     string(e.reminderType),
		"notification_type": string(e.channel),
	}
}

type ReminderUpdatedEvent struct {
	shared.BaseEvent
	title         string
	changedFields []string
}

func NewReminderUpdatedEvent(r *Reminder, changedFields []string) *ReminderUpdatedEvent {
	return &ReminderUpdatedEvent{
		BaseEvent:     shared.NewBaseEvent(r.ID(), r.UserID()),
		title:         r.Title(),
		changedFields: changedFields,
	}
}

func (e *ReminderUpdatedEvent) EventName() string       { return "reminder.updated" }
func (e *ReminderUpdatedEvent) ChangedFields() []string { return e.changedFields }

func (e *ReminderUpdatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"reminder_id":    e.GetAggregateID(),
		"user_id":        e.UserID(),
		"title":          e.title,
		"changed_fields": e.changedFields,
	}
}

type ReminderDeletedEvent struct {
	shared.BaseEvent
	title string
}

func NewReminderDeletedEvent(r *Reminder) *ReminderDeletedEvent {
	return &ReminderDeletedEvent{
		BaseEvent: shared.NewBaseEvent(r.ID(), r.UserID()),
		title:     r.Title(),
	}
}

func (e *ReminderDeletedEvent) EventName() string { return "reminder.deleted" }

func (e *ReminderDeletedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"reminder_id": e.GetAggregateID(),
		"user_id":     e.UserID(),
		"title":       e.title,
	}
}
