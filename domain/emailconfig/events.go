package emailconfig

import "remindly/domain/shared"

// Event payloads deliberately exclude the SMTP password.

type EmailConfigurationCreatedEvent struct {
	shared.BaseEvent
	configurationName string
	smtpHost          string
	smtpPort          int
	emailFrom         string
}

func NewEmailConfigurationCreatedEvent(c *EmailConfiguration) *EmailConfigurationCreatedEvent {
	return &EmailConfigurationCreatedEvent{
		BaseEvent:         shared.NewBaseEvent(c.ID(), c.UserID()),
		configurationName: c.ConfigurationName(),
		smtpHost:          c.SMTPHost(),
		smtpPort:          c.SMTPPort(),
		emailFrom:         c.EmailFrom(),
	}
}

func (e *EmailConfigurationCreatedEvent) EventName() string { return "email_configuration.created" }

func (e *EmailConfigurationCreatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"email_configuration_id": e.GetAggregateID(),
		"user_id":                e.UserID(),
		"configuration_name":     e.configurationName,
		"smtp_host":              e.smtpHost,
		"smtp_port":              e.smtpPort,
		"email_from":             e.emailFrom,
	}
}

type EmailConfigurationUpdatedEvent struct {
	shared.BaseEvent
	configurationName string
	changedFields     []string
}

func NewEmailConfigurationUpdatedEvent(c *EmailConfiguration, changedFields []string) *EmailConfigurationUpdatedEvent {
	return &EmailConfigurationUpdatedEvent{
		BaseEvent:         shared.NewBaseEvent(c.ID(), c.UserID()),
		configurationName: c.ConfigurationName(),
		changedFields:     changedFields,
	}
}

func (e *EmailConfigurationUpdatedEvent) EventName() string { return "email_configuration.updated" }
func (e *EmailConfigurationUpdatedEvent) ChangedFields() []string { return e.changedFields }

func (e *EmailConfigurationUpdatedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"email_configuration_id": e.GetAggregateID(),
		"user_id":                e.UserID(),
		"configuration_name":     e.configurationName,
		"changed_fields":         e.changedFields,
	}
}

type EmailConfigurationDeletedEvent struct {
	shared.BaseEvent
	configurationName string
}

func NewEmailConfigurationDeletedEvent(c *EmailConfiguration) *EmailConfigurationDeletedEvent {
	return &EmailConfigurationDeletedEvent{
		BaseEvent:         shared.NewBaseEvent(c.ID(), c.UserID()),
		configurationName: c.ConfigurationName(),
	}
}

func (e *EmailConfigurationDeletedEvent) EventName() string { return "email_configuration.deleted" }

func (e *EmailConfigurationDeletedEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"email_configuration_id": e.GetAggregateID(),
		"user_id":                e.UserID(),
		"configuration_name":     e.configurationName,
	}
}

type EmailConfigurationSetDefaultEvent struct {
	shared.BaseEvent
	configurationName string
}

func NewEmailConfigurationSetDefaultEvent(c *EmailConfiguration) *EmailConfigurationSetDefaultEvent {
	return &EmailConfigurationSetDefaultEvent{
		BaseEvent:         shared.NewBaseEvent(c.ID(), c.UserID()),
		configurationName: c.ConfigurationName(),
	}
}

func (e *EmailConfigurationSetDefaultEvent) EventName() string {
	return "email_configuration.set_default"
}

func (e *EmailConfigurationSetDefaultEvent) EventPayload() map[string]interface{} {
	return map[string]interface{}{
		"email_configuration_id": e.GetAggregateID(),
		"user_id":                e.UserID(),
		"configuration_name":     e.configurationName,
		"is_default":             true,
	}
}
