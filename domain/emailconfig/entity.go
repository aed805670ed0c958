/*
Package emailconfig holds the EmailConfiguration aggregate: a named set
of SMTP settings a user sends reminder emails through. A user may have
many configurations; at most one of them is the default. Configuration
names and from-addresses are unique per owning user.
*/
package emailconfig

import (
	"regexp"
	"strings"
	"time"

	"remindly/domain/shared"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailConfiguration aggregate root.
type EmailConfiguration struct {
	id                string
	userID            string
	configurationName string
	smtpHost          string
	smtpPort          int
	smtpUser          string
	smtpPassword      string
	emailFrom         string
	isDefault         bool
	isActive          bool
	version           int
	isNew             bool
	createdAt         time.Time
	updatedAt         time.Time

	events []shared.DomainEvent
}

// CreateParams collects the required settings for a new configuration.
type CreateParams struct {
	UserID            string
	ConfigurationName string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	EmailFrom         string
}

// NewEmailConfiguration validates the settings, creates the aggregate
// and records the email_configuration.created event.
func NewEmailConfiguration(params CreateParams) (*EmailConfiguration, error) {
	if params.UserID == "" {
		return nil, NewInvalidConfigurationError("user_id", "owning user is required")
	}
	if strings.TrimSpace(params.ConfigurationName) == "" {
		return nil, NewInvalidConfigurationError("configuration_name", "configuration name cannot be empty")
	}
	if params.SMTPHost == "" {
		return nil, NewInvalidConfigurationError("smtp_host", "SMTP host cannot be empty")
	}
	if params.SMTPPort <= 0 || params.SMTPPort > 65535 {
		return nil, NewInvalidConfigurationError("smtp_port", "SMTP port must be between 1 and 65535")
	}
	if params.SMTPUser == "" {
		return nil, NewInvalidConfigurationError("smtp_user", "SMTP user cannot be empty")
	}
	if len(params.SMTPPassword) < 8 {
		return nil, NewInvalidConfigurationError("smtp_password", "SMTP password must be at least 8 characters")
	}
	if !emailPattern.MatchString(params.EmailFrom) {
		return nil, NewInvalidConfigurationError("email_from", "invalid sender address: "+params.EmailFrom)
	}

	now := time.Now()
	cfg := &EmailConfiguration{
		id:                uuid.New().String(),
		userID:            params.UserID,
		configurationName: strings.TrimSpace(params.ConfigurationName),
		smtpHost:          params.SMTPHost,
		smtpPort:          params.SMTPPort,
		smtpUser:          params.SMTPUser,
		smtpPassword:      params.SMTPPassword,
		emailFrom:         params.EmailFrom,
		isDefault:         false,
		isActive:          true,
		version:           0,
		isNew:             true,
		createdAt:         now,
		updatedAt:         now,
		events:            make([]shared.DomainEvent, 0),
	}
	cfg.events = append(cfg.events, NewEmailConfigurationCreatedEvent(cfg))
	return cfg, nil
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	ConfigurationName *string
	SMTPHost          *string
	SMTPPort          *int
	SMTPUser          *string
	SMTPPassword      *string
	EmailFrom         *string
	IsActive          *bool
}

// Update applies the change set and records an .updated event naming
// the changed fields. The password never appears in event payloads.
func (c *EmailConfiguration) Update(params UpdateParams) error {
	changed := make([]string, 0, 4)

	if params.ConfigurationName != nil {
		if strings.TrimSpace(*params.ConfigurationName) == "" {
			return NewInvalidConfigurationError("configuration_name", "configuration name cannot be empty")
		}
		c.configurationName = strings.TrimSpace(*params.ConfigurationName)
		changed = append(changed, "configuration_name")
	}
	if params.SMTPHost != nil {
		if *params.SMTPHost == "" {
			return NewInvalidConfigurationError("smtp_host", "SMTP host cannot be empty")
		}
		c.smtpHost = *params.SMTPHost
		changed = append(changed, "smtp_host")
	}
	if params.SMTPPort != nil {
		if *params.SMTPPort <= 0 || *params.SMTPPort > 65535 {
			return NewInvalidConfigurationError("smtp_port", "SMTP port must be between 1 and 65535")
		}
		c.smtpPort = *params.SMTPPort
		changed = append(changed, "smtp_port")
	}
	if params.SMTPUser != nil {
		if *params.SMTPUser == "" {
			return NewInvalidConfigurationError("smtp_user", "SMTP user cannot be empty")
		}
		c.smtpUser = *params.SMTPUser
		changed = append(changed, "smtp_user")
	}
	if params.SMTPPassword != nil {
		if len(*params.SMTPPassword) < 8 {
			return NewInvalidConfigurationError("smtp_password", "SMTP password must be at least 8 characters")
		}
		c.smtpPassword = *params.SMTPPassword
		changed = append(changed, "smtp_password")
	}
	if params.EmailFrom != nil {
		if !emailPattern.MatchString(*params.EmailFrom) {
			return NewInvalidConfigurationError("email_from", "invalid sender address: "+*params.EmailFrom)
		}
		c.emailFrom = *params.EmailFrom
		changed = append(changed, "email_from")
	}
	if params.IsActive != nil {
		c.isActive = *params.IsActive
		changed = append(changed, "is_active")
	}

	if len(changed) == 0 {
		return nil
	}

	c.updatedAt = time.Now()
	c.events = append(c.events, NewEmailConfigurationUpdatedEvent(c, changed))
	return nil
}

// MarkDefault flags this configuration as the user's default and
// records the .set_default event. The service clears the previous
// default inside the same transaction.
func (c *EmailConfiguration) MarkDefault() {
	if c.isDefault {
		return
	}
	c.isDefault = true
	c.updatedAt = time.Now()
	c.events = append(c.events, NewEmailConfigurationSetDefaultEvent(c))
}

// ClearDefault removes the default flag without recording an event;
// the .set_default event on the new default describes the transition.
func (c *EmailConfiguration) ClearDefault() {
	if !c.isDefault {
		return
	}
	c.isDefault = false
	c.updatedAt = time.Now()
}

func (c *EmailConfiguration) ID() string                 { return c.id }
func (c *EmailConfiguration) UserID() string             { return c.userID }
func (c *EmailConfiguration) ConfigurationName() string  { return c.configurationName }
func (c *EmailConfiguration) SMTPHost() string           { return c.smtpHost }
func (c *EmailConfiguration) SMTPPort() int              { return c.smtpPort }
func (c *EmailConfiguration) SMTPUser() string           { return c.smtpUser }
func (c *EmailConfiguration) SMTPPassword() string       { return c.smtpPassword }
func (c *EmailConfiguration) EmailFrom() string          { return c.emailFrom }
func (c *EmailConfiguration) IsDefault() bool            { return c.isDefault }
func (c *EmailConfiguration) IsActive() bool             { return c.isActive }
func (c *EmailConfiguration) Version() int               { return c.version }
func (c *EmailConfiguration) CreatedAt() time.Time       { return c.createdAt }
func (c *EmailConfiguration) UpdatedAt() time.Time       { return c.updatedAt }
func (c *EmailConfiguration) IsNew() bool                { return c.isNew }
func (c *EmailConfiguration) ClearNewFlag()              { c.isNew = false }
func (c *EmailConfiguration) IncrementVersionForSave()   { c.version++ }

// PullEvents returns the recorded events and clears the list.
func (c *EmailConfiguration) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(c.events))
	copy(events, c.events)
	c.events = make([]shared.DomainEvent, 0)
	return events
}

// ReconstructionDTO rebuilds the aggregate from persistence.
// Repository use only.
type ReconstructionDTO struct {
	ID                string
	UserID            string
	ConfigurationName string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	EmailFrom         string
	IsDefault         bool
	IsActive          bool
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *EmailConfiguration {
	return &EmailConfiguration{
		id:                dto.ID,
		userID:            dto.UserID,
		configurationName: dto.ConfigurationName,
		smtpHost:          dto.SMTPHost,
		smtpPort:          dto.SMTPPort,
		smtpUser:          dto.SMTPUser,
		smtpPassword:      dto.SMTPPassword,
		emailFrom:         dto.EmailFrom,
		isDefault:         dto.IsDefault,
		isActive:          dto.IsActive,
		version:           dto.Version,
		createdAt:         dto.CreatedAt,
		updatedAt:         dto.UpdatedAt,
		events:            []shared.DomainEvent{},
	}
}

var _ shared.AggregateRoot = (*EmailConfiguration)(nil)
