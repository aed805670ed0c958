package po

import (
	"time"

	"remindly/domain/emailconfig"
)

// EmailConfigurationPO maps the EmailConfiguration aggregate. Name and
// from-address are unique per owner.
type EmailConfigurationPO struct {
	ID                string `gorm:"primaryKey;size:64"`
	UserID            string `gorm:"size:64;index;not null;uniqueIndex:uniq_email_configs_owner_name;uniqueIndex:uniq_email_configs_owner_from"`
	ConfigurationName string `gorm:"size:255;not null;uniqueIndex:uniq_email_configs_owner_name"`
	SMTPHost          string `gorm:"column:smtp_host;size:255;not null"`
	SMTPPort          int    `gorm:"column:smtp_port;not null"`
	SMTPUser          string `gorm:"column:smtp_user;size:255;not null"`
	SMTPPassword      string `gorm:"column:smtp_password;size:255;not null"`
	EmailFrom         string `gorm:"size:255;not null;uniqueIndex:uniq_email_configs_owner_from"`
	IsDefault         bool   `gorm:"default:false;not null"`
	IsActive          bool   `gorm:"default:true;not null"`
	Version           int    `gorm:"default:0;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (EmailConfigurationPO) TableName() string {
	return "email_configurations"
}

func FromEmailConfigurationDomain(c *emailconfig.EmailConfiguration) *EmailConfigurationPO {
	return &EmailConfigurationPO{
		ID:                c.ID(),
		UserID:            c.UserID(),
		ConfigurationName: c.ConfigurationName(),
		SMTPHost:          c.SMTPHost(),
		SMTPPort:          c.SMTPPort(),
		SMTPUser:          c.SMTPUser(),
		SMTPPassword:      c.SMTPPassword(),
		EmailFrom:         c.EmailFrom(),
		IsDefault:         c.IsDefault(),
		IsActive:          c.IsActive(),
		Version:           c.Version(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}
}

func (po *EmailConfigurationPO) ToDomain() *emailconfig.EmailConfiguration {
	return emailconfig.RebuildFromDTO(emailconfig.ReconstructionDTO{
		ID:                po.ID,
		UserID:            po.UserID,
		ConfigurationName: po.ConfigurationName,
		SMTPHost:          po.SMTPHost,
		SMTPPort:          po.SMTPPort,
		SMTPUser:          po.SMTPUser,
		SMTPPassword:      po.SMTPPassword,
		EmailFrom:         po.EmailFrom,
		IsDefault:         po.IsDefault,
		IsActive:          po.IsActive,
		Version:           po.Version,
		CreatedAt:         po.CreatedAt,
		UpdatedAt:         po.UpdatedAt,
	})
}
