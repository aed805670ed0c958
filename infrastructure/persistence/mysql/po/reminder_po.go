package po

import (
	"time"

	"remindly/domain/reminder"
)

// ReminderPO maps the Reminder aggregate. The recipient list lives in
// the reminder_recipients join table and is loaded by the repository.
type ReminderPO struct {
	ID                   string `gorm:"primaryKey;size:64"`
	UserID               string `gorm:"size:64;index;not null"`
	Title                string `gorm:"size:255;not null"`
	Description          string `gorm:"type:text"`
	ReminderType         string `gorm:"size:20;not null"`
	NotificationType     string `gorm:"size:20;not null"`
	EmailConfigurationID *string `gorm:"size:64;index"`
	IsRecurring          bool   `gorm:"default:false;not null"`
	RecurrencePattern    string `gorm:"size:100"`
	ReminderDate         time.Time `gorm:"index;not null"`
	IsActive             bool   `gorm:"default:true;not null"`
	Version              int    `gorm:"default:0;not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ReminderPO) TableName() string {
	return "reminders"
}

// ReminderRecipientPO is one reminder-to-client link. Position keeps
// the recipient order stable across loads.
type ReminderRecipientPO struct {
	ReminderID string `gorm:"primaryKey;size:64"`
	ClientID   string `gorm:"primaryKey;size:64;index"`
	Position   int    `gorm:"not null"`
	CreatedAt  time.Time
}

func (ReminderRecipientPO) TableName() string {
	return "reminder_recipients"
}

func FromReminderDomain(r *reminder.Reminder) *ReminderPO {
	return &ReminderPO{
		ID:                   r.ID(),
		UserID:               r.UserID(),
		Title:                r.Title(),
		Description:          r.Description(),
		ReminderType:         string(r.ReminderType()),
		NotificationType:     string(r.NotificationChannel()),
		EmailConfigurationID: nullableString(r.EmailConfigurationID()),
		IsRecurring:          r.IsRecurring(),
		RecurrencePattern:    r.RecurrencePattern(),
		ReminderDate:         r.ReminderDate(),
		IsActive:             r.IsActive(),
		Version:              r.Version(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
	}
}

func (po *ReminderPO) ToDomain(recipientClientIDs []string) *reminder.Reminder {
	return reminder.RebuildFromDTO(reminder.ReconstructionDTO{
		ID:                   po.ID,
		UserID:               po.UserID,
		Title:                po.Title,
		Description:          po.Description,
		ReminderType:         po.ReminderType,
		NotificationChannel:  po.NotificationType,
		EmailConfigurationID: stringValue(po.EmailConfigurationID),
		IsRecurring:          po.IsRecurring,
		RecurrencePattern:    po.RecurrencePattern,
		ReminderDate:         po.ReminderDate,
		IsActive:             po.IsActive,
		RecipientClientIDs:   recipientClientIDs,
		Version:              po.Version,
		CreatedAt:            po.CreatedAt,
		UpdatedAt:            po.UpdatedAt,
	})
}
