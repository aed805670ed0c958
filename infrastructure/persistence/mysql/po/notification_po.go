package po

import (
	"time"

	"remindly/domain/notification"
)

// NotificationPO maps the Notification aggregate.
type NotificationPO struct {
	ID               string     `gorm:"primaryKey;size:64"`
	UserID           string     `gorm:"size:64;index;not null"`
	ReminderID       string     `gorm:"size:64;index;not null"`
	ClientID         string     `gorm:"size:64;index;not null"`
	NotificationType string     `gorm:"size:20;not null"`
	Message          string     `gorm:"type:text"`
	Status           string     `gorm:"size:20;default:PENDING;not null;index"`
	SentAt           *time.Time `gorm:"index"`
	ErrorMessage     string     `gorm:"size:1000"`
	Version          int        `gorm:"default:0;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (NotificationPO) TableName() string {
	return "notifications"
}

func FromNotificationDomain(n *notification.Notification) *NotificationPO {
	var sentAt *time.Time
	if !n.SentAt().IsZero() {
		t := n.SentAt()
		sentAt = &t
	}
	return &NotificationPO{
		ID:               n.ID(),
		UserID:           n.UserID(),
		ReminderID:       n.ReminderID(),
		ClientID:         n.ClientID(),
		NotificationType: string(n.Channel()),
		Message:          n.Message(),
		Status:           string(n.Status()),
		SentAt:           sentAt,
		ErrorMessage:     n.ErrorMessage(),
		Version:          n.Version(),
		CreatedAt:        n.CreatedAt(),
		UpdatedAt:        n.UpdatedAt(),
	}
}

func (po *NotificationPO) ToDomain() *notification.Notification {
	var sentAt time.Time
	if po.SentAt != nil {
		sentAt = *po.SentAt
	}
	return notification.RebuildFromDTO(notification.ReconstructionDTO{
		ID:           po.ID,
		UserID:       po.UserID,
		ReminderID:   po.ReminderID,
		ClientID:     po.ClientID,
		Channel:      po.NotificationType,
		Message:      po.Message,
		Status:       po.Status,
		SentAt:       sentAt,
		ErrorMessage: po.ErrorMessage,
		Version:      po.Version,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	})
}
