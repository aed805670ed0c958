package mysql

import (
	"context"
	"errors"

	"remindly/domain/notification"
	"remindly/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	baseRepository
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{baseRepository{db: db}}
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, n)
	})
}

func (r *NotificationRepository) saveWithTx(tx *gorm.DB, n *notification.Notification) error {
	notificationPO := po.FromNotificationDomain(n)

	if n.IsNew() {
		if err := tx.Create(notificationPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := n.Version()

		result := tx.Model(&po.NotificationPO{}).
			Where("id = ? AND version = ?", n.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"status":        notificationPO.Status,
				"sent_at":       notificationPO.SentAt,
				"error_message": notificationPO.ErrorMessage,
				"message":       notificationPO.Message,
				"version":       expectedVersion + 1,
				"updated_at":    notificationPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.NotificationPO{}).Where("id = ?", n.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return notification.NewNotificationNotFoundError(n.ID())
			}
			return notification.NewConcurrentModificationError(n.ID())
		}

		n.IncrementVersionForSave()
	}
	n.ClearNewFlag()
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var notificationPO po.NotificationPO
	result := r.getDB(ctx).First(&notificationPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notification.NewNotificationNotFoundError(id)
		}
		return nil, result.Error
	}

	return notificationPO.ToDomain(), nil
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID string, filter notification.ListFilter) ([]*notification.Notification, error) {
	db := r.getDB(ctx).Where("user_id = ?", userID)

	if filter.ReminderID != "" {
		db = db.Where("reminder_id = ?", filter.ReminderID)
	}
	if filter.ClientID != "" {
		db = db.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}
	if filter.Skip > 0 {
		db = db.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var notificationPOs []po.NotificationPO
	if err := db.Order("created_at DESC").Find(&notificationPOs).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(notificationPOs))
	for i := range notificationPOs {
		notifications[i] = notificationPOs[i].ToDomain()
	}
	return notifications, nil
}

func (r *NotificationRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.NotificationPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notification.NewNotificationNotFoundError(id)
	}
	return nil
}

var _ notification.Repository = (*NotificationRepository)(nil)
