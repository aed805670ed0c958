package mysql

import (
	"context"
	"errors"

	"remindly/domain/reminder"
	"remindly/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ReminderRepository struct {
	baseRepository
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{baseRepository{db: db}}
}

// Save persists the aggregate and rewrites its recipient links. Both
// happen in the same transaction so the link table never drifts from
// the aggregate state.
func (r *ReminderRepository) Save(ctx context.Context, rem *reminder.Reminder) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, rem)
	})
}

func (r *ReminderRepository) saveWithTx(tx *gorm.DB, rem *reminder.Reminder) error {
	reminderPO := po.FromReminderDomain(rem)

	if rem.IsNew() {
		if err := tx.Create(reminderPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := rem.Version()

		result := tx.Model(&po.ReminderPO{}).
			Where("id = ? AND version = ?", rem.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"title":                  reminderPO.Title,
				"description":            reminderPO.Description,
				"reminder_type":          reminderPO.ReminderType,
				"notification_type":      reminderPO.NotificationType,
				"email_configuration_id": reminderPO.EmailConfigurationID,
				"is_recurring":           reminderPO.IsRecurring,
				"recurrence_pattern":     reminderPO.RecurrencePattern,
				"reminder_date":          reminderPO.ReminderDate,
				"is_active":              reminderPO.IsActive,
				"version":                expectedVersion + 1,
				"updated_at":             reminderPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ReminderPO{}).Where("id = ?", rem.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return reminder.NewReminderNotFoundError(rem.ID())
			}
			return reminder.NewConcurrentModificationError(rem.ID())
		}

		rem.IncrementVersionForSave()
	}

	if err := r.saveRecipients(tx, rem); err != nil {
		return err
	}

	rem.ClearNewFlag()
	return nil
}

func (r *ReminderRepository) saveRecipients(tx *gorm.DB, rem *reminder.Reminder) error {
	if err := tx.Delete(&po.ReminderRecipientPO{}, "reminder_id = ?", rem.ID()).Error; err != nil {
		return err
	}
	ids := rem.RecipientClientIDs()
	if len(ids) == 0 {
		return nil
	}
	links := make([]po.ReminderRecipientPO, len(ids))
	for i, clientID := range ids {
		links[i] = po.ReminderRecipientPO{
			ReminderID: rem.ID(),
			ClientID:   clientID,
			Position:   i,
		}
	}
	return tx.Create(&links).Error
}

func (r *ReminderRepository) loadRecipients(db *gorm.DB, reminderID string) ([]string, error) {
	var links []po.ReminderRecipientPO
	if err := db.Where("reminder_id = ?", reminderID).Order("position ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.ClientID
	}
	return ids, nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id string) (*reminder.Reminder, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	db := r.getDB(ctx)

	var reminderPO po.ReminderPO
	result := db.First(&reminderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, reminder.NewReminderNotFoundError(id)
		}
		return nil, result.Error
	}

	recipients, err := r.loadRecipients(db, id)
	if err != nil {
		return nil, err
	}

	return reminderPO.ToDomain(recipients), nil
}

func (r *ReminderRepository) FindByUserID(ctx context.Context, userID string, filter reminder.ListFilter) ([]*reminder.Reminder, error) {
	db := r.getDB(ctx)
	query := db.Where("user_id = ?", userID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Type != "" {
		query = query.Where("reminder_type = ?", string(filter.Type))
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var reminderPOs []po.ReminderPO
	if err := query.Order("reminder_date ASC").Find(&reminderPOs).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(db, reminderPOs)
}

func (r *ReminderRepository) FindByEmailConfigurationID(ctx context.Context, emailConfigurationID string) ([]*reminder.Reminder, error) {
	db := r.getDB(ctx)

	var reminderPOs []po.ReminderPO
	if err := db.Where("email_configuration_id = ?", emailConfigurationID).Find(&reminderPOs).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(db, reminderPOs)
}

func (r *ReminderRepository) toDomainList(db *gorm.DB, reminderPOs []po.ReminderPO) ([]*reminder.Reminder, error) {
	reminders := make([]*reminder.Reminder, len(reminderPOs))
	for i := range reminderPOs {
		recipients, err := r.loadRecipients(db, reminderPOs[i].ID)
		if err != nil {
			return nil, err
		}
		reminders[i] = reminderPOs[i].ToDomain(recipients)
	}
	return reminders, nil
}

func (r *ReminderRepository) Remove(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Delete(&po.ReminderRecipientPO{}, "reminder_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&po.ReminderPO{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return reminder.NewReminderNotFoundError(id)
		}
		return nil
	})
}

var _ reminder.Repository = (*ReminderRepository)(nil)
