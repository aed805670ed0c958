package mysql

import (
	"context"
	"errors"

	"remindly/domain/emailconfig"
	"remindly/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type EmailConfigurationRepository struct {
	baseRepository
}

func NewEmailConfigurationRepository(db *gorm.DB) *EmailConfigurationRepository {
	return &EmailConfigurationRepository{baseRepository{db: db}}
}

func (r *EmailConfigurationRepository) Save(ctx context.Context, c *emailconfig.EmailConfiguration) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, c)
	})
}

func (r *EmailConfigurationRepository) saveWithTx(tx *gorm.DB, c *emailconfig.EmailConfiguration) error {
	configPO := po.FromEmailConfigurationDomain(c)

	if c.IsNew() {
		if err := tx.Create(configPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return emailconfig.NewEmailConfigurationAlreadyExistsError("configuration_name", c.ConfigurationName())
			}
			return err
		}
	} else {
		expectedVersion := c.Version()

		result := tx.Model(&po.EmailConfigurationPO{}).
			Where("id = ? AND version = ?", c.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"configuration_name": configPO.ConfigurationName,
				"smtp_host":          configPO.SMTPHost,
				"smtp_port":          configPO.SMTPPort,
				"smtp_user":          configPO.SMTPUser,
				"smtp_password":      configPO.SMTPPassword,
				"email_from":         configPO.EmailFrom,
				"is_default":         configPO.IsDefault,
				"is_active":          configPO.IsActive,
				"version":            expectedVersion + 1,
				"updated_at":         configPO.UpdatedAt,
			})

		if result.Error != nil {
			if isDuplicateKeyError(result.Error) {
				return emailconfig.NewEmailConfigurationAlreadyExistsError("configuration_name", c.ConfigurationName())
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.EmailConfigurationPO{}).Where("id = ?", c.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return emailconfig.NewEmailConfigurationNotFoundError(c.ID())
			}
			return emailconfig.NewConcurrentModificationError(c.ID())
		}

		c.IncrementVersionForSave()
	}
	c.ClearNewFlag()
	return nil
}

func (r *EmailConfigurationRepository) FindByID(ctx context.Context, id string) (*emailconfig.EmailConfiguration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var configPO po.EmailConfigurationPO
	result := r.getDB(ctx).First(&configPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, emailconfig.NewEmailConfigurationNotFoundError(id)
		}
		return nil, result.Error
	}

	return configPO.ToDomain(), nil
}

func (r *EmailConfigurationRepository) FindByName(ctx context.Context, userID, configurationName string) (*emailconfig.EmailConfiguration, error) {
	row, err := findOnePO[po.EmailConfigurationPO](r.getDB(ctx), "user_id = ? AND configuration_name = ?", userID, configurationName)
	if err != nil || row == nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *EmailConfigurationRepository) FindByEmailFrom(ctx context.Context, userID, emailFrom string) (*emailconfig.EmailConfiguration, error) {
	row, err := findOnePO[po.EmailConfigurationPO](r.getDB(ctx), "user_id = ? AND email_from = ?", userID, emailFrom)
	if err != nil || row == nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *EmailConfigurationRepository) FindDefault(ctx context.Context, userID string) (*emailconfig.EmailConfiguration, error) {
	row, err := findOnePO[po.EmailConfigurationPO](r.getDB(ctx), "user_id = ? AND is_default = ?", userID, true)
	if err != nil || row == nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *EmailConfigurationRepository) FindByUserID(ctx context.Context, userID string, filter emailconfig.ListFilter) ([]*emailconfig.EmailConfiguration, error) {
	db := r.getDB(ctx).Where("user_id = ?", userID)

	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if filter.Skip > 0 {
		db = db.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var configPOs []po.EmailConfigurationPO
	if err := db.Order("created_at DESC").Find(&configPOs).Error; err != nil {
		return nil, err
	}

	configs := make([]*emailconfig.EmailConfiguration, len(configPOs))
	for i := range configPOs {
		configs[i] = configPOs[i].ToDomain()
	}
	return configs, nil
}

func (r *EmailConfigurationRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.EmailConfigurationPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return emailconfig.NewEmailConfigurationNotFoundError(id)
	}
	return nil
}

var _ emailconfig.Repository = (*EmailConfigurationRepository)(nil)
