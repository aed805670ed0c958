package mysql

import (
	"context"
	"errors"

	"remindly/domain/client"
	"remindly/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ClientRepository struct {
	baseRepository
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{baseRepository{db: db}}
}

func (r *ClientRepository) Save(ctx context.Context, c *client.Client) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, c)
	})
}

func (r *ClientRepository) saveWithTx(tx *gorm.DB, c *client.Client) error {
	clientPO := po.FromClientDomain(c)

	if c.IsNew() {
		if err := tx.Create(clientPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return client.NewClientAlreadyExistsError("email", c.Email())
			}
			return err
		}
	} else {
		expectedVersion := c.Version()

		// Optimistic lock: the update must match the version the
		// aggregate was loaded with, or someone else got there first.
		result := tx.Model(&po.ClientPO{}).
			Where("id = ? AND version = ?", c.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"name":           clientPO.Name,
				"email":          clientPO.Email,
				"phone_number":   clientPO.PhoneNumber,
				"address":        clientPO.Address,
				"notes":          clientPO.Notes,
				"contact_method": clientPO.ContactMethod,
				"is_active":      clientPO.IsActive,
				"version":        expectedVersion + 1,
				"updated_at":     clientPO.UpdatedAt,
			})

		if result.Error != nil {
			if isDuplicateKeyError(result.Error) {
				return client.NewClientAlreadyExistsError("email", c.Email())
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ClientPO{}).Where("id = ?", c.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return client.NewClientNotFoundError(c.ID())
			}
			return client.NewConcurrentModificationError(c.ID())
		}

		c.IncrementVersionForSave()
	}
	c.ClearNewFlag()
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var clientPO po.ClientPO
	result := r.getDB(ctx).First(&clientPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, client.NewClientNotFoundError(id)
		}
		return nil, result.Error
	}

	return clientPO.ToDomain(), nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, userID, email string) (*client.Client, error) {
	row, err := findOnePO[po.ClientPO](r.getDB(ctx), "user_id = ? AND email = ?", userID, email)
	if err != nil || row == nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ClientRepository) FindByPhoneNumber(ctx context.Context, userID, phoneNumber string) (*client.Client, error) {
	row, err := findOnePO[po.ClientPO](r.getDB(ctx), "user_id = ? AND phone_number = ?", userID, phoneNumber)
	if err != nil || row == nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ClientRepository) FindByUserID(ctx context.Context, userID string, filter client.ListFilter) ([]*client.Client, error) {
	db := r.getDB(ctx).Where("user_id = ?", userID)

	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if filter.ContactMethod != "" {
		db = db.Where("contact_method = ?", string(filter.ContactMethod))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if filter.Skip > 0 {
		db = db.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var clientPOs []po.ClientPO
	if err := db.Order("created_at DESC").Find(&clientPOs).Error; err != nil {
		return nil, err
	}

	clients := make([]*client.Client, len(clientPOs))
	for i := range clientPOs {
		clients[i] = clientPOs[i].ToDomain()
	}
	return clients, nil
}

func (r *ClientRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ClientPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return client.NewClientNotFoundError(id)
	}
	return nil
}

var _ client.Repository = (*ClientRepository)(nil)
