package po

import (
	"time"

	"remindly/domain/client"
)

// ClientPO maps the Client aggregate. Email and phone number are
// nullable so the per-owner unique indexes ignore absent values.
type ClientPO struct {
	ID            string  `gorm:"primaryKey;size:64"`
	UserID        string  `gorm:"size:64;index;not null;uniqueIndex:uniq_clients_owner_email;uniqueIndex:uniq_clients_owner_phone"`
	Name          string  `gorm:"size:255;not null"`
	Email         *string `gorm:"size:255;uniqueIndex:uniq_clients_owner_email"`
	PhoneNumber   *string `gorm:"size:32;uniqueIndex:uniq_clients_owner_phone"`
	Address       string  `gorm:"size:500"`
	Notes         string  `gorm:"type:text"`
	ContactMethod string  `gorm:"size:20;default:EMAIL;not null"`
	IsActive      bool    `gorm:"default:true;not null"`
	Version       int     `gorm:"default:0;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ClientPO) TableName() string {
	return "clients"
}

func FromClientDomain(c *client.Client) *ClientPO {
	return &ClientPO{
		ID:            c.ID(),
		UserID:        c.UserID(),
		Name:          c.Name(),
		Email:         nullableString(c.Email()),
		PhoneNumber:   nullableString(c.PhoneNumber()),
		Address:       c.Address(),
		Notes:         c.Notes(),
		ContactMethod: string(c.ContactMethod()),
		IsActive:      c.IsActive(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func (po *ClientPO) ToDomain() *client.Client {
	return client.RebuildFromDTO(client.ReconstructionDTO{
		ID:            po.ID,
		UserID:        po.UserID,
		Name:          po.Name,
		Email:         stringValue(po.Email),
		PhoneNumber:   stringValue(po.PhoneNumber),
		Address:       po.Address,
		Notes:         po.Notes,
		ContactMethod: po.ContactMethod,
		IsActive:      po.IsActive,
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	})
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
