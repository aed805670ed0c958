package mocks

import (
	"context"
	"sync"

	"remindly/domain/emailconfig"
)

// MockEmailConfigurationRepository keeps configuration snapshots in
// memory with per-owner name and from-address uniqueness.
type MockEmailConfigurationRepository struct {
	mu      sync.RWMutex
	configs map[string]emailconfig.ReconstructionDTO
}

func NewMockEmailConfigurationRepository() *MockEmailConfigurationRepository {
	return &MockEmailConfigurationRepository{
		configs: make(map[string]emailconfig.ReconstructionDTO),
	}
}

func snapshotEmailConfiguration(c *emailconfig.EmailConfiguration) emailconfig.ReconstructionDTO {
	return emailconfig.ReconstructionDTO{
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

func (r *MockEmailConfigurationRepository) Save(ctx context.Context, c *emailconfig.EmailConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.configs {
		if id == c.ID() || existing.UserID != c.UserID() {
			continue
		}
		if existing.ConfigurationName == c.ConfigurationName() {
			return emailconfig.NewEmailConfigurationAlreadyExistsError("configuration_name", c.ConfigurationName())
		}
		if existing.EmailFrom == c.EmailFrom() {
			return emailconfig.NewEmailConfigurationAlreadyExistsError("email_from", c.EmailFrom())
		}
	}

	if c.IsNew() {
		r.configs[c.ID()] = snapshotEmailConfiguration(c)
	} else {
		existing, ok := r.configs[c.ID()]
		if !ok {
			return emailconfig.NewEmailConfigurationNotFoundError(c.ID())
		}
		if existing.Version != c.Version() {
			return emailconfig.NewConcurrentModificationError(c.ID())
		}
		snapshot := snapshotEmailConfiguration(c)
		snapshot.Version = existing.Version + 1
		r.configs[c.ID()] = snapshot
		c.IncrementVersionForSave()
	}
	c.ClearNewFlag()
	return nil
}

func (r *MockEmailConfigurationRepository) FindByID(ctx context.Context, id string) (*emailconfig.EmailConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.configs[id]
	if !ok {
		return nil, emailconfig.NewEmailConfigurationNotFoundError(id)
	}
	return emailconfig.RebuildFromDTO(dto), nil
}

func (r *MockEmailConfigurationRepository) FindByName(ctx context.Context, userID, configurationName string) (*emailconfig.EmailConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.configs {
		if dto.UserID == userID && dto.ConfigurationName == configurationName {
			return emailconfig.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *MockEmailConfigurationRepository) FindByEmailFrom(ctx context.Context, userID, emailFrom string) (*emailconfig.EmailConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.configs {
		if dto.UserID == userID && dto.EmailFrom == emailFrom {
			return emailconfig.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *MockEmailConfigurationRepository) FindDefault(ctx context.Context, userID string) (*emailconfig.EmailConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.configs {
		if dto.UserID == userID && dto.IsDefault {
			return emailconfig.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *MockEmailConfigurationRepository) FindByUserID(ctx context.Context, userID string, filter emailconfig.ListFilter) ([]*emailconfig.EmailConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*emailconfig.EmailConfiguration
	for _, dto := range r.configs {
		if dto.UserID != userID {
			continue
		}
		if filter.ActiveOnly && !dto.IsActive {
			continue
		}
		matched = append(matched, emailconfig.RebuildFromDTO(dto))
	}

	return paginate(matched, filter.Skip, filter.Limit), nil
}

func (r *MockEmailConfigurationRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[id]; !ok {
		return emailconfig.NewEmailConfigurationNotFoundError(id)
	}
	delete(r.configs, id)
	return nil
}

var _ emailconfig.Repository = (*MockEmailConfigurationRepository)(nil)
