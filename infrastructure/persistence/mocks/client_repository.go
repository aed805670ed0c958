package mocks

import (
	"context"
	"strings"
	"sync"

	"remindly/domain/client"
)

// MockClientRepository keeps client snapshots in memory, enforcing the
// same per-owner uniqueness and optimistic-lock rules as the MySQL
// repository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[string]client.ReconstructionDTO
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]client.ReconstructionDTO),
	}
}

func snapshotClient(c *client.Client) client.ReconstructionDTO {
	return client.ReconstructionDTO{
		ID:            c.ID(),
		UserID:        c.UserID(),
		Name:          c.Name(),
		Email:         c.Email(),
		PhoneNumber:   c.PhoneNumber(),
		Address:       c.Address(),
		Notes:         c.Notes(),
		ContactMethod: string(c.ContactMethod()),
		IsActive:      c.IsActive(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func (r *MockClientRepository) Save(ctx context.Context, c *client.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.clients {
		if id == c.ID() || existing.UserID != c.UserID() {
			continue
		}
		if c.Email() != "" && existing.Email == c.Email() {
			return client.NewClientAlreadyExistsError("email", c.Email())
		}
		if c.PhoneNumber() != "" && existing.PhoneNumber == c.PhoneNumber() {
			return client.NewClientAlreadyExistsError("phone_number", c.PhoneNumber())
		}
	}

	if c.IsNew() {
		r.clients[c.ID()] = snapshotClient(c)
	} else {
		existing, ok := r.clients[c.ID()]
		if !ok {
			return client.NewClientNotFoundError(c.ID())
		}
		if existing.Version != c.Version() {
			return client.NewConcurrentModificationError(c.ID())
		}
		snapshot := snapshotClient(c)
		snapshot.Version = existing.Version + 1
		r.clients[c.ID()] = snapshot
		c.IncrementVersionForSave()
	}
	c.ClearNewFlag()
	return nil
}

func (r *MockClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.clients[id]
	if !ok {
		return nil, client.NewClientNotFoundError(id)
	}
	return client.RebuildFromDTO(dto), nil
}

func (r *MockClientRepository) FindByEmail(ctx context.Context, userID, email string) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.clients {
		if dto.UserID == userID && dto.Email == email && email != "" {
			return client.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *MockClientRepository) FindByPhoneNumber(ctx context.Context, userID, phoneNumber string) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.clients {
		if dto.UserID == userID && dto.PhoneNumber == phoneNumber && phoneNumber != "" {
			return client.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *MockClientRepository) FindByUserID(ctx context.Context, userID string, filter client.ListFilter) ([]*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*client.Client
	for _, dto := range r.clients {
		if dto.UserID != userID {
			continue
		}
		if filter.ActiveOnly && !dto.IsActive {
			continue
		}
		if filter.ContactMethod != "" && dto.ContactMethod != string(filter.ContactMethod) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(dto.Name), needle) &&
				!strings.Contains(strings.ToLower(dto.Email), needle) {
				continue
			}
		}
		matched = append(matched, client.RebuildFromDTO(dto))
	}

	return paginate(matched, filter.Skip, filter.Limit), nil
}

func (r *MockClientRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return client.NewClientNotFoundError(id)
	}
	delete(r.clients, id)
	return nil
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip > 0 {
		if skip >= len(items) {
			return nil
		}
		items = items[skip:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var _ client.Repository = (*MockClientRepository)(nil)
