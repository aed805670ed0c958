package mocks

import (
	"context"
	"sync"

	"remindly/domain/notification"
)

// MockNotificationRepository keeps notification snapshots in memory.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]notification.ReconstructionDTO
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]notification.ReconstructionDTO),
	}
}

func snapshotNotification(n *notification.Notification) notification.ReconstructionDTO {
	return notification.ReconstructionDTO{
		ID:           n.ID(),
		UserID:       n.UserID(),
		ReminderID:   n.ReminderID(),
		ClientID:     n.ClientID(),
		Channel:      string(n.Channel()),
		Message:      n.Message(),
		Status:       string(n.Status()),
		SentAt:       n.SentAt(),
		ErrorMessage: n.ErrorMessage(),
		Version:      n.Version(),
		CreatedAt:    n.CreatedAt(),
		UpdatedAt:    n.UpdatedAt(),
	}
}

func (r *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.IsNew() {
		r.notifications[n.ID()] = snapshotNotification(n)
	} else {
		existing, ok := r.notifications[n.ID()]
		if !ok {
			return notification.NewNotificationNotFoundError(n.ID())
		}
		if existing.Version != n.Version() {
			return notification.NewConcurrentModificationError(n.ID())
		}
		snapshot := snapshotNotification(n)
		snapshot.Version = existing.Version + 1
		r.notifications[n.ID()] = snapshot
		n.IncrementVersionForSave()
	}
	n.ClearNewFlag()
	return nil
}

func (r *MockNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.notifications[id]
	if !ok {
		return nil, notification.NewNotificationNotFoundError(id)
	}
	return notification.RebuildFromDTO(dto), nil
}

func (r *MockNotificationRepository) FindByUserID(ctx context.Context, userID string, filter notification.ListFilter) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*notification.Notification
	for _, dto := range r.notifications {
		if dto.UserID != userID {
			continue
		}
		if filter.ReminderID != "" && dto.ReminderID != filter.ReminderID {
			continue
		}
		if filter.ClientID != "" && dto.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && dto.Status != string(filter.Status) {
			continue
		}
		matched = append(matched, notification.RebuildFromDTO(dto))
	}

	return paginate(matched, filter.Skip, filter.Limit), nil
}

func (r *MockNotificationRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return notification.NewNotificationNotFoundError(id)
	}
	delete(r.notifications, id)
	return nil
}

var _ notification.Repository = (*MockNotificationRepository)(nil)
