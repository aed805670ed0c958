package mocks

import (
	"context"
	"sync"

	"remindly/domain/reminder"
)

// MockReminderRepository keeps reminder snapshots, recipient links
// included, in memory.
type MockReminderRepository struct {
	mu        sync.RWMutex
	reminders map[string]reminder.ReconstructionDTO
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		reminders: make(map[string]reminder.ReconstructionDTO),
	}
}

func snapshotReminder(rem *reminder.Reminder) reminder.ReconstructionDTO {
	return reminder.ReconstructionDTO{
		ID:                   rem.ID(),
		UserID:               rem.UserID(),
		Title:                rem.Title(),
		Description:          rem.Description(),
		ReminderType:         string(rem.ReminderType()),
		NotificationChannel:  string(rem.NotificationChannel()),
		EmailConfigurationID: rem.EmailConfigurationID(),
		IsRecurring:          rem.IsRecurring(),
		RecurrencePattern:    rem.RecurrencePattern(),
		ReminderDate:         rem.ReminderDate(),
		IsActive:             rem.IsActive(),
		RecipientClientIDs:   rem.RecipientClientIDs(),
		Version:              rem.Version(),
		CreatedAt:            rem.CreatedAt(),
		UpdatedAt:            rem.UpdatedAt(),
	}
}

func (r *MockReminderRepository) Save(ctx context.Context, rem *reminder.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rem.IsNew() {
		r.reminders[rem.ID()] = snapshotReminder(rem)
	} else {
		existing, ok := r.reminders[rem.ID()]
		if !ok {
			return reminder.NewReminderNotFoundError(rem.ID())
		}
		if existing.Version != rem.Version() {
			return reminder.NewConcurrentModificationError(rem.ID())
		}
		snapshot := snapshotReminder(rem)
		snapshot.Version = existing.Version + 1
		r.reminders[rem.ID()] = snapshot
		rem.IncrementVersionForSave()
	}
	rem.ClearNewFlag()
	return nil
}

func (r *MockReminderRepository) FindByID(ctx context.Context, id string) (*reminder.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.reminders[id]
	if !ok {
		return nil, reminder.NewReminderNotFoundError(id)
	}
	return reminder.RebuildFromDTO(dto), nil
}

func (r *MockReminderRepository) FindByUserID(ctx context.Context, userID string, filter reminder.ListFilter) ([]*reminder.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*reminder.Reminder
	for _, dto := range r.reminders {
		if dto.UserID != userID {
			continue
		}
		if filter.ActiveOnly && !dto.IsActive {
			continue
		}
		if filter.Type != "" && dto.ReminderType != string(filter.Type) {
			continue
		}
		matched = append(matched, reminder.RebuildFromDTO(dto))
	}

	return paginate(matched, filter.Skip, filter.Limit), nil
}

func (r *MockReminderRepository) FindByEmailConfigurationID(ctx context.Context, emailConfigurationID string) ([]*reminder.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*reminder.Reminder
	for _, dto := range r.reminders {
		if dto.EmailConfigurationID == emailConfigurationID {
			matched = append(matched, reminder.RebuildFromDTO(dto))
		}
	}
	return matched, nil
}

func (r *MockReminderRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reminders[id]; !ok {
		return reminder.NewReminderNotFoundError(id)
	}
	delete(r.reminders, id)
	return nil
}

var _ reminder.Repository = (*MockReminderRepository)(nil)
