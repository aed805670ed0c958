package mocks

import (
	"context"
	"sync"

	"remindly/domain/shared"
)

// MockOutboxRepository records saved events in memory.
type MockOutboxRepository struct {
	mu     sync.Mutex
	events []shared.DomainEvent

	SaveErr error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (r *MockOutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return nil
}

// SavedEvents returns a copy of everything saved so far.
func (r *MockOutboxRepository) SavedEvents() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]shared.DomainEvent, len(r.events))
	copy(events, r.events)
	return events
}

var _ shared.OutboxRepository = (*MockOutboxRepository)(nil)
