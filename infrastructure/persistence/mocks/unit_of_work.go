// Package mocks provides in-memory implementations of the persistence
// contracts. They honor the same semantics as the MySQL versions
// (optimistic locking, per-owner uniqueness, event emission only after
// commit) so the application services can be tested without a database.
package mocks

import (
	"context"
	"sync"

	"remindly/domain/shared"
	"remindly/infrastructure/persistence/retry"
)

type mockUowState int

const (
	mockStateIdle mockUowState = iota
	mockStateExecuting
	mockStateResolved
)

// MockUnitOfWork mirrors the transactional unit of work without a
// database: fn either "commits" (events dispatched, in FIFO order) or
// "rolls back" (slot discarded). Commit failures can be injected to
// exercise the retry path.
type MockUnitOfWork struct {
	publisher shared.DomainEventPublisher
	outbox    shared.OutboxRepository

	retryConfig retry.Config

	mu         sync.Mutex
	state      mockUowState
	aggregates []shared.AggregateRoot
	queued     []shared.DomainEvent

	commitFailures int
	commitErr      error

	committed []shared.DomainEvent
}

func NewMockUnitOfWork(publisher shared.DomainEventPublisher) *MockUnitOfWork {
	cfg := retry.DefaultConfig
	cfg.InitialDelay = 0
	cfg.MaxDelay = 0
	return &MockUnitOfWork{
		publisher:   publisher,
		retryConfig: cfg,
	}
}

// SetOutbox also records committed events through an outbox mock.
func (u *MockUnitOfWork) SetOutbox(outbox shared.OutboxRepository) {
	u.outbox = outbox
}

func (u *MockUnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// FailNextCommits makes the next n commit attempts fail with err.
func (u *MockUnitOfWork) FailNextCommits(n int, err error) {
	u.commitFailures = n
	u.commitErr = err
}

// CommittedEvents returns the events emitted across all attempts.
func (u *MockUnitOfWork) CommittedEvents() []shared.DomainEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	events := make([]shared.DomainEvent, len(u.committed))
	copy(events, u.committed)
	return events
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	switch u.state {
	case mockStateExecuting:
		u.mu.Unlock()
		return fn(ctx)
	case mockStateResolved:
		u.mu.Unlock()
		return shared.NewUnknownTransactionError("unit of work already resolved")
	}
	u.state = mockStateExecuting
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.state = mockStateResolved
		u.mu.Unlock()
	}()

	var committed []shared.DomainEvent

	executeOnce := func(ctx context.Context) error {
		u.mu.Lock()
		u.aggregates = nil
		u.queued = nil
		u.mu.Unlock()
		committed = nil

		txCtx := shared.ContextWithUnitOfWork(ctx, u)
		if err := fn(txCtx); err != nil {
			return err
		}

		pending := u.collectPending()
		if u.outbox != nil {
			for _, event := range pending {
				if err := u.outbox.SaveEvent(txCtx, event); err != nil {
					return err
				}
			}
		}

		if u.commitFailures > 0 {
			u.commitFailures--
			return u.commitErr
		}

		committed = pending
		return nil
	}

	if err := retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce); err != nil {
		return err
	}

	// Resolve before dispatching, matching the MySQL unit of work: a
	// handler calling back in fails instead of queueing dropped events.
	u.mu.Lock()
	u.state = mockStateResolved
	u.committed = append(u.committed, committed...)
	u.mu.Unlock()

	if u.publisher != nil {
		for _, event := range committed {
			_ = u.publisher.Publish(event)
		}
	}
	return nil
}

func (u *MockUnitOfWork) collectPending() []shared.DomainEvent {
	u.mu.Lock()
	defer u.mu.Unlock()

	var pending []shared.DomainEvent
	for _, agg := range u.aggregates {
		pending = append(pending, agg.PullEvents()...)
	}
	pending = append(pending, u.queued...)
	u.queued = nil
	return pending
}

func (u *MockUnitOfWork) register(aggregate shared.AggregateRoot) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != mockStateExecuting {
		return shared.NewUnknownTransactionError("no transaction in progress")
	}
	u.aggregates = append(u.aggregates, aggregate)
	return nil
}

func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) error {
	return u.register(aggregate)
}

func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) error {
	return u.register(aggregate)
}

func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) error {
	return u.register(aggregate)
}

func (u *MockUnitOfWork) QueueEvent(event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != mockStateExecuting {
		return shared.NewUnknownTransactionError("no transaction in progress")
	}
	u.queued = append(u.queued, event)
	return nil
}

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)

// MockUnitOfWorkFactory hands out fresh mock units of work and keeps
// them so tests can inspect committed events afterwards.
type MockUnitOfWorkFactory struct {
	publisher shared.DomainEventPublisher
	outbox    shared.OutboxRepository

	mu      sync.Mutex
	Created []*MockUnitOfWork
}

func NewMockUnitOfWorkFactory(publisher shared.DomainEventPublisher) *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{publisher: publisher}
}

func (f *MockUnitOfWorkFactory) SetOutbox(outbox shared.OutboxRepository) {
	f.outbox = outbox
}

func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewMockUnitOfWork(f.publisher)
	if f.outbox != nil {
		uow.SetOutbox(f.outbox)
	}
	f.mu.Lock()
	f.Created = append(f.Created, uow)
	f.mu.Unlock()
	return uow
}

// Last returns the most recently created unit of work, or nil.
func (f *MockUnitOfWorkFactory) Last() *MockUnitOfWork {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Created) == 0 {
		return nil
	}
	return f.Created[len(f.Created)-1]
}

var _ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)
