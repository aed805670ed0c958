package mysql

import (
	"context"
	"fmt"
	"sync"

	"remindly/domain/shared"
	"remindly/infrastructure/persistence"
	"remindly/infrastructure/persistence/retry"
	"remindly/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uowState int

const (
	stateIdle uowState = iota
	stateExecuting
	stateResolved
)

// UnitOfWork scopes one atomic mutation over a GORM transaction.
//
// The pending-event slot (registered aggregates plus explicitly queued
// events) lives inside this object and is reset on every retry attempt,
// so a transaction that commits on its second attempt still emits each
// event exactly once. On commit the events are written to the outbox
// table inside the same transaction, then dispatched to the in-process
// publisher in FIFO order. On rollback the slot is discarded.
//
// Once Execute returns, the unit of work is resolved: any further
// Register* or QueueEvent call fails with ErrUnknownTransaction.
type UnitOfWork struct {
	db               *gorm.DB
	outboxRepository *OutboxRepository
	publisher        shared.DomainEventPublisher
	retryConfig      retry.Config

	mu         sync.Mutex
	state      uowState
	aggregates []shared.AggregateRoot
	queued     []shared.DomainEvent
}

// NewUnitOfWork creates an idle unit of work. publisher may be nil, in
// which case committed events are only persisted to the outbox.
func NewUnitOfWork(db *gorm.DB, publisher shared.DomainEventPublisher) *UnitOfWork {
	return &UnitOfWork{
		db:               db,
		outboxRepository: NewOutboxRepository(db),
		publisher:        publisher,
		retryConfig:      retry.DefaultConfig,
	}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs fn inside a database transaction.
//
// A reentrant call on a unit of work that is already executing joins
// the ambient transaction: fn runs directly against the caller's
// context, and commit stays with the outermost Execute. A call on a
// resolved unit of work fails with ErrUnknownTransaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	switch u.state {
	case stateExecuting:
		u.mu.Unlock()
		return fn(ctx)
	case stateResolved:
		u.mu.Unlock()
		return shared.NewUnknownTransactionError("unit of work already resolved")
	}
	u.state = stateExecuting
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.state = stateResolved
		u.mu.Unlock()
	}()

	var committed []shared.DomainEvent

	executeOnce := func(ctx context.Context) error {
		// Retries must not replay events from a failed attempt.
		u.mu.Lock()
		u.aggregates = nil
		u.queued = nil
		u.mu.Unlock()
		committed = nil

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)
		txCtx = shared.ContextWithUnitOfWork(txCtx, u)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		pending := u.collectPending()
		for _, event := range pending {
			if err := u.outboxRepository.SaveEvent(txCtx, event); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to save event to outbox: %w", err)
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		committed = pending
		return nil
	}

	if err := retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce); err != nil {
		return err
	}

	// Resolve before dispatching: an event handler that calls back into
	// this unit of work must fail with ErrUnknownTransaction instead of
	// queueing into a slot that is never drained again.
	u.mu.Lock()
	u.state = stateResolved
	u.mu.Unlock()

	u.dispatch(committed)
	return nil
}

// collectPending drains the slot: events recorded by registered
// aggregates in registration order, then explicitly queued events in
// queue order.
func (u *UnitOfWork) collectPending() []shared.DomainEvent {
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

// dispatch publishes committed events to the in-process bus. A failing
// handler is logged, never propagated: the mutation is already durable.
func (u *UnitOfWork) dispatch(events []shared.DomainEvent) {
	if u.publisher == nil {
		return
	}
	for _, event := range events {
		if err := u.publisher.Publish(event); err != nil {
			logger.Error("Failed to dispatch committed event",
				zap.String("event_name", event.EventName()),
				zap.String("event_id", event.EventID()),
				zap.Error(err),
			)
		}
	}
}

func (u *UnitOfWork) register(aggregate shared.AggregateRoot) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != stateExecuting {
		return shared.NewUnknownTransactionError("no transaction in progress")
	}
	u.aggregates = append(u.aggregates, aggregate)
	return nil
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) error {
	return u.register(aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) error {
	return u.register(aggregate)
}

func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) error {
	return u.register(aggregate)
}

// QueueEvent appends one event directly to the pending slot.
func (u *UnitOfWork) QueueEvent(event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != stateExecuting {
		return shared.NewUnknownTransactionError("no transaction in progress")
	}
	u.queued = append(u.queued, event)
	return nil
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
