package shared

import "context"

// UnitOfWork scopes one atomic mutation and its pending events. It is
// an explicit object passed through the call chain, never a global
// map keyed by transaction id: the slot of pending events lives inside
// the unit of work and dies with it.
//
// Lifecycle: idle -> executing (inside Execute) -> resolved. Register*
// and QueueEvent are only legal while executing; afterwards they fail
// with ErrUnknownTransaction. On a clean return Execute commits, then
// drains the slot in FIFO order to the dispatcher; on error it rolls
// back and discards the slot without emitting anything.
type UnitOfWork interface {
	// Execute runs fn inside a transaction boundary. Calling Execute on
	// a unit of work that is already executing joins the ambient
	// transaction instead of opening a nested one.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	// RegisterNew records a freshly created aggregate; its events are
	// pulled into the slot at commit time.
	RegisterNew(aggregate AggregateRoot) error

	// RegisterDirty records a modified aggregate for event collection.
	RegisterDirty(aggregate AggregateRoot) error

	// RegisterRemoved records a deleted aggregate for event collection.
	RegisterRemoved(aggregate AggregateRoot) error

	// QueueEvent appends a single event to the pending slot directly.
	// Registered aggregates and queued events feed the same slot.
	QueueEvent(event DomainEvent) error
}

// UnitOfWorkFactory builds one unit of work per service operation.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists pending events inside the transaction so a
// broker publisher can pick them up after commit.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}

type uowCtxKey struct{}

// ContextWithUnitOfWork attaches the executing unit of work to the
// context so nested service calls can reuse the outer handle.
func ContextWithUnitOfWork(ctx context.Context, uow UnitOfWork) context.Context {
	return context.WithValue(ctx, uowCtxKey{}, uow)
}

// UnitOfWorkFromContext returns the ambient unit of work, or nil.
func UnitOfWorkFromContext(ctx context.Context) UnitOfWork {
	if uow, ok := ctx.Value(uowCtxKey{}).(UnitOfWork); ok {
		return uow
	}
	return nil
}

// ResolveUnitOfWork prefers the ambient unit of work over a fresh one,
// implementing the reuse-the-outer-handle policy for nested calls.
func ResolveUnitOfWork(ctx context.Context, factory UnitOfWorkFactory) UnitOfWork {
	if uow := UnitOfWorkFromContext(ctx); uow != nil {
		return uow
	}
	return factory.New()
}
