package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindly/domain/client"
	"remindly/domain/shared"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.NewClient(client.CreateParams{UserID: "user-1", Name: "Acme"})
	require.NoError(t, err)
	return c
}

func TestUnitOfWork_EventsEmittedOnlyAfterCommit(t *testing.T) {
	bus := shared.NewEventBus()
	var seen []string
	require.NoError(t, bus.Subscribe("client.created", shared.NewFuncHandler("spy", func(e shared.DomainEvent) error {
		seen = append(seen, e.EventName())
		return nil
	})))

	uow := NewMockUnitOfWork(bus)
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		c := newClient(t)
		require.NoError(t, uow.RegisterNew(c))
		assert.Empty(t, seen, "no emission before commit")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"client.created"}, seen)
}

func TestUnitOfWork_RollbackDiscardsSlot(t *testing.T) {
	bus := shared.NewEventBus()
	uow := NewMockUnitOfWork(bus)

	boom := errors.New("boom")
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		require.NoError(t, uow.RegisterNew(newClient(t)))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, uow.CommittedEvents())
	assert.Empty(t, bus.GetPublishHistory())
}

func TestUnitOfWork_ResolvedHandleRefusesReuse(t *testing.T) {
	uow := NewMockUnitOfWork(shared.NewEventBus())
	require.NoError(t, uow.Execute(context.Background(), func(ctx context.Context) error { return nil }))

	err := uow.Execute(context.Background(), func(ctx context.Context) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnknownTransaction)
}

func TestUnitOfWork_RegisterOutsideExecuteFails(t *testing.T) {
	uow := NewMockUnitOfWork(shared.NewEventBus())

	err := uow.RegisterNew(newClient(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnknownTransaction)

	c := newClient(t)
	err = uow.QueueEvent(client.NewClientDeletedEvent(c))
	assert.ErrorIs(t, err, shared.ErrUnknownTransaction)
}

func TestUnitOfWork_HandlerCallbackDuringDispatchFailsFast(t *testing.T) {
	bus := shared.NewEventBus()
	uow := NewMockUnitOfWork(bus)

	var callbackErr error
	require.NoError(t, bus.Subscribe("client.created", shared.NewFuncHandler("reentrant", func(e shared.DomainEvent) error {
		callbackErr = uow.QueueEvent(client.NewClientDeletedEvent(newClient(t)))
		return nil
	})))

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return uow.RegisterNew(newClient(t))
	})
	require.NoError(t, err)

	// dispatch runs on a resolved unit of work, so the callback's queue
	// attempt is rejected instead of being silently dropped
	require.Error(t, callbackErr)
	assert.ErrorIs(t, callbackErr, shared.ErrUnknownTransaction)
	assert.Len(t, uow.CommittedEvents(), 1)
}

func TestUnitOfWork_SlotOrderingAggregatesThenQueued(t *testing.T) {
	uow := NewMockUnitOfWork(shared.NewEventBus())

	first := newClient(t)
	second := newClient(t)
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		require.NoError(t, uow.RegisterNew(first))
		require.NoError(t, uow.QueueEvent(client.NewClientDeletedEvent(second)))
		require.NoError(t, uow.RegisterNew(second))
		return nil
	})
	require.NoError(t, err)

	events := uow.CommittedEvents()
	require.Len(t, events, 3)
	// registration order first, queued events after
	assert.Equal(t, "client.created", events[0].EventName())
	assert.Equal(t, first.ID(), events[0].GetAggregateID())
	assert.Equal(t, "client.created", events[1].EventName())
	assert.Equal(t, second.ID(), events[1].GetAggregateID())
	assert.Equal(t, "client.deleted", events[2].EventName())
}

func TestUnitOfWork_NestedExecuteJoinsAmbientTransaction(t *testing.T) {
	uow := NewMockUnitOfWork(shared.NewEventBus())

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		ambient := shared.UnitOfWorkFromContext(ctx)
		require.Same(t, shared.UnitOfWork(uow), ambient)

		// a nested Execute on the same handle must not open a second
		// transaction or resolve the outer one
		return ambient.Execute(ctx, func(ctx context.Context) error {
			return uow.RegisterNew(newClient(t))
		})
	})
	require.NoError(t, err)
	assert.Len(t, uow.CommittedEvents(), 1)
}

func TestUnitOfWork_AtMostOnceUnderRetries(t *testing.T) {
	bus := shared.NewEventBus()
	var delivered int
	require.NoError(t, bus.Subscribe("client.created", shared.NewFuncHandler("counter", func(shared.DomainEvent) error {
		delivered++
		return nil
	})))

	uow := NewMockUnitOfWork(bus)
	outbox := NewMockOutboxRepository()
	uow.SetOutbox(outbox)
	// two commit failures with a retryable error, third attempt succeeds
	uow.FailNextCommits(2, client.NewConcurrentModificationError("client-1"))

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return uow.RegisterNew(newClient(t))
	})
	require.NoError(t, err)

	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, delivered, "exactly one emission despite retries")
	assert.Len(t, uow.CommittedEvents(), 1)
}

func TestUnitOfWork_NonRetryableErrorFailsFast(t *testing.T) {
	uow := NewMockUnitOfWork(shared.NewEventBus())
	uow.FailNextCommits(1, client.NewClientAlreadyExistsError("email", "a@b.test"))

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, uow.CommittedEvents())
}

func TestUnitOfWork_OutboxWrittenPerAttemptButEmittedOnce(t *testing.T) {
	uow := NewMockUnitOfWork(shared.NewEventBus())
	outbox := NewMockOutboxRepository()
	uow.SetOutbox(outbox)

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return uow.RegisterNew(newClient(t))
	})
	require.NoError(t, err)

	saved := outbox.SavedEvents()
	require.Len(t, saved, 1)
	assert.Equal(t, "client.created", saved[0].EventName())
}

func TestUnitOfWork_OutboxFailureRollsBack(t *testing.T) {
	bus := shared.NewEventBus()
	uow := NewMockUnitOfWork(bus)
	outbox := NewMockOutboxRepository()
	outbox.SaveErr = errors.New("outbox table unavailable")
	uow.SetOutbox(outbox)

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return uow.RegisterNew(newClient(t))
	})
	require.Error(t, err)
	assert.Empty(t, uow.CommittedEvents())
	assert.Empty(t, bus.GetPublishHistory())
}
