package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	BaseEvent
	name string
}

func newTestEvent(name, aggregateID string) *testEvent {
	return &testEvent{
		BaseEvent: NewBaseEvent(aggregateID, "user-1"),
		name:      name,
	}
}

func (e *testEvent) EventName() string { return e.name }

func TestEventBus_PublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()

	var order []string
	require.NoError(t, bus.Subscribe("thing.happened", NewFuncHandler("first", func(DomainEvent) error {
		order = append(order, "first")
		return nil
	})))
	require.NoError(t, bus.Subscribe("thing.happened", NewFuncHandler("second", func(DomainEvent) error {
		order = append(order, "second")
		return nil
	})))

	require.NoError(t, bus.Publish(newTestEvent("thing.happened", "agg-1")))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventBus_FailingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()

	called := false
	require.NoError(t, bus.Subscribe("thing.happened", NewFuncHandler("boom", func(DomainEvent) error {
		return errors.New("boom")
	})))
	require.NoError(t, bus.Subscribe("thing.happened", NewFuncHandler("after", func(DomainEvent) error {
		called = true
		return nil
	})))

	err := bus.Publish(newTestEvent("thing.happened", "agg-1"))
	assert.Error(t, err)
	assert.True(t, called)
}

func TestEventBus_DuplicateHandlerNameRejected(t *testing.T) {
	bus := NewEventBus()

	h := NewFuncHandler("dup", func(DomainEvent) error { return nil })
	require.NoError(t, bus.Subscribe("thing.happened", h))
	assert.Error(t, bus.Subscribe("thing.happened", h))
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	h := NewFuncHandler("counter", func(DomainEvent) error {
		calls++
		return nil
	})
	require.NoError(t, bus.Subscribe("thing.happened", h))
	require.NoError(t, bus.Publish(newTestEvent("thing.happened", "agg-1")))
	require.NoError(t, bus.Unsubscribe("thing.happened", h))
	require.NoError(t, bus.Publish(newTestEvent("thing.happened", "agg-1")))

	assert.Equal(t, 1, calls)
}

func TestEventBus_PublishWithoutHandlersSucceeds(t *testing.T) {
	bus := NewEventBus()

	require.NoError(t, bus.Publish(newTestEvent("nobody.listens", "agg-1")))

	history := bus.GetPublishHistory()
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
}

func TestEventBus_RejectsInvalidEvent(t *testing.T) {
	bus := NewEventBus()

	assert.Error(t, bus.Publish(nil))
	assert.Error(t, bus.Publish(newTestEvent("", "agg-1")))
	assert.Error(t, bus.Publish(newTestEvent("thing.happened", "")))
}

func TestValidateEvent(t *testing.T) {
	assert.NoError(t, ValidateEvent(newTestEvent("ok", "agg-1")))
	assert.Error(t, ValidateEvent(nil))
}

type fakeUow struct{}

func (fakeUow) Execute(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (fakeUow) RegisterNew(AggregateRoot) error                                       { return nil }
func (fakeUow) RegisterDirty(AggregateRoot) error                                     { return nil }
func (fakeUow) RegisterRemoved(AggregateRoot) error                                   { return nil }
func (fakeUow) QueueEvent(DomainEvent) error                                          { return nil }

type fakeFactory struct{ created int }

func (f *fakeFactory) New() UnitOfWork {
	f.created++
	return fakeUow{}
}

func TestResolveUnitOfWork_PrefersAmbient(t *testing.T) {
	factory := &fakeFactory{}

	ambient := fakeUow{}
	ctx := ContextWithUnitOfWork(context.Background(), ambient)
	assert.Equal(t, UnitOfWork(ambient), ResolveUnitOfWork(ctx, factory))
	assert.Zero(t, factory.created)

	fresh := ResolveUnitOfWork(context.Background(), factory)
	assert.NotNil(t, fresh)
	assert.Equal(t, 1, factory.created)
}
