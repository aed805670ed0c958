package shared

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is an immutable fact about a completed mutation. Events
// are recorded by aggregates (or queued explicitly on the unit of work)
// and emitted only after the enclosing transaction commits.
type DomainEvent interface {
	// EventName returns the kind tag, e.g. "client.created".
	EventName() string

	// EventID returns the unique id assigned at creation time.
	EventID() string

	// OccurredOn returns the creation time of the event.
	OccurredOn() time.Time

	// GetAggregateID returns the id of the aggregate the event is about.
	GetAggregateID() string
}

// PayloadCarrier is implemented by events that expose a serializable
// payload. The outbox persistence uses it instead of per-type switches.
type PayloadCarrier interface {
	EventPayload() map[string]interface{}
}

// BaseEvent carries the metadata every domain event shares. Concrete
// events embed it and add their own payload fields.
type BaseEvent struct {
	eventID     string
	aggregateID string
	userID      string
	occurredOn  time.Time
}

// NewBaseEvent stamps a fresh event id and occurrence time.
func NewBaseEvent(aggregateID, userID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.New().String(),
		aggregateID: aggregateID,
		userID:      userID,
		occurredOn:  time.Now(),
	}
}

func (e BaseEvent) EventID() string        { return e.eventID }
func (e BaseEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e BaseEvent) GetAggregateID() string { return e.aggregateID }

// UserID returns the id of the user whose request produced the event.
func (e BaseEvent) UserID() string { return e.userID }

// ValidateEvent rejects structurally broken events before they reach
// the outbox or the bus.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}

// EventHandler consumes events delivered by the bus.
type EventHandler interface {
	Handle(event DomainEvent) error
	Name() string
}

// DomainEventPublisher is the dispatcher contract the unit of work
// emits committed events through. Fire-and-forget from the caller's
// point of view: a failing sink never undoes a committed mutation.
type DomainEventPublisher interface {
	Publish(event DomainEvent) error
	Subscribe(eventName string, handler EventHandler) error
	Unsubscribe(eventName string, handler EventHandler) error
}

// EventPublishResult records one publish attempt for the history.
type EventPublishResult struct {
	EventName   string    `json:"event_name"`
	EventID     string    `json:"event_id"`
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

const publishHistoryLimit = 1000

// EventBus is an in-process dispatcher: a handler registry keyed by
// event name. Handlers for one event run in subscription order; one
// failing handler does not stop the others.
type EventBus struct {
	handlers  map[string][]EventHandler
	mu        sync.RWMutex
	history   []EventPublishResult
	muHistory sync.Mutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
		history:  make([]EventPublishResult, 0),
	}
}

func (bus *EventBus) Publish(event DomainEvent) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	bus.mu.RLock()
	handlers := append([]EventHandler(nil), bus.handlers[event.EventName()]...)
	bus.mu.RUnlock()

	result := EventPublishResult{
		EventName:   event.EventName(),
		EventID:     event.EventID(),
		Success:     true,
		PublishedAt: time.Now(),
	}

	if len(handlers) == 0 {
		result.Message = "no handlers registered for this event"
		bus.recordResult(result)
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil {
			errs = append(errs, fmt.Errorf("handler %s: %w", handler.Name(), err))
		}
	}
	if len(errs) > 0 {
		result.Success = false
		result.Message = fmt.Sprintf("%d handlers failed", len(errs))
		bus.recordResult(result)
		return fmt.Errorf("event %s: %d handlers failed: %v", event.EventName(), len(errs), errs)
	}

	bus.recordResult(result)
	return nil
}

func (bus *EventBus) recordResult(result EventPublishResult) {
	bus.muHistory.Lock()
	bus.history = append(bus.history, result)
	if len(bus.history) > publishHistoryLimit {
		bus.history = bus.history[len(bus.history)-publishHistoryLimit:]
	}
	bus.muHistory.Unlock()
}

func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}

	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}

func (bus *EventBus) Unsubscribe(eventName string, handler EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	handlers, exists := bus.handlers[eventName]
	if !exists {
		return nil
	}

	for i, h := range handlers {
		if h.Name() == handler.Name() {
			bus.handlers[eventName] = append(handlers[:i], handlers[i+1:]...)
			return nil
		}
	}

	return nil
}

// GetPublishHistory returns a copy of the recent publish results.
func (bus *EventBus) GetPublishHistory() []EventPublishResult {
	bus.muHistory.Lock()
	defer bus.muHistory.Unlock()

	history := make([]EventPublishResult, len(bus.history))
	copy(history, bus.history)
	return history
}

// FuncHandler adapts a plain function into an EventHandler.
type FuncHandler struct {
	name string
	fn   func(DomainEvent) error
}

func NewFuncHandler(name string, fn func(DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{name: name, fn: fn}
}

func (h *FuncHandler) Handle(event DomainEvent) error { return h.fn(event) }
func (h *FuncHandler) Name() string                   { return h.name }

var _ DomainEventPublisher = (*EventBus)(nil)
