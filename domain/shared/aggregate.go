package shared

// AggregateRoot is the entry point of an aggregate. It owns the
// consistency boundary, records domain events for its own mutations
// and hands them over exactly once via PullEvents.
type AggregateRoot interface {
	// ID returns the globally unique identifier.
	ID() string

	// Version returns the optimistic-lock version.
	Version() int

	// PullEvents returns the recorded events and clears the internal
	// list. The unit of work calls this once, at commit time.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}
