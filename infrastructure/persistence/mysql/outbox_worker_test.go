package mysql

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindly/infrastructure/persistence/mysql/po"
)

// fakeOutboxStore keeps rows in memory and applies the same lifecycle
// rules as the real repository: claiming is status-guarded, a failed
// row goes back to PENDING until maxRetries is exhausted.
type fakeOutboxStore struct {
	mu       sync.Mutex
	rows     []*po.OutboxEventPO
	claimErr error
}

func (s *fakeOutboxStore) find(id string) *po.OutboxEventPO {
	for _, row := range s.rows {
		if row.ID == id {
			return row
		}
	}
	return nil
}

func (s *fakeOutboxStore) status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row := s.find(id); row != nil {
		return row.Status
	}
	return ""
}

func (s *fakeOutboxStore) retryCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row := s.find(id); row != nil {
		return row.RetryCount
	}
	return 0
}

func (s *fakeOutboxStore) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []*po.OutboxEventPO
	for _, row := range s.rows {
		if row.Status == string(po.EventStatusPending) && len(pending) < limit {
			copied := *row
			pending = append(pending, &copied)
		}
	}
	return pending, nil
}

func (s *fakeOutboxStore) MarkEventProcessing(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return s.claimErr
	}
	row := s.find(eventID)
	if row == nil || row.Status != string(po.EventStatusPending) {
		return fmt.Errorf("event not found or already being processed: %s", eventID)
	}
	row.Status = string(po.EventStatusProcessing)
	return nil
}

func (s *fakeOutboxStore) MarkEventPublished(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.find(eventID)
	if row == nil {
		return fmt.Errorf("event not found: %s", eventID)
	}
	row.Status = string(po.EventStatusPublished)
	return nil
}

func (s *fakeOutboxStore) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.find(eventID)
	if row == nil {
		return fmt.Errorf("event not found: %s", eventID)
	}
	row.RetryCount++
	if row.RetryCount < maxRetries {
		row.Status = string(po.EventStatusPending)
	} else {
		row.Status = string(po.EventStatusFailed)
	}
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []OutboxMessage
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, msg OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func (p *fakePublisher) message(i int) OutboxMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messages[i]
}

func pendingRow(id, eventType string) *po.OutboxEventPO {
	return &po.OutboxEventPO{
		ID:          id,
		AggregateID: "agg-" + id,
		EventType:   eventType,
		Payload:     `{"event_name":"` + eventType + `"}`,
		Status:      string(po.EventStatusPending),
	}
}

func newTestWorker(t *testing.T, store OutboxStore, publisher OutboxPublisher, maxRetries int) *OutboxWorker {
	t.Helper()
	worker, err := NewOutboxWorker(store, publisher, time.Millisecond, 10, maxRetries)
	require.NoError(t, err)
	return worker
}

func TestNewOutboxWorker_Validation(t *testing.T) {
	store := &fakeOutboxStore{}
	publisher := &fakePublisher{}

	tests := []struct {
		name string
		make func() (*OutboxWorker, error)
	}{
		{"nil store", func() (*OutboxWorker, error) {
			return NewOutboxWorker(nil, publisher, time.Second, 10, 3)
		}},
		{"nil publisher", func() (*OutboxWorker, error) {
			return NewOutboxWorker(store, nil, time.Second, 10, 3)
		}},
		{"zero poll interval", func() (*OutboxWorker, error) {
			return NewOutboxWorker(store, publisher, 0, 10, 3)
		}},
		{"zero batch size", func() (*OutboxWorker, error) {
			return NewOutboxWorker(store, publisher, time.Second, 0, 3)
		}},
		{"zero max retries", func() (*OutboxWorker, error) {
			return NewOutboxWorker(store, publisher, time.Second, 10, 0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			assert.Error(t, err)
		})
	}
}

func TestOutboxWorker_PublishesPendingEvents(t *testing.T) {
	store := &fakeOutboxStore{rows: []*po.OutboxEventPO{
		pendingRow("ev-1", "client.created"),
		pendingRow("ev-2", "reminder.created"),
	}}
	publisher := &fakePublisher{}
	worker := newTestWorker(t, store, publisher, 3)

	stats, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.published)
	assert.Zero(t, stats.failed)

	require.Equal(t, 2, publisher.count())
	first := publisher.message(0)
	assert.Equal(t, "ev-1", first.EventID)
	assert.Equal(t, "client.created", first.EventType)
	assert.Equal(t, "agg-ev-1", first.AggregateID)
	assert.Equal(t, 1, first.Attempt)

	assert.Equal(t, string(po.EventStatusPublished), store.status("ev-1"))
	assert.Equal(t, string(po.EventStatusPublished), store.status("ev-2"))
}

func TestOutboxWorker_FailedPublishRetriesThenFails(t *testing.T) {
	store := &fakeOutboxStore{rows: []*po.OutboxEventPO{
		pendingRow("ev-1", "client.created"),
	}}
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	maxRetries := 3
	worker := newTestWorker(t, store, publisher, maxRetries)

	// each batch claims the row once; it returns to PENDING until the
	// retry budget is spent
	for i := 0; i < maxRetries; i++ {
		stats, err := worker.processBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, stats.failed)
	}

	assert.Equal(t, string(po.EventStatusFailed), store.status("ev-1"))
	assert.Equal(t, maxRetries, store.retryCount("ev-1"))
	require.Equal(t, maxRetries, publisher.count())
	assert.Equal(t, maxRetries, publisher.message(maxRetries-1).Attempt)

	// a FAILED row is never picked up again
	stats, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.failed)
	assert.Equal(t, maxRetries, publisher.count())
}

func TestOutboxWorker_SkipsRowsClaimedElsewhere(t *testing.T) {
	store := &fakeOutboxStore{
		rows:     []*po.OutboxEventPO{pendingRow("ev-1", "client.created")},
		claimErr: errors.New("already being processed"),
	}
	publisher := &fakePublisher{}
	worker := newTestWorker(t, store, publisher, 3)

	stats, err := worker.processBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.skipped)
	assert.Zero(t, publisher.count(), "a row claimed by another worker is not published")
}

func TestOutboxWorker_CancelledContextStopsMidBatch(t *testing.T) {
	store := &fakeOutboxStore{rows: []*po.OutboxEventPO{
		pendingRow("ev-1", "client.created"),
	}}
	publisher := &fakePublisher{}
	worker := newTestWorker(t, store, publisher, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := worker.processBatch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, publisher.count())
	assert.Equal(t, string(po.EventStatusPending), store.status("ev-1"), "row stays claimable")
}

func TestOutboxWorker_RunDrainsThenStopsOnCancel(t *testing.T) {
	store := &fakeOutboxStore{rows: []*po.OutboxEventPO{
		pendingRow("ev-1", "client.created"),
	}}
	publisher := &fakePublisher{}
	worker := newTestWorker(t, store, publisher, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// the startup drain publishes without waiting for the first tick
	require.Eventually(t, func() bool {
		return store.status("ev-1") == string(po.EventStatusPublished)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
