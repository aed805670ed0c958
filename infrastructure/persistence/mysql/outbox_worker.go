package mysql

import (
	"context"
	"fmt"
	"time"

	"remindly/infrastructure/persistence/mysql/po"
	"remindly/pkg/logger"

	"go.uber.org/zap"
)

// OutboxMessage is the envelope handed to the publisher: the event
// identity plus the JSON payload written inside the business
// transaction.
type OutboxMessage struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Attempt     int
}

// OutboxPublisher forwards a committed event to an external sink: a
// message broker in production, a log sink in development.
type OutboxPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}

// LoggingOutboxPublisher is the development sink: it logs the event
// instead of forwarding it.
type LoggingOutboxPublisher struct{}

func (p *LoggingOutboxPublisher) Publish(ctx context.Context, msg OutboxMessage) error {
	logger.Info("Outbox event published",
		zap.String("event_type", msg.EventType),
		zap.String("aggregate_id", msg.AggregateID),
		zap.String("payload", msg.Payload),
	)
	return nil
}

// OutboxStore is the slice of the outbox repository the worker needs.
type OutboxStore interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error)
	MarkEventProcessing(ctx context.Context, eventID string) error
	MarkEventPublished(ctx context.Context, eventID string) error
	MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error
}

// OutboxWorker drains the outbox table: it claims PENDING rows one at a
// time, publishes them and marks the outcome. A row whose publish fails
// goes back to PENDING until maxRetries is exhausted, then stays FAILED.
type OutboxWorker struct {
	store        OutboxStore
	publisher    OutboxPublisher
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

type batchStats struct {
	published int
	failed    int
	skipped   int
}

func NewOutboxWorker(
	store OutboxStore,
	publisher OutboxPublisher,
	pollInterval time.Duration,
	batchSize int,
	maxRetries int,
) (*OutboxWorker, error) {
	if store == nil {
		return nil, fmt.Errorf("outbox store is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	if pollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if maxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be positive")
	}

	return &OutboxWorker{
		store:        store,
		publisher:    publisher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}, nil
}

// Run drains once immediately, then on every tick until the context is
// cancelled. Events committed just before startup do not wait a full
// poll interval.
func (w *OutboxWorker) Run(ctx context.Context) error {
	w.drain(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	stats, err := w.processBatch(ctx)
	if err != nil {
		logger.Error("Outbox batch processing failed", zap.Error(err))
		return
	}
	if stats.published > 0 || stats.failed > 0 {
		logger.Info("Outbox batch drained",
			zap.Int("published", stats.published),
			zap.Int("failed", stats.failed),
			zap.Int("skipped", stats.skipped),
		)
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) (batchStats, error) {
	var stats batchStats

	rows, err := w.store.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		return stats, err
	}

	for _, row := range rows {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		w.relay(ctx, row, &stats)
	}

	return stats, nil
}

// relay claims one row and publishes it. Claiming is a status-guarded
// update, so a row another worker grabbed first is skipped, not
// double-published.
func (w *OutboxWorker) relay(ctx context.Context, row *po.OutboxEventPO, stats *batchStats) {
	if err := w.store.MarkEventProcessing(ctx, row.ID); err != nil {
		stats.skipped++
		logger.Warn("Skip outbox event claimed elsewhere",
			zap.String("event_id", row.ID),
			zap.Error(err),
		)
		return
	}

	msg := OutboxMessage{
		EventID:     row.ID,
		EventType:   row.EventType,
		AggregateID: row.AggregateID,
		Payload:     row.Payload,
		Attempt:     row.RetryCount + 1,
	}
	if err := w.publisher.Publish(ctx, msg); err != nil {
		stats.failed++
		logger.Warn("Outbox publish failed",
			zap.String("event_id", row.ID),
			zap.String("event_type", row.EventType),
			zap.Int("attempt", msg.Attempt),
			zap.Error(err),
		)
		if markErr := w.store.MarkEventFailed(ctx, row.ID, w.maxRetries); markErr != nil {
			logger.Error("Failed to mark outbox event as failed",
				zap.String("event_id", row.ID),
				zap.Error(markErr),
			)
		}
		return
	}

	if err := w.store.MarkEventPublished(ctx, row.ID); err != nil {
		logger.Error("Failed to mark outbox event as published",
			zap.String("event_id", row.ID),
			zap.Error(err),
		)
		return
	}
	stats.published++
}
