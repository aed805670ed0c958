// Package po contains the GORM persistence objects. Domain aggregates
// never carry gorm tags; conversion happens here.
package po

import (
	"encoding/json"
	"time"

	"remindly/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO is one row of the transactional outbox. Events are
// written here inside the business transaction and picked up by the
// outbox worker after commit.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`          // e.g. "client.created"
	Payload     string    `gorm:"type:json;not null"`               // JSON serialized event data
	Status      string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent converts a domain event to an outbox row. Events that
// expose a payload contribute it wholesale; the metadata keys win on
// collision.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	eventData := make(map[string]interface{})
	if carrier, ok := event.(shared.PayloadCarrier); ok {
		for k, v := range carrier.EventPayload() {
			eventData[k] = v
		}
	}
	eventData["event_name"] = event.EventName()
	eventData["event_id"] = event.EventID()
	eventData["aggregate_id"] = event.GetAggregateID()
	eventData["occurred_on"] = event.OccurredOn()

	payload, err := json.Marshal(eventData)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     string(payload),
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ToEventData decodes the payload, for worker logging and tests.
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
