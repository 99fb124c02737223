package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
}

// Envelope wraps a domain event with delivery metadata for transport.
type Envelope struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       []byte    `json:"payload"`
}

// NewEnvelope wraps a serialized event payload with a generated event ID and
// the current UTC time.
func NewEnvelope(evt DomainEvent, aggregateType string, payload []byte) Envelope {
	return Envelope{
		ID:            uuid.New(),
		Type:          evt.EventType(),
		AggregateID:   evt.AggregateID(),
		AggregateType: aggregateType,
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
	}
}
