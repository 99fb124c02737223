package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/event"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/events"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/kafka"
)

// topicFor maps domain event types to Kafka topics. One topic per aggregate
// family so consumers subscribe to what they care about.
func topicFor(eventType string) string {
	switch eventType {
	case event.EventTypeBatchAnalyzed:
		return "lead-validation.batches"
	case event.EventTypeHighFraudDetected:
		return "lead-validation.alerts"
	case event.EventTypeVendorStatusChanged:
		return "lead-validation.vendors"
	default:
		return "lead-validation.events"
	}
}

func aggregateTypeFor(eventType string) string {
	if eventType == event.EventTypeVendorStatusChanged {
		return "vendor"
	}
	return "batch"
}

// KafkaPublisher publishes domain events to Kafka, implementing
// port.EventPublisher. Events are wrapped in a transport envelope and keyed by
// aggregate ID so per-aggregate ordering holds within a partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

// Publish serializes and sends each event to its topic. The first failure
// aborts the remaining events.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		envelope := events.NewEnvelope(evt, aggregateTypeFor(evt.EventType()), payload)
		value, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope for %s: %w", evt.EventType(), err)
		}

		topic := topicFor(evt.EventType())
		msg := kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: value,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		}
		if err := p.producer.Publish(ctx, topic, msg); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", evt.EventType(), err)
		}

		p.logger.Debug("published domain event",
			"event_type", evt.EventType(),
			"topic", topic,
			"aggregate_id", evt.AggregateID(),
		)
	}
	return nil
}

// NoopPublisher discards all events. Used in offline CLI mode and tests.
type NoopPublisher struct{}

// Publish drops the events and reports success.
func (NoopPublisher) Publish(context.Context, ...events.DomainEvent) error { return nil }
