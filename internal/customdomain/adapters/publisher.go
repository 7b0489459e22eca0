// Package adapters connects the custom domain service to outbound event transports.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/kafka/producer"
)

// DefaultDomainTopic receives domain.attached, domain.detached and domain.verified events.
const DefaultDomainTopic = "tenant-domain-events"

// MessageProducer is the subset of the Kafka producer the publisher needs.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaPublisher writes domain events as JSON, keyed by tenant ID so every
// event for one tenant lands on the same partition in order.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
}

func NewKafkaPublisher(p MessageProducer, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultDomainTopic
	}
	return &KafkaPublisher{producer: p, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal domain event: %w", err)
	}
	headers := map[string]string{"event_type": string(event.Type)}
	if event.RequestID != "" {
		headers["request_id"] = event.RequestID
	}
	return p.producer.Produce(ctx, &producer.Message{
		Topic:   p.topic,
		Key:     []byte(event.TenantID),
		Value:   value,
		Headers: headers,
	})
}

// LogPublisher records events in the log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	p.logger.DebugContext(ctx, "domain event",
		"event", string(event.Type),
		"tenant_id", event.TenantID,
		"domain", event.Domain,
		"request_id", event.RequestID,
	)
	return nil
}
