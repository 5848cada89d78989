// Package audit publishes note and attachment lifecycle events to kafka.
// Publishing is best-effort: a failed publish is logged and never fails the
// request that triggered it.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/segmentio/kafka-go"
)

// Publisher emits audit events for note and attachment operations.
type Publisher interface {
	Publish(ctx context.Context, event models.AuditEvent) error
	Close() error
}

// kafkaPublisher writes audit events to a kafka topic. Events are keyed by
// note id so all events of one note land in the same partition.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

// NewKafkaPublisher constructs a [Publisher] writing to the configured
// brokers and topic.
func NewKafkaPublisher(cfg config.Events, log *logger.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info().Str("topic", cfg.Topic).Strs("brokers", cfg.Brokers).Msg("audit event publishing enabled")

	return &kafkaPublisher{
		writer: writer,
		logger: log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event models.AuditEvent) error {
	log := logger.FromContext(ctx)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.NoteID, 10)),
		Value: value,
	})
	if err != nil {
		log.Err(err).Str("event_type", event.Type).Msg("failed to publish audit event")
		return fmt.Errorf("failed to send message to kafka: %w", err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

// nopPublisher drops every event. Used when event publishing is disabled.
type nopPublisher struct{}

// NewNopPublisher returns a [Publisher] that discards all events.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, models.AuditEvent) error { return nil }
func (nopPublisher) Close() error                                     { return nil }
