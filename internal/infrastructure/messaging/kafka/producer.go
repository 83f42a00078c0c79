package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Config holds broker connection settings.
type Config struct {
	Brokers      []string      `mapstructure:"brokers"`
	GroupID      string        `mapstructure:"group_id"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// Publisher emits events.  The application layer depends on this interface;
// tests swap in a recorder.
type Publisher interface {
	Publish(ctx context.Context, topic string, envelope Envelope) error
}

// Producer is the kafka-go backed Publisher, one shared writer routed by
// message topic.
type Producer struct {
	writer *kafka.Writer
	logger logging.Logger
}

// NewProducer builds a producer for the configured brokers.
func NewProducer(cfg Config, logger logging.Logger) *Producer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.Hash{},
			BatchTimeout: batchTimeout,
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger.Named("kafka.producer"),
	}
}

// Publish writes one envelope, keyed by event ID for stable partitioning.
func (p *Producer) Publish(ctx context.Context, topic string, envelope Envelope) error {
	raw, err := json.Marshal(envelope)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeSerialization, "event envelope marshal failed").WithCause(err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(envelope.ID.String()),
		Value: raw,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return apperrors.New(apperrors.ErrCodeExternalService, "event publish failed").
			WithDetail(topic).WithCause(err)
	}
	p.logger.Debug("event published",
		logging.String("topic", topic),
		logging.String("type", envelope.Type),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
