package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
)

// Handler processes one decoded envelope.  Returning an error leaves the
// message uncommitted so it is redelivered.
type Handler func(ctx context.Context, envelope Envelope) error

// Consumer reads one topic in a consumer group and dispatches to a Handler.
type Consumer struct {
	reader *kafka.Reader
	logger logging.Logger
}

// NewConsumer builds a group consumer for one topic.
func NewConsumer(cfg Config, topic string, logger logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   topic,
		}),
		logger: logger.Named("kafka.consumer").With(logging.String("topic", topic)),
	}
}

// Run consumes until the context is cancelled.  Undecodable messages are
// logged and committed; they would never become valid on redelivery.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var envelope Envelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			c.logger.Error("dropping undecodable event", logging.Err(err))
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := handle(ctx, envelope); err != nil {
			c.logger.Error("event handler failed, message left for redelivery",
				logging.String("type", envelope.Type),
				logging.Err(err),
			)
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

// Close shuts the underlying reader down.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
