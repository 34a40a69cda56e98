package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/earthquake-dashboard/internal/config"
	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes earthquake features to a Kafka topic.
// It implements quake.Publisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

const (
	// batchTimeout flushes a partial batch almost immediately; feeds are
	// published from inside a request.
	batchTimeout = 10 * time.Millisecond
	maxAttempts  = 3
)

// NewWriter creates a Kafka producer for the configured event topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: batchTimeout,
		MaxAttempts:  maxAttempts,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes features and writes them in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, features []domain.RawFeature) error {
	if len(features) == 0 {
		return nil
	}
	publishedAt := domain.Now()
	msgs := make([]kafkago.Message, len(features))
	for i := range features {
		msg, err := serializeToMessage(features[i], publishedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d earthquake events: %w", len(msgs), err)
	}
	w.logger.Debug("published earthquake events", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a feature into a Kafka message keyed by its USGS id.
func serializeToMessage(f domain.RawFeature, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize earthquake feature: %w", err)
	}
	eventType := ""
	if f.Properties.Type != nil {
		eventType = *f.Properties.Type
	}
	return kafkago.Message{
		Key:   []byte(f.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "published_at", Value: []byte(publishedAt.Format(time.RFC3339))},
		},
	}, nil
}
