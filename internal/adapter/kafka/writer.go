package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/incident-data-etl/internal/config"
	"github.com/couchcryptid/incident-data-etl/internal/domain"
)

// Writer publishes snapshot records to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes the records of one snapshot and writes them in a single
// WriteMessages call. Records are keyed by ID so compacted topics keep the
// latest version of each incident.
func (w *Writer) Publish(ctx context.Context, snapshotID string, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(snapshotID, records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d records: %w", len(msgs), err)
	}
	w.logger.Debug("snapshot published to kafka", "topic", w.writer.Topic, "records", len(msgs), "snapshot_id", snapshotID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Record into a Kafka message.
func serializeToMessage(snapshotID string, record domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(record.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(record.EventType)},
			{Key: "snapshot_id", Value: []byte(snapshotID)},
		},
	}, nil
}
