// Package kafka publishes enriched track fixes to the sink topic.
package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
)

// Writer produces enriched-fix messages to a Kafka topic.
// It implements pipeline.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishFixes serializes and publishes a file's enriched fixes in a
// single WriteMessages call for efficiency.
func (w *Writer) PublishFixes(ctx context.Context, fixes []domain.EnrichedFix) error {
	if len(fixes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(fixes))
	for i := range fixes {
		out, err := domain.SerializeEnrichedFix(fixes[i])
		if err != nil {
			return err
		}
		msgs[i] = toMessage(out)
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func toMessage(out domain.OutputEvent) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(out.Headers))
	for k, v := range out.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return kafkago.Message{
		Key:     out.Key,
		Value:   out.Value,
		Headers: headers,
	}
}
