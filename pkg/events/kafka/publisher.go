// Package kafka publishes routing events to a Kafka cluster.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/railpath-hq/railrouter/pkg/events"
	"github.com/segmentio/kafka-go"
)

// Publisher writes events to a single topic, balanced by payload size.
type Publisher struct {
	writer *kafka.Writer
}

var _ events.Publisher = (*Publisher)(nil)

// NewPublisher creates a publisher for the intent-executed topic.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    events.TopicIntentExecuted,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish serializes the event and writes it, keyed by intent ID when the
// event carries one so per-intent ordering is preserved.
func (p *Publisher) Publish(_ string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{Value: data}
	if e, ok := event.(events.IntentExecuted); ok {
		msg.Key = []byte(e.IntentID)
	}

	return p.writer.WriteMessages(context.Background(), msg)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
