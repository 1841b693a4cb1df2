package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

const (
	publishAttempts = 5
	baseDelay       = 100 * time.Millisecond
	maxDelay        = 10 * time.Second
)

// KafkaNotifier publishes ledger events to a Kafka topic.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier builds a notifier writing to the given brokers and topic.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Send publishes the event as JSON, retrying transient broker failures with
// exponential backoff.
func (n *KafkaNotifier) Send(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.TransferID),
		Value: payload,
	}

	var lastErr error
	for attempt := 0; attempt < publishAttempts; attempt++ {
		if err := n.writer.WriteMessages(ctx, msg); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == publishAttempts-1 {
			break
		}

		delay := baseDelay << attempt
		if delay > maxDelay {
			delay = maxDelay
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("publish cancelled: %w", ctx.Err())
		}
	}
	return fmt.Errorf("publish event after %d attempts: %w", publishAttempts, lastErr)
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
