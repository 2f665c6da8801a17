package email

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/kafka"
)

// Notifier is how feature services emit notifications without caring
// whether Kafka is in the loop.
type Notifier interface {
	Notify(eventType NotifyEventType, recipient string, data map[string]interface{}) error
}

// NewNotifier returns a Kafka-backed notifier when a producer is available,
// otherwise one that sends directly through the sender. Callers pass a nil
// producer when Kafka is disabled.
func NewNotifier(producer *kafka.Producer, topic string, sender Sender, logger *slog.Logger) Notifier {
	if producer != nil {
		return &kafkaNotifier{producer: producer, topic: topic, logger: logger}
	}
	return &directNotifier{sender: sender, logger: logger}
}

type kafkaNotifier struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

func (n *kafkaNotifier) Notify(eventType NotifyEventType, recipient string, data map[string]interface{}) error {
	event := NotifyEvent{
		MessageID: uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Recipient: recipient,
		Data:      data,
	}
	if err := n.producer.PublishNotifyEvent(n.topic, event); err != nil {
		n.logger.Error("Failed to publish notify event",
			"type", eventType,
			"error", err)
		return err
	}
	return nil
}

type directNotifier struct {
	sender Sender
	logger *slog.Logger
}

func (n *directNotifier) Notify(eventType NotifyEventType, recipient string, data map[string]interface{}) error {
	event := NotifyEvent{
		MessageID: uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Recipient: recipient,
		Data:      data,
	}
	if err := n.sender.SendNotifyEvent(event); err != nil {
		n.logger.Error("Failed to send notification directly",
			"type", eventType,
			"error", err)
		return err
	}
	return nil
}
