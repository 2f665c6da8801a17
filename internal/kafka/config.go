package kafka

import (
	"fmt"
	"os"
	"strings"
)

// Config holds Kafka configuration
type Config struct {
	Brokers           string
	NotifyEventsTopic string
	NotifyDLQTopic    string
	ConsumerGroup     string
	EnableIdempotence bool
	Acks              string
}

// LoadConfig loads Kafka configuration from environment variables
func LoadConfig() (*Config, error) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}

	notifyTopic := os.Getenv("KAFKA_TOPIC_NOTIFY_EVENTS")
	if notifyTopic == "" {
		notifyTopic = "notify-events"
	}

	dlqTopic := os.Getenv("KAFKA_TOPIC_NOTIFY_DLQ")
	if dlqTopic == "" {
		dlqTopic = "notify-events-dlq"
	}

	consumerGroup := os.Getenv("KAFKA_CONSUMER_GROUP")
	if consumerGroup == "" {
		consumerGroup = "notifier-group"
	}

	return &Config{
		Brokers:           brokers,
		NotifyEventsTopic: notifyTopic,
		NotifyDLQTopic:    dlqTopic,
		ConsumerGroup:     consumerGroup,
		EnableIdempotence: true,
		Acks:              "all",
	}, nil
}

// GetBrokersList returns brokers as a slice
func (c *Config) GetBrokersList() []string {
	return strings.Split(c.Brokers, ",")
}
