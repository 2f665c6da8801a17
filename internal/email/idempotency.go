package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore handles deduplication of notification events
type IdempotencyStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewIdempotencyStore creates a new idempotency store
func NewIdempotencyStore(redisClient *redis.Client, logger *slog.Logger) *IdempotencyStore {
	return &IdempotencyStore{
		redis:  redisClient,
		ttl:    24 * time.Hour,
		logger: logger,
	}
}

func (s *IdempotencyStore) buildKey(messageID string) string {
	return fmt.Sprintf("notify:sent:%s", messageID)
}

// IsProcessed checks if a notification has already been sent
func (s *IdempotencyStore) IsProcessed(ctx context.Context, messageID string) (bool, error) {
	exists, err := s.redis.Exists(ctx, s.buildKey(messageID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if message is processed: %w", err)
	}
	return exists > 0, nil
}

// MarkAsProcessed marks a notification as sent. Returns true when this call
// claimed the message, false when another consumer already did. SET NX makes
// the check-and-set atomic.
func (s *IdempotencyStore) MarkAsProcessed(ctx context.Context, event NotifyEvent) (bool, error) {
	metadata := NotifyMetadata{
		SentAt:    time.Now(),
		Recipient: event.Recipient,
		EventType: event.EventType,
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return false, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	success, err := s.redis.SetNX(ctx, s.buildKey(event.MessageID), metadataJSON, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processed: %w", err)
	}

	if success {
		s.logger.Info("Marked notification as processed",
			"messageID", event.MessageID,
			"recipient", event.Recipient,
			"type", event.EventType)
	}

	return success, nil
}

// Count returns the number of deduplication records currently held
func (s *IdempotencyStore) Count(ctx context.Context) (int64, error) {
	var count int64
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, "notify:sent:*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan idempotency records: %w", err)
		}
		count += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
