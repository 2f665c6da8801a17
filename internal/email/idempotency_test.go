package email

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *IdempotencyStore) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewIdempotencyStore(client, slog.Default())
}

func TestMarkAsProcessedClaimsOnce(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	event := NotifyEvent{
		MessageID: "msg-1",
		EventType: NotifyTypeWaitlistJoined,
		Timestamp: time.Now(),
		Recipient: "april@example.com",
	}

	claimed, err := store.MarkAsProcessed(ctx, event)
	if err != nil {
		t.Fatalf("MarkAsProcessed failed: %v", err)
	}
	if !claimed {
		t.Fatal("Expected first MarkAsProcessed to claim the message")
	}

	claimed, err = store.MarkAsProcessed(ctx, event)
	if err != nil {
		t.Fatalf("MarkAsProcessed failed: %v", err)
	}
	if claimed {
		t.Error("Expected second MarkAsProcessed to report a duplicate")
	}
}

func TestIsProcessed(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "unknown")
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if processed {
		t.Error("Expected unknown message to be unprocessed")
	}

	event := NotifyEvent{MessageID: "msg-2", EventType: NotifyTypePuppyAvailable, Recipient: "a@b.c"}
	if _, err := store.MarkAsProcessed(ctx, event); err != nil {
		t.Fatalf("MarkAsProcessed failed: %v", err)
	}

	processed, err = store.IsProcessed(ctx, "msg-2")
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if !processed {
		t.Error("Expected marked message to be processed")
	}
}

func TestDeduplicationRecordExpires(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	event := NotifyEvent{MessageID: "msg-3", EventType: NotifyTypeWaitlistUpdate, Recipient: "a@b.c"}
	if _, err := store.MarkAsProcessed(ctx, event); err != nil {
		t.Fatalf("MarkAsProcessed failed: %v", err)
	}

	mr.FastForward(25 * time.Hour)

	processed, err := store.IsProcessed(ctx, "msg-3")
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if processed {
		t.Error("Expected deduplication record to expire after the TTL")
	}
}

func TestCount(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		event := NotifyEvent{MessageID: id, EventType: NotifyTypeWaitlistJoined, Recipient: "a@b.c"}
		if _, err := store.MarkAsProcessed(ctx, event); err != nil {
			t.Fatalf("MarkAsProcessed failed: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 records, got %d", count)
	}
}
