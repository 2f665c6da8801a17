package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestManager(t *testing.T, lifetime time.Duration) (Manager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	store := NewRedisStore(mr.Addr(), "", 0, time.Second)
	return NewManager(store, lifetime), mr
}

func TestCreateValidateRoundTrip(t *testing.T) {
	mgr, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 42)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	sess, err := mgr.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if sess.BreederID != 42 {
		t.Errorf("Expected breeder ID 42, got %d", sess.BreederID)
	}
	if sess.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestTokensAreUnique(t *testing.T) {
	mgr, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := mgr.Create(ctx, 1)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("Duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestValidateEmptyToken(t *testing.T) {
	mgr, _ := newTestManager(t, time.Hour)

	if _, err := mgr.Validate(context.Background(), ""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	mgr, _ := newTestManager(t, time.Hour)

	if _, err := mgr.Validate(context.Background(), "no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateExpiredSession(t *testing.T) {
	mgr, mr := newTestManager(t, 10*time.Second)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mr.FastForward(11 * time.Second)

	if _, err := mgr.Validate(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestValidateSlidesExpiration(t *testing.T) {
	mgr, mr := newTestManager(t, 10*time.Second)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Past the halfway point of the original TTL; validation refreshes it
	mr.FastForward(6 * time.Second)
	if _, err := mgr.Validate(ctx, token); err != nil {
		t.Fatalf("Validate failed before expiry: %v", err)
	}

	// Another 6s would have killed the original TTL, but not the refreshed one
	mr.FastForward(6 * time.Second)
	if _, err := mgr.Validate(ctx, token); err != nil {
		t.Errorf("Expected refreshed session to still be valid, got %v", err)
	}

	mr.FastForward(11 * time.Second)
	if _, err := mgr.Validate(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after refreshed TTL elapsed, got %v", err)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	mgr, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 3)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := mgr.Destroy(ctx, token); err != nil {
		t.Fatalf("First Destroy failed: %v", err)
	}
	if err := mgr.Destroy(ctx, token); err != nil {
		t.Fatalf("Second Destroy failed: %v", err)
	}
	if err := mgr.Destroy(ctx, "never-existed"); err != nil {
		t.Fatalf("Destroy of unknown token failed: %v", err)
	}

	if _, err := mgr.Validate(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected destroyed session to be invalid, got %v", err)
	}
}

func TestCorruptPayloadTreatedAsInvalid(t *testing.T) {
	mgr, mr := newTestManager(t, time.Hour)
	ctx := context.Background()

	mr.Set("session:bad-token", "{not json")

	if _, err := mgr.Validate(ctx, "bad-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound for corrupt payload, got %v", err)
	}
	if mr.Exists("session:bad-token") {
		t.Error("Expected corrupt session record to be removed")
	}
}

func TestStoreUnavailableDegradesToInvalid(t *testing.T) {
	mgr, mr := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := mgr.Create(ctx, 9)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mr.Close()

	// Reads degrade to "invalid", never an error the HTTP layer must handle
	if _, err := mgr.Validate(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound while store is down, got %v", err)
	}

	// Deletes degrade to silent success
	if err := mgr.Destroy(ctx, token); err != nil {
		t.Errorf("Expected Destroy to be a no-op while store is down, got %v", err)
	}

	// Creates surface the outage so login can answer 503
	if _, err := mgr.Create(ctx, 9); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable from Create, got %v", err)
	}
}
