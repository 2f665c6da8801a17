// Package session manages login sessions for the breeder site. Sessions live
// in Redis under `session:<token>` with a sliding TTL: every successful
// validation resets the remaining lifetime to the full configured duration.
//
// The store is advisory infrastructure, not the source of truth for identity.
// When Redis is unreachable every read degrades to "invalid session" and every
// delete degrades to a no-op, so the rest of the site keeps serving.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

const tokenBytes = 32 // 256 bits of entropy per token

var (
	// ErrSessionNotFound is returned when a token is empty, unknown, or expired
	ErrSessionNotFound = errors.New("session not found")
	// ErrStoreUnavailable is returned when the session store cannot be reached
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Manager defines the interface for session lifecycle operations
type Manager interface {
	Create(ctx context.Context, breederID int) (string, error)
	Validate(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}

type manager struct {
	store    Store
	lifetime time.Duration

	// degraded gates the unavailability log so an outage is reported once,
	// not once per request.
	degraded atomic.Bool
}

// NewManager creates a session manager issuing tokens with the given lifetime.
func NewManager(store Store, lifetime time.Duration) Manager {
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &manager{
		store:    store,
		lifetime: lifetime,
	}
}

// Create mints an opaque token for the breeder and stores the session record
// with the full lifetime as its TTL. Token collisions are prevented by entropy
// alone; no existence check is made.
func (m *manager) Create(ctx context.Context, breederID int) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	record := Session{
		BreederID: breederID,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.store.Set(ctx, sessionKey(token), string(payload), m.lifetime); err != nil {
		m.markUnavailable(err)
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	m.markAvailable()
	return token, nil
}

// Validate resolves a token to its session record and slides the TTL forward
// to the full lifetime. Any failure, including an unreachable store, reports
// ErrSessionNotFound; callers must treat the session as absent, never crash.
func (m *manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	key := sessionKey(token)

	payload, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			m.markAvailable()
		} else {
			m.markUnavailable(err)
		}
		return nil, ErrSessionNotFound
	}
	m.markAvailable()

	var record Session
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		// Corrupt payload: drop it rather than serve garbage
		_ = m.store.Delete(ctx, key)
		return nil, ErrSessionNotFound
	}

	// Sliding window: concurrent validations race on this harmlessly, the
	// outcome is always "TTL = full lifetime".
	if err := m.store.Expire(ctx, key, m.lifetime); err != nil && !errors.Is(err, ErrKeyNotFound) {
		m.markUnavailable(err)
	}

	return &record, nil
}

// Destroy removes the session record. It is idempotent and swallows transport
// errors: a token that cannot be deleted right now will expire on its own.
func (m *manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := m.store.Delete(ctx, sessionKey(token)); err != nil && !errors.Is(err, ErrKeyNotFound) {
		m.markUnavailable(err)
	}
	return nil
}

func (m *manager) markUnavailable(err error) {
	if m.degraded.CompareAndSwap(false, true) {
		slog.Warn("session store unavailable, sessions degraded to invalid", "error", err.Error())
	}
}

func (m *manager) markAvailable() {
	if m.degraded.CompareAndSwap(true, false) {
		slog.Info("session store recovered")
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// newToken returns a URL-safe opaque token from crypto/rand.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
