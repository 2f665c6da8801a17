package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/breeder"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/email"
)

var ErrNotFound = errors.New("waitlist entry not found")

type Service interface {
	Join(ctx context.Context, req *JoinRequest) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Update(ctx context.Context, id int, req *UpdateRequest) (*Entry, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	db       database.Service
	breeders breeder.Service
	notifier email.Notifier
	logger   *slog.Logger
}

func NewService(db database.Service, breeders breeder.Service, notifier email.Notifier, logger *slog.Logger) Service {
	return &service{db: db, breeders: breeders, notifier: notifier, logger: logger}
}

const entryColumns = `id, name, email, phone, preferences, status, position, created_at, updated_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Preferences,
		&e.Status, &e.Position, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *service) Join(ctx context.Context, req *JoinRequest) (*Entry, error) {
	const q = `
		INSERT INTO waitlist (name, email, phone, preferences, status, position)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM waitlist))
		RETURNING ` + entryColumns

	e, err := scanEntry(s.db.QueryRow(ctx, q,
		req.Name, req.Email, req.Phone, req.Preferences, StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}

	s.notifyBreeder(ctx, e)

	return e, nil
}

// notifyBreeder tells the breeder about the new entry. Best effort, a
// notification failure never fails the join.
func (s *service) notifyBreeder(ctx context.Context, e *Entry) {
	b, err := s.breeders.Profile(ctx)
	if err != nil || b == nil {
		s.logger.Warn("No breeder profile for waitlist notification", "error", err)
		return
	}

	err = s.notifier.Notify(email.NotifyTypeWaitlistJoined, b.Email, map[string]interface{}{
		"name":        e.Name,
		"email":       e.Email,
		"phone":       e.Phone,
		"preferences": e.Preferences,
	})
	if err != nil {
		s.logger.Warn("Failed to queue waitlist notification",
			"entry_id", e.ID,
			"error", err)
	}
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	const q = `SELECT ` + entryColumns + ` FROM waitlist ORDER BY position`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *service) Update(ctx context.Context, id int, req *UpdateRequest) (*Entry, error) {
	const q = `
		UPDATE waitlist
		SET status = $1, position = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + entryColumns

	e, err := scanEntry(s.db.QueryRow(ctx, q, req.Status, req.Position, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update waitlist entry: %w", err)
	}

	err = s.notifier.Notify(email.NotifyTypeWaitlistUpdate, e.Email, map[string]interface{}{
		"name":   e.Name,
		"status": e.Status,
	})
	if err != nil {
		s.logger.Warn("Failed to queue waitlist update notification",
			"entry_id", e.ID,
			"error", err)
	}

	return e, nil
}

// Delete removes an entry and closes the position gap in one transaction.
func (s *service) Delete(ctx context.Context, id int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin waitlist delete: %w", err)
	}
	defer tx.Rollback(ctx)

	var position int
	err = tx.QueryRow(ctx, `DELETE FROM waitlist WHERE id = $1 RETURNING position`, id).Scan(&position)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE waitlist SET position = position - 1 WHERE position > $1`, position); err != nil {
		return fmt.Errorf("failed to reorder waitlist: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit waitlist delete: %w", err)
	}
	return nil
}
