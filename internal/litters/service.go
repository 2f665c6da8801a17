package litters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
)

var (
	ErrNotFound    = errors.New("litter not found")
	ErrNotOwner    = errors.New("litter belongs to another breeder")
	ErrInvalidDate = errors.New("dates must be YYYY-MM-DD")

	// ErrUnknownParent is returned when mom_id or dad_id does not reference
	// an existing dog.
	ErrUnknownParent = errors.New("parent dog not found")
)

type Service interface {
	List(ctx context.Context) ([]Litter, error)
	Get(ctx context.Context, id int) (*Litter, error)
	Create(ctx context.Context, breederID int, req *LitterRequest) (*Litter, error)
	Update(ctx context.Context, breederID, id int, req *LitterRequest) (*Litter, error)
	Delete(ctx context.Context, breederID, id int) error

	// OwnedBy reports whether the litter exists and belongs to the breeder.
	// The puppies service uses it to gate creation.
	OwnedBy(ctx context.Context, breederID, id int) error
}

type service struct {
	db database.Service
}

func NewService(db database.Service) Service {
	return &service{db: db}
}

const litterColumns = `id, breeder_id, mom_id, dad_id, birth_date, available_date, created_at, updated_at`

func scanLitter(row pgx.Row) (*Litter, error) {
	var l Litter
	err := row.Scan(&l.ID, &l.BreederID, &l.MomID, &l.DadID,
		&l.BirthDate, &l.AvailableDate, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func parseDates(req *LitterRequest) (birth, available time.Time, err error) {
	birth, err = time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	available, err = time.Parse("2006-01-02", req.AvailableDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return birth, available, nil
}

func (s *service) List(ctx context.Context) ([]Litter, error) {
	const q = `SELECT ` + litterColumns + ` FROM litter ORDER BY birth_date DESC`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list litters: %w", err)
	}
	defer rows.Close()

	litters := []Litter{}
	for rows.Next() {
		l, err := scanLitter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan litter: %w", err)
		}
		litters = append(litters, *l)
	}
	return litters, rows.Err()
}

func (s *service) Get(ctx context.Context, id int) (*Litter, error) {
	const q = `SELECT ` + litterColumns + ` FROM litter WHERE id = $1`

	l, err := scanLitter(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get litter: %w", err)
	}
	return l, nil
}

func (s *service) Create(ctx context.Context, breederID int, req *LitterRequest) (*Litter, error) {
	birth, available, err := parseDates(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkParents(ctx, req.MomID, req.DadID); err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO litter (breeder_id, mom_id, dad_id, birth_date, available_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + litterColumns

	l, err := scanLitter(s.db.QueryRow(ctx, q, breederID, req.MomID, req.DadID, birth, available))
	if err != nil {
		return nil, fmt.Errorf("failed to create litter: %w", err)
	}
	return l, nil
}

func (s *service) Update(ctx context.Context, breederID, id int, req *LitterRequest) (*Litter, error) {
	if err := s.OwnedBy(ctx, breederID, id); err != nil {
		return nil, err
	}

	birth, available, err := parseDates(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkParents(ctx, req.MomID, req.DadID); err != nil {
		return nil, err
	}

	const q = `
		UPDATE litter
		SET mom_id = $1, dad_id = $2, birth_date = $3, available_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + litterColumns

	l, err := scanLitter(s.db.QueryRow(ctx, q, req.MomID, req.DadID, birth, available, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update litter: %w", err)
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, breederID, id int) error {
	if err := s.OwnedBy(ctx, breederID, id); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM litter WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete litter: %w", err)
	}
	return nil
}

func (s *service) OwnedBy(ctx context.Context, breederID, id int) error {
	var owner int
	err := s.db.QueryRow(ctx, `SELECT breeder_id FROM litter WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check litter ownership: %w", err)
	}
	if owner != breederID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) checkParents(ctx context.Context, momID, dadID int) error {
	var cnt int
	const q = `SELECT COUNT(*) FROM grumble WHERE id = ANY($1)`
	if err := s.db.QueryRow(ctx, q, []int{momID, dadID}).Scan(&cnt); err != nil {
		return fmt.Errorf("failed to check litter parents: %w", err)
	}
	want := 2
	if momID == dadID {
		want = 1
	}
	if cnt < want {
		return ErrUnknownParent
	}
	return nil
}
