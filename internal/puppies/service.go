package puppies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/litters"
)

var (
	ErrNotFound = errors.New("puppy not found")
	ErrNotOwner = errors.New("puppy belongs to another breeder")
)

type Service interface {
	List(ctx context.Context) ([]Puppy, error)
	ListByLitter(ctx context.Context, litterID int) ([]Puppy, error)
	Get(ctx context.Context, id int) (*Puppy, error)
	Create(ctx context.Context, breederID int, req *CreateRequest) (*Puppy, error)
	Update(ctx context.Context, breederID, id int, req *UpdateRequest) (*Puppy, error)
	Delete(ctx context.Context, breederID, id int) error
}

type service struct {
	db      database.Service
	litters litters.Service
}

func NewService(db database.Service, litterSvc litters.Service) Service {
	return &service{db: db, litters: litterSvc}
}

const puppyColumns = `id, litter_id, breeder_id, name, gender, color, status, image_key, created_at, updated_at`

func scanPuppy(row pgx.Row) (*Puppy, error) {
	var p Puppy
	err := row.Scan(&p.ID, &p.LitterID, &p.BreederID, &p.Name, &p.Gender,
		&p.Color, &p.Status, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *service) List(ctx context.Context) ([]Puppy, error) {
	const q = `SELECT ` + puppyColumns + ` FROM puppy ORDER BY created_at DESC`
	return s.queryMany(ctx, q)
}

func (s *service) ListByLitter(ctx context.Context, litterID int) ([]Puppy, error) {
	const q = `SELECT ` + puppyColumns + ` FROM puppy WHERE litter_id = $1 ORDER BY name`
	return s.queryMany(ctx, q, litterID)
}

func (s *service) queryMany(ctx context.Context, q string, args ...any) ([]Puppy, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list puppies: %w", err)
	}
	defer rows.Close()

	pups := []Puppy{}
	for rows.Next() {
		p, err := scanPuppy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan puppy: %w", err)
		}
		pups = append(pups, *p)
	}
	return pups, rows.Err()
}

func (s *service) Get(ctx context.Context, id int) (*Puppy, error) {
	const q = `SELECT ` + puppyColumns + ` FROM puppy WHERE id = $1`

	p, err := scanPuppy(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get puppy: %w", err)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, breederID int, req *CreateRequest) (*Puppy, error) {
	// A puppy can only be added to a litter the breeder owns.
	if err := s.litters.OwnedBy(ctx, breederID, req.LitterID); err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO puppy (litter_id, breeder_id, name, gender, color, status, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + puppyColumns

	p, err := scanPuppy(s.db.QueryRow(ctx, q,
		req.LitterID, breederID, req.Name, req.Gender, req.Color, StatusAvailable, req.ImageKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create puppy: %w", err)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, breederID, id int, req *UpdateRequest) (*Puppy, error) {
	if err := s.checkOwnership(ctx, breederID, id); err != nil {
		return nil, err
	}

	const q = `
		UPDATE puppy
		SET name = $1, gender = $2, color = $3, status = $4, image_key = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + puppyColumns

	p, err := scanPuppy(s.db.QueryRow(ctx, q,
		req.Name, req.Gender, req.Color, req.Status, req.ImageKey, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update puppy: %w", err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, breederID, id int) error {
	if err := s.checkOwnership(ctx, breederID, id); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM puppy WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete puppy: %w", err)
	}
	return nil
}

func (s *service) checkOwnership(ctx context.Context, breederID, id int) error {
	var owner int
	err := s.db.QueryRow(ctx, `SELECT breeder_id FROM puppy WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check puppy ownership: %w", err)
	}
	if owner != breederID {
		return ErrNotOwner
	}
	return nil
}
