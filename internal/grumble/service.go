package grumble

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
)

var (
	// ErrNotFound is returned when no dog exists with the given id.
	ErrNotFound = errors.New("grumble not found")

	// ErrNotOwner is returned when a breeder tries to modify a dog
	// belonging to someone else.
	ErrNotOwner = errors.New("grumble belongs to another breeder")

	// ErrInvalidBirthDate is returned when the birth date cannot be parsed.
	ErrInvalidBirthDate = errors.New("birth date must be YYYY-MM-DD")
)

type Service interface {
	List(ctx context.Context) ([]Grumble, error)
	Get(ctx context.Context, id int) (*Grumble, error)
	Create(ctx context.Context, breederID int, req *CreateRequest) (*Grumble, error)
	Update(ctx context.Context, breederID, id int, req *UpdateRequest) (*Grumble, error)
	Delete(ctx context.Context, breederID, id int) error
}

type service struct {
	db database.Service
}

func NewService(db database.Service) Service {
	return &service{db: db}
}

const grumbleColumns = `id, breeder_id, name, gender, color, birth_date, bio, image_key, created_at, updated_at`

func scanGrumble(row pgx.Row) (*Grumble, error) {
	var g Grumble
	err := row.Scan(&g.ID, &g.BreederID, &g.Name, &g.Gender, &g.Color,
		&g.BirthDate, &g.Bio, &g.ImageKey, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *service) List(ctx context.Context) ([]Grumble, error) {
	const q = `SELECT ` + grumbleColumns + ` FROM grumble ORDER BY name`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list grumble: %w", err)
	}
	defer rows.Close()

	dogs := []Grumble{}
	for rows.Next() {
		g, err := scanGrumble(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grumble: %w", err)
		}
		dogs = append(dogs, *g)
	}
	return dogs, rows.Err()
}

func (s *service) Get(ctx context.Context, id int) (*Grumble, error) {
	const q = `SELECT ` + grumbleColumns + ` FROM grumble WHERE id = $1`

	g, err := scanGrumble(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grumble: %w", err)
	}
	return g, nil
}

func (s *service) Create(ctx context.Context, breederID int, req *CreateRequest) (*Grumble, error) {
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}

	const q = `
		INSERT INTO grumble (breeder_id, name, gender, color, birth_date, bio, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + grumbleColumns

	g, err := scanGrumble(s.db.QueryRow(ctx, q,
		breederID, req.Name, req.Gender, req.Color, birth, req.Bio, req.ImageKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create grumble: %w", err)
	}
	return g, nil
}

func (s *service) Update(ctx context.Context, breederID, id int, req *UpdateRequest) (*Grumble, error) {
	if err := s.checkOwnership(ctx, breederID, id); err != nil {
		return nil, err
	}

	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}

	const q = `
		UPDATE grumble
		SET name = $1, gender = $2, color = $3, birth_date = $4, bio = $5,
		    image_key = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + grumbleColumns

	g, err := scanGrumble(s.db.QueryRow(ctx, q,
		req.Name, req.Gender, req.Color, birth, req.Bio, req.ImageKey, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update grumble: %w", err)
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, breederID, id int) error {
	if err := s.checkOwnership(ctx, breederID, id); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM grumble WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete grumble: %w", err)
	}
	return nil
}

func (s *service) checkOwnership(ctx context.Context, breederID, id int) error {
	var owner int
	err := s.db.QueryRow(ctx, `SELECT breeder_id FROM grumble WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check grumble ownership: %w", err)
	}
	if owner != breederID {
		return ErrNotOwner
	}
	return nil
}
