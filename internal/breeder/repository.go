package breeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
)

const breederColumns = `id, email, password_hash, first_name, last_name, city, state,
	experience_years, story, phone, profile_image_key, is_active, is_admin,
	created_at, updated_at`

// Repository defines the persistence operations the breeder service needs.
// It is an interface so the service can be tested without a database.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Breeder, error)
	GetByID(ctx context.Context, id int) (*Breeder, error)
	GetFirst(ctx context.Context) (*Breeder, error)
	Create(ctx context.Context, b *Breeder) (int, error)
	UpdatePasswordHash(ctx context.Context, email, hash string) (bool, error)
	UpdateProfile(ctx context.Context, b *Breeder) error
}

type pgxRepository struct {
	db database.Service
}

// NewRepository creates a PostgreSQL-backed breeder repository.
func NewRepository(db database.Service) Repository {
	return &pgxRepository{db: db}
}

func scanBreeder(row pgx.Row) (*Breeder, error) {
	var b Breeder
	err := row.Scan(
		&b.ID, &b.Email, &b.PasswordHash, &b.FirstName, &b.LastName,
		&b.City, &b.State, &b.ExperienceYears, &b.Story, &b.Phone,
		&b.ProfileImageKey, &b.Active, &b.Admin, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByEmail returns the account for the email, or (nil, nil) when absent.
// Email comparison is exact as stored; no case folding happens here.
func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Breeder, error) {
	query := fmt.Sprintf(`SELECT %s FROM breeder WHERE email = $1`, breederColumns)

	b, err := scanBreeder(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query breeder by email: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int) (*Breeder, error) {
	query := fmt.Sprintf(`SELECT %s FROM breeder WHERE id = $1`, breederColumns)

	b, err := scanBreeder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query breeder by id: %w", err)
	}
	return b, nil
}

// GetFirst returns the site's breeder profile. The original deployment serves
// a single breeder, so the oldest account is the public face of the site.
func (r *pgxRepository) GetFirst(ctx context.Context) (*Breeder, error) {
	query := fmt.Sprintf(`SELECT %s FROM breeder WHERE is_active ORDER BY id LIMIT 1`, breederColumns)

	b, err := scanBreeder(r.db.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query breeder profile: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Breeder) (int, error) {
	query := `
		INSERT INTO breeder (
			email, password_hash, first_name, last_name, city, state,
			experience_years, story, phone, is_active, is_admin,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, FALSE, NOW(), NOW())
		RETURNING id
	`

	var id int
	err := r.db.QueryRow(ctx, query,
		b.Email, b.PasswordHash, b.FirstName, b.LastName,
		b.City, b.State, b.ExperienceYears, b.Story, b.Phone,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailExists
		}
		return 0, fmt.Errorf("failed to create breeder: %w", err)
	}

	return id, nil
}

// UpdatePasswordHash overwrites the stored hash, returning false when no
// account matches the email.
func (r *pgxRepository) UpdatePasswordHash(ctx context.Context, email, hash string) (bool, error) {
	query := `UPDATE breeder SET password_hash = $1, updated_at = NOW() WHERE email = $2`

	tag, err := r.db.Exec(ctx, query, hash, email)
	if err != nil {
		return false, fmt.Errorf("failed to update password hash: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgxRepository) UpdateProfile(ctx context.Context, b *Breeder) error {
	query := `
		UPDATE breeder
		SET first_name = $1, last_name = $2, city = $3, state = $4,
			experience_years = $5, story = $6, phone = $7, email = $8,
			profile_image_key = $9, updated_at = NOW()
		WHERE id = $10
	`

	tag, err := r.db.Exec(ctx, query,
		b.FirstName, b.LastName, b.City, b.State,
		b.ExperienceYears, b.Story, b.Phone, b.Email,
		b.ProfileImageKey, b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to update breeder profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBreederNotFound
	}
	return nil
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
