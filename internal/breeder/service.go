// Package breeder implements breeder accounts: registration, credential
// verification, password resets, and the public profile the site displays.
package breeder

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length at registration
// and reset.
const MinPasswordLength = 8

var (
	// ErrInvalidCredentials is returned for any failed login attempt. It never
	// distinguishes an unknown email from a wrong password, so the endpoint
	// cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists is returned when registering an email that is taken
	ErrEmailExists = errors.New("email already registered")
	// ErrBreederNotFound is returned when no account matches
	ErrBreederNotFound = errors.New("breeder not found")
	// ErrWeakPassword is returned when a password fails the minimum policy
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

// dummyHash keeps the credential check at one bcrypt comparison whether or
// not the account exists, so response timing does not leak which emails are
// registered. The result of comparing against it is always discarded.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Service defines the breeder account operations
type Service interface {
	Register(ctx context.Context, input RegisterInput) (int, error)
	VerifyCredentials(ctx context.Context, email, password string) (int, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	GetByID(ctx context.Context, id int) (*Breeder, error)
	Profile(ctx context.Context) (*Breeder, error)
	UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Breeder, error)
}

type service struct {
	repo Repository
}

// NewService creates a breeder service backed by the given repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register hashes the password and creates the account. The plaintext is
// never stored or logged. bcrypt's default cost is tuned for interactive
// login latency, which is what this endpoint serves.
func (s *service) Register(ctx context.Context, input RegisterInput) (int, error) {
	if len(input.Password) < MinPasswordLength {
		return 0, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	b := &Breeder{
		Email:           input.Email,
		PasswordHash:    string(hash),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		City:            input.City,
		State:           input.State,
		ExperienceYears: input.ExperienceYears,
		Story:           input.Story,
		Phone:           input.Phone,
	}

	return s.repo.Create(ctx, b)
}

// VerifyCredentials checks an email/password pair against the stored hash and
// returns the account id. All failure modes report ErrInvalidCredentials.
func (s *service) VerifyCredentials(ctx context.Context, email, password string) (int, error) {
	b, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	if b == nil || !b.Active {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return 0, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	return b.ID, nil
}

// ResetPassword overwrites the stored hash for the account.
func (s *service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.repo.UpdatePasswordHash(ctx, email, string(hash))
	if err != nil {
		return err
	}
	if !updated {
		return ErrBreederNotFound
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Breeder, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBreederNotFound
	}
	return b, nil
}

// Profile returns the breeder shown on the public site.
func (s *service) Profile(ctx context.Context) (*Breeder, error) {
	b, err := s.repo.GetFirst(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBreederNotFound
	}
	return b, nil
}

func (s *service) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Breeder, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.FirstName = req.FirstName
	b.LastName = req.LastName
	b.City = req.City
	b.State = req.State
	b.ExperienceYears = req.ExperienceYears
	b.Story = req.Story
	b.Phone = req.Phone
	b.Email = req.Email
	b.ProfileImageKey = req.ProfileImageKey

	if err := s.repo.UpdateProfile(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
