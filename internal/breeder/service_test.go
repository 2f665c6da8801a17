package breeder

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	byEmail map[string]*Breeder
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*Breeder), nextID: 1}
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*Breeder, error) {
	if b, ok := f.byEmail[email]; ok {
		copy := *b
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int) (*Breeder, error) {
	for _, b := range f.byEmail {
		if b.ID == id {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetFirst(ctx context.Context) (*Breeder, error) {
	var first *Breeder
	for _, b := range f.byEmail {
		if b.Active && (first == nil || b.ID < first.ID) {
			first = b
		}
	}
	if first == nil {
		return nil, nil
	}
	copy := *first
	return &copy, nil
}

func (f *fakeRepository) Create(ctx context.Context, b *Breeder) (int, error) {
	if _, ok := f.byEmail[b.Email]; ok {
		return 0, ErrEmailExists
	}
	stored := *b
	stored.ID = f.nextID
	stored.Active = true
	f.nextID++
	f.byEmail[b.Email] = &stored
	return stored.ID, nil
}

func (f *fakeRepository) UpdatePasswordHash(ctx context.Context, email, hash string) (bool, error) {
	b, ok := f.byEmail[email]
	if !ok {
		return false, nil
	}
	b.PasswordHash = hash
	return true, nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, b *Breeder) error {
	for _, stored := range f.byEmail {
		if stored.ID == b.ID {
			*stored = *b
			return nil
		}
	}
	return ErrBreederNotFound
}

func registerAlice(t *testing.T, svc Service) int {
	t.Helper()
	id, err := svc.Register(context.Background(), RegisterInput{
		Email:     "alice@example.com",
		Password:  "Secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return id
}

func TestRegisterAndVerifyCredentials(t *testing.T) {
	svc := NewService(newFakeRepository())
	id := registerAlice(t, svc)

	gotID, err := svc.VerifyCredentials(context.Background(), "alice@example.com", "Secret123")
	if err != nil {
		t.Fatalf("VerifyCredentials failed: %v", err)
	}
	if gotID != id {
		t.Errorf("Expected account id %d, got %d", id, gotID)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	registerAlice(t, svc)

	stored := repo.byEmail["alice@example.com"]
	if stored.PasswordHash == "Secret123" {
		t.Fatal("Password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret123")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "alice@example.com",
		Password:  "short",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	registerAlice(t, svc)

	hashBefore := repo.byEmail["alice@example.com"].PasswordHash

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "alice@example.com",
		Password:  "Different123",
		FirstName: "Mallory",
		LastName:  "Smith",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("Expected ErrEmailExists, got %v", err)
	}

	if repo.byEmail["alice@example.com"].PasswordHash != hashBefore {
		t.Error("Duplicate registration altered the first account's hash")
	}
}

func TestVerifyCredentialsUniformFailure(t *testing.T) {
	svc := NewService(newFakeRepository())
	registerAlice(t, svc)

	// Wrong password and unknown account must be indistinguishable
	_, wrongPw := svc.VerifyCredentials(context.Background(), "alice@example.com", "WrongPass1")
	_, noAccount := svc.VerifyCredentials(context.Background(), "bob@example.com", "Secret123")

	if !errors.Is(wrongPw, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPw)
	}
	if !errors.Is(noAccount, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown account, got %v", noAccount)
	}
}

func TestVerifyCredentialsInactiveAccount(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	registerAlice(t, svc)
	repo.byEmail["alice@example.com"].Active = false

	_, err := svc.VerifyCredentials(context.Background(), "alice@example.com", "Secret123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc := NewService(newFakeRepository())
	id := registerAlice(t, svc)

	if err := svc.ResetPassword(context.Background(), "alice@example.com", "NewSecret456"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := svc.VerifyCredentials(context.Background(), "alice@example.com", "Secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("Old password still accepted after reset")
	}
	gotID, err := svc.VerifyCredentials(context.Background(), "alice@example.com", "NewSecret456")
	if err != nil {
		t.Fatalf("New password rejected after reset: %v", err)
	}
	if gotID != id {
		t.Errorf("Expected account id %d, got %d", id, gotID)
	}
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepository())

	err := svc.ResetPassword(context.Background(), "nobody@example.com", "NewSecret456")
	if !errors.Is(err, ErrBreederNotFound) {
		t.Errorf("Expected ErrBreederNotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := NewService(newFakeRepository())
	id := registerAlice(t, svc)

	b, err := svc.UpdateProfile(context.Background(), id, UpdateProfileRequest{
		FirstName:       "Alice",
		LastName:        "Jones",
		City:            "Tulsa",
		State:           "OK",
		ExperienceYears: 6,
		Email:           "alice@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if b.LastName != "Jones" || b.City != "Tulsa" || b.ExperienceYears != 6 {
		t.Errorf("Profile not updated: %+v", b)
	}
}
