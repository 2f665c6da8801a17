//go:build integration

package breeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
)

const breederSchema = `
CREATE TABLE IF NOT EXISTS breeder (
	id SERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	experience_years INT NOT NULL DEFAULT 0,
	story TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	profile_image_key TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func setupRepository(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("pugs_test"),
		tcpostgres.WithUsername("pugs"),
		tcpostgres.WithPassword("pugs"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	t.Setenv("DATABASE_URL", connStr)
	db, err := database.New(ctx)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Exec(ctx, breederSchema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return NewRepository(db)
}

func TestRepositoryCreateAndLookup(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &Breeder{
		Email:        "april@example.com",
		PasswordHash: "hash-1",
		FirstName:    "April",
		LastName:     "Carpenter",
		City:         "Jackson",
		State:        "MS",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected a non-zero id")
	}

	b, err := repo.GetByEmail(ctx, "april@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if b == nil || b.ID != id {
		t.Fatalf("Expected breeder %d, got %+v", id, b)
	}
	if !b.Active {
		t.Error("Expected new account to be active")
	}

	b, err = repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if b == nil || b.Email != "april@example.com" {
		t.Errorf("Expected email april@example.com, got %+v", b)
	}

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v", missing)
	}
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	first := &Breeder{Email: "april@example.com", PasswordHash: "hash-1"}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := repo.Create(ctx, &Breeder{Email: "april@example.com", PasswordHash: "hash-2"})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got %v", err)
	}
}

func TestRepositoryUpdatePasswordHash(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &Breeder{Email: "april@example.com", PasswordHash: "old"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.UpdatePasswordHash(ctx, "april@example.com", "new")
	if err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}
	if !updated {
		t.Fatal("Expected the hash to be updated")
	}

	b, err := repo.GetByEmail(ctx, "april@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if b.PasswordHash != "new" {
		t.Errorf("Expected new hash, got %q", b.PasswordHash)
	}

	updated, err = repo.UpdatePasswordHash(ctx, "nobody@example.com", "x")
	if err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}
	if updated {
		t.Error("Expected no update for unknown email")
	}
}

func TestRepositoryGetFirstAndUpdateProfile(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &Breeder{Email: "april@example.com", PasswordHash: "h", FirstName: "April"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, &Breeder{Email: "second@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, err := repo.GetFirst(ctx)
	if err != nil {
		t.Fatalf("GetFirst failed: %v", err)
	}
	if first == nil || first.ID != id {
		t.Fatalf("Expected the oldest account, got %+v", first)
	}

	first.City = "Brandon"
	first.Story = "Raising pugs since 2015."
	if err := repo.UpdateProfile(ctx, first); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	b, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if b.City != "Brandon" || b.Story != "Raising pugs since 2015." {
		t.Errorf("Profile update not persisted: %+v", b)
	}
}
