// Package database provides the PostgreSQL connection pool shared by all
// feature packages. Access goes through the Service interface so handlers and
// repositories can be tested against fakes.
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/config"
)

// Service defines the interface for database operations
type Service interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Health(ctx context.Context) map[string]string
	Close()
}

type service struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL using DATABASE_URL and returns a pooled Service.
// The pool is bounded so a burst of slow requests cannot exhaust the server's
// connection limit.
func New(ctx context.Context) (Service, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}

	poolCfg.MaxConns = int32(config.GetEnvInt("DB_MAX_CONNS", 10))
	poolCfg.MinConns = int32(config.GetEnvInt("DB_MIN_CONNS", 2))
	poolCfg.MaxConnIdleTime = config.GetEnvDuration("DB_CONN_IDLE_TIME", 5*time.Minute)
	poolCfg.ConnConfig.ConnectTimeout = config.GetEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &service{pool: pool}, nil
}

func (s *service) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return s.pool.QueryRow(ctx, query, args...)
}

func (s *service) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return s.pool.Query(ctx, query, args...)
}

func (s *service) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return s.pool.Exec(ctx, query, args...)
}

func (s *service) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.pool.Begin(ctx)
}

// Health reports pool statistics and whether the database answers a ping.
func (s *service) Health(ctx context.Context) map[string]string {
	status := make(map[string]string)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.pool.Ping(pingCtx); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
		return status
	}

	stats := s.pool.Stat()
	status["status"] = "up"
	status["total_conns"] = fmt.Sprintf("%d", stats.TotalConns())
	status["idle_conns"] = fmt.Sprintf("%d", stats.IdleConns())

	return status
}

func (s *service) Close() {
	s.pool.Close()
}
