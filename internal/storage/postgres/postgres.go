// Package postgres persists career summaries to PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/umacareer/internal/config"
)

// ErrSchemaMissing is returned by Ready when the careers table has not been
// created; run cmd/migrate first.
var ErrSchemaMissing = errors.New("careers schema missing")

// applicationName tags the simulator's sessions in pg_stat_activity.
const applicationName = "umacareer"

// Pool owns the pgx connection pool career history is written through.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the career history database described by cfg.
//
// Precondition: cfg must pass config.DatabaseConfig validation.
// Postcondition: Returns a Pool that answered a ping, or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s at %s:%d: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// Ready reports whether the database answers within timeout and holds the
// careers table.
//
// Postcondition: Returns nil, ErrSchemaMissing, or a connection error.
func (p *Pool) Ready(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var exists bool
	err := p.pool.QueryRow(ctx, `SELECT to_regclass('public.careers') IS NOT NULL`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking careers schema: %w", err)
	}
	if !exists {
		return ErrSchemaMissing
	}
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pool for repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
