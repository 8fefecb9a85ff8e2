// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package postgres manages the PostgreSQL connection pool lifecycle.

It wraps 'jackc/pgx/v5/pgxpool' with sensible production defaults and an
eager connectivity check so that misconfiguration fails at startup rather
than on the first request.
*/
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns        = 10
	defaultMinConns        = 2
	defaultMaxConnLifetime = 30 * time.Minute
	defaultMaxConnIdleTime = 5 * time.Minute
	connectTimeout         = 10 * time.Second
)

// NewPool creates a pgx connection pool and verifies connectivity with a ping.
//
// Parameters:
//   - ctx: Governs the initial connection attempt.
//   - databaseURL: A postgres:// connection string.
//
// Returns:
//   - A ready pool, or an error if the URL is invalid or the server is unreachable.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres_parse_config_failed: %w", err)
	}

	cfg.MaxConns = defaultMaxConns
	cfg.MinConns = defaultMinConns
	cfg.MaxConnLifetime = defaultMaxConnLifetime
	cfg.MaxConnIdleTime = defaultMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres_pool_create_failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres_ping_failed: %w", err)
	}

	return pool, nil
}

// Ping verifies pool connectivity. Used by the readiness probe.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return pool.Ping(pingCtx)
}
