package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/config"
)

// NewPostgresPool creates and validates the pool behind the postgres
// document store. The documents table comes from migrations/ (cmd/migrate).
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxDBConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	var ready bool
	if err := pool.QueryRow(ctx, `SELECT to_regclass('public.documents') IS NOT NULL`).Scan(&ready); err != nil {
		pool.Close()
		return nil, fmt.Errorf("check documents table: %w", err)
	}
	if !ready {
		pool.Close()
		return nil, fmt.Errorf("documents table missing, run `migrate up` first")
	}

	log.Info().
		Int32("max_conns", cfg.MaxDBConns).
		Msg("PostgreSQL connected")

	return pool, nil
}
