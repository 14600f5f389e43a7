// Package postgres keeps the sandbox rows in a jsonb table
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open connects a pool and verifies it with a ping
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	cfg := pool.Config().ConnConfig
	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("database connected")
	return pool, nil
}
