package database

import (
	"context"
	"fmt"
	"time"

	"farmafacil/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Connection attempts made before giving up on a database that is still starting.
const (
	pingAttempts = 5
	pingTimeout  = 5 * time.Second
	pingBackoff  = time.Second
)

// NewPool creates a connection pool for the fixture store and waits until
// the server answers.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	log := logger.With().Str("component", "database").Logger()
	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("creating fixture store connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := waitReady(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Msg("fixture store connection pool ready")

	return pool, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		if attempt == pingAttempts {
			break
		}

		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("database not ready, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to ping database: %w", ctx.Err())
		case <-time.After(pingBackoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("failed to ping database after %d attempts: %w", pingAttempts, err)
}

// Describe returns the connected database name and server version.
func Describe(ctx context.Context, pool *pgxpool.Pool) (name, version string, err error) {
	err = pool.QueryRow(ctx, "SELECT current_database(), current_setting('server_version')").Scan(&name, &version)
	if err != nil {
		return "", "", fmt.Errorf("failed to describe database: %w", err)
	}
	return name, version, nil
}
