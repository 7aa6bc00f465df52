package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/coupon-service/internal/config"
)

// Execer runs a statement without reading rows back.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PoolConfig turns the DB settings into a pgxpool configuration.
// Connection fields come from the DSN; pool sizing is set on the struct and
// left at the pgxpool defaults when not positive.
func PoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if poolCfg.MinConns > poolCfg.MaxConns {
		poolCfg.MinConns = poolCfg.MaxConns
	}
	return poolCfg, nil
}

// NewPool opens the coupon store pool and verifies it with a ping.
// Up to cfg.ConnectRetries attempts are made (at least one), sleeping
// 1s, 2s, 4s, ... between them. Cancelling ctx stops the retries.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.ConnectRetries, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := connect(ctx, poolCfg)
		if err == nil {
			log.Info().
				Str("host", poolCfg.ConnConfig.Host).
				Str("database", poolCfg.ConnConfig.Database).
				Int32("max_conns", poolCfg.MaxConns).
				Msg("database connection established")
			return pool, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		wait := retryDelay(attempt)
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("attempts", attempts).
			Dur("next_retry_in", wait).
			Msg("database connection failed, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("connect to database: %w", ctx.Err())
		case <-timer.C:
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		lastErr = ctxErr
	}
	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

func connect(ctx context.Context, poolCfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return pool, nil
}

// retryDelay is the pause after the given 1-based attempt.
func retryDelay(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}
