package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Schema creates the coupon table. Safe to run on every boot.
const Schema = `
	CREATE TABLE IF NOT EXISTS coupon (
		id VARCHAR(36) PRIMARY KEY,
		description TEXT NOT NULL,
		value NUMERIC NOT NULL,
		expiration_date DATE NOT NULL,
		expired BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
`

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	log.Info().Msg("database schema ready")
	return nil
}
