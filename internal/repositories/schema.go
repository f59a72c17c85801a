package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"tunisia-parks/internal/logger"
)

// schema holds the table definitions, applied idempotently at startup.
// The unique constraint on username and the RESTRICT foreign key from
// species to parks are the authoritative consistency guards.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS parks (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		images TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS species (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		scientific_name TEXT NOT NULL DEFAULT '',
		park_id BIGINT NOT NULL REFERENCES parks(id) ON DELETE RESTRICT,
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'visitor',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
}

// Bootstrap creates the tables if they do not exist yet.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Log.Errorw("schema bootstrap failed", "error", err)
			return err
		}
	}
	logger.Log.Info("schema bootstrap complete")
	return nil
}
