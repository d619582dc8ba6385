package migration

import (
	"fmt"

	"bandos-api/core/database"
	"bandos-api/core/logger"
)

// Bootstrap DDL, applied in order at startup. Statements are idempotent so
// repeated boots are safe.
//
// events.band_id, events.created_by, invitations.band_id and
// invitations.invited_by are deliberately NOT foreign keys: deleting a band
// does not cascade, orphaned rows stay behind and readers resolve them with
// placeholder labels.
var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		display_name VARCHAR(255) NOT NULL,
		photo_url TEXT,
		password VARCHAR(255),
		provider VARCHAR(50) NOT NULL DEFAULT 'local',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS oauth_states (
		state VARCHAR(64) PRIMARY KEY,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS bands (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		leader_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS band_members (
		band_id UUID NOT NULL REFERENCES bands(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (band_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		band_id UUID NOT NULL,
		invited_email VARCHAR(255) NOT NULL,
		invited_by UUID NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		token VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invitations_invited_email ON invitations (invited_email)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_band_id ON invitations (band_id)`,

	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		band_id UUID NOT NULL,
		title VARCHAR(255) NOT NULL,
		event_date TIMESTAMPTZ NOT NULL,
		location VARCHAR(255) NOT NULL,
		created_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_band_id ON events (band_id)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		type VARCHAR(50) NOT NULL,
		data JSONB,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id)`,
}

// Run applies the bootstrap schema.
func Run(db database.Database) error {
	logger.Info("Running migrations...")
	for i, stmt := range statements {
		if _, err := db.SQLx().Exec(stmt); err != nil {
			logger.Error("Migration failed", "index", i, "error", err)
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	logger.Info("Migrations applied", "count", len(statements))
	return nil
}
