package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every statement in order. Statements are idempotent, so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS weeks (
		id          TEXT PRIMARY KEY,
		owner       TEXT NOT NULL,
		template_id TEXT NOT NULL,
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(owner, template_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_weeks_owner ON weeks(owner)`,

	`CREATE TABLE IF NOT EXISTS team_weeks (
		id          TEXT PRIMARY KEY,
		team        TEXT NOT NULL,
		owner       TEXT NOT NULL,
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(team, owner)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_team_weeks_team ON team_weeks(team)`,

	// Records which template a shared week was published from.
	`ALTER TABLE team_weeks ADD COLUMN template_id TEXT NOT NULL DEFAULT ''`,
}
