package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations holds all schema statements in order. Statements are written
// to be re-runnable: CREATE TABLE/INDEX use IF NOT EXISTS, and ALTER TABLE
// duplicate-column errors are tolerated by Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'draft'
		                   CHECK(status IN ('draft','planning','active','locked','completed')),
		start_date         TEXT NOT NULL,
		sprint_count       INTEGER NOT NULL,
		sprint_length_days INTEGER NOT NULL,
		include_ip_sprint  INTEGER NOT NULL DEFAULT 0,
		current_version    TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		num          INTEGER NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		is_ip_sprint INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		UNIQUE(session_id, num)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_session ON sprints(session_id)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id             TEXT PRIMARY KEY,
		session_id     TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		board_id       TEXT NOT NULL DEFAULT '',
		velocity       INTEGER NOT NULL,
		adjustment_pct INTEGER NOT NULL DEFAULT 100,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_teams_session ON teams(session_id)`,

	`CREATE TABLE IF NOT EXISTS team_sprint_overrides (
		team_id         TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		sprint_num      INTEGER NOT NULL,
		capacity_points INTEGER NOT NULL,
		PRIMARY KEY (team_id, sprint_num)
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id                TEXT PRIMARY KEY,
		session_id        TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		key               TEXT NOT NULL,
		external_key      TEXT NOT NULL DEFAULT '',
		title             TEXT NOT NULL,
		points            INTEGER NOT NULL DEFAULT 0,
		estimated_sprints INTEGER NOT NULL DEFAULT 1,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		UNIQUE(session_id, key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_features_session ON features(session_id)`,

	`CREATE TABLE IF NOT EXISTS feature_dependencies (
		feature_id         TEXT NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		target_feature_key TEXT NOT NULL,
		kind               TEXT NOT NULL
		                   CHECK(kind IN ('blocked_by','blocks','relates_to')),
		ord                INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (feature_id, target_feature_key, kind)
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id                 TEXT PRIMARY KEY,
		session_id         TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		feature_key        TEXT NOT NULL,
		team_id            TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		start_sprint       INTEGER NOT NULL,
		end_sprint         INTEGER NOT NULL,
		allocated_points   INTEGER NOT NULL,
		is_manual_override INTEGER NOT NULL DEFAULT 0,
		rationale          TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		UNIQUE(session_id, feature_key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_session ON assignments(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_team ON assignments(team_id)`,

	`CREATE TABLE IF NOT EXISTS plan_versions (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		label       TEXT NOT NULL,
		comment     TEXT NOT NULL DEFAULT '',
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_versions_session ON plan_versions(session_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
