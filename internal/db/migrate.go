package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

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
	if err := migrateLegacyUnlockKeys(db); err != nil {
		return fmt.Errorf("renaming legacy unlock keys: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id               TEXT PRIMARY KEY,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		session_type     TEXT NOT NULL DEFAULT 'work'
		                 CHECK(session_type IN ('work','short_break','long_break')),
		completed        INTEGER NOT NULL DEFAULT 0,
		task_label       TEXT
	)`,
	// Databases created before XP idempotency lack this flag.
	`ALTER TABLE sessions ADD COLUMN xp_awarded INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_end_time ON sessions(end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_type_completed ON sessions(session_type, completed)`,

	`CREATE TABLE IF NOT EXISTS user_progress (
		id                       TEXT PRIMARY KEY,
		total_xp                 INTEGER NOT NULL DEFAULT 0 CHECK(total_xp >= 0),
		current_level            INTEGER NOT NULL DEFAULT 1 CHECK(current_level >= 1),
		total_sessions_completed INTEGER NOT NULL DEFAULT 0,
		total_focus_minutes      INTEGER NOT NULL DEFAULT 0,
		current_streak_days      INTEGER NOT NULL DEFAULT 0,
		longest_streak_days      INTEGER NOT NULL DEFAULT 0,
		last_session_date        TEXT
	)`,
	`INSERT OR IGNORE INTO user_progress (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS daily_stats (
		date               TEXT PRIMARY KEY,
		sessions_completed INTEGER NOT NULL DEFAULT 0,
		focus_minutes      INTEGER NOT NULL DEFAULT 0,
		xp_earned          INTEGER NOT NULL DEFAULT 0,
		tasks_completed    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS unlocks (
		id          TEXT PRIMARY KEY,
		unlock_type TEXT NOT NULL,
		unlock_key  TEXT NOT NULL,
		unlocked_at TEXT NOT NULL,
		is_equipped INTEGER NOT NULL DEFAULT 0,
		UNIQUE(unlock_type, unlock_key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_unlocks_equipped ON unlocks(unlock_type, is_equipped)`,
}

// legacyUnlockRenames maps keys used by older releases onto the current
// catalog, per category.
var legacyUnlockRenames = map[string][][2]string{
	"theme": {
		{"default", "midnight"},
		{"ocean_breeze", "ocean"},
		{"dark_forest", "forest"},
		{"sunset_fire", "sunset"},
		{"midnight_pro", "neon"},
	},
	"companion": {
		{"apprentice", "sprout"},
		{"scholar", "ember"},
		{"warrior", "ripple"},
		{"mage", "pixel"},
		{"legend", "zen"},
	},
}

// migrateLegacyUnlockKeys renames the old "character" category and the old
// theme/companion keys. Idempotent: once renamed, no row matches again.
// A legacy row whose new key already exists is dropped instead of renamed,
// which keeps (unlock_type, unlock_key) unique.
func migrateLegacyUnlockKeys(db *sql.DB) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM unlocks WHERE unlock_type = 'character'
		   AND EXISTS (SELECT 1 FROM unlocks u WHERE u.unlock_type = 'companion' AND u.unlock_key = unlocks.unlock_key)`); err != nil {
		return fmt.Errorf("dropping duplicate character rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE unlocks SET unlock_type = 'companion' WHERE unlock_type = 'character'`); err != nil {
		return fmt.Errorf("renaming character category: %w", err)
	}

	for _, category := range []string{"theme", "companion"} {
		for _, pair := range legacyUnlockRenames[category] {
			oldKey, newKey := pair[0], pair[1]
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM unlocks WHERE unlock_type = ? AND unlock_key = ?
				   AND EXISTS (SELECT 1 FROM unlocks u WHERE u.unlock_type = ? AND u.unlock_key = ?)`,
				category, oldKey, category, newKey); err != nil {
				return fmt.Errorf("dropping duplicate %s %q: %w", category, oldKey, err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE unlocks SET unlock_key = ? WHERE unlock_type = ? AND unlock_key = ?`,
				newKey, category, oldKey); err != nil {
				return fmt.Errorf("renaming %s %q: %w", category, oldKey, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing legacy unlock renames: %w", err)
	}
	committed = true
	return nil
}
