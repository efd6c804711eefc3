package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Workouts from every source (Strava sync, health imports)
		`CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sport TEXT NOT NULL,
			start_date TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			distance REAL,
			avg_heart_rate REAL,
			avg_power REAL,
			source TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_start_date ON workouts(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_sport ON workouts(sport)`,

		// Daily health metrics (one row per metric per day)
		`CREATE TABLE IF NOT EXISTS health_metrics (
			metric TEXT NOT NULL,
			date TEXT NOT NULL,
			value REAL NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (metric, date)
		)`,

		// Intent labels (at most one per workout)
		`CREATE TABLE IF NOT EXISTS intent_labels (
			workout_id TEXT PRIMARY KEY,
			intent TEXT NOT NULL,
			confidence REAL NOT NULL,
			source TEXT NOT NULL,
			labeled_at TEXT NOT NULL,
			FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_intent_labels_intent ON intent_labels(intent)`,
		`CREATE INDEX IF NOT EXISTS idx_intent_labels_source ON intent_labels(source)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
