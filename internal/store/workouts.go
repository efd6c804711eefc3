package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrWorkoutNotFound is returned when a workout doesn't exist
var ErrWorkoutNotFound = errors.New("workout not found")

// UpsertWorkout inserts or updates a workout
func (db *DB) UpsertWorkout(w *Workout) error {
	_, err := db.Exec(`
		INSERT INTO workouts (
			id, name, sport, start_date, duration_seconds,
			distance, avg_heart_rate, avg_power, source, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sport = excluded.sport,
			start_date = excluded.start_date,
			duration_seconds = excluded.duration_seconds,
			distance = excluded.distance,
			avg_heart_rate = excluded.avg_heart_rate,
			avg_power = excluded.avg_power,
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP
	`,
		w.ID, w.Name, w.Sport, w.StartDate.Format(time.RFC3339), w.DurationSeconds,
		w.Distance, w.AvgHeartRate, w.AvgPower, w.Source,
	)
	return err
}

// GetWorkout retrieves a workout by ID
func (db *DB) GetWorkout(id string) (*Workout, error) {
	row := db.QueryRow(`
		SELECT id, name, sport, start_date, duration_seconds,
			distance, avg_heart_rate, avg_power, source
		FROM workouts
		WHERE id = ?
	`, id)

	return scanWorkout(row)
}

// ListWorkouts returns all workouts ordered by start date ascending
func (db *DB) ListWorkouts() ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, name, sport, start_date, duration_seconds,
			distance, avg_heart_rate, avg_power, source
		FROM workouts
		ORDER BY start_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// ListRecentWorkouts returns the most recent workouts, newest first
func (db *DB) ListRecentWorkouts(limit int) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, name, sport, start_date, duration_seconds,
			distance, avg_heart_rate, avg_power, source
		FROM workouts
		ORDER BY start_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// CountWorkouts returns the total number of workouts
func (db *DB) CountWorkouts() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&count)
	return count, err
}

// scanWorkout scans a single workout from a row
func scanWorkout(row *sql.Row) (*Workout, error) {
	var w Workout
	var startDate string

	err := row.Scan(
		&w.ID, &w.Name, &w.Sport, &startDate, &w.DurationSeconds,
		&w.Distance, &w.AvgHeartRate, &w.AvgPower, &w.Source,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	w.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date %q: %w", startDate, err)
	}

	return &w, nil
}

// scanWorkouts scans multiple workouts from rows
func scanWorkouts(rows *sql.Rows) ([]Workout, error) {
	var workouts []Workout

	for rows.Next() {
		var w Workout
		var startDate string

		err := rows.Scan(
			&w.ID, &w.Name, &w.Sport, &startDate, &w.DurationSeconds,
			&w.Distance, &w.AvgHeartRate, &w.AvgPower, &w.Source,
		)
		if err != nil {
			return nil, err
		}

		w.StartDate, err = time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date %q: %w", startDate, err)
		}

		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}
