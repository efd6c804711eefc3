package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrLabelNotFound is returned when a workout has no intent label
var ErrLabelNotFound = errors.New("intent label not found")

// UpsertIntentLabel inserts or replaces the label for a workout
func (db *DB) UpsertIntentLabel(l *IntentLabel) error {
	_, err := db.Exec(`
		INSERT INTO intent_labels (workout_id, intent, confidence, source, labeled_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(workout_id) DO UPDATE SET
			intent = excluded.intent,
			confidence = excluded.confidence,
			source = excluded.source,
			labeled_at = excluded.labeled_at
	`, l.WorkoutID, l.Intent, l.Confidence, l.Source, l.LabeledAt.Format(time.RFC3339))
	return err
}

// GetIntentLabel retrieves the label for a workout
func (db *DB) GetIntentLabel(workoutID string) (*IntentLabel, error) {
	row := db.QueryRow(`
		SELECT workout_id, intent, confidence, source, labeled_at
		FROM intent_labels
		WHERE workout_id = ?
	`, workoutID)

	var l IntentLabel
	var labeledAt string
	err := row.Scan(&l.WorkoutID, &l.Intent, &l.Confidence, &l.Source, &labeledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLabelNotFound
	}
	if err != nil {
		return nil, err
	}

	l.LabeledAt, err = time.Parse(time.RFC3339, labeledAt)
	if err != nil {
		return nil, fmt.Errorf("parsing labeled_at %q: %w", labeledAt, err)
	}

	return &l, nil
}

// ListIntentLabels returns every stored label
func (db *DB) ListIntentLabels() ([]IntentLabel, error) {
	rows, err := db.Query(`
		SELECT workout_id, intent, confidence, source, labeled_at
		FROM intent_labels
		ORDER BY labeled_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []IntentLabel
	for rows.Next() {
		var l IntentLabel
		var labeledAt string
		if err := rows.Scan(&l.WorkoutID, &l.Intent, &l.Confidence, &l.Source, &labeledAt); err != nil {
			return nil, err
		}
		l.LabeledAt, err = time.Parse(time.RFC3339, labeledAt)
		if err != nil {
			return nil, fmt.Errorf("parsing labeled_at %q: %w", labeledAt, err)
		}
		labels = append(labels, l)
	}

	return labels, rows.Err()
}

// CountLabelsBySource returns label counts keyed by provenance
func (db *DB) CountLabelsBySource() (map[string]int, error) {
	rows, err := db.Query(`
		SELECT source, COUNT(*)
		FROM intent_labels
		GROUP BY source
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[source] = n
	}

	return counts, rows.Err()
}
