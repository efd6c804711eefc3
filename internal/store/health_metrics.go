package store

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// UpsertHealthSample inserts or updates one daily metric reading
func (db *DB) UpsertHealthSample(s *HealthSample) error {
	_, err := db.Exec(`
		INSERT INTO health_metrics (metric, date, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(metric, date) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, s.Metric, s.Date.Format(dayFormat), s.Value)
	return err
}

// ListHealthSeries returns every sample of a metric ordered by date ascending
func (db *DB) ListHealthSeries(metric string) ([]HealthSample, error) {
	rows, err := db.Query(`
		SELECT metric, date, value
		FROM health_metrics
		WHERE metric = ?
		ORDER BY date ASC
	`, metric)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []HealthSample
	for rows.Next() {
		var s HealthSample
		var date string
		if err := rows.Scan(&s.Metric, &date, &s.Value); err != nil {
			return nil, err
		}
		s.Date, err = time.Parse(dayFormat, date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", date, err)
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// CountHealthSamples returns how many readings exist for a metric
func (db *DB) CountHealthSamples(metric string) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM health_metrics WHERE metric = ?", metric).Scan(&count)
	return count, err
}
