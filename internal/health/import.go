// Package health imports workout and daily-metric exports from wearable
// platforms into the local store.
package health

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"coach/internal/store"
)

// export mirrors the JSON file produced by the phone export shortcut.
type export struct {
	Workouts []exportWorkout `json:"workouts"`
	Metrics  []exportMetric  `json:"metrics"`
}

type exportWorkout struct {
	Type            string    `json:"type"`
	Start           time.Time `json:"start"`
	DurationSeconds int       `json:"duration_seconds"`
	DistanceMeters  *float64  `json:"distance_meters"`
	AvgHeartRate    *float64  `json:"avg_heart_rate"`
	AvgPower        *float64  `json:"avg_power"`
	Name            string    `json:"name"`
}

type exportMetric struct {
	Name  string  `json:"name"`
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// metricAliases maps export metric names onto canonical store names.
var metricAliases = map[string]string{
	"sleep":       store.MetricSleep,
	"sleep_hours": store.MetricSleep,
	"hrv":         store.MetricHRV,
	"resting_hr":  store.MetricRestingHR,
	"rhr":         store.MetricRestingHR,
	"steps":       store.MetricSteps,
	"weight":      store.MetricWeight,
	"body_mass":   store.MetricWeight,
}

// ImportResult summarizes one import run.
type ImportResult struct {
	WorkoutsImported int
	SamplesImported  int
	UnknownMetrics   int     // samples skipped for unrecognized metric names
	Errors           []error // per-row failures; the rest of the file still imports
}

// Import reads a JSON export and upserts its workouts and metric samples.
// Workout ids are derived from type and start time, so re-importing the
// same export updates rows instead of duplicating them.
func Import(db *store.DB, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var ex export
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	result := &ImportResult{}
	for i, w := range ex.Workouts {
		workout, err := convertWorkout(w)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("workout %d: %w", i, err))
			continue
		}
		if err := db.UpsertWorkout(workout); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing workout %s: %w", workout.ID, err))
			continue
		}
		result.WorkoutsImported++
	}

	for i, m := range ex.Metrics {
		name, ok := canonicalMetric(m.Name)
		if !ok {
			result.UnknownMetrics++
			continue
		}
		day, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("metric %d: bad date %q", i, m.Date))
			continue
		}
		sample := &store.HealthSample{Metric: name, Date: day, Value: m.Value}
		if err := db.UpsertHealthSample(sample); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing %s sample: %w", name, err))
			continue
		}
		result.SamplesImported++
	}

	return result, nil
}

func convertWorkout(w exportWorkout) (*store.Workout, error) {
	if w.Start.IsZero() {
		return nil, fmt.Errorf("missing start time")
	}
	if w.DurationSeconds <= 0 {
		return nil, fmt.Errorf("non-positive duration %d", w.DurationSeconds)
	}

	sport := store.NormalizeSport(w.Type)
	name := w.Name
	if name == "" {
		name = strings.ToUpper(sport[:1]) + sport[1:]
	}

	return &store.Workout{
		ID:              workoutID(w),
		Name:            name,
		Sport:           sport,
		StartDate:       w.Start.UTC(),
		DurationSeconds: w.DurationSeconds,
		Distance:        w.DistanceMeters,
		AvgHeartRate:    w.AvgHeartRate,
		AvgPower:        w.AvgPower,
		Source:          store.SourceHealth,
	}, nil
}

// workoutID derives a stable UUID from the workout's identity fields.
func workoutID(w exportWorkout) string {
	key := "health|" + w.Type + "|" + w.Start.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func canonicalMetric(name string) (string, bool) {
	canonical, ok := metricAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}
