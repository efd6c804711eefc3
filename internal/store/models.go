package store

import (
	"strings"
	"time"
)

// Sport values stored on workouts. Anything unrecognized is normalized to
// SportOther before it reaches the database.
const (
	SportRun      = "run"
	SportRide     = "ride"
	SportSwim     = "swim"
	SportWalk     = "walk"
	SportHike     = "hike"
	SportStrength = "strength"
	SportOther    = "other"
)

// NormalizeSport maps a source-specific activity type ("Run", "VirtualRide",
// "WeightTraining", "indoor_cycling") onto one of the Sport constants.
func NormalizeSport(raw string) string {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "run"):
		return SportRun
	case strings.Contains(s, "ride"), strings.Contains(s, "cycl"), strings.Contains(s, "bike"):
		return SportRide
	case strings.Contains(s, "swim"):
		return SportSwim
	case strings.Contains(s, "hike"):
		return SportHike
	case strings.Contains(s, "walk"):
		return SportWalk
	case strings.Contains(s, "weight"), strings.Contains(s, "strength"), strings.Contains(s, "lift"):
		return SportStrength
	default:
		return SportOther
	}
}

// Workout sources.
const (
	SourceStrava = "strava"
	SourceHealth = "health"
)

// Intent label provenance. Manual labels outrank the two automatic sources
// and are never overwritten by them.
const (
	LabelSourceManual       = "manual"
	LabelSourceHeuristic    = "heuristic"
	LabelSourceTrainedModel = "trained-model"
)

// Health metric names as they appear in the health_metrics table.
const (
	MetricSleep     = "Sleep"
	MetricHRV       = "HRV"
	MetricRestingHR = "RHR"
	MetricSteps     = "Steps"
	MetricWeight    = "Weight"
)

// Workout is a single recorded session from any source.
type Workout struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Sport           string    `db:"sport"`
	StartDate       time.Time `db:"start_date"`
	DurationSeconds int       `db:"duration_seconds"`
	Distance        *float64  `db:"distance"`       // meters, nullable
	AvgHeartRate    *float64  `db:"avg_heart_rate"` // bpm, nullable
	AvgPower        *float64  `db:"avg_power"`      // watts, nullable
	Source          string    `db:"source"`
}

// HealthSample is one daily reading of a health metric.
type HealthSample struct {
	Metric string    `db:"metric"`
	Date   time.Time `db:"date"` // day precision
	Value  float64   `db:"value"`
}

// IntentLabel records the training intent assigned to a workout. Each
// workout carries at most one label; re-labeling replaces it.
type IntentLabel struct {
	WorkoutID  string    `db:"workout_id"`
	Intent     string    `db:"intent"`
	Confidence float64   `db:"confidence"`
	Source     string    `db:"source"`
	LabeledAt  time.Time `db:"labeled_at"`
}

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}
