package intent

import (
	"strings"

	"coach/internal/store"
)

// FeatureNames lists the engineered features in the order trainers see them.
var FeatureNames = []string{
	"activityType",
	"durationMinutes",
	"pace",
	"avgHeartRate",
	"avgPower",
	"effortScore",
	"isLongDuration",
}

// Closed activity-type categories. Free-text sports fold into these by
// substring match; anything unrecognized becomes CategoryOther.
const (
	CategoryRun      = "Run"
	CategoryRide     = "Ride"
	CategorySwim     = "Swim"
	CategoryWalk     = "Walk"
	CategoryHike     = "Hike"
	CategoryStrength = "Strength"
	CategoryOther    = "Other"
)

const longDurationMinutes = 90.0

// FeatureVector is the engineered representation of one workout.
type FeatureVector struct {
	ActivityType    string
	DurationMinutes float64
	Pace            float64 // min per km, 0 when distance is unknown
	AvgHeartRate    float64 // bpm, 0 when absent
	AvgPower        float64 // watts, 0 when absent
	EffortScore     float64 // clamp((avgHR-60)/100, 0, 1)
	IsLongDuration  float64 // 1 when duration >= 90 minutes
}

// NormalizeActivityType maps a free-text sport name onto the closed
// category set. Hike is checked before walk so compound names like
// "hill walk / hike" read as hikes.
func NormalizeActivityType(sport string) string {
	s := strings.ToLower(sport)
	switch {
	case strings.Contains(s, "run"):
		return CategoryRun
	case strings.Contains(s, "ride") || strings.Contains(s, "cycl") || strings.Contains(s, "bike"):
		return CategoryRide
	case strings.Contains(s, "swim"):
		return CategorySwim
	case strings.Contains(s, "hike"):
		return CategoryHike
	case strings.Contains(s, "walk"):
		return CategoryWalk
	case strings.Contains(s, "strength") || strings.Contains(s, "weight") || strings.Contains(s, "lift"):
		return CategoryStrength
	default:
		return CategoryOther
	}
}

// ExtractFeatures engineers the model features from a stored workout.
func ExtractFeatures(w store.Workout) FeatureVector {
	minutes := float64(w.DurationSeconds) / 60.0

	var pace float64
	if w.Distance != nil && *w.Distance > 0 {
		pace = minutes / (*w.Distance / 1000.0)
	}

	var hr float64
	if w.AvgHeartRate != nil {
		hr = *w.AvgHeartRate
	}

	var power float64
	if w.AvgPower != nil {
		power = *w.AvgPower
	}

	effort := (hr - 60) / 100
	if effort < 0 {
		effort = 0
	}
	if effort > 1 {
		effort = 1
	}

	var isLong float64
	if minutes >= longDurationMinutes {
		isLong = 1
	}

	return FeatureVector{
		ActivityType:    NormalizeActivityType(w.Sport),
		DurationMinutes: minutes,
		Pace:            pace,
		AvgHeartRate:    hr,
		AvgPower:        power,
		EffortScore:     effort,
		IsLongDuration:  isLong,
	}
}
