package readiness

import (
	"math/rand"
	"time"

	"coach/internal/intent"
	"coach/internal/stats"
	"coach/internal/store"
)

// Trailing windows for the workload ratio. The acute window is a subset of
// the chronic one.
const (
	AcuteWindowDays   = 7
	ChronicWindowDays = 28
)

// sportLoadFactors weights an hour of each sport. Sports not listed use
// defaultLoadFactor.
var sportLoadFactors = map[string]float64{
	store.SportRun:      1.2,
	store.SportSwim:     1.3,
	store.SportStrength: 1.1,
	store.SportRide:     1.0,
	store.SportWalk:     0.5,
}

const defaultLoadFactor = 1.0

// PerformanceIntents are the intents that count toward training load.
var PerformanceIntents = map[intent.Intent]bool{
	intent.Race:      true,
	intent.Tempo:     true,
	intent.Intervals: true,
	intent.Long:      true,
}

// WorkoutLoad converts one workout into load units: duration in hours
// weighted by the sport factor.
func WorkoutLoad(w store.Workout) float64 {
	factor, ok := sportLoadFactors[w.Sport]
	if !ok {
		factor = defaultLoadFactor
	}
	return float64(w.DurationSeconds) / 3600.0 * factor
}

// Trend describes where the workload ratio sits.
type Trend string

const (
	TrendBuilding   Trend = "building"
	TrendOptimal    Trend = "optimal"
	TrendDetraining Trend = "detraining"
)

const (
	buildingThreshold   = 1.3
	detrainingThreshold = 0.8
)

// WorkloadRatio is the acute:chronic workload ratio with its bootstrap
// interval and confidence tier.
type WorkloadRatio struct {
	Ratio       stats.Result
	AcuteLoad   float64
	ChronicLoad float64
	Trend       Trend
}

// ComputeWorkloadRatio compares mean per-workout load in the trailing 7
// days against the trailing 28 days, over performance-labeled workouts
// only. The ratio defaults to 1.0 when the chronic window carries no load,
// and the interval is omitted when either window is empty.
func ComputeWorkloadRatio(workouts []store.Workout, labels map[string]intent.Intent, now time.Time, iterations int, level float64, rng *rand.Rand) WorkloadRatio {
	acuteCutoff := now.AddDate(0, 0, -AcuteWindowDays)
	chronicCutoff := now.AddDate(0, 0, -ChronicWindowDays)

	var acute, chronic []float64
	performanceCount := 0

	for _, w := range workouts {
		it, ok := labels[w.ID]
		if !ok || !PerformanceIntents[it] {
			continue
		}
		performanceCount++

		if w.StartDate.After(now) {
			continue
		}
		load := WorkoutLoad(w)
		if w.StartDate.After(chronicCutoff) {
			chronic = append(chronic, load)
		}
		if w.StartDate.After(acuteCutoff) {
			acute = append(acute, load)
		}
	}

	acuteLoad := stats.Mean(acute)
	chronicLoad := stats.Mean(chronic)

	ratio := 1.0
	if chronicLoad != 0 {
		ratio = acuteLoad / chronicLoad
	}

	result := stats.Result{
		Value:      ratio,
		SampleSize: performanceCount,
		Tier:       stats.Validate(performanceCount, stats.KindIntentClassification).Tier,
	}
	if len(acute) > 0 && len(chronic) > 0 {
		result.Interval = stats.BootstrapRatioInterval(acute, chronic, iterations, level, rng)
	}

	return WorkloadRatio{
		Ratio:       result,
		AcuteLoad:   acuteLoad,
		ChronicLoad: chronicLoad,
		Trend:       trendFor(ratio),
	}
}

// trendFor buckets a ratio. 0.8 and 1.3 both sit on the optimal side.
func trendFor(ratio float64) Trend {
	switch {
	case ratio > buildingThreshold:
		return TrendBuilding
	case ratio < detrainingThreshold:
		return TrendDetraining
	default:
		return TrendOptimal
	}
}
