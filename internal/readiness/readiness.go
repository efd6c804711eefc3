package readiness

import (
	"math/rand"
	"sort"
	"time"

	"coach/internal/intent"
	"coach/internal/stats"
	"coach/internal/store"
)

// Defaults used when a health series has no recent samples.
const (
	defaultSleepHours    = 7.0  // hours
	defaultHRV           = 50.0 // ms
	defaultDaysSinceHard = 7.0

	sleepLookbackDays = 3
	hrvLookbackDays   = 7
)

// Data-quality thresholds.
const (
	minSleepPoints         = 7
	minHRVPoints           = 7
	minPerformanceCount    = 5
	goodQualityPoints      = 15
	excellentQualityPoints = 30
)

// hardIntents mark the efforts that reset days-since-hard-effort.
var hardIntents = map[intent.Intent]bool{
	intent.Race:      true,
	intent.Tempo:     true,
	intent.Intervals: true,
}

// IntentReadiness rates one intent together with how much labeled history
// backs the rating.
type IntentReadiness struct {
	Intent     intent.Intent
	Level      Level
	LabelCount int
	Tier       stats.ConfidenceTier
}

// DataQuality summarizes input coverage.
type DataQuality struct {
	EnoughSleepData bool
	EnoughHRVData   bool
	EnoughWorkouts  bool
	Overall         Level
}

// Assessment is a full readiness report, recomputed fresh per call.
type Assessment struct {
	Workload    WorkloadRatio
	Recovery    RecoveryState
	PerIntent   []IntentReadiness
	Recommended []intent.Intent
	Avoid       []intent.Intent
	Validation  stats.Validation
	Quality     DataQuality
}

// Assess rates readiness for every intent from current workouts, labels,
// and health series. It always returns an assessment; missing inputs fall
// back to the documented defaults and lower the reported data quality.
func Assess(workouts []store.Workout, labels []store.IntentLabel, sleep, hrv []store.HealthSample, now time.Time, iterations int, level float64, rng *rand.Rand) *Assessment {
	intentByID := make(map[string]intent.Intent, len(labels))
	labelCounts := make(map[intent.Intent]int)
	for _, l := range labels {
		it, err := intent.ParseIntent(l.Intent)
		if err != nil {
			continue
		}
		intentByID[l.WorkoutID] = it
		labelCounts[it]++
	}

	workload := ComputeWorkloadRatio(workouts, intentByID, now, iterations, level, rng)
	acwr := workload.Ratio.Value

	recovery := RecoveryState{
		SleepHours:          recentAverage(sleep, now, sleepLookbackDays, defaultSleepHours),
		HRV:                 recentAverage(hrv, now, hrvLookbackDays, defaultHRV),
		DaysSinceHardEffort: daysSinceHardEffort(workouts, intentByID, now),
	}

	perIntent := make([]IntentReadiness, 0, len(intent.All))
	levelByIntent := make(map[intent.Intent]Level, len(intent.All))
	var recommended, avoid []intent.Intent

	for _, it := range intent.All {
		level := levelFor(it, acwr, recovery)
		count := labelCounts[it]
		tier := stats.Validate(count, stats.KindIntentClassification).Tier

		perIntent = append(perIntent, IntentReadiness{
			Intent:     it,
			Level:      level,
			LabelCount: count,
			Tier:       tier,
		})
		levelByIntent[it] = level

		// Only recommend intents whose rating rests on some labeled history.
		if (level == LevelExcellent || level == LevelGood) && tier != stats.TierInsufficient {
			recommended = append(recommended, it)
		}
		if level == LevelPoor {
			avoid = append(avoid, it)
		}
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return levelPriority[levelByIntent[recommended[i]]] > levelPriority[levelByIntent[recommended[j]]]
	})

	performanceCount := workload.Ratio.SampleSize

	quality := DataQuality{
		EnoughSleepData: len(sleep) >= minSleepPoints,
		EnoughHRVData:   len(hrv) >= minHRVPoints,
		EnoughWorkouts:  performanceCount >= minPerformanceCount,
	}
	quality.Overall = overallQuality(len(sleep), len(hrv), performanceCount, quality)

	return &Assessment{
		Workload:    workload,
		Recovery:    recovery,
		PerIntent:   perIntent,
		Recommended: recommended,
		Avoid:       avoid,
		Validation:  stats.Validate(performanceCount, stats.KindIntentClassification),
		Quality:     quality,
	}
}

func overallQuality(sleepPoints, hrvPoints, performanceCount int, q DataQuality) Level {
	switch {
	case sleepPoints >= excellentQualityPoints && hrvPoints >= excellentQualityPoints && performanceCount >= excellentQualityPoints:
		return LevelExcellent
	case sleepPoints >= goodQualityPoints && hrvPoints >= goodQualityPoints && performanceCount >= goodQualityPoints:
		return LevelGood
	case q.EnoughSleepData && q.EnoughHRVData && q.EnoughWorkouts:
		return LevelFair
	default:
		return LevelPoor
	}
}

// recentAverage means the samples inside the lookback window, falling back
// to a default when none exist.
func recentAverage(samples []store.HealthSample, now time.Time, lookbackDays int, fallback float64) float64 {
	cutoff := now.AddDate(0, 0, -lookbackDays)
	var values []float64
	for _, s := range samples {
		if s.Date.After(cutoff) && !s.Date.After(now) {
			values = append(values, s.Value)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return stats.Mean(values)
}

func daysSinceHardEffort(workouts []store.Workout, labels map[string]intent.Intent, now time.Time) float64 {
	var latest time.Time
	for _, w := range workouts {
		if !hardIntents[labels[w.ID]] || w.StartDate.After(now) {
			continue
		}
		if w.StartDate.After(latest) {
			latest = w.StartDate
		}
	}
	if latest.IsZero() {
		return defaultDaysSinceHard
	}
	return now.Sub(latest).Hours() / 24
}
