package readiness

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"coach/internal/intent"
	"coach/internal/stats"
	"coach/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

func loadWorkout(id, sport string, start time.Time, minutes float64) store.Workout {
	return store.Workout{
		ID:              id,
		Name:            id,
		Sport:           sport,
		StartDate:       start,
		DurationSeconds: int(minutes * 60),
		Source:          store.SourceStrava,
	}
}

func TestWorkoutLoad(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		workout store.Workout
		want    float64
	}{
		{"one hour run", loadWorkout("w", store.SportRun, now, 60), 1.2},
		{"one hour swim", loadWorkout("w", store.SportSwim, now, 60), 1.3},
		{"one hour strength", loadWorkout("w", store.SportStrength, now, 60), 1.1},
		{"one hour ride", loadWorkout("w", store.SportRide, now, 60), 1.0},
		{"two hour walk", loadWorkout("w", store.SportWalk, now, 120), 1.0},
		{"one hour hike uses default factor", loadWorkout("w", store.SportHike, now, 60), 1.0},
		{"half hour run", loadWorkout("w", store.SportRun, now, 30), 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkoutLoad(tt.workout); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WorkoutLoad = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTrendBoundaries(t *testing.T) {
	tests := []struct {
		ratio float64
		want  Trend
	}{
		{0.79, TrendDetraining},
		{0.80, TrendOptimal},
		{1.0, TrendOptimal},
		{1.30, TrendOptimal},
		{1.31, TrendBuilding},
	}
	for _, tt := range tests {
		if got := trendFor(tt.ratio); got != tt.want {
			t.Errorf("trendFor(%.2f) = %s, want %s", tt.ratio, got, tt.want)
		}
	}
}

// uniformHistory spreads n identical one-hour tempo runs evenly across the
// chronic window ending at now.
func uniformHistory(n int, now time.Time) ([]store.Workout, map[string]intent.Intent) {
	workouts := make([]store.Workout, n)
	labels := make(map[string]intent.Intent, n)
	step := time.Duration(ChronicWindowDays) * 24 * time.Hour / time.Duration(n)
	for i := range workouts {
		id := string(rune('a'+i/26)) + string(rune('a'+i%26))
		workouts[i] = loadWorkout(id, store.SportRun, now.Add(-time.Duration(i)*step-time.Hour), 60)
		labels[id] = intent.Tempo
	}
	return workouts, labels
}

func TestComputeWorkloadRatioUniformLoad(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	workouts, labels := uniformHistory(40, now)

	rng := rand.New(rand.NewSource(42))
	got := ComputeWorkloadRatio(workouts, labels, now, 1000, stats.DefaultConfidenceLevel, rng)

	if math.Abs(got.Ratio.Value-1.0) > 1e-9 {
		t.Errorf("ratio = %f, want 1.0 for uniform load", got.Ratio.Value)
	}
	if got.Trend != TrendOptimal {
		t.Errorf("trend = %s, want optimal", got.Trend)
	}
	if got.Ratio.Tier != stats.TierHigh {
		t.Errorf("tier = %s, want high with 40 performance workouts", got.Ratio.Tier)
	}
	if got.Ratio.Interval == nil {
		t.Fatal("expected an interval when both windows have samples")
	}
	// Identical per-workout loads collapse every resampled ratio to 1.0.
	if math.Abs(got.Ratio.Interval.Lower-1.0) > 1e-9 || math.Abs(got.Ratio.Interval.Upper-1.0) > 1e-9 {
		t.Errorf("interval = (%f, %f), want collapsed at 1.0", got.Ratio.Interval.Lower, got.Ratio.Interval.Upper)
	}
	if math.Abs(got.AcuteLoad-1.2) > 1e-9 || math.Abs(got.ChronicLoad-1.2) > 1e-9 {
		t.Errorf("loads = %f/%f, want 1.2/1.2", got.AcuteLoad, got.ChronicLoad)
	}
}

func TestComputeWorkloadRatioNoHistory(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(42))

	got := ComputeWorkloadRatio(nil, nil, now, 100, stats.DefaultConfidenceLevel, rng)

	if got.Ratio.Value != 1.0 {
		t.Errorf("ratio = %f, want 1.0 when chronic load is zero", got.Ratio.Value)
	}
	if got.Ratio.Interval != nil {
		t.Error("expected no interval without samples")
	}
	if got.Trend != TrendOptimal {
		t.Errorf("trend = %s, want optimal", got.Trend)
	}
	if got.Ratio.Tier != stats.TierInsufficient {
		t.Errorf("tier = %s, want insufficient", got.Ratio.Tier)
	}
}

func TestComputeWorkloadRatioSkipsNonPerformance(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	workouts := []store.Workout{
		loadWorkout("t1", store.SportRun, now.AddDate(0, 0, -1), 60),
		loadWorkout("t2", store.SportRun, now.AddDate(0, 0, -2), 60),
		loadWorkout("e1", store.SportRun, now.AddDate(0, 0, -1), 60),
		loadWorkout("e2", store.SportRun, now.AddDate(0, 0, -3), 60),
		loadWorkout("u1", store.SportRun, now.AddDate(0, 0, -2), 60),
	}
	labels := map[string]intent.Intent{
		"t1": intent.Tempo,
		"t2": intent.Tempo,
		"e1": intent.Easy,
		"e2": intent.CasualWalk,
	}

	rng := rand.New(rand.NewSource(42))
	got := ComputeWorkloadRatio(workouts, labels, now, 100, stats.DefaultConfidenceLevel, rng)

	if got.Ratio.SampleSize != 2 {
		t.Errorf("SampleSize = %d, want 2 (only tempo workouts count)", got.Ratio.SampleSize)
	}
	if math.Abs(got.Ratio.Value-1.0) > 1e-9 {
		t.Errorf("ratio = %f, want 1.0", got.Ratio.Value)
	}
}

func TestComputeWorkloadRatioBuildingTrend(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	var workouts []store.Workout
	labels := make(map[string]intent.Intent)

	// Light workouts in the older part of the chronic window.
	for i := 0; i < 10; i++ {
		id := "old" + string(rune('0'+i))
		workouts = append(workouts, loadWorkout(id, store.SportRun, now.AddDate(0, 0, -(9+i)), 30))
		labels[id] = intent.Tempo
	}
	// Heavy workouts in the acute window.
	for i := 0; i < 5; i++ {
		id := "new" + string(rune('0'+i))
		workouts = append(workouts, loadWorkout(id, store.SportRun, now.AddDate(0, 0, -(1+i)), 120))
		labels[id] = intent.Tempo
	}

	rng := rand.New(rand.NewSource(42))
	got := ComputeWorkloadRatio(workouts, labels, now, 1000, stats.DefaultConfidenceLevel, rng)

	// acute mean 2.4; chronic mean (10*0.6 + 5*2.4)/15 = 1.2; ratio 2.0.
	if math.Abs(got.Ratio.Value-2.0) > 1e-9 {
		t.Errorf("ratio = %f, want 2.0", got.Ratio.Value)
	}
	if got.Trend != TrendBuilding {
		t.Errorf("trend = %s, want building", got.Trend)
	}
}
