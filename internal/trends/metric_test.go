package trends

import (
	"fmt"
	"math"
	"testing"
	"time"

	"coach/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

// speedWorkout is a run covering meters in seconds with no power data.
func speedWorkout(id string, start time.Time, meters float64, seconds int) store.Workout {
	return store.Workout{
		ID:              id,
		Name:            id,
		Sport:           store.SportRun,
		StartDate:       start,
		DurationSeconds: seconds,
		Distance:        floatPtr(meters),
		Source:          store.SourceStrava,
	}
}

// powerWorkout is an hour-long ride at the given average watts. hr may be nil.
func powerWorkout(id string, start time.Time, watts float64, hr *float64) store.Workout {
	return store.Workout{
		ID:              id,
		Name:            id,
		Sport:           store.SportRide,
		StartDate:       start,
		DurationSeconds: 3600,
		AvgPower:        floatPtr(watts),
		AvgHeartRate:    hr,
		Source:          store.SourceStrava,
	}
}

// runSeries spreads count runs at a fixed speed (m/s) across evenly spaced
// days ending just before now.
func runSeries(prefix string, now time.Time, firstDayAgo, stepDays, count int, speed float64) []store.Workout {
	out := make([]store.Workout, count)
	for i := range out {
		start := now.AddDate(0, 0, -(firstDayAgo + i*stepDays))
		out[i] = speedWorkout(fmt.Sprintf("%s%d", prefix, i), start, speed*1000, 1000)
	}
	return out
}

func TestModeForPrefersPower(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	speedOnly := []store.Workout{speedWorkout("a", now, 10000, 3600)}
	if got := modeFor(speedOnly); got != MetricSpeed {
		t.Errorf("modeFor(speed only) = %s, want speed", got)
	}

	mixed := append(speedOnly, powerWorkout("b", now, 220, nil))
	if got := modeFor(mixed); got != MetricPower {
		t.Errorf("modeFor(mixed) = %s, want power", got)
	}

	if got := modeFor(nil); got != MetricSpeed {
		t.Errorf("modeFor(nil) = %s, want speed", got)
	}
}

func TestPerformanceValue(t *testing.T) {
	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	run := speedWorkout("r", now, 9000, 3000)
	v, ok := performanceValue(run, MetricSpeed)
	if !ok || math.Abs(v-3.0) > 1e-9 {
		t.Errorf("speed = %f/%v, want 3.0/true", v, ok)
	}
	if _, ok := performanceValue(run, MetricPower); ok {
		t.Error("run without power should not carry a power value")
	}

	ride := powerWorkout("p", now, 220, nil)
	v, ok = performanceValue(ride, MetricPower)
	if !ok || v != 220 {
		t.Errorf("power = %f/%v, want 220/true", v, ok)
	}
	if _, ok := performanceValue(ride, MetricSpeed); ok {
		t.Error("ride without distance should not carry a speed value")
	}

	noDuration := store.Workout{ID: "z", Distance: floatPtr(5000)}
	if _, ok := performanceValue(noDuration, MetricSpeed); ok {
		t.Error("zero duration should not produce a speed")
	}
}
