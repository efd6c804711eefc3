package trends

import "coach/internal/store"

// MetricMode identifies which performance number an analysis tracked.
type MetricMode string

const (
	MetricPower MetricMode = "power" // average watts
	MetricSpeed MetricMode = "speed" // meters per second
)

// modeFor picks power when any workout carries it, speed otherwise.
func modeFor(workouts []store.Workout) MetricMode {
	for _, w := range workouts {
		if w.AvgPower != nil && *w.AvgPower > 0 {
			return MetricPower
		}
	}
	return MetricSpeed
}

// performanceValue extracts the workout's primary metric under the given
// mode. The second return reports whether the workout carries that metric.
func performanceValue(w store.Workout, mode MetricMode) (float64, bool) {
	switch mode {
	case MetricPower:
		if w.AvgPower != nil && *w.AvgPower > 0 {
			return *w.AvgPower, true
		}
	case MetricSpeed:
		if w.Distance != nil && *w.Distance > 0 && w.DurationSeconds > 0 {
			return *w.Distance / float64(w.DurationSeconds), true
		}
	}
	return 0, false
}

// performanceValues collects the metric for every workout that carries it.
func performanceValues(workouts []store.Workout, mode MetricMode) []float64 {
	var values []float64
	for _, w := range workouts {
		if v, ok := performanceValue(w, mode); ok {
			values = append(values, v)
		}
	}
	return values
}
