package trends

import (
	"sort"
	"time"

	"coach/internal/stats"
	"coach/internal/store"
)

const (
	minLongitudinalWorkouts = 10
	hardEffortPercentile    = 60.0 // of the athlete's own heart-rate distribution

	// Extreme half-to-half swings are almost always data artifacts, so the
	// raw percent change is clamped before annualizing.
	maxPercentChange = 200.0
	minPercentChange = -90.0

	growthTrendThreshold = 10.0 // percent per year

	peakWindowDays  = 90
	peakStepDays    = 30
	peakMinWorkouts = 5
	peakKeep        = 3
)

// GrowthTrend labels the multi-year direction of the primary metric.
type GrowthTrend string

const (
	GrowthStrengthening GrowthTrend = "strengthening"
	GrowthPlateaued     GrowthTrend = "plateaued"
	GrowthWeakening     GrowthTrend = "weakening"
)

// PeakPeriod is a rolling window that ranked among the best stretches of
// training in the series.
type PeakPeriod struct {
	Start time.Time
	End   time.Time
	Label string
	Mean  float64
	Count int
}

// Longitudinal compares the early half of the hard-effort series to the
// late half and annualizes the change.
type Longitudinal struct {
	Metric       MetricMode
	Trend        GrowthTrend
	TotalChange  float64 // percent, early half to late half
	AnnualRate   float64 // percent per year
	ElapsedYears int
	EarlyMean    float64
	LateMean     float64
	SampleSize   int // hard efforts analyzed
	Peaks        []PeakPeriod
}

// periodMode trusts the power series only when at least one workout in the
// period recorded both power and heart rate.
func periodMode(workouts []store.Workout) MetricMode {
	for _, w := range workouts {
		if w.AvgPower != nil && *w.AvgPower > 0 && w.AvgHeartRate != nil {
			return MetricPower
		}
	}
	return MetricSpeed
}

// filterHardEfforts keeps workouts at or above the athlete's own 60th
// heart-rate percentile, so casual sessions don't dilute the trend. When
// no workout has heart-rate data the series passes through unchanged.
func filterHardEfforts(workouts []store.Workout) []store.Workout {
	var hrs []float64
	for _, w := range workouts {
		if w.AvgHeartRate != nil {
			hrs = append(hrs, *w.AvgHeartRate)
		}
	}
	if len(hrs) == 0 {
		return workouts
	}
	cutoff := stats.Percentile(hrs, hardEffortPercentile)

	var hard []store.Workout
	for _, w := range workouts {
		if w.AvgHeartRate != nil && *w.AvgHeartRate >= cutoff {
			hard = append(hard, w)
		}
	}
	return hard
}

// AnalyzeLongitudinal splits the hard-effort series at its temporal
// midpoint and reports the annualized change between the halves. It
// returns nil when fewer than ten hard efforts remain after filtering.
// Halves that measured different metrics (a power meter acquired midway,
// say) are not compared; the trend is reported as plateaued instead.
func AnalyzeLongitudinal(workouts []store.Workout) *Longitudinal {
	filtered := filterHardEfforts(workouts)
	if len(filtered) < minLongitudinalWorkouts {
		return nil
	}

	sorted := make([]store.Workout, len(filtered))
	copy(sorted, filtered)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartDate.Before(sorted[j].StartDate) })

	first := sorted[0].StartDate
	last := sorted[len(sorted)-1].StartDate
	span := last.Sub(first)
	years := int(span.Hours() / (24 * 365.25))
	if years < 1 {
		years = 1
	}

	mode := periodMode(sorted)
	result := &Longitudinal{
		Metric:       mode,
		Trend:        GrowthPlateaued,
		ElapsedYears: years,
		SampleSize:   len(sorted),
		Peaks:        peakPeriods(sorted, mode),
	}

	midpoint := first.Add(span / 2)
	var early, late []store.Workout
	for _, w := range sorted {
		if w.StartDate.Before(midpoint) {
			early = append(early, w)
		} else {
			late = append(late, w)
		}
	}

	earlyMode := periodMode(early)
	if earlyMode != periodMode(late) {
		return result
	}
	earlyVals := performanceValues(early, earlyMode)
	lateVals := performanceValues(late, earlyMode)
	if len(earlyVals) == 0 || len(lateVals) == 0 {
		return result
	}

	earlyMean := stats.Mean(earlyVals)
	lateMean := stats.Mean(lateVals)
	if earlyMean == 0 {
		return result
	}
	change := (lateMean - earlyMean) / earlyMean * 100
	if change > maxPercentChange {
		change = maxPercentChange
	}
	if change < minPercentChange {
		change = minPercentChange
	}
	annual := change / float64(years)

	result.EarlyMean = earlyMean
	result.LateMean = lateMean
	result.TotalChange = change
	result.AnnualRate = annual
	switch {
	case annual > growthTrendThreshold:
		result.Trend = GrowthStrengthening
	case annual < -growthTrendThreshold:
		result.Trend = GrowthWeakening
	}
	return result
}

// peakPeriods slides a 90-day window in 30-day steps across the sorted
// series and returns the best windows with enough workouts to rank.
func peakPeriods(sorted []store.Workout, mode MetricMode) []PeakPeriod {
	if len(sorted) == 0 {
		return nil
	}
	first := sorted[0].StartDate
	last := sorted[len(sorted)-1].StartDate
	window := time.Duration(peakWindowDays) * 24 * time.Hour
	step := time.Duration(peakStepDays) * 24 * time.Hour

	var peaks []PeakPeriod
	for start := first; !start.After(last); start = start.Add(step) {
		end := start.Add(window)
		var values []float64
		for _, w := range sorted {
			if w.StartDate.Before(start) || !w.StartDate.Before(end) {
				continue
			}
			if v, ok := performanceValue(w, mode); ok {
				values = append(values, v)
			}
		}
		if len(values) < peakMinWorkouts {
			continue
		}
		peaks = append(peaks, PeakPeriod{
			Start: start,
			End:   end,
			Label: start.Format("Jan 2006") + " - " + end.Format("Jan 2006"),
			Mean:  stats.Mean(values),
			Count: len(values),
		})
	}

	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Mean > peaks[j].Mean })
	if len(peaks) > peakKeep {
		peaks = peaks[:peakKeep]
	}
	return peaks
}
