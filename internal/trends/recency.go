package trends

import (
	"time"

	"coach/internal/stats"
	"coach/internal/store"
)

// RecencyWindowDays sizes both the trailing window and the comparison
// window before it.
const RecencyWindowDays = 30

// recencyTrendThreshold is the percent change beyond which the short-term
// trend stops counting as stable.
const recencyTrendThreshold = 3.0 // percent

// RecencyTrend labels the short-term direction of the primary metric.
type RecencyTrend string

const (
	RecencyImproving RecencyTrend = "improving"
	RecencyStable    RecencyTrend = "stable"
	RecencyDeclining RecencyTrend = "declining"
)

// Recency compares the trailing window to the window before it.
type Recency struct {
	Metric        MetricMode
	Trend         RecencyTrend
	PercentChange float64
	RecentMean    float64
	PriorMean     float64
	RecentCount   int
	PriorCount    int
	Volatility    float64 // coefficient of variation of the recent window
	Consistency   float64 // 1 - Volatility, floored at zero
}

// AnalyzeRecency compares the last 30 days to the 30 days before them.
// It returns nil when either window has no workouts carrying the metric.
func AnalyzeRecency(workouts []store.Workout, now time.Time) *Recency {
	mode := modeFor(workouts)
	recentCut := now.AddDate(0, 0, -RecencyWindowDays)
	priorCut := now.AddDate(0, 0, -2*RecencyWindowDays)

	var recent, prior []float64
	for _, w := range workouts {
		v, ok := performanceValue(w, mode)
		if !ok || w.StartDate.After(now) {
			continue
		}
		switch {
		case w.StartDate.After(recentCut):
			recent = append(recent, v)
		case w.StartDate.After(priorCut):
			prior = append(prior, v)
		}
	}
	if len(recent) == 0 || len(prior) == 0 {
		return nil
	}

	recentMean := stats.Mean(recent)
	priorMean := stats.Mean(prior)
	if priorMean == 0 {
		return nil
	}
	change := (recentMean - priorMean) / priorMean * 100

	trend := RecencyStable
	switch {
	case change > recencyTrendThreshold:
		trend = RecencyImproving
	case change < -recencyTrendThreshold:
		trend = RecencyDeclining
	}

	volatility := stats.StdDev(recent) / recentMean
	consistency := 1 - volatility
	if consistency < 0 {
		consistency = 0
	}

	return &Recency{
		Metric:        mode,
		Trend:         trend,
		PercentChange: change,
		RecentMean:    recentMean,
		PriorMean:     priorMean,
		RecentCount:   len(recent),
		PriorCount:    len(prior),
		Volatility:    volatility,
		Consistency:   consistency,
	}
}
