package trends

import (
	"fmt"
	"time"

	"coach/internal/stats"
	"coach/internal/store"
)

// MinWorkouts is the fewest workouts Analyze will accept.
const MinWorkouts = 10

// Analysis bundles the three trend windows with a synthesized summary.
type Analysis struct {
	Recency        *Recency
	Seasonal       *Seasonal
	Longitudinal   *Longitudinal
	Headline       string
	Insights       []string
	Recommendation string
	Confidence     stats.ConfidenceTier
}

// Analyze runs the recency, seasonal, and longitudinal analyses and
// synthesizes a headline, insight list, and recommendation from them.
// It returns nil when there are fewer than ten workouts; individual
// sub-analyses may still be nil inside a non-nil result.
func Analyze(workouts []store.Workout, now time.Time) *Analysis {
	if len(workouts) < MinWorkouts {
		return nil
	}

	recency := AnalyzeRecency(workouts, now)
	seasonal := AnalyzeSeasons(workouts, now)
	longitudinal := AnalyzeLongitudinal(workouts)

	recTrend := RecencyStable
	if recency != nil {
		recTrend = recency.Trend
	}
	growth := GrowthPlateaued
	if longitudinal != nil {
		growth = longitudinal.Trend
	}

	return &Analysis{
		Recency:        recency,
		Seasonal:       seasonal,
		Longitudinal:   longitudinal,
		Headline:       headline(recTrend, growth),
		Insights:       insights(recency, seasonal, longitudinal),
		Recommendation: recommendation(recTrend),
		Confidence:     confidence(seasonal),
	}
}

// headline maps the short-term and multi-year trends to one of six fixed
// summaries.
func headline(rec RecencyTrend, growth GrowthTrend) string {
	strong := growth == GrowthStrengthening
	switch {
	case rec == RecencyImproving && strong:
		return "Building on Strong Foundation"
	case rec == RecencyImproving:
		return "Regaining Momentum"
	case rec == RecencyDeclining && strong:
		return "Short-Term Dip on a Rising Base"
	case rec == RecencyDeclining:
		return "Time to Rebuild"
	case strong:
		return "Steady Long-Term Gains"
	default:
		return "Holding Steady"
	}
}

func recommendation(rec RecencyTrend) string {
	switch rec {
	case RecencyImproving:
		return "Recent gains support a progressive increase in training load."
	case RecencyDeclining:
		return "Prioritize recovery before adding intensity."
	default:
		return "Maintain the current training mix."
	}
}

func insights(recency *Recency, seasonal *Seasonal, longitudinal *Longitudinal) []string {
	var out []string
	if recency != nil {
		out = append(out, recencyInsight(recency))
	}
	if seasonal != nil {
		if seasonal.YearOverYear != nil {
			out = append(out, fmt.Sprintf("Averaging %+.1f%% against the same season last year", *seasonal.YearOverYear))
		}
		if seasonal.BestSeason != "" && seasonal.BestSeason != seasonal.CurrentSeason {
			out = append(out, fmt.Sprintf("Historically strongest in %s", seasonal.BestSeason))
		}
	}
	if longitudinal != nil {
		out = append(out, fmt.Sprintf("Multi-year %s trend %s at %+.1f%%/yr across %d hard efforts",
			metricNoun(longitudinal.Metric), longitudinal.Trend, longitudinal.AnnualRate, longitudinal.SampleSize))
	}
	return out
}

func recencyInsight(r *Recency) string {
	switch r.Trend {
	case RecencyImproving:
		return fmt.Sprintf("Recent %s up %.1f%% on the previous month", metricNoun(r.Metric), r.PercentChange)
	case RecencyDeclining:
		return fmt.Sprintf("Recent %s down %.1f%% on the previous month", metricNoun(r.Metric), -r.PercentChange)
	default:
		return fmt.Sprintf("Recent %s steady (%+.1f%%)", metricNoun(r.Metric), r.PercentChange)
	}
}

func metricNoun(mode MetricMode) string {
	if mode == MetricPower {
		return "power"
	}
	return "speed"
}

// confidence reports the current season's tier, since the season in
// progress is what the synthesis speaks to.
func confidence(seasonal *Seasonal) stats.ConfidenceTier {
	if seasonal == nil {
		return stats.TierLow
	}
	for _, s := range seasonal.Seasons {
		if s.Season == seasonal.CurrentSeason {
			return s.Tier
		}
	}
	return stats.TierLow
}
