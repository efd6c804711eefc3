package service

import (
	"fmt"
	"strings"

	"coach/internal/health"
	"coach/internal/intent"
	"coach/internal/readiness"
	"coach/internal/trends"
)

// FormatSyncResult renders a sync summary for the terminal.
func FormatSyncResult(r *SyncResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fetched %d activities, stored %d workouts.\n", r.ActivitiesFetched, r.WorkoutsStored)
	writeErrors(&b, r.Errors)
	return b.String()
}

// FormatImportResult renders a health import summary.
func FormatImportResult(r *health.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d workouts and %d metric samples.\n", r.WorkoutsImported, r.SamplesImported)
	if r.UnknownMetrics > 0 {
		fmt.Fprintf(&b, "Skipped %d samples with unrecognized metric names.\n", r.UnknownMetrics)
	}
	writeErrors(&b, r.Errors)
	return b.String()
}

// FormatClassifyResult renders a heuristic labeling summary.
func FormatClassifyResult(r *ClassifyResult) string {
	return fmt.Sprintf("Labeled %d workouts (%d already labeled).\n", r.Labeled, r.AlreadyLabeled)
}

// FormatTrainResult renders a training summary.
func FormatTrainResult(r *TrainResult) string {
	var b strings.Builder
	m := r.Metrics
	fmt.Fprintf(&b, "Trained on %d examples: %.0f%% training / %.0f%% validation accuracy.\n",
		m.Examples, m.TrainingAccuracy*100, m.ValidationAccuracy*100)
	fmt.Fprintf(&b, "Applied the model to %d workouts.\n", r.Classified)
	return b.String()
}

// FormatReadiness renders a full readiness assessment.
func FormatReadiness(a *readiness.Assessment) string {
	var b strings.Builder

	w := a.Workload
	fmt.Fprintf(&b, "Workload ratio: %.2f (%s), acute %.1f vs chronic %.1f load units\n",
		w.Ratio.Value, w.Trend, w.AcuteLoad, w.ChronicLoad)
	if iv := w.Ratio.Interval; iv != nil {
		fmt.Fprintf(&b, "  %d%% CI %.2f-%.2f over %d performance workouts (%s confidence)\n",
			int(iv.Level*100), iv.Lower, iv.Upper, w.Ratio.SampleSize, w.Ratio.Tier)
	}

	rec := a.Recovery
	fmt.Fprintf(&b, "Recovery: %.1fh sleep, HRV %.0f ms, %.1f days since last hard effort\n",
		rec.SleepHours, rec.HRV, rec.DaysSinceHardEffort)

	b.WriteString("\nReadiness by intent:\n")
	for _, ir := range a.PerIntent {
		fmt.Fprintf(&b, "  %-12s %-10s %d labels (%s)\n", ir.Intent, ir.Level, ir.LabelCount, ir.Tier)
	}

	if len(a.Recommended) > 0 {
		fmt.Fprintf(&b, "\nRecommended: %s\n", joinIntents(a.Recommended))
	}
	if len(a.Avoid) > 0 {
		fmt.Fprintf(&b, "Avoid: %s\n", joinIntents(a.Avoid))
	}

	q := a.Quality
	fmt.Fprintf(&b, "Data quality: %s (sleep %s, HRV %s, workouts %s)\n",
		q.Overall, yesNo(q.EnoughSleepData), yesNo(q.EnoughHRVData), yesNo(q.EnoughWorkouts))
	if !a.Validation.IsValid {
		fmt.Fprintf(&b, "Note: %s\n", a.Validation.Message)
	}

	return b.String()
}

// FormatTrends renders the temporal analysis; nil means too little history.
func FormatTrends(a *trends.Analysis) string {
	if a == nil {
		return fmt.Sprintf("Not enough workout history to analyze trends (need at least %d workouts).\n", trends.MinWorkouts)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", a.Headline)
	fmt.Fprintf(&b, "Confidence: %s\n", a.Confidence)

	if len(a.Insights) > 0 {
		b.WriteString("\n")
		for _, in := range a.Insights {
			fmt.Fprintf(&b, "  - %s\n", in)
		}
	}

	if r := a.Recency; r != nil {
		fmt.Fprintf(&b, "\nLast 30 days: %s %.2f vs prior %.2f (%+.1f%%), consistency %.0f%%\n",
			metricLabel(r.Metric), r.RecentMean, r.PriorMean, r.PercentChange, r.Consistency*100)
	}

	if s := a.Seasonal; s != nil {
		b.WriteString("\nSeasons:\n")
		for _, st := range s.Seasons {
			marker := " "
			if st.Season == s.CurrentSeason {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s %-7s %3d workouts, mean %.2f (%s)\n", marker, st.Season, st.Count, st.Mean, st.Tier)
		}
		if s.YearOverYear != nil {
			fmt.Fprintf(&b, "  %+.1f%% vs the same season last year\n", *s.YearOverYear)
		}
	}

	if l := a.Longitudinal; l != nil {
		fmt.Fprintf(&b, "\nLong term: %s, %+.1f%% across %d year(s) at %+.1f%%/yr (%d hard efforts)\n",
			l.Trend, l.TotalChange, l.ElapsedYears, l.AnnualRate, l.SampleSize)
		for _, p := range l.Peaks {
			fmt.Fprintf(&b, "  peak %s: mean %.2f over %d workouts\n", p.Label, p.Mean, p.Count)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", a.Recommendation)
	return b.String()
}

func metricLabel(mode trends.MetricMode) string {
	if mode == trends.MetricPower {
		return "power (W)"
	}
	return "speed (m/s)"
}

func joinIntents(intents []intent.Intent) string {
	parts := make([]string, len(intents))
	for i, it := range intents {
		parts[i] = string(it)
	}
	return strings.Join(parts, ", ")
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func writeErrors(b *strings.Builder, errs []error) {
	if len(errs) == 0 {
		return
	}
	b.WriteString("Errors:\n")
	for _, err := range errs {
		fmt.Fprintf(b, "  - %v\n", err)
	}
}
