package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coach/internal/config"
	"coach/internal/intent"
	"coach/internal/store"
)

func newTestService(t *testing.T) (*AnalysisService, *store.DB) {
	t.Helper()
	db := store.NewTestDB(t)
	cfg := config.AnalysisConfig{BootstrapIterations: 500, ConfidenceLevel: 0.95, RandomSeed: 42}
	return NewAnalysisService(db, &intent.NaiveBayesTrainer{}, intent.NewModelCache(), cfg), db
}

func seedRun(t *testing.T, db *store.DB, id string, start time.Time, durationSec int, speed, hr float64) {
	t.Helper()
	distance := speed * float64(durationSec)
	w := &store.Workout{
		ID:              id,
		Name:            "Run",
		Sport:           store.SportRun,
		StartDate:       start,
		DurationSeconds: durationSec,
		Distance:        &distance,
		AvgHeartRate:    &hr,
		Source:          store.SourceStrava,
	}
	if err := db.UpsertWorkout(w); err != nil {
		t.Fatalf("seeding workout %s: %v", id, err)
	}
}

func seedLabel(t *testing.T, db *store.DB, workoutID string, it intent.Intent, source string) {
	t.Helper()
	l := &store.IntentLabel{
		WorkoutID:  workoutID,
		Intent:     string(it),
		Confidence: 1,
		Source:     source,
		LabeledAt:  time.Now().UTC(),
	}
	if err := db.UpsertIntentLabel(l); err != nil {
		t.Fatalf("seeding label %s: %v", workoutID, err)
	}
}

func TestClassifySkipsLabeledWorkouts(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now().UTC()

	seedRun(t, db, "w1", now.AddDate(0, 0, -3), 2400, 2.8, 130)
	seedRun(t, db, "w2", now.AddDate(0, 0, -2), 2400, 3.6, 175)
	seedRun(t, db, "w3", now.AddDate(0, 0, -1), 2400, 2.5, 120)
	seedLabel(t, db, "w1", intent.Easy, store.LabelSourceManual)

	result, err := svc.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if result.Labeled != 2 {
		t.Errorf("Labeled = %d, want 2", result.Labeled)
	}
	if result.AlreadyLabeled != 1 {
		t.Errorf("AlreadyLabeled = %d, want 1", result.AlreadyLabeled)
	}

	manual, err := db.GetIntentLabel("w1")
	if err != nil {
		t.Fatalf("GetIntentLabel(w1): %v", err)
	}
	if manual.Source != store.LabelSourceManual {
		t.Errorf("w1 source = %q, manual label should survive", manual.Source)
	}

	heuristic, err := db.GetIntentLabel("w2")
	if err != nil {
		t.Fatalf("GetIntentLabel(w2): %v", err)
	}
	if heuristic.Source != store.LabelSourceHeuristic {
		t.Errorf("w2 source = %q, want %q", heuristic.Source, store.LabelSourceHeuristic)
	}
	if _, err := intent.ParseIntent(heuristic.Intent); err != nil {
		t.Errorf("w2 intent %q is not a known intent", heuristic.Intent)
	}
}

func TestTrainNeedsEnoughLabels(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("w%d", i)
		seedRun(t, db, id, now.AddDate(0, 0, -i-1), 2400, 2.8, 130)
		seedLabel(t, db, id, intent.Easy, store.LabelSourceHeuristic)
	}

	_, err := svc.Train()
	var insufficient *intent.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientDataError", err)
	}
	if insufficient.Minimum != intent.MinTrainingExamples {
		t.Errorf("Minimum = %d, want %d", insufficient.Minimum, intent.MinTrainingExamples)
	}
}

func TestTrainKeepsManualLabels(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now().UTC()

	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("easy%d", i)
		seedRun(t, db, id, now.AddDate(0, 0, -i*2-1), 2700, 2.5, 125)
		seedLabel(t, db, id, intent.Easy, store.LabelSourceHeuristic)
	}
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("hard%d", i)
		seedRun(t, db, id, now.AddDate(0, 0, -i*2-2), 1800, 3.9, 176)
		seedLabel(t, db, id, intent.Intervals, store.LabelSourceHeuristic)
	}
	// The user corrected one workout by hand.
	seedLabel(t, db, "easy0", intent.Long, store.LabelSourceManual)

	result, err := svc.Train()
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if result.Metrics.Examples != 12 {
		t.Errorf("Examples = %d, want 12", result.Metrics.Examples)
	}
	if result.Classified != 11 {
		t.Errorf("Classified = %d, want 11 with one manual label held back", result.Classified)
	}

	kept, err := db.GetIntentLabel("easy0")
	if err != nil {
		t.Fatalf("GetIntentLabel(easy0): %v", err)
	}
	if kept.Source != store.LabelSourceManual || kept.Intent != string(intent.Long) {
		t.Errorf("easy0 label = %s/%s, want %s/%s",
			kept.Source, kept.Intent, store.LabelSourceManual, intent.Long)
	}

	relabeled, err := db.GetIntentLabel("hard3")
	if err != nil {
		t.Fatalf("GetIntentLabel(hard3): %v", err)
	}
	if relabeled.Source != store.LabelSourceTrainedModel {
		t.Errorf("hard3 source = %q, want %q", relabeled.Source, store.LabelSourceTrainedModel)
	}
}

func TestLabelManual(t *testing.T) {
	svc, db := newTestService(t)
	seedRun(t, db, "w1", time.Now().UTC().AddDate(0, 0, -1), 2400, 3.2, 155)

	if err := svc.Label("w1", "tempo"); err != nil {
		t.Fatalf("Label: %v", err)
	}

	l, err := db.GetIntentLabel("w1")
	if err != nil {
		t.Fatalf("GetIntentLabel: %v", err)
	}
	if l.Intent != string(intent.Tempo) || l.Source != store.LabelSourceManual || l.Confidence != 1.0 {
		t.Errorf("label = %+v, want manual tempo at full confidence", l)
	}
}

func TestLabelErrors(t *testing.T) {
	svc, db := newTestService(t)
	seedRun(t, db, "w1", time.Now().UTC().AddDate(0, 0, -1), 2400, 3.2, 155)

	if err := svc.Label("w1", "sprinting"); err == nil {
		t.Error("unknown intent accepted")
	}
	if err := svc.Label("missing", "tempo"); !errors.Is(err, store.ErrWorkoutNotFound) {
		t.Errorf("err = %v, want ErrWorkoutNotFound", err)
	}
}

func TestReadinessIsSeedDeterministic(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now().UTC()

	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("w%d", i)
		seedRun(t, db, id, now.AddDate(0, 0, -i*2-1), 2400+60*i, 3.0, 150)
		seedLabel(t, db, id, intent.Tempo, store.LabelSourceHeuristic)
	}
	for i := 0; i < 10; i++ {
		day := now.AddDate(0, 0, -i)
		for _, s := range []store.HealthSample{
			{Metric: store.MetricSleep, Date: day, Value: 7.5},
			{Metric: store.MetricHRV, Date: day, Value: 60},
		} {
			if err := db.UpsertHealthSample(&s); err != nil {
				t.Fatalf("seeding sample: %v", err)
			}
		}
	}

	first, err := svc.Readiness()
	if err != nil {
		t.Fatalf("Readiness: %v", err)
	}
	second, err := svc.Readiness()
	if err != nil {
		t.Fatalf("Readiness: %v", err)
	}

	if first.Workload.Ratio.Value != second.Workload.Ratio.Value {
		t.Errorf("ratio %v vs %v, want identical",
			first.Workload.Ratio.Value, second.Workload.Ratio.Value)
	}
	if first.Workload.Ratio.Interval == nil || second.Workload.Ratio.Interval == nil {
		t.Fatal("expected bootstrap intervals on both runs")
	}
	if first.Workload.Ratio.Interval.Lower != second.Workload.Ratio.Interval.Lower ||
		first.Workload.Ratio.Interval.Upper != second.Workload.Ratio.Interval.Upper {
		t.Error("interval differs between runs with a fixed seed")
	}
	if len(first.PerIntent) != len(intent.All) {
		t.Errorf("PerIntent covers %d intents, want %d", len(first.PerIntent), len(intent.All))
	}
	if !first.Quality.EnoughSleepData || !first.Quality.EnoughHRVData {
		t.Errorf("quality = %+v, want sleep and HRV marked sufficient", first.Quality)
	}
}

func TestTrendsRequiresHistory(t *testing.T) {
	svc, _ := newTestService(t)

	analysis, err := svc.Trends()
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if analysis != nil {
		t.Errorf("analysis = %+v, want nil with an empty store", analysis)
	}
}

func TestTrendsWithHistory(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now().UTC()

	for i := 0; i < 16; i++ {
		id := fmt.Sprintf("w%d", i)
		seedRun(t, db, id, now.AddDate(0, 0, -i*5-1), 2400, 2.6+float64(i)*0.02, 150)
	}

	analysis, err := svc.Trends()
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if analysis == nil {
		t.Fatal("analysis = nil, want a result for 16 workouts")
	}
	if analysis.Headline == "" {
		t.Error("empty headline")
	}
	if analysis.Recommendation == "" {
		t.Error("empty recommendation")
	}
}

func TestImportFile(t *testing.T) {
	svc, db := newTestService(t)

	path := filepath.Join(t.TempDir(), "export.json")
	payload := `{
		"workouts": [{"type": "Run", "start": "2025-06-01T07:00:00Z", "duration_seconds": 1800}],
		"metrics": [{"name": "sleep", "date": "2025-06-01", "value": 7.2}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("writing export: %v", err)
	}

	result, err := svc.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.WorkoutsImported != 1 || result.SamplesImported != 1 {
		t.Errorf("imported %d workouts / %d samples, want 1/1",
			result.WorkoutsImported, result.SamplesImported)
	}

	count, err := db.CountWorkouts()
	if err != nil {
		t.Fatalf("CountWorkouts: %v", err)
	}
	if count != 1 {
		t.Errorf("CountWorkouts = %d, want 1", count)
	}
}
