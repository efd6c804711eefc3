package service

import (
	"fmt"
	"math/rand"
	"time"

	"coach/internal/config"
	"coach/internal/health"
	"coach/internal/intent"
	"coach/internal/readiness"
	"coach/internal/store"
	"coach/internal/trends"
)

// AnalysisService composes the store with the statistical engine.
type AnalysisService struct {
	store      *store.DB
	classifier *intent.Classifier
	cfg        config.AnalysisConfig
}

// NewAnalysisService wires the engine together. The cache may be nil to
// retrain on every call.
func NewAnalysisService(db *store.DB, trainer intent.Trainer, cache *intent.ModelCache, cfg config.AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		store:      db,
		classifier: intent.NewClassifier(trainer, cache),
		cfg:        cfg,
	}
}

// ClassifyResult reports one heuristic labeling pass.
type ClassifyResult struct {
	Labeled        int
	AlreadyLabeled int
}

// Classify assigns heuristic intent labels to every workout that has none.
// Existing labels of any source are left untouched.
func (s *AnalysisService) Classify() (*ClassifyResult, error) {
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	labels, err := s.store.ListIntentLabels()
	if err != nil {
		return nil, fmt.Errorf("loading labels: %w", err)
	}

	labeled := make(map[string]bool, len(labels))
	for _, l := range labels {
		labeled[l.WorkoutID] = true
	}

	classifications := intent.ClassifyUnlabeled(workouts, labeled)
	for _, c := range classifications {
		if err := s.saveLabel(c, store.LabelSourceHeuristic); err != nil {
			return nil, err
		}
	}

	return &ClassifyResult{
		Labeled:        len(classifications),
		AlreadyLabeled: len(workouts) - len(classifications),
	}, nil
}

// TrainResult reports a model training run and its application.
type TrainResult struct {
	Metrics    intent.TrainingMetrics
	Classified int
}

// Train fits the intent model to all current labels, then re-labels every
// workout that has no manual label. Manual labels stay authoritative; the
// model may overwrite its own and the heuristic's earlier output.
func (s *AnalysisService) Train() (*TrainResult, error) {
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	labels, err := s.store.ListIntentLabels()
	if err != nil {
		return nil, fmt.Errorf("loading labels: %w", err)
	}

	model, metrics, err := s.classifier.Train(workouts, labels)
	if err != nil {
		return nil, err
	}

	manual := make(map[string]bool)
	for _, l := range labels {
		if l.Source == store.LabelSourceManual {
			manual[l.WorkoutID] = true
		}
	}

	classifications := s.classifier.ClassifyAll(workouts, model, manual)
	for _, c := range classifications {
		if err := s.saveLabel(c, store.LabelSourceTrainedModel); err != nil {
			return nil, err
		}
	}

	return &TrainResult{Metrics: metrics, Classified: len(classifications)}, nil
}

// Label stores a manual, authoritative intent for one workout.
func (s *AnalysisService) Label(workoutID, intentName string) error {
	it, err := intent.ParseIntent(intentName)
	if err != nil {
		return err
	}
	if _, err := s.store.GetWorkout(workoutID); err != nil {
		return err
	}
	c := intent.Classification{WorkoutID: workoutID, Intent: it, Confidence: 1.0}
	return s.saveLabel(c, store.LabelSourceManual)
}

// Readiness assembles current workouts, labels, and health series and
// rates readiness for every intent.
func (s *AnalysisService) Readiness() (*readiness.Assessment, error) {
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	labels, err := s.store.ListIntentLabels()
	if err != nil {
		return nil, fmt.Errorf("loading labels: %w", err)
	}
	sleep, err := s.store.ListHealthSeries(store.MetricSleep)
	if err != nil {
		return nil, fmt.Errorf("loading sleep series: %w", err)
	}
	hrv, err := s.store.ListHealthSeries(store.MetricHRV)
	if err != nil {
		return nil, fmt.Errorf("loading HRV series: %w", err)
	}

	assessment := readiness.Assess(workouts, labels, sleep, hrv,
		time.Now(), s.cfg.BootstrapIterations, s.cfg.ConfidenceLevel, s.rng())
	return assessment, nil
}

// Trends runs the full temporal analysis over stored workouts. A nil
// analysis means there is not enough history yet.
func (s *AnalysisService) Trends() (*trends.Analysis, error) {
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	return trends.Analyze(workouts, time.Now()), nil
}

// ImportFile ingests a health export file into the store.
func (s *AnalysisService) ImportFile(path string) (*health.ImportResult, error) {
	return health.Import(s.store, path)
}

func (s *AnalysisService) saveLabel(c intent.Classification, source string) error {
	l := &store.IntentLabel{
		WorkoutID:  c.WorkoutID,
		Intent:     string(c.Intent),
		Confidence: c.Confidence,
		Source:     source,
		LabeledAt:  time.Now().UTC(),
	}
	if err := s.store.UpsertIntentLabel(l); err != nil {
		return fmt.Errorf("labeling workout %s: %w", c.WorkoutID, err)
	}
	return nil
}

// rng builds the bootstrap source; a zero seed draws from the wall clock.
func (s *AnalysisService) rng() *rand.Rand {
	seed := s.cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
