package intent

import (
	"fmt"

	"coach/internal/store"
)

// Classifier trains and applies an intent model over stored workouts.
type Classifier struct {
	trainer Trainer
	cache   *ModelCache
}

// NewClassifier wires a trainer with a model cache. A nil cache disables
// caching.
func NewClassifier(trainer Trainer, cache *ModelCache) *Classifier {
	return &Classifier{trainer: trainer, cache: cache}
}

// Train joins labels to workouts by ID, engineers features, and fits a
// model. Fails with InsufficientDataError below MinTrainingExamples.
func (c *Classifier) Train(workouts []store.Workout, labels []store.IntentLabel) (Model, TrainingMetrics, error) {
	fp := Fingerprint{Workouts: len(workouts), Labels: len(labels)}
	if c.cache != nil {
		if m, metrics, ok := c.cache.Get(fp); ok {
			return m, metrics, nil
		}
	}

	byID := make(map[string]store.Workout, len(workouts))
	for _, w := range workouts {
		byID[w.ID] = w
	}

	var examples []Example
	for _, l := range labels {
		w, ok := byID[l.WorkoutID]
		if !ok {
			continue
		}
		it, err := ParseIntent(l.Intent)
		if err != nil {
			continue
		}
		examples = append(examples, Example{Features: ExtractFeatures(w), Intent: it})
	}

	if len(examples) < MinTrainingExamples {
		return nil, TrainingMetrics{}, &InsufficientDataError{Count: len(examples), Minimum: MinTrainingExamples}
	}

	model, metrics, err := c.trainer.Train(examples)
	if err != nil {
		return nil, TrainingMetrics{}, fmt.Errorf("training intent model: %w", err)
	}

	metrics.Examples = len(examples)
	if metrics.FeatureImportance == nil {
		metrics.FeatureImportance = approximateFeatureImportance
	}

	if c.cache != nil {
		c.cache.Put(fp, model, metrics)
	}

	return model, metrics, nil
}

// Predict classifies one workout with a trained model. The activity type is
// coerced into the model's seen categories so out-of-vocabulary input
// cannot fail the underlying model.
func (c *Classifier) Predict(w store.Workout, model Model) (Classification, error) {
	features := ExtractFeatures(w)
	features.ActivityType = coerceCategory(features.ActivityType, model.Categories())

	pred, err := model.Predict(features)
	if err != nil {
		return Classification{}, err
	}

	confidence := 0.5
	if p, ok := pred.Probabilities[pred.Intent]; ok {
		confidence = p
	}

	return Classification{WorkoutID: w.ID, Intent: pred.Intent, Confidence: confidence}, nil
}

// ClassifyAll predicts an intent for every workout not in the labeled set.
// A failed prediction becomes a low-confidence Other label; the batch never
// aborts.
func (c *Classifier) ClassifyAll(workouts []store.Workout, model Model, labeled map[string]bool) []Classification {
	var out []Classification
	for _, w := range workouts {
		if labeled[w.ID] {
			continue
		}
		cls, err := c.Predict(w, model)
		if err != nil {
			cls = Classification{WorkoutID: w.ID, Intent: Other, Confidence: 0.1}
		}
		out = append(out, cls)
	}
	return out
}

func coerceCategory(category string, seen []string) string {
	for _, s := range seen {
		if s == category {
			return category
		}
	}
	return CategoryOther
}
