package intent

import "fmt"

// MinTrainingExamples is the floor below which training fails outright.
const MinTrainingExamples = 10

// Example is one labeled training row.
type Example struct {
	Features FeatureVector
	Intent   Intent
}

// Prediction is a single model output with its class probabilities.
type Prediction struct {
	Intent        Intent
	Probabilities map[Intent]float64
}

// TrainingMetrics reports how a training run went. FeatureImportance is a
// fixed illustrative table, not a computed permutation importance.
type TrainingMetrics struct {
	TrainingAccuracy   float64
	ValidationAccuracy float64
	Examples           int
	FeatureImportance  map[string]float64
}

// Model predicts an intent from a feature vector. Categories reports the
// activity types seen at training time.
type Model interface {
	Predict(FeatureVector) (Prediction, error)
	Categories() []string
}

// Trainer fits a Model to labeled examples. Any categorical classifier can
// satisfy this; the engineered features are the portable part.
type Trainer interface {
	Train([]Example) (Model, TrainingMetrics, error)
}

// InsufficientDataError reports a training set below the minimum size.
type InsufficientDataError struct {
	Count   int
	Minimum int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d labeled examples to train, have %d", e.Minimum, e.Count)
}

var approximateFeatureImportance = map[string]float64{
	"activityType":    0.30,
	"durationMinutes": 0.20,
	"pace":            0.15,
	"avgHeartRate":    0.15,
	"effortScore":     0.10,
	"avgPower":        0.05,
	"isLongDuration":  0.05,
}
