package intent

import (
	"errors"
	"math"
	"sort"
)

// NaiveBayesTrainer fits a Gaussian naive Bayes model over the numeric
// features plus a Laplace-smoothed categorical term for activity type.
// Deterministic, no hyperparameters, trains instantly at personal-data
// scale.
type NaiveBayesTrainer struct{}

const (
	varianceFloor      = 1e-6
	holdoutEvery       = 5  // every 5th example held out for validation
	holdoutMinExamples = 20 // below this, validate on the training set
)

// Train fits the model. With 20 or more examples, every 5th one is held
// out to measure validation accuracy before refitting on the full set.
func (t *NaiveBayesTrainer) Train(examples []Example) (Model, TrainingMetrics, error) {
	if len(examples) == 0 {
		return nil, TrainingMetrics{}, errors.New("no training examples")
	}

	var train, holdout []Example
	if len(examples) >= holdoutMinExamples {
		for i, ex := range examples {
			if (i+1)%holdoutEvery == 0 {
				holdout = append(holdout, ex)
			} else {
				train = append(train, ex)
			}
		}
	} else {
		train = examples
	}

	var validationAccuracy float64
	if len(holdout) > 0 {
		validationAccuracy = accuracy(fit(train), holdout)
	}

	model := fit(examples)
	trainingAccuracy := accuracy(model, examples)
	if len(holdout) == 0 {
		validationAccuracy = trainingAccuracy
	}

	metrics := TrainingMetrics{
		TrainingAccuracy:   trainingAccuracy,
		ValidationAccuracy: validationAccuracy,
		Examples:           len(examples),
		FeatureImportance:  approximateFeatureImportance,
	}

	return model, metrics, nil
}

type classStats struct {
	count      int
	prior      float64
	means      []float64
	variances  []float64
	typeCounts map[string]int
}

type naiveBayesModel struct {
	classes    []Intent // sorted for deterministic tie-breaking
	stats      map[Intent]*classStats
	categories []string
}

// numericFeatures flattens the Gaussian-modeled fields in a fixed order.
func numericFeatures(f FeatureVector) []float64 {
	return []float64{
		f.DurationMinutes,
		f.Pace,
		f.AvgHeartRate,
		f.AvgPower,
		f.EffortScore,
		f.IsLongDuration,
	}
}

func fit(examples []Example) *naiveBayesModel {
	stats := make(map[Intent]*classStats)
	catSet := make(map[string]bool)

	for _, ex := range examples {
		catSet[ex.Features.ActivityType] = true
		cs, ok := stats[ex.Intent]
		if !ok {
			cs = &classStats{typeCounts: make(map[string]int)}
			stats[ex.Intent] = cs
		}
		cs.count++
		cs.typeCounts[ex.Features.ActivityType]++
	}

	classes := make([]Intent, 0, len(stats))
	for it := range stats {
		classes = append(classes, it)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	categories := make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	nFeatures := len(numericFeatures(FeatureVector{}))
	for _, cs := range stats {
		cs.means = make([]float64, nFeatures)
		cs.variances = make([]float64, nFeatures)
	}

	for _, ex := range examples {
		cs := stats[ex.Intent]
		for i, v := range numericFeatures(ex.Features) {
			cs.means[i] += v
		}
	}
	for _, cs := range stats {
		for i := range cs.means {
			cs.means[i] /= float64(cs.count)
		}
	}

	// Variance floor keeps single-example classes from producing infinite
	// densities.
	for _, ex := range examples {
		cs := stats[ex.Intent]
		for i, v := range numericFeatures(ex.Features) {
			d := v - cs.means[i]
			cs.variances[i] += d * d
		}
	}
	for _, cs := range stats {
		for i := range cs.variances {
			cs.variances[i] /= float64(cs.count)
			if cs.variances[i] < varianceFloor {
				cs.variances[i] = varianceFloor
			}
		}
		cs.prior = float64(cs.count) / float64(len(examples))
	}

	return &naiveBayesModel{
		classes:    classes,
		stats:      stats,
		categories: categories,
	}
}

func (m *naiveBayesModel) Categories() []string {
	return m.categories
}

func (m *naiveBayesModel) Predict(f FeatureVector) (Prediction, error) {
	if len(m.classes) == 0 {
		return Prediction{}, errors.New("model has no classes")
	}

	feats := numericFeatures(f)
	logs := make(map[Intent]float64, len(m.classes))
	maxLog := math.Inf(-1)

	for _, class := range m.classes {
		cs := m.stats[class]
		logp := math.Log(cs.prior)

		// Laplace smoothing covers activity types a class never saw.
		count := cs.typeCounts[f.ActivityType]
		logp += math.Log(float64(count+1) / float64(cs.count+len(m.categories)+1))

		for i, v := range feats {
			logp += gaussianLogDensity(v, cs.means[i], cs.variances[i])
		}

		logs[class] = logp
		if logp > maxLog {
			maxLog = logp
		}
	}

	// Softmax over shifted log-posteriors.
	var sum float64
	probs := make(map[Intent]float64, len(m.classes))
	for _, class := range m.classes {
		p := math.Exp(logs[class] - maxLog)
		probs[class] = p
		sum += p
	}

	best := m.classes[0]
	for _, class := range m.classes {
		probs[class] /= sum
		if probs[class] > probs[best] {
			best = class
		}
	}

	return Prediction{Intent: best, Probabilities: probs}, nil
}

func gaussianLogDensity(x, mean, variance float64) float64 {
	d := x - mean
	return -0.5*math.Log(2*math.Pi*variance) - d*d/(2*variance)
}

func accuracy(m *naiveBayesModel, examples []Example) float64 {
	if len(examples) == 0 {
		return 0
	}
	correct := 0
	for _, ex := range examples {
		pred, err := m.Predict(ex.Features)
		if err == nil && pred.Intent == ex.Intent {
			correct++
		}
	}
	return float64(correct) / float64(len(examples))
}
