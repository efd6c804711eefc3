package intent

import (
	"math"
	"testing"
)

func easyExample(minutes, hr float64) Example {
	return Example{
		Features: FeatureVector{
			ActivityType:    CategoryRun,
			DurationMinutes: minutes,
			Pace:            6.0,
			AvgHeartRate:    hr,
			EffortScore:     (hr - 60) / 100,
		},
		Intent: Easy,
	}
}

func intervalsExample(minutes, hr float64) Example {
	return Example{
		Features: FeatureVector{
			ActivityType:    CategoryRun,
			DurationMinutes: minutes,
			Pace:            4.0,
			AvgHeartRate:    hr,
			EffortScore:     (hr - 60) / 100,
		},
		Intent: Intervals,
	}
}

func separableExamples() []Example {
	return []Example{
		easyExample(40, 120), easyExample(45, 125), easyExample(50, 122),
		easyExample(42, 128), easyExample(48, 118), easyExample(44, 124),
		intervalsExample(20, 170), intervalsExample(22, 172), intervalsExample(18, 175),
		intervalsExample(25, 168), intervalsExample(21, 171), intervalsExample(19, 174),
	}
}

func TestNaiveBayesTrainsSeparableData(t *testing.T) {
	trainer := &NaiveBayesTrainer{}

	model, metrics, err := trainer.Train(separableExamples())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if metrics.Examples != 12 {
		t.Errorf("Examples = %d, want 12", metrics.Examples)
	}
	if metrics.TrainingAccuracy < 0.9 {
		t.Errorf("TrainingAccuracy = %f, want >= 0.9 on cleanly separated data", metrics.TrainingAccuracy)
	}

	pred, err := model.Predict(easyExample(46, 123).Features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.Intent != Easy {
		t.Errorf("predicted %s for an easy-profile run, want easy", pred.Intent)
	}

	pred, err = model.Predict(intervalsExample(20, 173).Features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.Intent != Intervals {
		t.Errorf("predicted %s for an intervals-profile run, want intervals", pred.Intent)
	}
}

func TestNaiveBayesProbabilitiesNormalized(t *testing.T) {
	trainer := &NaiveBayesTrainer{}
	model, _, err := trainer.Train(separableExamples())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	pred, err := model.Predict(easyExample(45, 130).Features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	var sum float64
	for _, p := range pred.Probabilities {
		if p < 0 || p > 1 {
			t.Errorf("probability %f outside [0,1]", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}

	best := pred.Probabilities[pred.Intent]
	for it, p := range pred.Probabilities {
		if p > best {
			t.Errorf("%s has probability %f above the predicted class's %f", it, p, best)
		}
	}
}

func TestNaiveBayesCategories(t *testing.T) {
	examples := separableExamples()
	examples[0].Features.ActivityType = CategoryWalk

	trainer := &NaiveBayesTrainer{}
	model, _, err := trainer.Train(examples)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	got := model.Categories()
	if len(got) != 2 || got[0] != CategoryRun || got[1] != CategoryWalk {
		t.Errorf("Categories = %v, want [Run Walk]", got)
	}
}

func TestNaiveBayesHoldoutValidation(t *testing.T) {
	var examples []Example
	for i := 0; i < 13; i++ {
		examples = append(examples, easyExample(40+float64(i), 118+float64(i)))
	}
	for i := 0; i < 12; i++ {
		examples = append(examples, intervalsExample(18+float64(i%6), 168+float64(i%8)))
	}

	trainer := &NaiveBayesTrainer{}
	_, metrics, err := trainer.Train(examples)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if metrics.ValidationAccuracy < 0 || metrics.ValidationAccuracy > 1 {
		t.Errorf("ValidationAccuracy = %f, want within [0,1]", metrics.ValidationAccuracy)
	}
	if metrics.ValidationAccuracy < 0.8 {
		t.Errorf("ValidationAccuracy = %f, want >= 0.8 on separable data", metrics.ValidationAccuracy)
	}
}

func TestNaiveBayesDeterministic(t *testing.T) {
	trainer := &NaiveBayesTrainer{}

	a, _, err := trainer.Train(separableExamples())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	b, _, err := trainer.Train(separableExamples())
	if err != nil {
		t.Fatalf("Train (second): %v", err)
	}

	probe := easyExample(47, 121).Features
	predA, _ := a.Predict(probe)
	predB, _ := b.Predict(probe)
	if predA.Intent != predB.Intent {
		t.Errorf("same data trained to different predictions: %s vs %s", predA.Intent, predB.Intent)
	}
	for it, p := range predA.Probabilities {
		if math.Abs(predB.Probabilities[it]-p) > 1e-12 {
			t.Errorf("probability for %s differs between identical training runs", it)
		}
	}
}

func TestNaiveBayesEmptyTrainingSet(t *testing.T) {
	trainer := &NaiveBayesTrainer{}
	if _, _, err := trainer.Train(nil); err == nil {
		t.Error("expected error for empty training set")
	}
}
