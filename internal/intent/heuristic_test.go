package intent

import (
	"testing"
	"time"

	"coach/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

func testWorkout(id, sport string, minutes float64, hr, distance *float64) store.Workout {
	return store.Workout{
		ID:              id,
		Name:            id,
		Sport:           sport,
		StartDate:       time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
		DurationSeconds: int(minutes * 60),
		Distance:        distance,
		AvgHeartRate:    hr,
		Source:          store.SourceStrava,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		workout        store.Workout
		wantIntent     Intent
		wantConfidence float64
	}{
		{
			name:           "strength session",
			workout:        testWorkout("w", store.SportStrength, 30, nil, nil),
			wantIntent:     Strength,
			wantConfidence: 0.9,
		},
		{
			name:           "short walk",
			workout:        testWorkout("w", store.SportWalk, 30, floatPtr(120), nil),
			wantIntent:     CasualWalk,
			wantConfidence: 0.85,
		},
		{
			name:           "long walk without heart rate",
			workout:        testWorkout("w", store.SportWalk, 60, nil, nil),
			wantIntent:     CasualWalk,
			wantConfidence: 0.85,
		},
		{
			name:           "long walk at low heart rate",
			workout:        testWorkout("w", store.SportWalk, 60, floatPtr(90), nil),
			wantIntent:     CasualWalk,
			wantConfidence: 0.85,
		},
		{
			name:           "sustained brisk walk",
			workout:        testWorkout("w", store.SportWalk, 60, floatPtr(110), nil),
			wantIntent:     Easy,
			wantConfidence: 0.70,
		},
		{
			name:           "short very hard run",
			workout:        testWorkout("w", store.SportRun, 12, floatPtr(170), nil),
			wantIntent:     Intervals,
			wantConfidence: 0.80,
		},
		{
			name:           "sustained very hard run",
			workout:        testWorkout("w", store.SportRun, 20, floatPtr(170), nil),
			wantIntent:     Race,
			wantConfidence: 0.85,
		},
		{
			name:           "race duration boundary",
			workout:        testWorkout("w", store.SportRun, 15, floatPtr(160), nil),
			wantIntent:     Race,
			wantConfidence: 0.85,
		},
		{
			name:           "short threshold effort",
			workout:        testWorkout("w", store.SportRun, 15, floatPtr(150), nil),
			wantIntent:     Intervals,
			wantConfidence: 0.75,
		},
		{
			name:           "classic tempo",
			workout:        testWorkout("w", store.SportRun, 45, floatPtr(150), nil),
			wantIntent:     Tempo,
			wantConfidence: 0.85,
		},
		{
			name:           "extended tempo",
			workout:        testWorkout("w", store.SportRun, 75, floatPtr(150), nil),
			wantIntent:     Tempo,
			wantConfidence: 0.80,
		},
		{
			name:           "long aerobic run",
			workout:        testWorkout("w", store.SportRun, 100, floatPtr(135), nil),
			wantIntent:     Long,
			wantConfidence: 0.90,
		},
		{
			name:           "medium aerobic run",
			workout:        testWorkout("w", store.SportRun, 60, floatPtr(135), nil),
			wantIntent:     Long,
			wantConfidence: 0.75,
		},
		{
			name:           "short aerobic run",
			workout:        testWorkout("w", store.SportRun, 30, floatPtr(135), nil),
			wantIntent:     Easy,
			wantConfidence: 0.75,
		},
		{
			name:           "very long recovery ride",
			workout:        testWorkout("w", store.SportRide, 100, floatPtr(110), nil),
			wantIntent:     Long,
			wantConfidence: 0.80,
		},
		{
			name:           "recovery run",
			workout:        testWorkout("w", store.SportRun, 30, floatPtr(110), nil),
			wantIntent:     Easy,
			wantConfidence: 0.85,
		},
		{
			name:           "no heart rate, very long run",
			workout:        testWorkout("w", store.SportRun, 100, nil, nil),
			wantIntent:     Long,
			wantConfidence: 0.60,
		},
		{
			name:           "no heart rate, short run",
			workout:        testWorkout("w", store.SportRun, 15, nil, nil),
			wantIntent:     Intervals,
			wantConfidence: 0.40,
		},
		{
			name:           "no heart rate, brisk run",
			workout:        testWorkout("w", store.SportRun, 40, nil, floatPtr(8000)),
			wantIntent:     Tempo,
			wantConfidence: 0.50,
		},
		{
			name:           "no heart rate, relaxed run",
			workout:        testWorkout("w", store.SportRun, 40, nil, floatPtr(6000)),
			wantIntent:     Easy,
			wantConfidence: 0.45,
		},
		{
			name:           "no heart rate, fast ride",
			workout:        testWorkout("w", store.SportRide, 45, nil, floatPtr(25000)),
			wantIntent:     Tempo,
			wantConfidence: 0.50,
		},
		{
			name:           "no heart rate, hike",
			workout:        testWorkout("w", store.SportHike, 60, nil, nil),
			wantIntent:     Other,
			wantConfidence: 0.30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.workout)
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", got.Intent, tt.wantIntent)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %.2f, want %.2f", got.Confidence, tt.wantConfidence)
			}
			if got.WorkoutID != tt.workout.ID {
				t.Errorf("WorkoutID = %q, want %q", got.WorkoutID, tt.workout.ID)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	w := testWorkout("w", store.SportRun, 45, floatPtr(150), floatPtr(10000))
	first := Classify(w)
	second := Classify(w)
	if first != second {
		t.Errorf("Classify not idempotent: %+v then %+v", first, second)
	}
}

func TestClassifyUnlabeledSkips(t *testing.T) {
	workouts := []store.Workout{
		testWorkout("a", store.SportRun, 45, floatPtr(150), nil),
		testWorkout("b", store.SportRun, 30, floatPtr(110), nil),
		testWorkout("c", store.SportStrength, 30, nil, nil),
	}
	labeled := map[string]bool{"b": true}

	got := ClassifyUnlabeled(workouts, labeled)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].WorkoutID != "a" || got[1].WorkoutID != "c" {
		t.Errorf("classified %s and %s, want a and c", got[0].WorkoutID, got[1].WorkoutID)
	}
}
