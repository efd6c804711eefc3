package intent

import "coach/internal/store"

// EstimatedMaxHR converts average heart rate into an effort percentage.
// Fixed rather than configured; matches the default zone ceiling.
const EstimatedMaxHR = 185.0

// Effort bands as fractions of EstimatedMaxHR.
const (
	raceEffortPct      = 0.85
	tempoEffortPct     = 0.78
	enduranceEffortPct = 0.68
)

// briskSpeeds is the minimum speed (m/s) per sport that reads as a tempo
// effort when no heart-rate data is available.
var briskSpeeds = map[string]float64{
	store.SportRun:  3.3,
	store.SportRide: 7.5,
	store.SportSwim: 1.2,
}

// Classify assigns a training intent to one workout using fixed threshold
// rules. It needs no training data and is a pure function of the workout's
// fields.
func Classify(w store.Workout) Classification {
	minutes := float64(w.DurationSeconds) / 60.0

	if w.Sport == store.SportStrength {
		return labelAs(w, Strength, 0.9)
	}

	// Short or low-heart-rate walks are casual; only a sustained brisk walk
	// counts as easy training.
	if w.Sport == store.SportWalk {
		if minutes < 45 || w.AvgHeartRate == nil || *w.AvgHeartRate < 100 {
			return labelAs(w, CasualWalk, 0.85)
		}
		return labelAs(w, Easy, 0.70)
	}

	if w.AvgHeartRate == nil {
		return classifyWithoutHR(w, minutes)
	}

	pct := *w.AvgHeartRate / EstimatedMaxHR
	switch {
	case pct >= raceEffortPct:
		if minutes >= 15 {
			return labelAs(w, Race, 0.85)
		}
		return labelAs(w, Intervals, 0.80)
	case pct >= tempoEffortPct:
		switch {
		case minutes < 20:
			return labelAs(w, Intervals, 0.75)
		case minutes <= 60:
			return labelAs(w, Tempo, 0.85)
		default:
			return labelAs(w, Tempo, 0.80)
		}
	case pct >= enduranceEffortPct:
		switch {
		case minutes >= 90:
			return labelAs(w, Long, 0.90)
		case minutes >= 45:
			return labelAs(w, Long, 0.75)
		default:
			return labelAs(w, Easy, 0.75)
		}
	default:
		if minutes >= 90 {
			return labelAs(w, Long, 0.80)
		}
		return labelAs(w, Easy, 0.85)
	}
}

// classifyWithoutHR falls back to duration and pace when a workout carries
// no heart-rate data. Confidence stays well below the HR branches.
func classifyWithoutHR(w store.Workout, minutes float64) Classification {
	brisk, cardio := briskSpeeds[w.Sport]
	if !cardio {
		return labelAs(w, Other, 0.30)
	}
	if minutes >= 90 {
		return labelAs(w, Long, 0.60)
	}
	if minutes < 20 {
		return labelAs(w, Intervals, 0.40)
	}
	if w.Distance != nil && w.DurationSeconds > 0 {
		speed := *w.Distance / float64(w.DurationSeconds)
		if speed >= brisk {
			return labelAs(w, Tempo, 0.50)
		}
	}
	return labelAs(w, Easy, 0.45)
}

func labelAs(w store.Workout, it Intent, confidence float64) Classification {
	return Classification{WorkoutID: w.ID, Intent: it, Confidence: confidence}
}

// ClassifyUnlabeled classifies every workout whose ID is not in the
// already-labeled set.
func ClassifyUnlabeled(workouts []store.Workout, labeled map[string]bool) []Classification {
	var out []Classification
	for _, w := range workouts {
		if labeled[w.ID] {
			continue
		}
		out = append(out, Classify(w))
	}
	return out
}
