package readiness

import "coach/internal/intent"

// Level rates how ready the athlete is for an intent.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelFair      Level = "fair"
	LevelPoor      Level = "poor"
)

// levelPriority orders levels for recommendation sorting.
var levelPriority = map[Level]int{
	LevelExcellent: 3,
	LevelGood:      2,
	LevelFair:      1,
	LevelPoor:      0,
}

// RecoveryState bundles the recovery inputs the threshold ladders read.
type RecoveryState struct {
	SleepHours          float64
	HRV                 float64
	DaysSinceHardEffort float64
}

// levelFor applies the per-intent threshold ladder. The thresholds are
// fixed heuristics, not learned values.
func levelFor(it intent.Intent, acwr float64, rec RecoveryState) Level {
	switch it {
	case intent.Race:
		switch {
		case acwr <= 1.2 && rec.SleepHours >= 7.5 && rec.HRV >= 50 && rec.DaysSinceHardEffort >= 2:
			return LevelExcellent
		case acwr <= 1.4 && rec.SleepHours >= 7.0:
			return LevelGood
		case acwr <= 1.5:
			return LevelFair
		default:
			return LevelPoor
		}
	case intent.Tempo:
		switch {
		case acwr <= 1.3 && rec.SleepHours >= 7.0:
			return LevelExcellent
		case acwr <= 1.5:
			return LevelGood
		default:
			return LevelFair
		}
	case intent.Intervals:
		switch {
		case acwr <= 1.2 && rec.SleepHours >= 7.0 && rec.DaysSinceHardEffort >= 1:
			return LevelExcellent
		case acwr <= 1.4 && rec.SleepHours >= 6.5:
			return LevelGood
		case acwr <= 1.5:
			return LevelFair
		default:
			return LevelPoor
		}
	case intent.Easy:
		switch {
		case acwr <= 1.6:
			return LevelExcellent
		case acwr <= 1.8:
			return LevelGood
		default:
			return LevelFair
		}
	case intent.Long:
		switch {
		case acwr >= 0.9 && acwr <= 1.3 && rec.SleepHours >= 7.0:
			return LevelExcellent
		case acwr >= 0.8 && acwr <= 1.4:
			return LevelGood
		default:
			return LevelFair
		}
	case intent.Strength:
		switch {
		case rec.DaysSinceHardEffort >= 1 && acwr <= 1.4:
			return LevelExcellent
		case acwr <= 1.5:
			return LevelGood
		default:
			return LevelFair
		}
	case intent.CasualWalk:
		// A casual walk is always fine.
		return LevelExcellent
	default:
		if acwr <= 1.4 {
			return LevelGood
		}
		return LevelFair
	}
}
