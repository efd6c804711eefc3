package intent

import "fmt"

// Intent is the training purpose behind a workout.
type Intent string

const (
	Race       Intent = "race"
	Tempo      Intent = "tempo"
	Intervals  Intent = "intervals"
	Easy       Intent = "easy"
	Long       Intent = "long"
	CasualWalk Intent = "casualWalk"
	Strength   Intent = "strength"
	Other      Intent = "other"
)

// All lists every known intent.
var All = []Intent{Race, Tempo, Intervals, Easy, Long, CasualWalk, Strength, Other}

// ParseIntent validates a user-supplied intent string.
func ParseIntent(s string) (Intent, error) {
	for _, it := range All {
		if string(it) == s {
			return it, nil
		}
	}
	return "", fmt.Errorf("unknown intent %q", s)
}

// Classification is one workout's assigned intent with the classifier's
// confidence in it.
type Classification struct {
	WorkoutID  string
	Intent     Intent
	Confidence float64
}
