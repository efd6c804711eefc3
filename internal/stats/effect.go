package stats

import "math"

// Effect size labels, Cohen's conventional cutoffs on |d|.
const (
	EffectNegligible = "negligible"
	EffectSmall      = "small"
	EffectMedium     = "medium"
	EffectLarge      = "large"
)

// CohensD returns the standardized mean difference between two samples in
// pooled-standard-deviation units. Positive when a's mean is larger.
// Returns 0 when either sample is too small or both are constant.
func CohensD(a, b []float64) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	nA, nB := float64(len(a)), float64(len(b))
	pooled := math.Sqrt(((nA-1)*Variance(a) + (nB-1)*Variance(b)) / (nA + nB - 2))
	if pooled == 0 {
		return 0
	}
	return (Mean(a) - Mean(b)) / pooled
}

// InterpretEffectSize buckets |d| into conventional labels. Boundaries are
// inclusive upward: 0.2 reads as small, 0.5 as medium, 0.8 as large.
func InterpretEffectSize(d float64) string {
	abs := math.Abs(d)
	switch {
	case abs < 0.2:
		return EffectNegligible
	case abs < 0.5:
		return EffectSmall
	case abs < 0.8:
		return EffectMedium
	default:
		return EffectLarge
	}
}
