package stats

import (
	"fmt"
	"math"
)

// ConfidenceTier buckets how much trust an estimate deserves given how many
// observations back it.
type ConfidenceTier string

const (
	TierHigh         ConfidenceTier = "high"
	TierMedium       ConfidenceTier = "medium"
	TierLow          ConfidenceTier = "low"
	TierInsufficient ConfidenceTier = "insufficient"
)

// AnalysisKind identifies a class of analysis with its own sample-size needs.
type AnalysisKind string

const (
	KindBasicStats           AnalysisKind = "basic stats"
	KindGroupComparison      AnalysisKind = "group comparison"
	KindCorrelation          AnalysisKind = "correlation"
	KindRegression           AnalysisKind = "regression"
	KindModelTraining        AnalysisKind = "model training"
	KindPatternDiscovery     AnalysisKind = "pattern discovery"
	KindIntentClassification AnalysisKind = "intent classification"
)

// kindRequirement is the floor below which a kind is untrustworthy and the
// size at which it earns full confidence.
type kindRequirement struct {
	Minimum int
	Ideal   int
}

var kindRequirements = map[AnalysisKind]kindRequirement{
	KindBasicStats:           {Minimum: 5, Ideal: 30},
	KindGroupComparison:      {Minimum: 10, Ideal: 30},
	KindCorrelation:          {Minimum: 10, Ideal: 30},
	KindRegression:           {Minimum: 20, Ideal: 50},
	KindModelTraining:        {Minimum: 10, Ideal: 50},
	KindPatternDiscovery:     {Minimum: 15, Ideal: 40},
	KindIntentClassification: {Minimum: 5, Ideal: 20},
}

// Validation reports whether a sample is large enough for an analysis kind.
type Validation struct {
	IsValid  bool
	Required int
	Tier     ConfidenceTier
	Message  string
}

// Validate gates an analysis on its observation count. Below the kind's
// minimum the analysis is invalid; between minimum and ideal it is valid at
// reduced confidence; at or above ideal it earns the high tier.
func Validate(sampleSize int, kind AnalysisKind) Validation {
	req, ok := kindRequirements[kind]
	if !ok {
		req = kindRequirements[KindBasicStats]
	}

	v := Validation{Required: req.Minimum}
	switch {
	case sampleSize < req.Minimum:
		v.Tier = TierInsufficient
		v.Message = fmt.Sprintf("need at least %d observations for %s, have %d", req.Minimum, kind, sampleSize)
	case sampleSize >= req.Ideal:
		v.IsValid = true
		v.Tier = TierHigh
		v.Message = fmt.Sprintf("%d observations comfortably supports %s", sampleSize, kind)
	case sampleSize*2 >= req.Ideal:
		v.IsValid = true
		v.Tier = TierMedium
		v.Message = fmt.Sprintf("%d observations is workable for %s; %d would be ideal", sampleSize, kind, req.Ideal)
	default:
		v.IsValid = true
		v.Tier = TierLow
		v.Message = fmt.Sprintf("%d observations barely clears the floor for %s; treat results as rough", sampleSize, kind)
	}
	return v
}

// ValidateComparison gates a two-group analysis on its smaller group.
func ValidateComparison(sizeA, sizeB int, kind AnalysisKind) Validation {
	size := sizeA
	if sizeB < size {
		size = sizeB
	}
	return Validate(size, kind)
}

// zCriticalTwoTailed is the two-tailed critical value at alpha = 0.05.
const zCriticalTwoTailed = 1.96

// StatisticalPower approximates the probability that a two-group test at
// alpha = 0.05 detects a true standardized effect of the given size with
// sampleSize observations per group. Normal approximation on the
// noncentrality argument; advisory only, never a blocking gate.
func StatisticalPower(sampleSize int, effectSize float64) float64 {
	if sampleSize <= 0 {
		return 0
	}
	ncp := math.Abs(effectSize) * math.Sqrt(float64(sampleSize)/2)
	return normalCDF(ncp - zCriticalTwoTailed)
}

// maxSearchSampleSize caps the minimum-sample-size search; effects tiny
// enough to need more observations than this are not detectable in personal
// training data anyway.
const maxSearchSampleSize = 100000

// MinimumSampleSize binary-searches the smallest per-group sample size whose
// approximate power reaches targetPower for the given effect size. Returns
// the search cap when the target is unreachable.
func MinimumSampleSize(targetPower, effectSize float64) int {
	lo, hi := 2, maxSearchSampleSize
	if StatisticalPower(hi, effectSize) < targetPower {
		return hi
	}
	for lo < hi {
		mid := (lo + hi) / 2
		if StatisticalPower(mid, effectSize) >= targetPower {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
