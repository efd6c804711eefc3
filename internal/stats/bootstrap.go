package stats

import (
	"math/rand"
	"sort"
)

// Resampling defaults.
const (
	DefaultIterations      = 10000
	DefaultConfidenceLevel = 0.95
)

// Interval is a two-sided confidence interval at the given level.
type Interval struct {
	Lower float64
	Upper float64
	Level float64
}

// Result pairs a point estimate with its interval, the sample it came from,
// and a coarse confidence tier.
type Result struct {
	Value      float64
	Interval   *Interval
	SampleSize int
	Tier       ConfidenceTier
}

// BootstrapMeanInterval estimates a confidence interval for the mean of
// values by resampling with replacement. The reported value is the actual
// sample mean; the bounds are the (alpha/2, 1-alpha/2) percentiles of the
// resampled-mean distribution. Returns nil for an empty sample.
func BootstrapMeanInterval(values []float64, iterations int, level float64, rng *rand.Rand) *Result {
	if len(values) == 0 {
		return nil
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if level <= 0 || level >= 1 {
		level = DefaultConfidenceLevel
	}

	dist := make([]float64, iterations)
	for i := range dist {
		dist[i] = resampleMean(values, rng)
	}
	sort.Float64s(dist)

	alpha := 1 - level
	return &Result{
		Value: Mean(values),
		Interval: &Interval{
			Lower: percentileSorted(dist, alpha/2*100),
			Upper: percentileSorted(dist, (1-alpha/2)*100),
			Level: level,
		},
		SampleSize: len(values),
		Tier:       Validate(len(values), KindBasicStats).Tier,
	}
}

// BootstrapRatioInterval estimates an interval for
// mean(numerator)/mean(denominator) by resampling both samples jointly each
// iteration. Draws whose resampled denominator mean lands on zero are
// skipped. Returns nil when either sample is empty or no valid draw remains.
func BootstrapRatioInterval(numerator, denominator []float64, iterations int, level float64, rng *rand.Rand) *Interval {
	if len(numerator) == 0 || len(denominator) == 0 {
		return nil
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if level <= 0 || level >= 1 {
		level = DefaultConfidenceLevel
	}

	ratios := make([]float64, 0, iterations)
	for i := 0; i < iterations; i++ {
		den := resampleMean(denominator, rng)
		if den == 0 {
			continue
		}
		ratios = append(ratios, resampleMean(numerator, rng)/den)
	}
	if len(ratios) == 0 {
		return nil
	}
	sort.Float64s(ratios)

	alpha := 1 - level
	return &Interval{
		Lower: percentileSorted(ratios, alpha/2*100),
		Upper: percentileSorted(ratios, (1-alpha/2)*100),
		Level: level,
	}
}

// resampleMean draws len(values) observations with replacement and returns
// their mean.
func resampleMean(values []float64, rng *rand.Rand) float64 {
	var sum float64
	for range values {
		sum += values[rng.Intn(len(values))]
	}
	return sum / float64(len(values))
}
