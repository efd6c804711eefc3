package stats

import (
	"math"
	"math/rand"
)

// DefaultAlpha is the significance level used when none is supplied.
const DefaultAlpha = 0.05

// TTestResult is the outcome of a two-sample Welch t-test.
type TTestResult struct {
	T                float64
	DegreesOfFreedom float64
	MeanDifference   float64
	PValue           float64
	IsSignificant    bool
}

// WelchTTest compares the means of two independent samples without assuming
// equal variances. The p-value comes from approximatePValue, not an exact
// Student's-t CDF. Returns nil when either sample has fewer than two values.
func WelchTTest(a, b []float64, alpha float64) *TTestResult {
	if len(a) < 2 || len(b) < 2 {
		return nil
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	meanA, meanB := Mean(a), Mean(b)
	varA, varB := Variance(a), Variance(b)
	nA, nB := float64(len(a)), float64(len(b))

	se := math.Sqrt(varA/nA + varB/nB)
	if se == 0 {
		// Two constant samples: the difference is exact, not estimated.
		p := 1.0
		if meanA != meanB {
			p = 0
		}
		return &TTestResult{
			DegreesOfFreedom: nA + nB - 2,
			MeanDifference:   meanA - meanB,
			PValue:           p,
			IsSignificant:    p <= alpha,
		}
	}

	t := (meanA - meanB) / se
	df := welchSatterthwaiteDF(varA, varB, nA, nB)
	p := approximatePValue(t, df)

	return &TTestResult{
		T:                t,
		DegreesOfFreedom: df,
		MeanDifference:   meanA - meanB,
		PValue:           p,
		IsSignificant:    p <= alpha,
	}
}

// welchSatterthwaiteDF approximates the degrees of freedom for unequal
// variances.
func welchSatterthwaiteDF(varA, varB, nA, nB float64) float64 {
	sa, sb := varA/nA, varB/nB
	num := (sa + sb) * (sa + sb)
	den := sa*sa/(nA-1) + sb*sb/(nB-1)
	if den == 0 {
		return nA + nB - 2
	}
	return num / den
}

// approximatePValue returns a two-tailed p-value for a t statistic. Above 30
// degrees of freedom the t distribution is close enough to normal; below, a
// coarse |t| threshold lookup stands in for the exact CDF. The lookup values
// are intentionally part of the contract; an exact CDF could replace this
// without changing any caller.
func approximatePValue(t, df float64) float64 {
	abs := math.Abs(t)
	if df > 30 {
		return 2 * (1 - normalCDF(abs))
	}
	switch {
	case abs > 3:
		return 0.01
	case abs > 2:
		return 0.05
	case abs > 1.5:
		return 0.15
	default:
		return 0.30
	}
}

// normalCDF is the standard normal cumulative distribution function.
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// PermutationResult is the outcome of a two-sample permutation test.
type PermutationResult struct {
	ObservedDifference float64
	PValue             float64
	IsSignificant      bool
	Iterations         int
}

// PermutationTest estimates how often a random regrouping of the pooled
// samples produces a mean difference at least as large in magnitude as the
// observed one. Returns nil when either sample is empty.
func PermutationTest(a, b []float64, iterations int, alpha float64, rng *rand.Rand) *PermutationResult {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	observed := Mean(a) - Mean(b)
	threshold := math.Abs(observed)

	pool := make([]float64, 0, len(a)+len(b))
	pool = append(pool, a...)
	pool = append(pool, b...)

	extreme := 0
	for i := 0; i < iterations; i++ {
		rng.Shuffle(len(pool), func(x, y int) { pool[x], pool[y] = pool[y], pool[x] })
		diff := Mean(pool[:len(a)]) - Mean(pool[len(a):])
		if math.Abs(diff) >= threshold {
			extreme++
		}
	}

	p := float64(extreme) / float64(iterations)
	return &PermutationResult{
		ObservedDifference: observed,
		PValue:             p,
		IsSignificant:      p <= alpha,
		Iterations:         iterations,
	}
}

// CorrelationResult is a Pearson correlation with its significance test.
type CorrelationResult struct {
	R                float64
	T                float64
	DegreesOfFreedom float64
	PValue           float64
	IsSignificant    bool
	SampleSize       int
}

// PearsonCorrelation computes r between paired samples and tests it against
// zero by converting to a t statistic with n-2 degrees of freedom, using the
// same approximate p-value as WelchTTest. Returns nil for mismatched or
// too-short inputs, or when either series is constant.
func PearsonCorrelation(x, y []float64, alpha float64) *CorrelationResult {
	if len(x) != len(y) || len(x) < 3 {
		return nil
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	meanX, meanY := Mean(x), Mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return nil
	}

	r := sxy / math.Sqrt(sxx*syy)
	df := float64(len(x) - 2)

	var t, p float64
	if denom := 1 - r*r; denom <= 0 {
		p = 0 // perfectly collinear
	} else {
		t = r * math.Sqrt(df/denom)
		p = approximatePValue(t, df)
	}

	return &CorrelationResult{
		R:                r,
		T:                t,
		DegreesOfFreedom: df,
		PValue:           p,
		IsSignificant:    p <= alpha,
		SampleSize:       len(x),
	}
}
