// Package stats keeps running statistics for self-play and perft runs.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Running accumulates mean and variance in one pass (Welford), plus the
// extremes seen so far.
type Running struct {
	n        int
	mean     float64
	m2       float64
	min, max float64
}

func (r *Running) Add(val float64) {
	r.n++
	if r.n == 1 {
		r.mean, r.m2 = val, 0
		r.min, r.max = val, val
		return
	}
	delta := val - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (val - r.mean)
	r.min = math.Min(r.min, val)
	r.max = math.Max(r.max, val)
}

func (r *Running) Count() int {
	return r.n
}

func (r *Running) Mean() float64 {
	return r.mean
}

// Variance is the sample variance; zero until two values are seen.
func (r *Running) Variance() float64 {
	if r.n <= 1 {
		return 0
	}
	return r.m2 / float64(r.n-1)
}

func (r *Running) Stdev() float64 {
	return math.Sqrt(r.Variance())
}

func (r *Running) Min() float64 {
	return r.min
}

func (r *Running) Max() float64 {
	return r.max
}

func (r *Running) StandardError() float64 {
	if r.n == 0 {
		return 0
	}
	return math.Sqrt(r.Variance() / float64(r.n))
}

// ConfidenceInterval returns the interval around the mean for the given
// confidence, in percent.
func (r *Running) ConfidenceInterval(pct float64) (float64, float64) {
	half := ZVal(pct) * r.StandardError()
	return r.mean - half, r.mean + half
}

// ZVal returns the two-tailed z value for a confidence level given in
// percent.
func ZVal(pct float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + pct/100) / 2)
}

// Describe summarizes a complete sample.
func Describe(xs []float64) (mean, stdev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
