package metrics

import "math"

// RunningStats is a streaming mean/variance/extrema accumulator
// (Welford's method), used so per-run reporting doesn't require holding
// the full equity series in memory twice.
type RunningStats struct {
	n        int64
	mean     float64
	m2       float64
	min, max float64
}

// NewRunningStats returns an empty accumulator.
func NewRunningStats() *RunningStats {
	return &RunningStats{min: math.Inf(1), max: math.Inf(-1)}
}

// Push folds in one observation.
func (r *RunningStats) Push(x float64) {
	r.n++
	d := x - r.mean
	r.mean += d / float64(r.n)
	r.m2 += d * (x - r.mean)
	if x < r.min {
		r.min = x
	}
	if x > r.max {
		r.max = x
	}
}

// Count returns the number of observations pushed.
func (r *RunningStats) Count() int64 { return r.n }

// Mean returns the running mean, 0 if empty.
func (r *RunningStats) Mean() float64 { return r.mean }

// Variance returns the population variance, 0 if fewer than 2 samples.
func (r *RunningStats) Variance() float64 {
	if r.n < 2 {
		return 0
	}
	return r.m2 / float64(r.n)
}

// StdDev returns the population standard deviation.
func (r *RunningStats) StdDev() float64 { return math.Sqrt(r.Variance()) }

// Min returns the minimum observed value, or +Inf if empty.
func (r *RunningStats) Min() float64 { return r.min }

// Max returns the maximum observed value, or -Inf if empty.
func (r *RunningStats) Max() float64 { return r.max }
