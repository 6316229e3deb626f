// Package ema implements the per-symbol, per-side EMA tracker (component 2):
// three EMAs of differing spans with bias correction during warm-up, and the
// upper/lower band derived from them.
//
// Three bias-corrected exponential trackers replace a single realized-vol
// rolling window.
package ema

import "math"

// Single is one bias-corrected exponential moving average.
type Single struct {
	span  float64
	alpha float64
	value float64
	// weight is the unbiased correction denominator w_t = 1-(1-alpha)^t.
	weight float64
	ticks  int
}

// NewSingle constructs a tracker for the given span. Span <= 0 is invalid
// and treated as span=1 to avoid division by zero.
func NewSingle(span float64) *Single {
	if span <= 0 {
		span = 1
	}
	return &Single{span: span, alpha: 2 / (span + 1)}
}

// Update folds in a new close price.
func (s *Single) Update(price float64) {
	s.value = s.alpha*price + (1-s.alpha)*s.value
	s.weight = 1 - (1-s.alpha)*(1-s.weight)
	s.ticks++
}

// Value returns the bias-corrected EMA; undefined (0, false) before the
// first update.
func (s *Single) Value() (float64, bool) {
	if s.weight <= 0 {
		return 0, false
	}
	return s.value / s.weight, true
}

// Ticks returns the number of updates folded in so far.
func (s *Single) Ticks() int { return s.ticks }

// Span returns the configured span.
func (s *Single) Span() float64 { return s.span }

// Tracker holds the three EMAs: span0, span1, and span2 =
// sqrt(span0*span1).
type Tracker struct {
	e0, e1, e2 *Single

	warmupMinutes int
	warmupRatio   float64
}

// New builds a Tracker for spans span0/span1, with the driver-supplied
// warm-up bounds: bands are undefined until t >= warmupMinutes AND until
// t >= warmupRatio*max(span0,span1).
func New(span0, span1 float64, warmupMinutes int, warmupRatio float64) *Tracker {
	span2 := math.Sqrt(span0 * span1)
	return &Tracker{
		e0:            NewSingle(span0),
		e1:            NewSingle(span1),
		e2:            NewSingle(span2),
		warmupMinutes: warmupMinutes,
		warmupRatio:   warmupRatio,
	}
}

// Update folds a new close price into all three EMAs.
func (t *Tracker) Update(price float64) {
	t.e0.Update(price)
	t.e1.Update(price)
	t.e2.Update(price)
}

// Ready reports whether the warm-up condition is satisfied.
func (t *Tracker) Ready() bool {
	ticks := t.e0.Ticks()
	if ticks < t.warmupMinutes {
		return false
	}
	maxSpan := math.Max(t.e0.Span(), t.e1.Span())
	if float64(ticks) < t.warmupRatio*maxSpan {
		return false
	}
	return true
}

// Bands returns (upper, lower, ok). ok is false until Ready().
func (t *Tracker) Bands() (upper, lower float64, ok bool) {
	if !t.Ready() {
		return 0, 0, false
	}
	v0, ok0 := t.e0.Value()
	v1, ok1 := t.e1.Value()
	v2, ok2 := t.e2.Value()
	if !ok0 || !ok1 || !ok2 {
		return 0, 0, false
	}
	upper = math.Max(v0, math.Max(v1, v2))
	lower = math.Min(v0, math.Min(v1, v2))
	return upper, lower, true
}
