// Package trailing implements the per-(symbol,side) trailing extrema state
// of component 5: min/max since position open, and min/max since the
// tracked extreme, reset on any position size change.
package trailing

import "math"

// State tracks the four trailing extrema.
type State struct {
	MaxSinceOpen float64
	MinSinceOpen float64
	MaxSinceMin  float64
	MinSinceMax  float64

	seeded bool
}

// Reset clears the tracker; called whenever the owning position's size
// changes (entry, partial close, or full close).
func (s *State) Reset() {
	*s = State{}
}

// Seed initializes the extrema at the price that established the
// tracked size: the opening fill for a new position, the freshly
// blended average price after a merge, or the unchanged average price
// after a partial close. Seeding from that fill/average price rather
// than the first candle's min(open,close)/max(open,close) is deliberate:
// the fill price is the price the position (or its latest change) was
// actually struck at, so it is the natural zero point for "since open"
// extrema.
func (s *State) Seed(price float64) {
	s.MaxSinceOpen = price
	s.MinSinceOpen = price
	s.MaxSinceMin = price
	s.MinSinceMax = price
	s.seeded = true
}

// Seeded reports whether Seed has been called since the last Reset.
func (s *State) Seeded() bool { return s.seeded }

// UpdateHighThenLow folds in a candle's high then low: the ordering for
// an up candle (close >= open).
func (s *State) UpdateHighThenLow(high, low float64) {
	s.update(high)
	s.update(low)
}

// UpdateLowThenHigh folds in a candle's low then high, for a down candle.
func (s *State) UpdateLowThenHigh(high, low float64) {
	s.update(low)
	s.update(high)
}

func (s *State) update(price float64) {
	if !s.seeded {
		// Defensive fallback: Position should always call Seed itself on
		// open/merge/reduce before the next candle reaches here.
		s.Seed(price)
	}
	s.MaxSinceOpen = math.Max(s.MaxSinceOpen, price)
	s.MinSinceOpen = math.Min(s.MinSinceOpen, price)

	if price < s.MinSinceMax {
		s.MinSinceMax = price
	}
	if price > s.MaxSinceMin {
		s.MaxSinceMin = price
	}
	// max_since_min tracks the highest print since the lowest-so-far print,
	// and min_since_max the mirror image: whenever a new since-open extreme
	// is set, the opposite "since extreme" tracker re-anchors there.
	if price == s.MinSinceOpen {
		s.MaxSinceMin = price
	}
	if price == s.MaxSinceOpen {
		s.MinSinceMax = price
	}
}
