// Package fillsim implements the fill simulator: for a minute's candle,
// it decides which of the order set's orders fill, in what price and
// quantity, in the deterministic order auto-reduce -> unstuck -> closes
// (closest-to-mark first) -> entries (closest-to-mark first).
//
// All close orders that fit within the candle's range are permitted to
// fill in the same minute (not just one), with closes always resolved
// before entries; a single entry fill per (symbol, side) is applied per
// minute, a candle-based, no-second-pass convention.
package fillsim

import (
	"sort"

	"contrarian-grid-engine/market"
	"contrarian-grid-engine/ordermath"
)

// Candidate is one order produced by the order-set builder for a given
// (symbol, side) this minute, tagged with which position it would act on.
type Candidate struct {
	Symbol string
	Order  ordermath.Order
}

// Fill is an executed order: the price it actually crossed at (which for
// market orders is the candle's open, not the limit price it was quoted
// at) and the quantity filled.
type Fill struct {
	Symbol string
	Order  ordermath.Order
	Price  float64
}

// Simulate resolves fills for one minute's candidates against its
// candle, in the deterministic priority order.
func Simulate(candidates []Candidate, candle market.Candle) []Fill {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Order.Kind.FillPriority(), sorted[j].Order.Kind.FillPriority()
		if pi != pj {
			return pi < pj
		}
		return distanceToMark(sorted[i].Order, candle) < distanceToMark(sorted[j].Order, candle)
	})

	var fills []Fill
	for _, c := range sorted {
		if price, ok := touches(c.Order, candle); ok {
			fills = append(fills, Fill{Symbol: c.Symbol, Order: c.Order, Price: price})
		}
	}
	return fills
}

func distanceToMark(o ordermath.Order, candle market.Candle) float64 {
	d := o.Price - candle.Close
	if d < 0 {
		d = -d
	}
	return d
}

// touches reports whether the order's price would be crossed by the
// candle's range and, if so, the price it fills at.
func touches(o ordermath.Order, candle market.Candle) (float64, bool) {
	if o.Market {
		return candle.Open, true
	}
	isEntry := o.Kind.IsEntry()
	if o.Long {
		if isEntry {
			// long entry is a resting bid: fills iff candle low reaches it.
			if candle.Low <= o.Price {
				return o.Price, true
			}
			return 0, false
		}
		// long close is a resting ask: fills iff candle high reaches it.
		if candle.High >= o.Price {
			return o.Price, true
		}
		return 0, false
	}
	// short side mirrors long: entry is a resting ask, close a resting bid.
	if isEntry {
		if candle.High >= o.Price {
			return o.Price, true
		}
		return 0, false
	}
	if candle.Low <= o.Price {
		return o.Price, true
	}
	return 0, false
}
