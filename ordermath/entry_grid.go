package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

// GridReentryLong computes the next grid DCA re-entry for an existing
// long position, including cropping to WEL and inflating the qty when
// the following grid step would otherwise be too small to matter.
func GridReentryLong(cfg config.Side, rules market.Rules, size, pprice, we, wel, logRange, bid, balance, cMult float64) Decision {
	if pprice <= 0 || size <= 0 {
		return Skipped(SkipNoTrigger)
	}
	g := cfg.EntryGrid
	mult := 1 + (we/wel)*g.SpacingWeWeight + logRange*g.SpacingLogWeight
	if mult < 0 {
		mult = 0
	}
	distPrice := market.RoundDown(pprice*(1-g.SpacingPct*mult), rules.PriceStep)
	price := math.Min(bid, distPrice)
	if price <= 0 {
		return Skipped(SkipNoTrigger)
	}

	qtyDDF := size * g.DoubleDownFactor
	qtyPct := balance * wel * g.InitialQtyPct / price
	qty := market.RoundStep(math.Max(qtyDDF, qtyPct), rules.QtyStep)
	qty = math.Max(rules.MinEntryQty(price), qty)

	kind := KindLongEntryGridNormal

	// Cropping: don't let this fill push WE past WEL.
	weAfter := WalletExposure(size+qty, price, cMult, balance)
	if weAfter > wel {
		room := MaxQtyForExposure(wel, price, cMult, balance) - size
		if room <= 0 {
			return Skipped(SkipPositionTooLarge)
		}
		qty = market.RoundDown(room, rules.QtyStep)
		kind = KindLongEntryGridCropped
	}

	if qty <= 0 || !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}

	// Inflation: forward-simulate the position this order would leave
	// behind, and the next grid step's qty once *that* step is itself
	// cropped to the WEL room left after it. If the cropped-next-step
	// qty comes out smaller than a quarter of a double-down step at the
	// new size, absorb the remaining exposure budget into this order
	// instead of leaving a dust-sized step for later.
	if kind == KindLongEntryGridNormal {
		maxQty := MaxQtyForExposure(wel, price, cMult, balance)
		newSize := size + qty
		nextQty := math.Min(newSize*g.DoubleDownFactor, math.Max(maxQty-newSize, 0))
		if nextQty < 0.25*g.DoubleDownFactor*size {
			room := maxQty - size
			if room > qty {
				qty = market.RoundDown(room, rules.QtyStep)
				kind = KindLongEntryGridInflated
			}
		}
	}

	return Emitted(Order{Long: true, Kind: kind, Price: price, Qty: qty})
}

// GridReentryShort mirrors GridReentryLong: spacing widens the price
// upward, rounding flips to round_up, and cropping bounds qty the same
// way against WEL.
func GridReentryShort(cfg config.Side, rules market.Rules, size, pprice, we, wel, logRange, ask, balance, cMult float64) Decision {
	if pprice <= 0 || size <= 0 {
		return Skipped(SkipNoTrigger)
	}
	g := cfg.EntryGrid
	mult := 1 + (we/wel)*g.SpacingWeWeight + logRange*g.SpacingLogWeight
	if mult < 0 {
		mult = 0
	}
	distPrice := market.RoundUp(pprice*(1+g.SpacingPct*mult), rules.PriceStep)
	price := math.Max(ask, distPrice)
	if price <= 0 {
		return Skipped(SkipNoTrigger)
	}

	qtyDDF := size * g.DoubleDownFactor
	qtyPct := balance * wel * g.InitialQtyPct / price
	qty := market.RoundStep(math.Max(qtyDDF, qtyPct), rules.QtyStep)
	qty = math.Max(rules.MinEntryQty(price), qty)

	kind := KindShortEntryGridNormal

	weAfter := WalletExposure(size+qty, price, cMult, balance)
	if weAfter > wel {
		room := MaxQtyForExposure(wel, price, cMult, balance) - size
		if room <= 0 {
			return Skipped(SkipPositionTooLarge)
		}
		qty = market.RoundDown(room, rules.QtyStep)
		kind = KindShortEntryGridCropped
	}

	if qty <= 0 || !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}

	// Inflation: mirrors GridReentryLong's forward simulation of the
	// cropped next grid step.
	if kind == KindShortEntryGridNormal {
		maxQty := MaxQtyForExposure(wel, price, cMult, balance)
		newSize := size + qty
		nextQty := math.Min(newSize*g.DoubleDownFactor, math.Max(maxQty-newSize, 0))
		if nextQty < 0.25*g.DoubleDownFactor*size {
			room := maxQty - size
			if room > qty {
				qty = market.RoundDown(room, rules.QtyStep)
				kind = KindShortEntryGridInflated
			}
		}
	}

	return Emitted(Order{Long: false, Kind: kind, Price: price, Qty: qty})
}
