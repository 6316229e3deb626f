package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

// FullPsize is balance*WEL/(pprice*cMult), the position size at exactly
// full wallet-exposure utilization.
func FullPsize(balance, wel, pprice, cMult float64) float64 {
	if pprice <= 0 || cMult <= 0 {
		return 0
	}
	return balance * wel / (pprice * cMult)
}

// CloseGridLong builds the grid take-profit ladder. The active level is
// picked by WE/WEL; levels are linearly spaced between markup_start and
// markup_end, in reverse if markup_start > markup_end.
func CloseGridLong(cfg config.Side, rules market.Rules, size, pprice, we, wel, balance, cMult float64) Decision {
	if size <= 0 || pprice <= 0 {
		return Skipped(SkipNoTrigger)
	}
	c := cfg.CloseGrid
	full := FullPsize(balance, wel, pprice, cMult)
	leftover := math.Max(0, size-full)

	if c.QtyPct >= 1 {
		price := market.RoundUp(pprice*(1+c.MarkupStart), rules.PriceStep)
		qty := math.Min(size, math.Max(rules.MinQty, market.RoundUp(size, rules.QtyStep)))
		if !rules.SatisfiesMinCost(price, qty) {
			return Skipped(SkipBelowMinCost)
		}
		return Emitted(Order{Long: true, Kind: KindLongCloseGridNormal, Price: price, Qty: qty})
	}

	level := we / wel
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	markup := c.MarkupStart + level*(c.MarkupEnd-c.MarkupStart)
	price := market.RoundUp(pprice*(1+markup), rules.PriceStep)

	qty := math.Min(size, math.Max(rules.MinQty, market.RoundUp(full*c.QtyPct+leftover, rules.QtyStep)))
	kind := KindLongCloseGridNormal
	if leftover > 0 {
		kind = KindLongCloseGridPartial
	}
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: true, Kind: kind, Price: price, Qty: qty})
}

// CloseGridShort mirrors CloseGridLong: the ladder descends below pprice
// and rounding flips to round_dn.
func CloseGridShort(cfg config.Side, rules market.Rules, size, pprice, we, wel, balance, cMult float64) Decision {
	if size <= 0 || pprice <= 0 {
		return Skipped(SkipNoTrigger)
	}
	c := cfg.CloseGrid
	full := FullPsize(balance, wel, pprice, cMult)
	leftover := math.Max(0, size-full)

	if c.QtyPct >= 1 {
		price := market.RoundDown(pprice*(1-c.MarkupStart), rules.PriceStep)
		qty := math.Min(size, math.Max(rules.MinQty, market.RoundUp(size, rules.QtyStep)))
		if !rules.SatisfiesMinCost(price, qty) {
			return Skipped(SkipBelowMinCost)
		}
		return Emitted(Order{Long: false, Kind: KindShortCloseGridNormal, Price: price, Qty: qty})
	}

	level := we / wel
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	markup := c.MarkupStart + level*(c.MarkupEnd-c.MarkupStart)
	price := market.RoundDown(pprice*(1-markup), rules.PriceStep)

	qty := math.Min(size, math.Max(rules.MinQty, market.RoundUp(full*c.QtyPct+leftover, rules.QtyStep)))
	kind := KindShortCloseGridNormal
	if leftover > 0 {
		kind = KindShortCloseGridPartial
	}
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: false, Kind: kind, Price: price, Qty: qty})
}
