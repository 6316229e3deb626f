package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/trailing"
)

// CloseTrailingLong is the profitable-direction mirror of
// TrailingEntryLong: min_since_max/max_since_open replace
// max_since_min/min_since_open.
func CloseTrailingLong(cfg config.Side, rules market.Rules, tr trailing.State, size, pprice, ask, balance, wel, cMult float64) Decision {
	if size <= 0 {
		return Skipped(SkipNoTrigger)
	}
	c := cfg.CloseTrailing
	th, rt := c.ThresholdPct, c.RetracementPct

	var price float64
	var market_ bool
	switch {
	case th <= 0 && rt <= 0:
		price, market_ = ask, true
	case th <= 0 && rt > 0:
		if !(tr.MinSinceMax < tr.MaxSinceOpen*(1-rt)) {
			return Skipped(SkipNoTrigger)
		}
		price, market_ = ask, true
	case th > 0 && rt <= 0:
		price = math.Max(ask, pprice*(1+th))
	default:
		if !(tr.MaxSinceOpen > pprice*(1+th) && tr.MinSinceMax < tr.MaxSinceOpen*(1-rt)) {
			return Skipped(SkipNoTrigger)
		}
		price = math.Max(ask, pprice*(1+th-rt))
	}
	if !market_ {
		price = market.RoundUp(price, rules.PriceStep)
	}

	full := FullPsize(balance, wel, pprice, cMult)
	qty := math.Min(size, math.Max(rules.MinQty, market.RoundUp(full, rules.QtyStep)))
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: true, Kind: KindLongCloseTrailingNormal, Price: price, Qty: qty, Market: market_})
}

// CloseTrailingShort mirrors CloseTrailingLong.
func CloseTrailingShort(cfg config.Side, rules market.Rules, tr trailing.State, size, pprice, bid, balance, wel, cMult float64) Decision {
	if size <= 0 {
		return Skipped(SkipNoTrigger)
	}
	c := cfg.CloseTrailing
	th, rt := c.ThresholdPct, c.RetracementPct

	var price float64
	var market_ bool
	switch {
	case th <= 0 && rt <= 0:
		price, market_ = bid, true
	case th <= 0 && rt > 0:
		if !(tr.MaxSinceMin > tr.MinSinceOpen*(1+rt)) {
			return Skipped(SkipNoTrigger)
		}
		price, market_ = bid, true
	case th > 0 && rt <= 0:
		price = math.Min(bid, pprice*(1-th))
	default:
		if !(tr.MinSinceOpen < pprice*(1-th) && tr.MaxSinceMin > tr.MinSinceOpen*(1+rt)) {
			return Skipped(SkipNoTrigger)
		}
		price = math.Min(bid, pprice*(1-th+rt))
	}
	if !market_ {
		price = market.RoundDown(price, rules.PriceStep)
	}

	full := FullPsize(balance, wel, pprice, cMult)
	qty := math.Min(size, math.Max(rules.MinQty, market.RoundUp(full, rules.QtyStep)))
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: false, Kind: KindShortCloseTrailingNormal, Price: price, Qty: qty, Market: market_})
}

// BlendClose implements close_trailing_grid_ratio blending. Identical
// shape to BlendEntry; kept separate because close and entry blending
// operate over disjoint position shares: the non-active mechanism's
// share is reserved, not merely skipped.
func BlendClose(ratio, weOverWel float64) (useTrailing bool) {
	return BlendEntry(ratio, weOverWel)
}

// CloseShares splits a position between the trailing and grid close
// mechanisms for a given close_trailing_grid_ratio, mirroring the
// thresholds BlendEntry/BlendClose switch on: ratio == 0 gives grid the
// whole position, |ratio| == 1 gives trailing the whole position,
// ratio > 0 splits it trailing:grid = ratio:(1-ratio), and ratio < 0
// splits it grid:trailing = (1+ratio):(-ratio). The two shares always
// sum to 1: whichever mechanism is inactive this minute has its share
// reserved rather than exposed to the active one.
func CloseShares(ratio float64) (trailingShare, gridShare float64) {
	if ratio >= 0 {
		return ratio, 1 - ratio
	}
	return -ratio, 1 + ratio
}
