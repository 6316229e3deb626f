package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/trailing"
)

// TrailingEntryLong implements the threshold/retracement trigger table.
// th <= 0 and rt <= 0 together is the documented degenerate case:
// treated as an immediate market entry at bid.
func TrailingEntryLong(cfg config.Side, rules market.Rules, tr trailing.State, size, pprice, bid, balance, wel float64) Decision {
	g := cfg.EntryTrailing
	th, rt := g.ThresholdPct, g.RetracementPct

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
	default: // th > 0 && rt > 0
		if !(tr.MinSinceOpen < pprice*(1-th) && tr.MaxSinceMin > tr.MinSinceOpen*(1+rt)) {
			return Skipped(SkipNoTrigger)
		}
		price = math.Min(bid, pprice*(1-th+rt))
	}
	if !market_ {
		price = market.RoundDown(price, rules.PriceStep)
	}
	if price <= 0 {
		return Skipped(SkipNoTrigger)
	}

	qtyDDF := size * g.DoubleDownFactor
	qtyPct := balance * wel * cfg.EntryGrid.InitialQtyPct / price
	qty := market.RoundStep(math.Max(qtyDDF, qtyPct), rules.QtyStep)
	qty = math.Max(rules.MinEntryQty(price), qty)
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: true, Kind: KindLongEntryTrailingNormal, Price: price, Qty: qty, Market: market_})
}

// TrailingEntryShort mirrors TrailingEntryLong: extrema roles swap
// (min_since_max/max_since_open replace max_since_min/min_since_open and
// the inequalities flip direction), ask replaces bid, round_up replaces
// round_dn.
func TrailingEntryShort(cfg config.Side, rules market.Rules, tr trailing.State, size, pprice, ask, balance, wel float64) Decision {
	g := cfg.EntryTrailing
	th, rt := g.ThresholdPct, g.RetracementPct

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
	if price <= 0 {
		return Skipped(SkipNoTrigger)
	}

	qtyDDF := size * g.DoubleDownFactor
	qtyPct := balance * wel * cfg.EntryGrid.InitialQtyPct / price
	qty := market.RoundStep(math.Max(qtyDDF, qtyPct), rules.QtyStep)
	qty = math.Max(rules.MinEntryQty(price), qty)
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: false, Kind: KindShortEntryTrailingNormal, Price: price, Qty: qty, Market: market_})
}

// BlendEntry implements the entry_trailing_grid_ratio blending rule:
// r==0 grid only, |r|==1 trailing only, r>0 trailing until WE/WEL
// reaches r then grid, r<0 grid until WE/WEL reaches 1+r then trailing.
func BlendEntry(ratio, weOverWel float64) (useTrailing bool) {
	switch {
	case ratio == 0:
		return false
	case ratio == 1 || ratio == -1:
		return true
	case ratio > 0:
		return weOverWel < ratio
	default:
		return weOverWel >= 1+ratio
	}
}
