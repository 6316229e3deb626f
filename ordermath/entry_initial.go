package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

// MinEntryQty is max(min_qty, min_cost/price), the floor every entry
// qty is clamped to.
func MinEntryQty(rules market.Rules, price float64) float64 {
	return rules.MinEntryQty(price)
}

// InitialEntryLong prices and sizes the first (or residual) long entry.
// bid is the best-known bid the order would rest at.
func InitialEntryLong(cfg config.Side, rules market.Rules, lowerBand, bid, balance, wel, curSize float64) Decision {
	if lowerBand <= 0 || bid <= 0 {
		return Skipped(SkipNoTrigger)
	}
	distPrice := market.RoundDown(lowerBand*(1-cfg.EntryGrid.InitialEmaDist), rules.PriceStep)
	price := math.Min(bid, distPrice)
	if price <= 0 {
		return Skipped(SkipNoTrigger)
	}
	qtyRaw := balance * wel * cfg.EntryGrid.InitialQtyPct / price
	qty := math.Max(rules.MinEntryQty(price), market.RoundStep(qtyRaw, rules.QtyStep))
	if curSize >= 0.8*qty {
		return Skipped(SkipPositionTooLarge)
	}
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	kind := KindLongEntryInitialNormal
	if curSize > 0 {
		kind = KindLongEntryInitialPartial
	}
	return Emitted(Order{Long: true, Kind: kind, Price: price, Qty: qty})
}

// InitialEntryShort is the mirror of InitialEntryLong: upper band replaces
// lower band, ask replaces bid, round_up replaces round_dn.
func InitialEntryShort(cfg config.Side, rules market.Rules, upperBand, ask, balance, wel, curSize float64) Decision {
	if upperBand <= 0 || ask <= 0 {
		return Skipped(SkipNoTrigger)
	}
	distPrice := market.RoundUp(upperBand*(1+cfg.EntryGrid.InitialEmaDist), rules.PriceStep)
	price := math.Max(ask, distPrice)
	if price <= 0 {
		return Skipped(SkipNoTrigger)
	}
	qtyRaw := balance * wel * cfg.EntryGrid.InitialQtyPct / price
	qty := math.Max(rules.MinEntryQty(price), market.RoundStep(qtyRaw, rules.QtyStep))
	if curSize >= 0.8*qty {
		return Skipped(SkipPositionTooLarge)
	}
	if !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	kind := KindShortEntryInitialNormal
	if curSize > 0 {
		kind = KindShortEntryInitialPartial
	}
	return Emitted(Order{Long: false, Kind: kind, Price: price, Qty: qty})
}
