package ordermath

import (
	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

// AutoReduceLong emits a market CloseAutoReduce for the excess above
// wel*1.01 when enforce_exposure_limit is set. This runs before any
// grid/trailing close in the fill simulator's ordering.
func AutoReduceLong(cfg config.Side, rules market.Rules, size, mark, we, wel, cMult float64) Decision {
	if !cfg.EnforceExposureLimit || we <= wel*1.01 {
		return Skipped(SkipNoTrigger)
	}
	excessWe := we - wel
	excessQty := MaxQtyForExposure(excessWe, mark, cMult, size*mark*cMult/we)
	qty := market.RoundDown(excessQty, rules.QtyStep)
	if qty <= 0 || qty > size {
		qty = size
	}
	if !rules.SatisfiesMinCost(mark, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: true, Kind: KindLongCloseAutoReduce, Price: mark, Qty: qty, Market: true})
}

// AutoReduceShort mirrors AutoReduceLong.
func AutoReduceShort(cfg config.Side, rules market.Rules, size, mark, we, wel, cMult float64) Decision {
	if !cfg.EnforceExposureLimit || we <= wel*1.01 {
		return Skipped(SkipNoTrigger)
	}
	excessWe := we - wel
	excessQty := MaxQtyForExposure(excessWe, mark, cMult, size*mark*cMult/we)
	qty := market.RoundDown(excessQty, rules.QtyStep)
	if qty <= 0 || qty > size {
		qty = size
	}
	if !rules.SatisfiesMinCost(mark, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: false, Kind: KindShortCloseAutoReduce, Price: mark, Qty: qty, Market: true})
}
