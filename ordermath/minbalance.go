package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

// MinimumBalance estimates the smallest starting balance that lets the
// configured entry grid run gridLevels deep without any level being
// dropped for min-cost, by forward-simulating the grid from a fixed
// starting price with no trailing/price movement. This is a diagnostic
// figure that neither the engine nor the run report calls: grid depth
// in a live run also depends on price path.
func MinimumBalance(cfg config.Side, rules market.Rules, price float64, gridLevels int) float64 {
	if price <= 0 || gridLevels <= 0 {
		return 0
	}
	g := cfg.EntryGrid
	size := 0.0
	notionalNeeded := 0.0
	levelPrice := price
	for i := 0; i < gridLevels; i++ {
		var qty float64
		if i == 0 {
			qty = rules.MinEntryQty(levelPrice)
		} else {
			qty = math.Max(rules.MinEntryQty(levelPrice), market.RoundStep(size*g.DoubleDownFactor, rules.QtyStep))
			levelPrice = market.RoundDown(levelPrice*(1-g.SpacingPct), rules.PriceStep)
		}
		notionalNeeded += qty * levelPrice * rules.CMult
		size += qty
	}
	if cfg.TotalWalletExposureLimit <= 0 {
		return notionalNeeded
	}
	return notionalNeeded / cfg.TotalWalletExposureLimit
}
