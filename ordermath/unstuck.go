package ordermath

import (
	"math"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

// UnstuckAllowance computes the cross-position loss-allowance budget:
// balance_peak, drop below peak, and the resulting permissible realized
// loss for this minute's unstuck close.
func UnstuckAllowance(balance, pnlCumsumMax, pnlCumsumRunning, twel, lossAllowancePct float64) float64 {
	balancePeak := balance + (pnlCumsumMax - pnlCumsumRunning)
	if balancePeak <= 0 {
		return 0
	}
	drop := balance/balancePeak - 1
	allowance := balancePeak * (lossAllowancePct*twel + drop)
	if allowance < 0 {
		return 0
	}
	return allowance
}

// StuckCandidate describes one (symbol, side) eligible for unstuck
// selection this minute.
type StuckCandidate struct {
	Symbol string
	Long   bool
	Gap    float64 // |current_price - pprice| / pprice
}

// IsStuckLong reports whether a long position is stuck: WE/WEL exceeds
// the threshold and no profitable TP level is currently reachable (the
// active grid-close level sits above the mark).
func IsStuckLong(we, wel, threshold, activeCloseLevelPrice, mark float64) bool {
	if wel <= 0 || we/wel <= threshold {
		return false
	}
	return activeCloseLevelPrice > mark
}

// IsStuckShort mirrors IsStuckLong.
func IsStuckShort(we, wel, threshold, activeCloseLevelPrice, mark float64) bool {
	if wel <= 0 || we/wel <= threshold {
		return false
	}
	return activeCloseLevelPrice < mark
}

// SelectStuck picks at most one unstuck candidate, the one with the
// smallest price gap to entry. Only one unstuck order fires per minute.
func SelectStuck(candidates []StuckCandidate) (StuckCandidate, bool) {
	if len(candidates) == 0 {
		return StuckCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Gap < best.Gap {
			best = c
		}
	}
	return best, true
}

// UnstuckCloseLong prices and sizes the selected unstuck close for a long
// position: price at upper_band*(1+unstuck_ema_dist), qty capped both by
// full_psize*unstuck_close_pct and by the remaining loss allowance.
func UnstuckCloseLong(cfg config.Side, rules market.Rules, size, pprice, upperBand, balance, wel, cMult, allowance float64) Decision {
	if size <= 0 || upperBand <= 0 {
		return Skipped(SkipNoStuckPosition)
	}
	u := cfg.Unstuck
	price := market.RoundUp(upperBand*(1+u.EmaDist), rules.PriceStep)
	full := FullPsize(balance, wel, pprice, cMult)
	qty := math.Min(size, market.RoundUp(full*u.ClosePct, rules.QtyStep))

	if price > pprice {
		lossPerUnit := (price - pprice) * cMult
		// loss is negative for a long being closed above entry only if
		// price < pprice; here price > pprice means it is a gain, so no
		// allowance constraint applies.
		_ = lossPerUnit
	} else {
		lossPerUnit := (pprice - price) * cMult
		if lossPerUnit > 0 && allowance > 0 {
			maxQty := allowance / lossPerUnit
			if qty > maxQty {
				qty = market.RoundDown(maxQty, rules.QtyStep)
			}
		} else if lossPerUnit > 0 {
			qty = 0
		}
	}

	if qty <= 0 || !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: true, Kind: KindLongCloseUnstuck, Price: price, Qty: qty})
}

// UnstuckCloseShort mirrors UnstuckCloseLong: lower band replaces upper
// band, round_dn replaces round_up.
func UnstuckCloseShort(cfg config.Side, rules market.Rules, size, pprice, lowerBand, balance, wel, cMult, allowance float64) Decision {
	if size <= 0 || lowerBand <= 0 {
		return Skipped(SkipNoStuckPosition)
	}
	u := cfg.Unstuck
	price := market.RoundDown(lowerBand*(1-u.EmaDist), rules.PriceStep)
	full := FullPsize(balance, wel, pprice, cMult)
	qty := math.Min(size, market.RoundUp(full*u.ClosePct, rules.QtyStep))

	if price < pprice {
		// gain, not a loss; allowance does not constrain it.
	} else {
		lossPerUnit := (price - pprice) * cMult
		if lossPerUnit > 0 && allowance > 0 {
			maxQty := allowance / lossPerUnit
			if qty > maxQty {
				qty = market.RoundDown(maxQty, rules.QtyStep)
			}
		} else if lossPerUnit > 0 {
			qty = 0
		}
	}

	if qty <= 0 || !rules.SatisfiesMinCost(price, qty) {
		return Skipped(SkipBelowMinCost)
	}
	return Emitted(Order{Long: false, Kind: KindShortCloseUnstuck, Price: price, Qty: qty})
}
