// Package forager implements eligibility and dynamic exposure: each
// minute it drops the bottom slice of symbols by volume, ranks
// survivors by volatility, and unions the top n_positions with any
// symbol already holding a position, then redistributes
// total_wallet_exposure_limit across the resulting effective position
// count.
package forager

import (
	"sort"

	"contrarian-grid-engine/filter"
)

// Eligibility is the resolved per-minute selection for one side.
type Eligibility struct {
	Symbols             map[string]bool // eligible set, new entries allowed
	EffectiveNPositions int
	WEL                 float64
}

// Select runs the volume-drop, volatility-rank, and held-symbol-union
// steps. ranked is this minute's per-symbol filter output; held is the
// set of symbols already carrying an open position on this side
// (always eligible).
func Select(ranked []filter.Ranked, held map[string]bool, nPositions int, volumeDropPct, twel float64) Eligibility {
	survivors := dropBottomByVolume(ranked, volumeDropPct)
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].LogRangeEMA > survivors[j].LogRangeEMA
	})

	eligible := make(map[string]bool, nPositions+len(held))
	for i := 0; i < len(survivors) && i < nPositions; i++ {
		eligible[survivors[i].Symbol] = true
	}
	for sym := range held {
		eligible[sym] = true
	}

	effectiveN := len(eligible)
	if effectiveN < 1 {
		effectiveN = 1
	}
	wel := 0.0
	if effectiveN > 0 {
		wel = twel / float64(effectiveN)
	}

	return Eligibility{Symbols: eligible, EffectiveNPositions: effectiveN, WEL: wel}
}

// dropBottomByVolume removes the lowest volumeDropPct fraction of
// symbols by volume EMA.
func dropBottomByVolume(ranked []filter.Ranked, volumeDropPct float64) []filter.Ranked {
	if volumeDropPct <= 0 || len(ranked) == 0 {
		out := make([]filter.Ranked, len(ranked))
		copy(out, ranked)
		return out
	}
	sorted := make([]filter.Ranked, len(ranked))
	copy(sorted, ranked)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VolumeEMA < sorted[j].VolumeEMA
	})
	dropCount := int(float64(len(sorted)) * volumeDropPct)
	if dropCount >= len(sorted) {
		dropCount = len(sorted) - 1
	}
	if dropCount < 0 {
		dropCount = 0
	}
	return sorted[dropCount:]
}

// NewEntriesAllowed reports whether symbol may open a fresh entry this
// minute: it must be in the eligible set. Symbols outside it continue
// to close only, equivalent to a graceful stop.
func (e Eligibility) NewEntriesAllowed(symbol string) bool {
	return e.Symbols[symbol]
}
