// Package orderset builds, for one (symbol, side) each minute, the next
// entry order and the set of resting close orders, blending grid and
// trailing legs by trailing_grid_ratio. It is the thin composition
// layer over the pure ordermath functions: all pricing and sizing math
// lives in ordermath, this package only decides which leg is active
// and assembles the final order list.
package orderset

import (
	"contrarian-grid-engine/config"
	"contrarian-grid-engine/ema"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/ordermath"
	"contrarian-grid-engine/position"
)

// Inputs bundles the per-(symbol,side) state a minute's order-set build
// needs. Bid/Ask are the candle-derived touch prices the fill simulator
// will use; for a backtest without a live order book these are simply
// the candle's close (or open, for market fills).
type Inputs struct {
	Cfg     config.Side
	Rules   market.Rules
	Pos     *position.Position
	EMA     *ema.Tracker
	LogRange float64
	Bid, Ask float64
	Balance float64
	WEL     float64
	CMult   float64
}

// Result is the full order set for one (symbol, side) this minute.
type Result struct {
	Entry  ordermath.Decision
	Closes []ordermath.Decision
}

// BuildLong assembles the long-side order set: one entry decision
// (initial, grid, or trailing depending on state and blend ratio) and
// the close ladder (grid and/or trailing depending on blend ratio).
func BuildLong(in Inputs) Result {
	var res Result
	we := 0.0
	if in.Pos.IsOpen() {
		we = in.Pos.WalletExposure(in.CMult, in.Balance)
	}

	if !in.Pos.IsOpen() {
		_, lower, ok := in.EMA.Bands()
		if ok {
			res.Entry = ordermath.InitialEntryLong(in.Cfg, in.Rules, lower, in.Bid, in.Balance, in.WEL, in.Pos.Size)
		} else {
			res.Entry = ordermath.Skipped(ordermath.SkipNoTrigger)
		}
		return res
	}

	weOverWel := 0.0
	if in.WEL > 0 {
		weOverWel = we / in.WEL
	}
	if ordermath.BlendEntry(in.Cfg.EntryTrailingGridRatio, weOverWel) {
		res.Entry = ordermath.TrailingEntryLong(in.Cfg, in.Rules, in.Pos.Trailing, in.Pos.Size, in.Pos.Price, in.Bid, in.Balance, in.WEL)
	} else {
		res.Entry = ordermath.GridReentryLong(in.Cfg, in.Rules, in.Pos.Size, in.Pos.Price, we, in.WEL, in.LogRange, in.Bid, in.Balance, in.CMult)
	}

	trailingShare, gridShare := ordermath.CloseShares(in.Cfg.CloseTrailingGridRatio)
	if ordermath.BlendClose(in.Cfg.CloseTrailingGridRatio, weOverWel) {
		res.Closes = append(res.Closes, ordermath.CloseTrailingLong(in.Cfg, in.Rules, in.Pos.Trailing, in.Pos.Size*trailingShare, in.Pos.Price, in.Ask, in.Balance, in.WEL, in.CMult))
	} else {
		res.Closes = append(res.Closes, ordermath.CloseGridLong(in.Cfg, in.Rules, in.Pos.Size*gridShare, in.Pos.Price, we, in.WEL, in.Balance, in.CMult))
	}
	return res
}

// BuildShort mirrors BuildLong.
func BuildShort(in Inputs) Result {
	var res Result
	we := 0.0
	if in.Pos.IsOpen() {
		we = in.Pos.WalletExposure(in.CMult, in.Balance)
	}

	if !in.Pos.IsOpen() {
		upper, _, ok := in.EMA.Bands()
		if ok {
			res.Entry = ordermath.InitialEntryShort(in.Cfg, in.Rules, upper, in.Ask, in.Balance, in.WEL, in.Pos.Size)
		} else {
			res.Entry = ordermath.Skipped(ordermath.SkipNoTrigger)
		}
		return res
	}

	weOverWel := 0.0
	if in.WEL > 0 {
		weOverWel = we / in.WEL
	}
	if ordermath.BlendEntry(in.Cfg.EntryTrailingGridRatio, weOverWel) {
		res.Entry = ordermath.TrailingEntryShort(in.Cfg, in.Rules, in.Pos.Trailing, in.Pos.Size, in.Pos.Price, in.Ask, in.Balance, in.WEL)
	} else {
		res.Entry = ordermath.GridReentryShort(in.Cfg, in.Rules, in.Pos.Size, in.Pos.Price, we, in.WEL, in.LogRange, in.Ask, in.Balance, in.CMult)
	}

	trailingShare, gridShare := ordermath.CloseShares(in.Cfg.CloseTrailingGridRatio)
	if ordermath.BlendClose(in.Cfg.CloseTrailingGridRatio, weOverWel) {
		res.Closes = append(res.Closes, ordermath.CloseTrailingShort(in.Cfg, in.Rules, in.Pos.Trailing, in.Pos.Size*trailingShare, in.Pos.Price, in.Bid, in.Balance, in.WEL, in.CMult))
	} else {
		res.Closes = append(res.Closes, ordermath.CloseGridShort(in.Cfg, in.Rules, in.Pos.Size*gridShare, in.Pos.Price, we, in.WEL, in.Balance, in.CMult))
	}
	return res
}
