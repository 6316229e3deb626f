package engine

import (
	"math"

	"contrarian-grid-engine/errs"
	"contrarian-grid-engine/fillsim"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/metrics"
)

func nonFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// applyFill folds one executed fill into position, wallet, and the
// observation streams, applying the merge/realized-PnL rules.
func (e *Engine) applyFill(symbol string, ts int64, f fillsim.Fill) error {
	if nonFinite(f.Price, f.Order.Qty) {
		return errs.NewDegenerateError("fill", f.Price)
	}
	long := f.Order.Long
	rt := e.sideRuntime(long)
	pos := rt.position(symbol)
	rules := e.markets[symbol]

	feeRate := e.cfg.Backtest.MakerFeeRate
	if f.Order.Market {
		feeRate = e.cfg.Backtest.TakerFeeRate
	}
	fee := f.Price * f.Order.Qty * feeRate * e.cfg.Backtest.FeeMultiplier

	var realizedPnl float64
	if f.Order.Kind.IsEntry() {
		pos.Merge(ts, f.Price, f.Order.Qty)
	} else {
		sinceTs := pos.SinceTs
		entryPrice := pos.ReduceBy(f.Order.Qty)
		if long {
			realizedPnl = f.Order.Qty * rules.CMult * (f.Price - entryPrice)
		} else {
			realizedPnl = f.Order.Qty * rules.CMult * (entryPrice - f.Price)
		}
		if !pos.IsOpen() {
			e.Holds = append(e.Holds, metrics.HoldDuration(float64(ts-sinceTs)/60))
		}
	}
	if nonFinite(realizedPnl, fee) {
		return errs.NewDegenerateError("realized_pnl", realizedPnl)
	}
	e.wallet.ApplyRealized(realizedPnl, fee)

	side := "long"
	if !long {
		side = "short"
	}
	we := pos.WalletExposure(rules.CMult, e.wallet.Balance)
	if e.log != nil {
		e.log.LogFill(symbol, long, f.Order.Kind, ts, f.Price, f.Order.Qty, fee, realizedPnl)
	}
	if e.collectors != nil {
		e.collectors.ObserveFill(symbol, side, f.Order.Kind.String(), we)
		if f.Order.Kind.String() == "long_close_unstuck" || f.Order.Kind.String() == "short_close_unstuck" {
			e.collectors.ObserveUnstuck(symbol, side)
		}
	}
	e.Fills = append(e.Fills, metrics.FillRecord{Ts: ts, Price: f.Price, Qty: f.Order.Qty, RealizedPnl: realizedPnl})
	return nil
}

// closeMinute performs phases 7-8: recompute unrealized PnL and equity,
// check bankruptcy, and append this minute's observation.
func (e *Engine) closeMinute(candles map[string]market.Candle) error {
	unrealized := 0.0
	for symbol, mark := range e.lastClose {
		rules, ok := e.markets[symbol]
		if !ok {
			continue
		}
		if p := e.long.positions[symbol]; p != nil && p.IsOpen() {
			unrealized += p.Size * (mark - p.Price) * rules.CMult
		}
		if p := e.short.positions[symbol]; p != nil && p.IsOpen() {
			unrealized += p.Size * (p.Price - mark) * rules.CMult
		}
	}
	if nonFinite(unrealized) {
		return errs.NewDegenerateError("unrealized_pnl", unrealized)
	}
	e.wallet.SetUnrealized(unrealized)
	equity := e.wallet.Equity()
	if nonFinite(equity) {
		return errs.NewDegenerateError("equity", equity)
	}

	var ts int64
	for _, c := range candles {
		ts = c.Ts
		break
	}
	e.Equity = append(e.Equity, metrics.EquityPoint{Ts: ts, Balance: e.wallet.Balance, Equity: equity})
	if e.collectors != nil {
		e.collectors.ObserveMinute(e.wallet.Balance, equity)
	}
	if e.log != nil {
		e.log.LogMinuteObservation(ts, e.wallet.Balance, equity)
	}

	if equity <= 0 && !e.Bankrupt {
		e.Bankrupt = true
		e.BankruptTs = ts
		if e.log != nil {
			e.log.LogBankruptcy(ts, equity, e.wallet.Balance)
		}
		if e.collectors != nil {
			e.collectors.ObserveBankruptcy()
		}
		return &errs.Bankruptcy{Ts: ts, Equity: equity, Balance: e.wallet.Balance}
	}
	return nil
}
