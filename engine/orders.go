package engine

import (
	"contrarian-grid-engine/config"
	"contrarian-grid-engine/fillsim"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/ordermath"
	"contrarian-grid-engine/orderset"
)

// buildSymbolOrders assembles one (symbol, side)'s candidate orders for
// the minute: auto-reduce (if over exposure), the entry/close set from
// orderset (unless forced_mode or ineligibility suppresses it), or a
// single panic close under forced_mode "p".
func (e *Engine) buildSymbolOrders(symbol string, c market.Candle, rules market.Rules, long bool) []fillsim.Candidate {
	rt := e.sideRuntime(long)
	cfg := e.sideCfg(symbol, long)
	pos := rt.position(symbol)

	if cfg.ForcedMode == config.ModeManual {
		return nil
	}

	we := 0.0
	if pos.IsOpen() {
		we = pos.WalletExposure(rules.CMult, e.wallet.Balance)
	}
	wel := rt.eligibility.WEL
	if wel == 0 {
		wel = cfg.TotalWalletExposureLimit
	}

	var out []fillsim.Candidate

	if cfg.ForcedMode == config.ModePanic && pos.IsOpen() {
		kind := ordermath.KindLongClosePanic
		if !long {
			kind = ordermath.KindShortClosePanic
		}
		out = append(out, fillsim.Candidate{Symbol: symbol, Order: ordermath.Order{
			Long: long, Kind: kind, Price: c.Open, Qty: pos.Size, Market: true,
		}})
		return out
	}

	if pos.IsOpen() {
		var ar ordermath.Decision
		if long {
			ar = ordermath.AutoReduceLong(cfg, rules, pos.Size, c.Close, we, wel, rules.CMult)
		} else {
			ar = ordermath.AutoReduceShort(cfg, rules, pos.Size, c.Close, we, wel, rules.CMult)
		}
		if ar.Emit {
			out = append(out, fillsim.Candidate{Symbol: symbol, Order: ar.Order})
		}
	}

	closesOnly := cfg.ForcedMode == config.ModeGracefulStop || cfg.ForcedMode == config.ModeTakeProfit
	eligible := rt.eligibility.NewEntriesAllowed(symbol) || pos.IsOpen()

	in := orderset.Inputs{
		Cfg: cfg, Rules: rules, Pos: pos, EMA: e.emaFor(rt, symbol, cfg),
		LogRange: e.filterFor(symbol, cfg).HourlyLogRange(),
		Bid: c.Close, Ask: c.Close,
		Balance: e.wallet.Balance, WEL: wel, CMult: rules.CMult,
	}

	var res orderset.Result
	if long {
		res = orderset.BuildLong(in)
	} else {
		res = orderset.BuildShort(in)
	}

	if !closesOnly && eligible && res.Entry.Emit {
		out = append(out, fillsim.Candidate{Symbol: symbol, Order: res.Entry.Order})
	} else if !res.Entry.Emit && res.Entry.Reason != ordermath.SkipNone && e.log != nil {
		e.log.LogOrderSkip(symbol, long, res.Entry.Reason.String(), c.Ts)
	}
	for _, d := range res.Closes {
		if d.Emit {
			out = append(out, fillsim.Candidate{Symbol: symbol, Order: d.Order})
		} else if d.Reason != ordermath.SkipNone && e.log != nil {
			e.log.LogOrderSkip(symbol, long, d.Reason.String(), c.Ts)
		}
	}
	return out
}

func (e *Engine) sideRuntime(long bool) *sideRuntime {
	if long {
		return e.long
	}
	return e.short
}

// collectStuck evaluates every open position for stuck-ness this minute
// and returns both the candidate list for ordermath.SelectStuck and a
// lookup from (symbol,long) to the pre-built unstuck-close candidate, so
// only the globally selected one is ever appended to the order set.
func (e *Engine) collectStuck(candles map[string]market.Candle, symbols []string) ([]ordermath.StuckCandidate, map[string]fillsim.Candidate) {
	var cands []ordermath.StuckCandidate
	lookup := map[string]fillsim.Candidate{}

	for _, symbol := range symbols {
		c := candles[symbol]
		rules, ok := e.markets[symbol]
		if !ok {
			continue
		}
		for _, long := range []bool{true, false} {
			rt := e.sideRuntime(long)
			cfg := e.sideCfg(symbol, long)
			pos := rt.position(symbol)
			if !pos.IsOpen() || cfg.ForcedMode == config.ModeManual {
				continue
			}
			we := pos.WalletExposure(rules.CMult, e.wallet.Balance)
			wel := rt.eligibility.WEL
			if wel == 0 {
				wel = cfg.TotalWalletExposureLimit
			}

			var activePrice float64
			if long {
				d := ordermath.CloseGridLong(cfg, rules, pos.Size, pos.Price, we, wel, e.wallet.Balance, rules.CMult)
				if d.Emit {
					activePrice = d.Order.Price
				}
			} else {
				d := ordermath.CloseGridShort(cfg, rules, pos.Size, pos.Price, we, wel, e.wallet.Balance, rules.CMult)
				if d.Emit {
					activePrice = d.Order.Price
				}
			}
			if activePrice == 0 {
				continue
			}

			stuck := false
			if long {
				stuck = ordermath.IsStuckLong(we, wel, cfg.Unstuck.Threshold, activePrice, c.Close)
			} else {
				stuck = ordermath.IsStuckShort(we, wel, cfg.Unstuck.Threshold, activePrice, c.Close)
			}
			if !stuck {
				continue
			}

			gap := (c.Close - pos.Price) / pos.Price
			if gap < 0 {
				gap = -gap
			}
			cands = append(cands, ordermath.StuckCandidate{Symbol: symbol, Long: long, Gap: gap})

			allowance := ordermath.UnstuckAllowance(e.wallet.Balance, e.wallet.PnlCumsumMax, e.wallet.PnlCumsum, cfg.TotalWalletExposureLimit, cfg.Unstuck.LossAllowancePct)
			var d ordermath.Decision
			if long {
				upper, _, ok := e.emaFor(rt, symbol, cfg).Bands()
				if !ok {
					continue
				}
				d = ordermath.UnstuckCloseLong(cfg, rules, pos.Size, pos.Price, upper, e.wallet.Balance, wel, rules.CMult, allowance)
			} else {
				_, lower, ok := e.emaFor(rt, symbol, cfg).Bands()
				if !ok {
					continue
				}
				d = ordermath.UnstuckCloseShort(cfg, rules, pos.Size, pos.Price, lower, e.wallet.Balance, wel, rules.CMult, allowance)
			}
			if d.Emit {
				lookup[stuckKey(symbol, long)] = fillsim.Candidate{Symbol: symbol, Order: d.Order}
			}
		}
	}
	return cands, lookup
}
