// Package engine is the driver: it ties the market rules, EMA trackers,
// filters, trailing/position state, order-set builder, fill simulator,
// and metrics together into a fixed eight-step per-minute loop (ingest
// -> update state -> generate orders -> apply fills -> report).
package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/ema"
	"contrarian-grid-engine/errs"
	"contrarian-grid-engine/fillsim"
	"contrarian-grid-engine/filter"
	"contrarian-grid-engine/forager"
	"contrarian-grid-engine/logging"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/metrics"
	"contrarian-grid-engine/ordermath"
	"contrarian-grid-engine/position"
)

// sideRuntime is the per-side mutable state the driver owns: one
// Position and one EMA tracker per symbol, keyed identically across
// both sides so a symbol's long and short legs evolve independently.
type sideRuntime struct {
	positions   map[string]*position.Position
	emas        map[string]*ema.Tracker
	eligibility forager.Eligibility
}

func newSideRuntime() *sideRuntime {
	return &sideRuntime{
		positions: map[string]*position.Position{},
		emas:      map[string]*ema.Tracker{},
	}
}

func (r *sideRuntime) position(symbol string) *position.Position {
	p, ok := r.positions[symbol]
	if !ok {
		p = &position.Position{Symbol: symbol}
		r.positions[symbol] = p
	}
	return p
}

func (r *sideRuntime) heldSymbols() map[string]bool {
	held := map[string]bool{}
	for sym, p := range r.positions {
		if p.IsOpen() {
			held[sym] = true
		}
	}
	return held
}

// Engine owns one complete run's mutable state.
type Engine struct {
	RunID uuid.UUID

	cfg       config.Config
	overrides map[string]config.Override
	markets   map[string]market.Rules

	long, short *sideRuntime
	filters     map[string]*filter.State

	wallet position.Wallet

	log        *logging.Logger
	collectors metrics.Recorder

	lastTs    map[string]int64
	lastClose map[string]float64

	Equity []metrics.EquityPoint
	Fills  []metrics.FillRecord
	Holds  []metrics.HoldDuration

	Bankrupt   bool
	BankruptTs int64
}

// New constructs an Engine ready to process minutes. cfg must already
// have passed config.Validate; markets must have an entry for every
// symbol the candle stream will present, or Step returns ErrMarketMissing.
func New(cfg config.Config, markets map[string]market.Rules, log *logging.Logger, collectors metrics.Recorder) *Engine {
	return &Engine{
		RunID:      uuid.New(),
		cfg:        cfg,
		overrides:  map[string]config.Override{},
		markets:    markets,
		long:       newSideRuntime(),
		short:      newSideRuntime(),
		filters:    map[string]*filter.State{},
		wallet:     *position.NewWallet(cfg.Backtest.StartingBalance),
		log:        log,
		collectors: collectors,
		lastTs:     map[string]int64{},
		lastClose:  map[string]float64{},
	}
}

// ApplyOverrides replaces the engine's whole per-symbol override table.
// Must be called by the caller between minutes only (never mid-Step),
// typically fed by a config.OverrideWatcher's Take().
func (e *Engine) ApplyOverrides(overrides map[string]config.Override) {
	e.overrides = overrides
}

func (e *Engine) filterFor(symbol string, cfg config.Side) *filter.State {
	f, ok := e.filters[symbol]
	if !ok {
		fc := cfg.Forager
		f = filter.New(fc.VolumeSpan, fc.LogRangeSpan, fc.HourlySpan)
		e.filters[symbol] = f
	}
	return f
}

func (e *Engine) emaFor(rt *sideRuntime, symbol string, cfg config.Side) *ema.Tracker {
	t, ok := rt.emas[symbol]
	if !ok {
		t = ema.New(cfg.EMA.Span0, cfg.EMA.Span1, cfg.EMA.WarmupMinutes, cfg.EMA.WarmupRatio)
		rt.emas[symbol] = t
	}
	return t
}

// Step runs one minute's worth of the fixed eight-step phase order for
// the given batch of same-minute candles.
func (e *Engine) Step(candles map[string]market.Candle) error {
	// 1. Ingest & validate.
	for symbol, c := range candles {
		if _, ok := e.markets[symbol]; !ok {
			return errs.ErrMarketMissing
		}
		if err := c.Validate(e.lastTs[symbol]); err != nil {
			return err
		}
		e.lastTs[symbol] = c.Ts
		e.lastClose[symbol] = c.Close
	}

	// 2. EMA & filter updates.
	for symbol, c := range candles {
		side := e.sideCfg(symbol, true)
		e.emaFor(e.long, symbol, side).Update(c.Close)
		sideS := e.sideCfg(symbol, false)
		e.emaFor(e.short, symbol, sideS).Update(c.Close)
		e.filterFor(symbol, side).UpdateMinute(c.QuoteVolume, c.LogRange())
	}

	// 3. Eligibility & WEL.
	rankedLong := e.rankedSymbols(candles)
	e.long.eligibility = forager.Select(rankedLong, e.long.heldSymbols(), e.cfg.Long.NPositions, e.cfg.Long.Forager.VolumeDropPct, e.cfg.Long.TotalWalletExposureLimit)
	e.short.eligibility = forager.Select(rankedLong, e.short.heldSymbols(), e.cfg.Short.NPositions, e.cfg.Short.Forager.VolumeDropPct, e.cfg.Short.TotalWalletExposureLimit)

	// 4. Trailing extrema.
	for symbol, c := range candles {
		up := c.Direction()
		for _, rt := range []*sideRuntime{e.long, e.short} {
			p := rt.position(symbol)
			if !p.IsOpen() {
				continue
			}
			if up {
				p.Trailing.UpdateHighThenLow(c.High, c.Low)
			} else {
				p.Trailing.UpdateLowThenHigh(c.High, c.Low)
			}
		}
	}

	// 5. Build order sets, 6. simulate fills.
	symbols := sortedSymbols(candles)

	var candidates []fillsim.Candidate
	stuckCands, stuckLookup := e.collectStuck(candles, symbols)

	for _, symbol := range symbols {
		c := candles[symbol]
		rules := e.markets[symbol]
		candidates = append(candidates, e.buildSymbolOrders(symbol, c, rules, true)...)
		candidates = append(candidates, e.buildSymbolOrders(symbol, c, rules, false)...)
	}
	if best, ok := ordermath.SelectStuck(stuckCands); ok {
		if uc, ok2 := stuckLookup[stuckKey(best.Symbol, best.Long)]; ok2 {
			candidates = append(candidates, uc)
		}
	}

	for _, symbol := range symbols {
		c := candles[symbol]
		fills := fillsim.Simulate(filterSymbol(candidates, symbol), c)
		for _, f := range fills {
			if err := e.applyFill(symbol, c.Ts, f); err != nil {
				return err
			}
		}
	}

	// 7 & 8. Balance/equity/peak and observation.
	return e.closeMinute(candles)
}

func stuckKey(symbol string, long bool) string {
	return fmt.Sprintf("%s|%v", symbol, long)
}

// sortedSymbols returns candles' keys in sorted order, so every
// per-minute pass over the batch (order building, fill application)
// sees symbols in the same order regardless of map iteration order.
func sortedSymbols(candles map[string]market.Candle) []string {
	symbols := make([]string, 0, len(candles))
	for symbol := range candles {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func filterSymbol(cands []fillsim.Candidate, symbol string) []fillsim.Candidate {
	var out []fillsim.Candidate
	for _, c := range cands {
		if c.Symbol == symbol {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) sideCfg(symbol string, long bool) config.Side {
	resolved := config.Resolve(e.cfg, e.overrides, symbol)
	if long {
		return resolved.Long
	}
	return resolved.Short
}

func (e *Engine) rankedSymbols(candles map[string]market.Candle) []filter.Ranked {
	var out []filter.Ranked
	for _, symbol := range sortedSymbols(candles) {
		f, ok := e.filters[symbol]
		if !ok {
			continue
		}
		out = append(out, filter.Ranked{Symbol: symbol, VolumeEMA: f.VolumeEMA(), LogRangeEMA: f.LogRangeEMA()})
	}
	return out
}
