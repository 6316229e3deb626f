// Package market holds the engine's read-only market data model: the
// per-symbol exchange rules (component 1 of the design) and the minute
// candle shape the driver consumes.
package market

import (
	"math"

	"contrarian-grid-engine/errs"
)

// Candle is one minute of OHLCV for a single symbol.
type Candle struct {
	Ts          int64 // minute index, strictly monotonic per symbol
	Symbol      string
	Open        float64
	High        float64
	Low         float64
	Close       float64
	QuoteVolume float64
}

// Validate enforces the malformed-candle rules of the error taxonomy:
// low <= high, non-negative volume, and (via lastTs) strictly increasing
// timestamps per symbol.
func (c Candle) Validate(lastTs int64) error {
	if c.Low > c.High {
		return errs.NewCandleError(c.Ts, c.Symbol, "low > high")
	}
	if c.QuoteVolume < 0 {
		return errs.NewCandleError(c.Ts, c.Symbol, "negative volume")
	}
	if lastTs != 0 && c.Ts <= lastTs {
		return errs.NewCandleError(c.Ts, c.Symbol, "timestamp out of order")
	}
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.QuoteVolume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.NewCandleError(c.Ts, c.Symbol, "non-finite field")
		}
	}
	return nil
}

// LogRange returns ln(high/low), the dimensionless volatility proxy used
// throughout the grid-spacing and ranking math. Degenerate candles
// (low <= 0) report zero rather than propagating -Inf/NaN.
func (c Candle) LogRange() float64 {
	if c.Low <= 0 || c.High <= 0 {
		return 0
	}
	return math.Log(c.High / c.Low)
}

// Direction reports whether the candle should be walked high-then-low
// (true) or low-then-high (false) when recomputing trailing extrema:
// chosen deterministically by candle direction.
func (c Candle) Direction() bool {
	return c.Close >= c.Open
}
