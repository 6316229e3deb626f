// Package errs defines the fatal error taxonomy the engine can raise.
//
// Order generation itself does not use these for expected skips (a
// min-cost-rejected order is not an error, see the ordermath package);
// these are reserved for the conditions the driver treats as fatal.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigInvalid is returned when a Config parameter is out of range
	// or internally inconsistent (e.g. markup_start == markup_end == 0).
	ErrConfigInvalid = errors.New("config invalid")

	// ErrMarketMissing is returned when the stream references a symbol with
	// no MarketRules entry.
	ErrMarketMissing = errors.New("market rules missing for symbol")

	// ErrCandleMalformed is returned for low > high, negative volume, or an
	// out-of-order timestamp.
	ErrCandleMalformed = errors.New("candle malformed")

	// ErrNumericDegenerate is returned when a NaN or Inf is observed in any
	// engine state.
	ErrNumericDegenerate = errors.New("numeric state degenerate")
)

// ConfigError wraps ErrConfigInvalid with the offending field/reason.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config invalid: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfigInvalid }

func NewConfigError(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// CandleError wraps ErrCandleMalformed with the offending (ts, symbol).
type CandleError struct {
	Ts     int64
	Symbol string
	Reason string
}

func (e *CandleError) Error() string {
	return fmt.Sprintf("candle malformed: symbol=%s ts=%d: %s", e.Symbol, e.Ts, e.Reason)
}

func (e *CandleError) Unwrap() error { return ErrCandleMalformed }

func NewCandleError(ts int64, symbol, reason string) error {
	return &CandleError{Ts: ts, Symbol: symbol, Reason: reason}
}

// DegenerateError wraps ErrNumericDegenerate with the block that observed it.
type DegenerateError struct {
	Block string
	Value float64
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("numeric state degenerate: block=%s value=%v", e.Block, e.Value)
}

func (e *DegenerateError) Unwrap() error { return ErrNumericDegenerate }

func NewDegenerateError(block string, value float64) error {
	return &DegenerateError{Block: block, Value: value}
}

// Bankruptcy is a non-fatal marker: the driver stops cleanly and reports it
// upward rather than treating it like the errors above.
type Bankruptcy struct {
	Ts      int64
	Equity  float64
	Balance float64
}

func (b *Bankruptcy) Error() string {
	return fmt.Sprintf("bankruptcy at ts=%d equity=%.8f balance=%.8f", b.Ts, b.Equity, b.Balance)
}
