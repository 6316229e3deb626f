// Package filter implements the per-symbol volatility/volume filters: a
// minute EMA of quote volume and a minute EMA of log-range used for
// forager ranking, plus a separate hourly-spanned EMA of log-range used
// to modulate grid spacing. Each is built on the ema.Single exponential
// primitive rather than a fixed-size rolling buffer.
package filter

import "contrarian-grid-engine/ema"

// State is the per-symbol filter state.
type State struct {
	volumeEMA    *ema.Single // minute EMA of quote volume, for ranking
	logRangeEMA  *ema.Single // minute EMA of ln(high/low), for ranking
	hourlyLogEMA *ema.Single // hourly-spanned EMA of ln(high/low), for grid spacing

	minutesPerHour int
	minuteInHour   int
	hourAccum      float64
	hourCount      int
}

// New builds filter state. volumeSpan/logRangeSpan are in minutes;
// hourlySpan is in hours: the hourly EMA is advanced once per
// minutesPerHour minutes, which New fixes at 60 for the engine's
// 1-minute candles.
func New(volumeSpan, logRangeSpan, hourlySpan float64) *State {
	return &State{
		volumeEMA:      ema.NewSingle(volumeSpan),
		logRangeEMA:    ema.NewSingle(logRangeSpan),
		hourlyLogEMA:   ema.NewSingle(hourlySpan),
		minutesPerHour: 60,
	}
}

// UpdateMinute folds in one minute's quote volume and log-range, and rolls
// the hourly log-range EMA forward once every 60 minutes.
func (s *State) UpdateMinute(quoteVolume, logRange float64) {
	s.volumeEMA.Update(quoteVolume)
	s.logRangeEMA.Update(logRange)

	s.hourAccum += logRange
	s.hourCount++
	s.minuteInHour++
	if s.minuteInHour >= s.minutesPerHour {
		mean := s.hourAccum / float64(s.hourCount)
		s.hourlyLogEMA.Update(mean)
		s.hourAccum = 0
		s.hourCount = 0
		s.minuteInHour = 0
	}
}

// VolumeEMA returns the current minute volume EMA (0 before warm-up).
func (s *State) VolumeEMA() float64 {
	v, _ := s.volumeEMA.Value()
	return v
}

// LogRangeEMA returns the current minute log-range EMA (0 before warm-up).
func (s *State) LogRangeEMA() float64 {
	v, _ := s.logRangeEMA.Value()
	return v
}

// HourlyLogRange returns the grid-spacing modulation input. Falls back to
// 0 (neutral) until the first hourly rollup has occurred.
func (s *State) HourlyLogRange() float64 {
	v, ok := s.hourlyLogEMA.Value()
	if !ok {
		return 0
	}
	return v
}

// Ranked is one symbol's ranking inputs, used by the forager package.
type Ranked struct {
	Symbol      string
	VolumeEMA   float64
	LogRangeEMA float64
}
