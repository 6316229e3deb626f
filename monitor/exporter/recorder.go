package exporter

import "contrarian-grid-engine/metrics"

// Recorder implements metrics.Recorder entirely in memory, using the
// package's own mock Counter/Gauge/Histogram types. It gives engine
// tests something to assert against without registering a Prometheus
// registry per test.
type Recorder struct {
	Equity  MockGauge
	Balance MockGauge

	WalletExposure map[string]*MockGauge
	FillSize       MockHistogram
	Fills          map[string]*MockCounter
	Unstuck        map[string]*MockCounter
	Bankruptcies   MockCounter
}

// NewRecorder returns a ready-to-use Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		WalletExposure: map[string]*MockGauge{},
		Fills:          map[string]*MockCounter{},
		Unstuck:        map[string]*MockCounter{},
	}
}

var _ metrics.Recorder = (*Recorder)(nil)

func (r *Recorder) ObserveMinute(balance, equity float64) {
	r.Balance.Set(balance)
	r.Equity.Set(equity)
}

func (r *Recorder) ObserveFill(symbol, side, kind string, we float64) {
	key := symbol + ":" + side + ":" + kind
	c, ok := r.Fills[key]
	if !ok {
		c = &MockCounter{}
		r.Fills[key] = c
	}
	c.Inc()
	r.FillSize.Observe(we)

	gk := symbol + ":" + side
	g, ok := r.WalletExposure[gk]
	if !ok {
		g = &MockGauge{}
		r.WalletExposure[gk] = g
	}
	g.Set(we)
}

func (r *Recorder) ObserveBankruptcy() {
	r.Bankruptcies.Inc()
}

func (r *Recorder) ObserveUnstuck(symbol, side string) {
	key := symbol + ":" + side
	c, ok := r.Unstuck[key]
	if !ok {
		c = &MockCounter{}
		r.Unstuck[key] = c
	}
	c.Inc()
}
