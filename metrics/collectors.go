// Package metrics exposes the run's live state as Prometheus collectors
// via a promhttp.Handler, and computes the reported-metric set once a
// run finishes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the driver depends on to report live state: the
// exposition mechanism (Prometheus, or an in-memory double for tests)
// is an implementation detail behind it.
type Recorder interface {
	ObserveMinute(balance, equity float64)
	ObserveFill(symbol, side, kind string, we float64)
	ObserveBankruptcy()
	ObserveUnstuck(symbol, side string)
}

// Collectors bundles the gauges and counters the driver updates once per
// minute (or once per fill/bankruptcy event). It implements Recorder.
type Collectors struct {
	Equity           prometheus.Gauge
	Balance          prometheus.Gauge
	WalletExposure   *prometheus.GaugeVec // labeled by symbol,side
	Fills            *prometheus.CounterVec // labeled by symbol,side,kind
	BankruptcyEvents prometheus.Counter
	UnstuckFires     *prometheus.CounterVec // labeled by symbol,side
}

// NewCollectors builds and registers a fresh Collectors set against reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Equity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "engine_equity",
			Help: "Current run equity (balance plus unrealized PnL).",
		}),
		Balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "engine_balance",
			Help: "Current run balance.",
		}),
		WalletExposure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "engine_wallet_exposure",
			Help: "Current wallet exposure per symbol and side.",
		}, []string{"symbol", "side"}),
		Fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_fills_total",
			Help: "Total fills by symbol, side, and order kind.",
		}, []string{"symbol", "side", "kind"}),
		BankruptcyEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_bankruptcy_events_total",
			Help: "Number of bankruptcy markers emitted.",
		}),
		UnstuckFires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_unstuck_fires_total",
			Help: "Number of unstuck closes fired, by symbol and side.",
		}, []string{"symbol", "side"}),
	}
	reg.MustRegister(c.Equity, c.Balance, c.WalletExposure, c.Fills, c.BankruptcyEvents, c.UnstuckFires)
	return c
}

// ObserveMinute records one minute's balance/equity snapshot.
func (c *Collectors) ObserveMinute(balance, equity float64) {
	c.Balance.Set(balance)
	c.Equity.Set(equity)
}

// ObserveFill increments the fill counter and updates exposure for one
// (symbol, side).
func (c *Collectors) ObserveFill(symbol, side, kind string, we float64) {
	c.Fills.WithLabelValues(symbol, side, kind).Inc()
	c.WalletExposure.WithLabelValues(symbol, side).Set(we)
}

// ObserveBankruptcy increments the bankruptcy counter.
func (c *Collectors) ObserveBankruptcy() {
	c.BankruptcyEvents.Inc()
}

// ObserveUnstuck increments the per-symbol unstuck-fire counter.
func (c *Collectors) ObserveUnstuck(symbol, side string) {
	c.UnstuckFires.WithLabelValues(symbol, side).Inc()
}

// StartServer serves the registered collectors on addr's /metrics path.
func StartServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
