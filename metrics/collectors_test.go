package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"contrarian-grid-engine/metrics"
)

func TestObserveMinuteSetsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectors(reg)

	c.ObserveMinute(950, 1000)
	require.Equal(t, 950.0, testutil.ToFloat64(c.Balance))
	require.Equal(t, 1000.0, testutil.ToFloat64(c.Equity))
}

func TestObserveFillIncrementsCounterAndExposure(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectors(reg)

	c.ObserveFill("BTCUSDT", "long", "entry_grid_normal", 0.4)
	require.Equal(t, 1.0, testutil.ToFloat64(c.Fills.WithLabelValues("BTCUSDT", "long", "entry_grid_normal")))
	require.Equal(t, 0.4, testutil.ToFloat64(c.WalletExposure.WithLabelValues("BTCUSDT", "long")))
}

func TestObserveBankruptcyAndUnstuck(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectors(reg)

	c.ObserveBankruptcy()
	c.ObserveUnstuck("ETHUSDT", "short")
	require.Equal(t, 1.0, testutil.ToFloat64(c.BankruptcyEvents))
	require.Equal(t, 1.0, testutil.ToFloat64(c.UnstuckFires.WithLabelValues("ETHUSDT", "short")))
}
