package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contrarian-grid-engine/metrics"
)

func TestRunningStatsMeanAndVariance(t *testing.T) {
	r := metrics.NewRunningStats()
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Push(v)
	}
	require.InDelta(t, 5.0, r.Mean(), 1e-9)
	require.InDelta(t, 4.0, r.Variance(), 1e-9)
	require.Equal(t, int64(8), r.Count())
	require.Equal(t, 2.0, r.Min())
	require.Equal(t, 9.0, r.Max())
}

func TestRunningStatsEmpty(t *testing.T) {
	r := metrics.NewRunningStats()
	require.Equal(t, 0.0, r.Mean())
	require.Equal(t, 0.0, r.Variance())
}
