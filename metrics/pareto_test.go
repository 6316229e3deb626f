package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contrarian-grid-engine/metrics"
)

func TestParetoRankOrdersByDistanceToIdeal(t *testing.T) {
	objectives := [][]float64{
		{0.5, 0.5}, // mid
		{0.0, 0.0}, // ideal
		{1.0, 1.0}, // worst
	}
	order := metrics.ParetoRank(objectives)
	require.Equal(t, []int{1, 0, 2}, order)
}

func TestParetoRankHandlesDegenerateColumn(t *testing.T) {
	objectives := [][]float64{
		{1.0, 5.0},
		{1.0, 2.0},
	}
	order := metrics.ParetoRank(objectives)
	require.Len(t, order, 2)
	require.Equal(t, 1, order[0]) // lower second objective wins when first is constant
}

func TestParetoRankEmpty(t *testing.T) {
	require.Nil(t, metrics.ParetoRank(nil))
}
