package metrics

import "math"

// ParetoRank ranks candidate objective vectors by normalized Euclidean
// distance to the ideal point (the per-objective minimum across all
// candidates, since every objective here is oriented "lower is better"
// by the caller's convention: negate maximize-metrics before calling).
//
// Grounded on the interactive ranking tool's compute_ranking: min-max
// normalize each objective column, then sort by distance to the
// per-column minimum.
func ParetoRank(objectives [][]float64) []int {
	n := len(objectives)
	if n == 0 {
		return nil
	}
	nObj := len(objectives[0])

	mins := make([]float64, nObj)
	maxs := make([]float64, nObj)
	for j := 0; j < nObj; j++ {
		mins[j] = objectives[0][j]
		maxs[j] = objectives[0][j]
	}
	for _, row := range objectives {
		for j, v := range row {
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}

	dist := make([]float64, n)
	for i, row := range objectives {
		sumSq := 0.0
		for j, v := range row {
			span := maxs[j] - mins[j]
			norm := 0.0
			if span > 0 {
				norm = (v - mins[j]) / span
			}
			sumSq += norm * norm
		}
		dist[i] = math.Sqrt(sumSq)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// insertion sort: n is a Pareto front size, expected small.
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && dist[order[j]] < dist[order[j-1]] {
			order[j], order[j-1] = order[j-1], order[j]
			j--
		}
	}
	return order
}
