package metrics

import (
	"math"
	"sort"
)

// TailFractions are the ten overlapping tail-subset start points behind
// the "_w" reported-metric variants: k/(k+1) for k=0..9, i.e. [0..N],
// [N/2..N], [2N/3..N], ..., [9N/10..N].
var TailFractions = []float64{0, 1.0 / 2, 2.0 / 3, 3.0 / 4, 4.0 / 5, 5.0 / 6, 6.0 / 7, 7.0 / 8, 8.0 / 9, 9.0 / 10}

// EquityPoint is one minute's recorded balance/equity, the raw material
// for every reported metric.
type EquityPoint struct {
	Ts      int64
	Balance float64
	Equity  float64
}

// FillRecord is the subset of a fill event the reported metrics need:
// realized PnL and notional traded.
type FillRecord struct {
	Ts          int64
	Price, Qty  float64
	RealizedPnl float64
}

// HoldDuration is one closed position's lifetime in hours, supplied by
// the driver (which owns position open/close timestamps); the metrics
// package stays a pure function of already-extracted series.
type HoldDuration float64

// Report computes the full reported-metric set plus its "_w" tail
// variants (mean across the ten TailFractions subsets) from a run's
// equity curve, fills, and closed-position hold durations.
func Report(points []EquityPoint, fills []FillRecord, holds []HoldDuration, minutesPerDay int) map[string]float64 {
	out := computeCore(points, fills, holds, minutesPerDay)

	n := len(points)
	if n == 0 {
		return out
	}
	acc := make(map[string]*RunningStats, len(out))
	for k := range out {
		acc[k] = NewRunningStats()
	}
	for _, frac := range TailFractions {
		start := int(frac * float64(n))
		if start >= n {
			start = n - 1
		}
		sub := computeCore(points[start:], filterFillsFrom(fills, points[start].Ts), holds, minutesPerDay)
		for k, v := range sub {
			acc[k].Push(v)
		}
	}
	for k, a := range acc {
		out[k+"_w"] = a.Mean()
	}
	return out
}

func filterFillsFrom(fills []FillRecord, fromTs int64) []FillRecord {
	var out []FillRecord
	for _, f := range fills {
		if f.Ts >= fromTs {
			out = append(out, f)
		}
	}
	return out
}

func computeCore(points []EquityPoint, fills []FillRecord, holds []HoldDuration, minutesPerDay int) map[string]float64 {
	out := map[string]float64{}
	if len(points) < 2 || minutesPerDay <= 0 {
		return out
	}

	dailyReturns := dailyLogReturns(points, minutesPerDay)
	nDays := float64(len(points)) / float64(minutesPerDay)

	out["gain"] = points[len(points)-1].Equity/points[0].Equity - 1
	out["adg"] = mean(dailyReturns)
	out["mdg"] = median(dailyReturns)

	worst, worstMean1pct := drawdowns(points)
	out["drawdown_worst"] = worst
	out["drawdown_worst_mean_1pct"] = worstMean1pct
	out["expected_shortfall_1pct"] = expectedShortfall(dailyReturns, 0.01)

	stdev := stddev(dailyReturns)
	out["sharpe_ratio"] = safeDiv(out["adg"], stdev)
	out["sortino_ratio"] = safeDiv(out["adg"], downsideStddev(dailyReturns))
	out["calmar_ratio"] = safeDiv(out["adg"], worst)
	out["sterling_ratio"] = safeDiv(out["adg"], worstMean1pct)
	out["omega_ratio"] = omega(dailyReturns)

	profit, loss := 0.0, 0.0
	notional := 0.0
	for _, f := range fills {
		if f.RealizedPnl > 0 {
			profit += f.RealizedPnl
		} else {
			loss += -f.RealizedPnl
		}
		notional += f.Price * math.Abs(f.Qty)
	}
	out["loss_profit_ratio"] = safeDiv(loss, profit)
	out["volume_pct_per_day_avg"] = safeDiv(notional/points[0].Balance, nDays)

	out["positions_held_per_day"] = float64(len(holds)) / nDays
	hoursSlice := make([]float64, len(holds))
	for i, h := range holds {
		hoursSlice[i] = float64(h)
	}
	out["position_held_hours_mean"] = mean(hoursSlice)
	out["position_held_hours_median"] = median(hoursSlice)
	out["position_held_hours_max"] = maxOf(hoursSlice)

	out["equity_choppiness"] = choppiness(points)
	out["equity_jerkiness"] = jerkiness(points)
	out["exponential_fit_error"] = exponentialFitError(points)

	return out
}

func dailyLogReturns(points []EquityPoint, minutesPerDay int) []float64 {
	var rets []float64
	for i := minutesPerDay; i < len(points); i += minutesPerDay {
		prev, cur := points[i-minutesPerDay].Equity, points[i].Equity
		if prev > 0 && cur > 0 {
			rets = append(rets, math.Log(cur/prev))
		}
	}
	return rets
}

func drawdowns(points []EquityPoint) (worst, worstMean1pct float64) {
	peak := points[0].Equity
	var dd []float64
	for _, p := range points {
		if p.Equity > peak {
			peak = p.Equity
		}
		d := 0.0
		if peak > 0 {
			d = (peak - p.Equity) / peak
		}
		dd = append(dd, d)
		if d > worst {
			worst = d
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(dd)))
	k := int(math.Ceil(float64(len(dd)) * 0.01))
	if k < 1 {
		k = 1
	}
	if k > len(dd) {
		k = len(dd)
	}
	worstMean1pct = mean(dd[:k])
	return worst, worstMean1pct
}

func expectedShortfall(returns []float64, tail float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)
	k := int(math.Ceil(float64(len(sorted)) * tail))
	if k < 1 {
		k = 1
	}
	return mean(sorted[:k])
}

func omega(returns []float64) float64 {
	gains, losses := 0.0, 0.0
	for _, r := range returns {
		if r > 0 {
			gains += r
		} else {
			losses += -r
		}
	}
	return safeDiv(gains, losses)
}

func choppiness(points []EquityPoint) float64 {
	pathLength := 0.0
	for i := 1; i < len(points); i++ {
		pathLength += math.Abs(points[i].Equity - points[i-1].Equity)
	}
	net := math.Abs(points[len(points)-1].Equity - points[0].Equity)
	return safeDiv(pathLength, net)
}

func jerkiness(points []EquityPoint) float64 {
	if len(points) < 3 {
		return 0
	}
	var secondDiffs []float64
	for i := 2; i < len(points); i++ {
		d2 := points[i].Equity - 2*points[i-1].Equity + points[i-2].Equity
		secondDiffs = append(secondDiffs, d2)
	}
	return stddev(secondDiffs)
}

// exponentialFitError fits ln(equity) = a + b*t by ordinary least
// squares and returns the RMSE of the fit's residuals in equity space,
// a smoothness proxy for how closely the run tracked steady compounding.
func exponentialFitError(points []EquityPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}
	var sumT, sumY, sumTT, sumTY float64
	for i, p := range points {
		if p.Equity <= 0 {
			return 0
		}
		t := float64(i)
		y := math.Log(p.Equity)
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	b := (n*sumTY - sumT*sumY) / denom
	a := (sumY - b*sumT) / n

	var sqErr float64
	for i, p := range points {
		fitted := math.Exp(a + b*float64(i))
		diff := p.Equity - fitted
		sqErr += diff * diff
	}
	return math.Sqrt(sqErr / n)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func maxOf(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	s := 0.0
	for _, x := range xs {
		s += (x - m) * (x - m)
	}
	return math.Sqrt(s / float64(len(xs)))
}

func downsideStddev(xs []float64) float64 {
	var neg []float64
	for _, x := range xs {
		if x < 0 {
			neg = append(neg, x)
		}
	}
	return stddev(neg)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
