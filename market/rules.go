package market

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// Rules is the immutable per-symbol exchange constraint set: price_step,
// qty_step, min_qty, min_cost and the contract multiplier for
// perpetual-futures notional math.
type Rules struct {
	PriceStep float64
	QtyStep   float64
	MinQty    float64
	MinCost   float64
	CMult     float64
}

// RoundDown rounds v down to the nearest multiple of step (toward zero for
// positive v). step <= 0 is treated as "no rounding."
func RoundDown(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Floor(v/step+1e-10) * step
}

// RoundUp rounds v up to the nearest multiple of step.
func RoundUp(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step-1e-10) * step
}

// RoundStep rounds v to the nearest multiple of step (half-away-from-zero),
// used for quantities: they round to the nearest qty_step.
func RoundStep(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// MinEntryQty returns max(min_qty, min_cost/price): the floor every
// generated entry order's quantity must respect.
func (r Rules) MinEntryQty(price float64) float64 {
	if price <= 0 {
		return r.MinQty
	}
	q := r.MinCost / price
	if q < r.MinQty {
		return r.MinQty
	}
	return q
}

// SatisfiesMinCost reports whether qty*price clears MinCost. A generated
// order that fails this is dropped silently.
func (r Rules) SatisfiesMinCost(price, qty float64) bool {
	return qty*price >= r.MinCost-1e-12
}

// LoadRulesCSV reads a header row (symbol,price_step,qty_step,min_qty,
// min_cost,c_mult) followed by one row per symbol.
func LoadRulesCSV(path string) (map[string]Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse rules csv: %w", err)
	}
	if len(rows) < 2 {
		return map[string]Rules{}, nil
	}

	out := make(map[string]Rules, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		symbol := row[0]
		priceStep, _ := strconv.ParseFloat(row[1], 64)
		qtyStep, _ := strconv.ParseFloat(row[2], 64)
		minQty, _ := strconv.ParseFloat(row[3], 64)
		minCost, _ := strconv.ParseFloat(row[4], 64)
		cMult, _ := strconv.ParseFloat(row[5], 64)
		out[symbol] = Rules{PriceStep: priceStep, QtyStep: qtyStep, MinQty: minQty, MinCost: minCost, CMult: cMult}
	}
	return out, nil
}

// IsMultiple reports whether value is (within float tolerance) a
// multiple of step.
func IsMultiple(value, step float64) bool {
	if step <= 0 {
		return true
	}
	ratio := value / step
	return math.Abs(ratio-math.Round(ratio)) <= 1e-8
}
