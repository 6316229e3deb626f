package ordermath

import (
	"math"
	"testing"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
)

func rules() market.Rules {
	return market.Rules{PriceStep: 0.01, QtyStep: 0.001, MinQty: 0, MinCost: 0, CMult: 1}
}

func TestInitialEntryPricing(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.InitialQtyPct = 0.15
	cfg.EntryGrid.InitialEmaDist = -0.01

	balance, wel := 1000.0, 2.0
	lowerBand, bid := 100.0, 101.0

	d := InitialEntryLong(cfg, rules(), lowerBand, bid, balance, wel, 0)
	if !d.Emit {
		t.Fatalf("expected an order, got skip reason %v", d.Reason)
	}
	wantPrice := market.RoundDown(101, 0.01)
	if math.Abs(d.Order.Price-wantPrice) > 1e-9 {
		t.Fatalf("price = %v, want %v", d.Order.Price, wantPrice)
	}
	wantQty := math.Round((1000*2.0*0.15/wantPrice)/0.001) * 0.001
	if math.Abs(d.Order.Qty-wantQty) > 1e-9 {
		t.Fatalf("qty = %v, want %v", d.Order.Qty, wantQty)
	}
	if d.Order.Kind != KindLongEntryInitialNormal {
		t.Fatalf("kind = %v, want normal", d.Order.Kind)
	}
}

// Boundary behavior 8.
func TestBoundary8InitialEntryQtyFormula(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.InitialQtyPct = 0.2
	d := InitialEntryLong(cfg, rules(), 50, 1e9, 1000, 1.0, 0)
	if !d.Emit {
		t.Fatalf("expected order, got %v", d.Reason)
	}
	price := d.Order.Price
	want := math.Round((1000*0.2/price)/0.001) * 0.001
	if math.Abs(d.Order.Qty-want) > 1e-9 {
		t.Fatalf("qty = %v, want %v", d.Order.Qty, want)
	}
}

func TestGridSpacingWithExposureWeight(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.SpacingPct = 0.02
	cfg.EntryGrid.SpacingWeWeight = 1.0
	cfg.EntryGrid.DoubleDownFactor = 1.0

	pprice := 100.0
	we, wel := 0.5, 1.0
	d := GridReentryLong(cfg, rules(), 10, pprice, we, wel, 0, 1e9, 100000, 1)
	if !d.Emit {
		t.Fatalf("expected order, got %v", d.Reason)
	}
	want := market.RoundDown(pprice*0.97, 0.01)
	if math.Abs(d.Order.Price-want) > 1e-9 {
		t.Fatalf("price = %v, want %v", d.Order.Price, want)
	}
}

// Inflation: when the cropped next grid step would leave a dust-sized
// remainder, this step absorbs the rest of the WEL budget instead.
func TestGridReentryLongInflatesNearExposureCap(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.SpacingPct = 0
	cfg.EntryGrid.SpacingWeWeight = 0
	cfg.EntryGrid.DoubleDownFactor = 1.0
	cfg.EntryGrid.InitialQtyPct = 0

	balance, wel := 1000.0, 1.0
	size, pprice := 4.9, 100.0

	d := GridReentryLong(cfg, rules(), size, pprice, 0.5, wel, 0, 1e9, balance, 1)
	if !d.Emit {
		t.Fatalf("expected order, got skip reason %v", d.Reason)
	}
	if d.Order.Kind != KindLongEntryGridInflated {
		t.Fatalf("kind = %v, want inflated", d.Order.Kind)
	}
	maxQty := MaxQtyForExposure(wel, d.Order.Price, 1, balance)
	wantQty := market.RoundDown(maxQty-size, rules().QtyStep)
	if math.Abs(d.Order.Qty-wantQty) > 1e-9 {
		t.Fatalf("qty = %v, want %v", d.Order.Qty, wantQty)
	}
}

// Below the exposure cap, the ordinary grid step is emitted uninflated.
func TestGridReentryLongDoesNotInflateFarFromCap(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.SpacingPct = 0
	cfg.EntryGrid.SpacingWeWeight = 0
	cfg.EntryGrid.DoubleDownFactor = 1.0
	cfg.EntryGrid.InitialQtyPct = 0

	d := GridReentryLong(cfg, rules(), 4.0, 100.0, 0.5, 1.0, 0, 1e9, 1000, 1)
	if !d.Emit {
		t.Fatalf("expected order, got skip reason %v", d.Reason)
	}
	if d.Order.Kind != KindLongEntryGridNormal {
		t.Fatalf("kind = %v, want normal", d.Order.Kind)
	}
}

// Mirrors TestGridReentryLongInflatesNearExposureCap for the short side.
func TestGridReentryShortInflatesNearExposureCap(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.SpacingPct = 0
	cfg.EntryGrid.SpacingWeWeight = 0
	cfg.EntryGrid.DoubleDownFactor = 1.0
	cfg.EntryGrid.InitialQtyPct = 0

	balance, wel := 1000.0, 1.0
	size, pprice := 4.9, 100.0

	d := GridReentryShort(cfg, rules(), size, pprice, 0.5, wel, 0, 1e-9, balance, 1)
	if !d.Emit {
		t.Fatalf("expected order, got skip reason %v", d.Reason)
	}
	if d.Order.Kind != KindShortEntryGridInflated {
		t.Fatalf("kind = %v, want inflated", d.Order.Kind)
	}
}

// Boundary 9: trailing_grid_ratio == 0 means grid only.
func TestBoundary9RatioZeroIsGridOnly(t *testing.T) {
	for _, weOverWel := range []float64{0, 0.3, 0.99, 1.5} {
		if BlendEntry(0, weOverWel) {
			t.Fatalf("ratio 0 should never select trailing at we/wel=%v", weOverWel)
		}
	}
}

// Boundary 10: |ratio| == 1 means trailing only.
func TestBoundary10RatioOneIsTrailingOnly(t *testing.T) {
	for _, r := range []float64{1, -1} {
		for _, weOverWel := range []float64{0, 0.5, 2} {
			if !BlendEntry(r, weOverWel) {
				t.Fatalf("ratio %v should always select trailing at we/wel=%v", r, weOverWel)
			}
		}
	}
}

func TestBlendEntryPositiveRatioSwitchesToGridPastThreshold(t *testing.T) {
	if !BlendEntry(0.4, 0.1) {
		t.Fatal("expected trailing below ratio threshold")
	}
	if BlendEntry(0.4, 0.5) {
		t.Fatal("expected grid at/above ratio threshold")
	}
}

func TestBlendEntryNegativeRatioSwitchesToTrailingPastThreshold(t *testing.T) {
	if BlendEntry(-0.4, 0.1) {
		t.Fatal("expected grid below 1+ratio threshold")
	}
	if !BlendEntry(-0.4, 0.7) {
		t.Fatal("expected trailing at/above 1+ratio threshold")
	}
}
