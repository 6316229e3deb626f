package orderset

import (
	"testing"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/ema"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/position"
)

func warmedTracker(t *testing.T, price float64, ticks int) *ema.Tracker {
	t.Helper()
	tr := ema.New(10, 20, 5, 0)
	for i := 0; i < ticks; i++ {
		tr.Update(price)
	}
	return tr
}

func TestBuildLongEmitsInitialEntryWhenFlat(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.InitialQtyPct = 0.1
	cfg.EntryGrid.InitialEmaDist = 0

	rules := market.Rules{PriceStep: 0.01, QtyStep: 0.001, CMult: 1}
	pos := &position.Position{Symbol: "BTCUSDT", Side: position.Long}
	tr := warmedTracker(t, 100, 30)

	res := BuildLong(Inputs{
		Cfg: cfg, Rules: rules, Pos: pos, EMA: tr,
		Bid: 100, Ask: 100.1, Balance: 1000, WEL: 1.0, CMult: 1,
	})
	if !res.Entry.Emit {
		t.Fatalf("expected initial entry, got skip %v", res.Entry.Reason)
	}
	if len(res.Closes) != 0 {
		t.Fatalf("expected no close orders while flat, got %d", len(res.Closes))
	}
}

func TestBuildLongEmitsGridAndCloseWhenOpen(t *testing.T) {
	cfg := config.Side{}
	cfg.EntryGrid.SpacingPct = 0.02
	cfg.EntryGrid.DoubleDownFactor = 1.0
	cfg.CloseGrid.MarkupStart = 0.01
	cfg.CloseGrid.MarkupEnd = 0.02

	rules := market.Rules{PriceStep: 0.01, QtyStep: 0.001, CMult: 1}
	pos := &position.Position{Symbol: "BTCUSDT", Side: position.Long, Size: 1, Price: 100}
	tr := warmedTracker(t, 100, 30)

	res := BuildLong(Inputs{
		Cfg: cfg, Rules: rules, Pos: pos, EMA: tr,
		Bid: 1000, Ask: 1000, Balance: 100000, WEL: 1.0, CMult: 1,
	})
	if !res.Entry.Emit {
		t.Fatalf("expected grid re-entry, got skip %v", res.Entry.Reason)
	}
	if len(res.Closes) != 1 || !res.Closes[0].Emit {
		t.Fatalf("expected one close order, got %+v", res.Closes)
	}
}

// Close blending must reserve the inactive mechanism's share: at
// close_trailing_grid_ratio == 0.5 with WE/WEL below the ratio,
// trailing is the active mechanism (BlendEntry's own r>0 rule) and
// should only ever see half the position, leaving the rest reserved
// for grid.
func TestBuildLongCloseBlendReservesInactiveShare(t *testing.T) {
	cfg := config.Side{}
	cfg.CloseTrailingGridRatio = 0.5

	rules := market.Rules{PriceStep: 0.01, QtyStep: 0.001, CMult: 1}
	pos := &position.Position{Symbol: "BTCUSDT", Side: position.Long, Size: 10, Price: 100}
	tr := warmedTracker(t, 100, 30)

	res := BuildLong(Inputs{
		Cfg: cfg, Rules: rules, Pos: pos, EMA: tr,
		Bid: 100, Ask: 100, Balance: 100000, WEL: 1.0, CMult: 1,
	})
	if len(res.Closes) != 1 || !res.Closes[0].Emit {
		t.Fatalf("expected one close order, got %+v", res.Closes)
	}
	if res.Closes[0].Order.Qty != 5 {
		t.Fatalf("qty = %v, want half the position (5) reserved for trailing's share", res.Closes[0].Order.Qty)
	}
}
