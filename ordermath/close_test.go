package ordermath

import (
	"math"
	"testing"

	"contrarian-grid-engine/config"
)

func TestCloseGridSingleOrder(t *testing.T) {
	cfg := config.Side{}
	cfg.CloseGrid.QtyPct = 1.0
	cfg.CloseGrid.MarkupStart = 0.01
	cfg.CloseGrid.MarkupEnd = 0.02

	pprice := 100.0
	d := CloseGridLong(cfg, rules(), 5, pprice, 0.5, 1.0, 100000, 1)
	if !d.Emit {
		t.Fatalf("expected order, got %v", d.Reason)
	}
	want := pprice * 1.01
	if math.Abs(d.Order.Price-want) > 0.02 {
		t.Fatalf("price = %v, want ~%v", d.Order.Price, want)
	}
	if d.Order.Qty != 5 {
		t.Fatalf("qty = %v, want full close 5", d.Order.Qty)
	}
}

// Boundary 11: WE past WEL*1.01 with enforcement on triggers auto-reduce.
func TestBoundary11AutoReduceTriggersOverLimit(t *testing.T) {
	cfg := config.Side{EnforceExposureLimit: true}
	d := AutoReduceLong(cfg, rules(), 10, 100, 1.5, 1.0, 1)
	if !d.Emit {
		t.Fatalf("expected auto-reduce order, got %v", d.Reason)
	}
	if d.Order.Kind != KindLongCloseAutoReduce {
		t.Fatalf("kind = %v, want auto-reduce", d.Order.Kind)
	}
}

func TestAutoReduceSkipsWithinLimit(t *testing.T) {
	cfg := config.Side{EnforceExposureLimit: true}
	d := AutoReduceLong(cfg, rules(), 10, 100, 1.0, 1.0, 1)
	if d.Emit {
		t.Fatal("expected no auto-reduce within limit")
	}
}

func TestAutoReduceSkipsWhenEnforcementOff(t *testing.T) {
	cfg := config.Side{EnforceExposureLimit: false}
	d := AutoReduceLong(cfg, rules(), 10, 100, 5.0, 1.0, 1)
	if d.Emit {
		t.Fatal("expected no auto-reduce when enforcement disabled")
	}
}

// Boundary 12: WE/WEL at or under threshold means never stuck.
func TestBoundary12NoUnstuckUnderThreshold(t *testing.T) {
	if IsStuckLong(1.0, 1.0, 1.0, 200, 90) {
		t.Fatal("WE/WEL == threshold should not be stuck")
	}
	if IsStuckLong(0.5, 1.0, 1.0, 200, 90) {
		t.Fatal("WE/WEL < threshold should not be stuck")
	}
}

func TestIsStuckLongRequiresUnreachableTP(t *testing.T) {
	// WE/WEL over threshold but active TP is below mark: reachable, not stuck.
	if IsStuckLong(1.5, 1.0, 1.0, 90, 100) {
		t.Fatal("reachable TP should not be stuck")
	}
	if !IsStuckLong(1.5, 1.0, 1.0, 110, 100) {
		t.Fatal("unreachable TP above mark with WE over threshold should be stuck")
	}
}

func TestUnstuckAllowanceIsZero(t *testing.T) {
	allowance := UnstuckAllowance(1000, 0, -200, 2.0, 0.01)
	// pnl_cumsum_max - pnl_cumsum_running = 0 - (-200) = 200; balance_peak = 1200.
	if math.Abs(allowance-0) > 1e-9 {
		t.Fatalf("allowance = %v, want 0", allowance)
	}
}

func TestSelectStuckPicksSmallestGap(t *testing.T) {
	cands := []StuckCandidate{
		{Symbol: "AAA", Long: true, Gap: 0.05},
		{Symbol: "BBB", Long: false, Gap: 0.01},
		{Symbol: "CCC", Long: true, Gap: 0.2},
	}
	best, ok := SelectStuck(cands)
	if !ok || best.Symbol != "BBB" {
		t.Fatalf("expected BBB with smallest gap, got %+v", best)
	}
}

func TestSelectStuckEmpty(t *testing.T) {
	if _, ok := SelectStuck(nil); ok {
		t.Fatal("expected no candidate from empty slice")
	}
}
