package market

import "testing"

func TestRoundDownUp(t *testing.T) {
	if got := RoundDown(101.037, 0.01); got != 101.03 {
		t.Fatalf("RoundDown = %v, want 101.03", got)
	}
	if got := RoundUp(101.031, 0.01); got != 101.04 {
		t.Fatalf("RoundUp = %v, want 101.04", got)
	}
	if got := RoundDown(5, 0); got != 5 {
		t.Fatalf("RoundDown with zero step should be identity, got %v", got)
	}
}

func TestMinEntryQty(t *testing.T) {
	r := Rules{MinQty: 0.001, MinCost: 5}
	if got := r.MinEntryQty(100); got != 0.05 {
		t.Fatalf("MinEntryQty = %v, want 0.05", got)
	}
	if got := r.MinEntryQty(1000); got != 0.005 {
		t.Fatalf("MinEntryQty = %v, want 0.005", got)
	}
}

func TestSatisfiesMinCost(t *testing.T) {
	r := Rules{MinCost: 5}
	if !r.SatisfiesMinCost(100, 0.05) {
		t.Fatal("expected 100*0.05 = 5 to satisfy min cost")
	}
	if r.SatisfiesMinCost(100, 0.04) {
		t.Fatal("expected 100*0.04 = 4 to fail min cost")
	}
}

func TestIsMultiple(t *testing.T) {
	if !IsMultiple(0.03, 0.01) {
		t.Fatal("0.03 should be a multiple of 0.01")
	}
	if IsMultiple(0.035, 0.01) {
		t.Fatal("0.035 should not be a multiple of 0.01")
	}
}
