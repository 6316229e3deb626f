package ordermath

import (
	"testing"

	"contrarian-grid-engine/config"
)

func TestMinimumBalancePositiveForReasonableGrid(t *testing.T) {
	cfg := config.Side{TotalWalletExposureLimit: 1.0}
	cfg.EntryGrid.SpacingPct = 0.02
	cfg.EntryGrid.DoubleDownFactor = 1.5
	r := rules()
	r.MinQty = 0.001
	r.MinCost = 5

	got := MinimumBalance(cfg, r, 100, 5)
	if got <= 0 {
		t.Fatalf("expected positive minimum balance, got %v", got)
	}
}

func TestMinimumBalanceZeroForNoLevels(t *testing.T) {
	cfg := config.Side{TotalWalletExposureLimit: 1.0}
	if got := MinimumBalance(cfg, rules(), 100, 0); got != 0 {
		t.Fatalf("expected 0 for zero grid levels, got %v", got)
	}
}
