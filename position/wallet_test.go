package position

import "testing"

func TestWalletFloor(t *testing.T) {
	w := NewWallet(1000)
	w.ApplyRealized(-2000, 0)
	if w.Balance != MinBalance {
		t.Fatalf("expected balance floored at %v, got %v", MinBalance, w.Balance)
	}
}

func TestWalletPeakBalance(t *testing.T) {
	w := NewWallet(1000)
	w.ApplyRealized(200, 0)
	if w.PnlCumsumMax != 200 {
		t.Fatalf("expected pnl_cumsum_max=200, got %v", w.PnlCumsumMax)
	}
	w.ApplyRealized(-200, 0)
	if w.PnlCumsum != 0 {
		t.Fatalf("expected pnl_cumsum=0, got %v", w.PnlCumsum)
	}
	if w.PnlCumsumMax < w.PnlCumsum {
		t.Fatal("invariant pnl_cumsum_max >= pnl_cumsum_running violated")
	}
	// balance = 1000, peak = 1000 + (200-0) = 1200
	if got := w.PeakBalance(); got != 1200 {
		t.Fatalf("expected peak balance 1200, got %v", got)
	}
}
