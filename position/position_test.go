package position

import "testing"

func TestOpenAndMerge(t *testing.T) {
	var p Position
	p.Open(1, 100, 1)
	if p.Price != 100 || p.Size != 1 {
		t.Fatalf("unexpected position after open: %+v", p)
	}
	p.Merge(2, 90, 1)
	if p.Size != 2 {
		t.Fatalf("expected size 2, got %v", p.Size)
	}
	if p.Price != 95 {
		t.Fatalf("expected averaged price 95, got %v", p.Price)
	}
}

func TestReduceByFullyCloses(t *testing.T) {
	var p Position
	p.Open(1, 100, 1)
	entry := p.ReduceBy(1)
	if entry != 100 {
		t.Fatalf("expected entry price 100, got %v", entry)
	}
	if p.IsOpen() {
		t.Fatal("expected position to be closed")
	}
	if p.Size != 0 || p.Price != 0 {
		t.Fatalf("invariant size==0 <=> price==0 violated: %+v", p)
	}
}

func TestReduceByPartial(t *testing.T) {
	var p Position
	p.Open(1, 100, 2)
	p.ReduceBy(0.5)
	if !p.IsOpen() {
		t.Fatal("expected position to remain open after partial close")
	}
	if p.Size != 1.5 {
		t.Fatalf("expected remaining size 1.5, got %v", p.Size)
	}
	if p.Price != 100 {
		t.Fatalf("partial close should not change average price, got %v", p.Price)
	}
}

func TestOpenSeedsTrailingFromFillPrice(t *testing.T) {
	var p Position
	p.Open(1, 100, 1)
	if !p.Trailing.Seeded() {
		t.Fatal("expected trailing state to be seeded immediately on open")
	}
	if p.Trailing.MaxSinceOpen != 100 || p.Trailing.MinSinceOpen != 100 {
		t.Fatalf("expected trailing extrema seeded at the opening fill price 100, got %+v", p.Trailing)
	}
}

func TestMergeReseedsTrailingFromBlendedPrice(t *testing.T) {
	var p Position
	p.Open(1, 100, 1)
	p.Merge(2, 90, 1)
	if p.Trailing.MaxSinceOpen != 95 || p.Trailing.MinSinceOpen != 95 {
		t.Fatalf("expected trailing extrema reseeded at the blended average price 95, got %+v", p.Trailing)
	}
}

func TestWalletExposure(t *testing.T) {
	var p Position
	p.Open(1, 100, 1)
	we := p.WalletExposure(1, 1000)
	if we != 0.1 {
		t.Fatalf("expected WE=0.1, got %v", we)
	}
}
