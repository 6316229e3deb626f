package ema

import "testing"

func TestSingleWarmupBiasCorrection(t *testing.T) {
	s := NewSingle(9) // alpha = 0.2
	s.Update(100)
	v, ok := s.Value()
	if !ok {
		t.Fatal("expected value after first update")
	}
	if v < 99.99 || v > 100.01 {
		t.Fatalf("bias-corrected first EMA value should equal the input price, got %v", v)
	}
}

func TestSingleConvergence(t *testing.T) {
	s := NewSingle(9)
	for i := 0; i < 500; i++ {
		s.Update(100)
	}
	v, _ := s.Value()
	if v < 99.999 || v > 100.001 {
		t.Fatalf("EMA of a constant series should converge to that constant, got %v", v)
	}
}

func TestTrackerBandsUndefinedDuringWarmup(t *testing.T) {
	tr := New(5, 20, 20, 0)
	tr.Update(100)
	if _, _, ok := tr.Bands(); ok {
		t.Fatal("bands should be undefined before warmupMinutes ticks")
	}
	for i := 0; i < 25; i++ {
		tr.Update(100 + float64(i))
	}
	upper, lower, ok := tr.Bands()
	if !ok {
		t.Fatal("bands should be defined after warm-up")
	}
	if upper < lower {
		t.Fatalf("upper %v should be >= lower %v", upper, lower)
	}
}

func TestTrackerWarmupRatio(t *testing.T) {
	tr := New(10, 10, 1, 5.0) // needs t >= 5*10 = 50
	for i := 0; i < 40; i++ {
		tr.Update(100)
	}
	if _, _, ok := tr.Bands(); ok {
		t.Fatal("bands should stay undefined until warmupRatio*maxSpan ticks")
	}
	for i := 0; i < 20; i++ {
		tr.Update(100)
	}
	if _, _, ok := tr.Bands(); !ok {
		t.Fatal("bands should be defined once warmupRatio*maxSpan ticks reached")
	}
}
