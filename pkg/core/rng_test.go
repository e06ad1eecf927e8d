package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 100; i++ {
		if x, y := a.FloatRange(-3, 9), b.FloatRange(-3, 9); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if v := r.IntRange(2, 5); v < 2 || v > 5 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
		if v := r.FloatRange(-1, 1); v < -1 || v >= 1 {
			t.Fatalf("FloatRange out of bounds: %v", v)
		}
		v := r.Snap(0, 8, 2)
		if v < 0 || v > 8 || int(v)%2 != 0 || v != float64(int(v)) {
			t.Fatalf("Snap off grid: %v", v)
		}
	}
	if v := r.IntRange(4, 4); v != 4 {
		t.Fatalf("degenerate range: got %d", v)
	}
	if v := r.FloatRange(3, 1); v != 3 {
		t.Fatalf("inverted range: got %v", v)
	}
}
