package noise

import "testing"

func TestCellularIsDeterministic(t *testing.T) {
	a := NewCellular(42)
	b := NewCellular(42)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if a.Value(float64(x), float64(y)) != b.Value(float64(x), float64(y)) {
				t.Fatalf("value mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestCellularRange(t *testing.T) {
	c := NewCellular(7)
	distinct := map[float64]bool{}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := c.Value(float64(x), float64(y))
			if v < -1 || v >= 1 {
				t.Fatalf("value %v out of range at (%d,%d)", v, x, y)
			}
			distinct[v] = true
		}
	}
	// 64 tiles at frequency 0.08 span about five cells per axis.
	if len(distinct) < 10 {
		t.Errorf("only %d distinct cells over a 64x64 area", len(distinct))
	}
	if len(distinct) > 200 {
		t.Errorf("%d distinct cells, noise is not piecewise constant", len(distinct))
	}
}

func TestCellularSeedsDiffer(t *testing.T) {
	a := NewCellular(1)
	b := NewCellular(2)
	same := 0
	for x := 0; x < 100; x++ {
		if a.Value(float64(x), 0) == b.Value(float64(x), 0) {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical noise")
	}
}

func TestFieldRange(t *testing.T) {
	f := NewField(99, 0.1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := f.At(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("At(%d,%d) = %v", x, y, v)
			}
		}
	}
	if NewField(99, 0.1).At(3, 4) != f.At(3, 4) {
		t.Error("same seed should give the same field")
	}
}
