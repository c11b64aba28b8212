package fuzzy

import (
	"math"
	"testing"
)

func TestNewRejectsOutOfOrder(t *testing.T) {
	tests := []struct {
		name    string
		l, m, h float64
		wantErr bool
	}{
		{"valid", 1, 2, 3, false},
		{"degenerate point", 2, 2, 2, false},
		{"low above mid", 3, 2, 4, true},
		{"mid above high", 1, 5, 4, true},
		{"negative valid", -3, -2, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.l, tt.m, tt.h)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for (%g,%g,%g)", tt.l, tt.m, tt.h)
				}
				if _, ok := err.(*InvalidNumberError); !ok {
					t.Errorf("expected *InvalidNumberError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Low > n.Mid || n.Mid > n.High {
				t.Errorf("ordering violated post-construction: %+v", n)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	a, _ := New(1, 2, 3)
	b, _ := New(4, 5, 6)

	sum := a.Add(b)
	if sum != (Number{Low: 5, Mid: 7, High: 9}) {
		t.Errorf("Add: got %+v", sum)
	}

	scaled := a.MulScalar(0.5)
	if scaled != (Number{Low: 0.5, Mid: 1, High: 1.5}) {
		t.Errorf("MulScalar: got %+v", scaled)
	}

	prod := a.Mul(a)
	if prod != (Number{Low: 1, Mid: 4, High: 9}) {
		t.Errorf("Mul: got %+v", prod)
	}

	// Operands untouched
	if a != (Number{Low: 1, Mid: 2, High: 3}) {
		t.Errorf("operand mutated: %+v", a)
	}
}

func TestCentroid(t *testing.T) {
	n, _ := New(1, 4, 9)
	want := 14.0 / 3.0
	if math.Abs(n.Centroid()-want) > 1e-12 {
		t.Errorf("centroid: got %f, want %f", n.Centroid(), want)
	}
}

func TestVertexDistance(t *testing.T) {
	a, _ := New(2, 3, 4)
	b, _ := New(5, 6, 7)

	if d := VertexDistance(a, a); d != 0 {
		t.Errorf("distance to self: got %f, want 0", d)
	}
	if d1, d2 := VertexDistance(a, b), VertexDistance(b, a); d1 != d2 {
		t.Errorf("asymmetric: %f vs %f", d1, d2)
	}
	// All components differ by 3: sqrt(27/3) = 3
	if d := VertexDistance(a, b); math.Abs(d-3.0) > 1e-12 {
		t.Errorf("got %f, want 3.0", d)
	}
}

func TestFromScale(t *testing.T) {
	t.Run("interior", func(t *testing.T) {
		n, err := FromScale(5, 9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != (Number{Low: 4, Mid: 5, High: 6}) {
			t.Errorf("got %+v", n)
		}
	})

	t.Run("clamped at bounds", func(t *testing.T) {
		lo, _ := FromScale(1, 9)
		if lo != (Number{Low: 1, Mid: 1, High: 2}) {
			t.Errorf("low bound: got %+v", lo)
		}
		hi, _ := FromScale(9, 9)
		if hi != (Number{Low: 8, Mid: 9, High: 9}) {
			t.Errorf("high bound: got %+v", hi)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, err := FromScale(0, 9); err == nil {
			t.Error("expected error below scale")
		}
		if _, err := FromScale(10, 9); err == nil {
			t.Error("expected error above scale")
		}
	})
}
