package core

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same point", V(3, 4), V(3, 4), 0},
		{"3-4-5 triangle", V(0, 0), V(3, 4), 5},
		{"negative quadrant", V(-18, 0), V(0, 0), 18},
		{"food proximity", V(105, 103), V(100, 100), math.Sqrt(34)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Distance(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %f, expected %f", tc.a, tc.b, got, tc.expected)
			}
			// Also test symmetry
			if back := Distance(tc.b, tc.a); math.Abs(back-got) > 1e-12 {
				t.Errorf("Distance not symmetric: %f vs %f", got, back)
			}
		})
	}
}

func TestVecArithmetic(t *testing.T) {
	v := V(1, 2).Add(V(3, -4))
	if v != V(4, -2) {
		t.Errorf("Add() = %v, expected (4,-2)", v)
	}
	if s := v.Scale(0.5); s != V(2, -1) {
		t.Errorf("Scale() = %v, expected (2,-1)", s)
	}
	if d := V(5, 5).Sub(V(2, 7)); d != V(3, -2) {
		t.Errorf("Sub() = %v, expected (3,-2)", d)
	}
}

func TestBoundsHalves(t *testing.T) {
	b := Bounds{W: 600, H: 400}
	if b.HalfW() != 300 || b.HalfH() != 200 {
		t.Errorf("halves = (%f, %f), expected (300, 200)", b.HalfW(), b.HalfH())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}
