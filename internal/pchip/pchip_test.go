package pchip

import (
	"math"
	"testing"
)

func assertApproxEqual(t *testing.T, actual, expected, tolerance float64) {
	t.Helper()
	if math.Abs(actual-expected) > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", actual, expected, tolerance)
	}
}

func TestEvalAtKnotIsExact(t *testing.T) {
	x := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3}
	y := []float64{2.0, 1.8, 1.5, 1.0, 0.6, 0.4, 0.3}
	curve, err := Build(x, y)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, xi := range x {
		assertApproxEqual(t, curve.Eval(xi), y[i], 1e-12)
	}
}

func TestMonotonicTableStaysMonotonicBetweenKnots(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 4, 9, 16} // strictly increasing, convex
	curve, err := Build(x, y)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	prev := curve.Eval(0)
	for xi := 0.01; xi <= 4; xi += 0.01 {
		v := curve.Eval(xi)
		if v < prev-1e-9 {
			t.Fatalf("interpolant decreased at x=%v: %v < %v", xi, v, prev)
		}
		prev = v
	}
}

func TestLinearExtrapolationOutsideDomain(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 2, 3}
	curve, err := Build(x, y)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	below := curve.Eval(-1)
	above := curve.Eval(3)
	expectedBelow := y[0] - curve.LeftSlope
	expectedAbove := y[2] + curve.RightSlope
	assertApproxEqual(t, below, expectedBelow, 1e-9)
	assertApproxEqual(t, above, expectedAbove, 1e-9)
}

func TestBuildRejectsNonMonotonicX(t *testing.T) {
	_, err := Build([]float64{0, 1, 0.5}, []float64{0, 1, 2})
	if err == nil {
		t.Fatal("expected error for non-monotonic x")
	}
}

func TestBuildRejectsTooFewPoints(t *testing.T) {
	_, err := Build([]float64{0}, []float64{0})
	if err == nil {
		t.Fatal("expected error for n<2")
	}
}

func TestTieBreakUsesLeftSegment(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}
	curve, err := Build(x, y)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx := curve.index(1); idx != 0 {
		t.Errorf("expected interior knot tie-break to pick left segment 0, got %d", idx)
	}
}
