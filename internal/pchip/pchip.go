// Package pchip builds and evaluates monotone cubic Hermite interpolants
// (Fritsch-Carlson PCHIP) over a sorted table of (x, y) pairs. It backs both
// the drag-curve Mach->Cd lookup and the trajectory sequence's 3-point
// component interpolation, which is why it lives under internal rather than
// inside either package.
package pchip

import (
	"fmt"
	"math"
	"sort"
)

// Segment holds the cubic coefficients for one interval [X_i, X_{i+1}]:
// f(delta) = D + C*delta + B*delta^2 + A*delta^3, delta = x - X_i.
type Segment struct {
	A, B, C, D float64
}

// Curve is a built monotone cubic Hermite interpolant plus the boundary
// slopes used to linearly extrapolate outside [X[0], X[len-1]].
type Curve struct {
	X          []float64
	Y          []float64
	Segments   []Segment
	LeftSlope  float64
	RightSlope float64
}

// Build constructs a PCHIP curve over the given strictly increasing x values.
// Requires at least two points.
func Build(x, y []float64) (*Curve, error) {
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("pchip: need at least 2 points, got %d", n)
	}
	if len(y) != n {
		return nil, fmt.Errorf("pchip: x and y length mismatch (%d vs %d)", n, len(y))
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("pchip: x must be strictly increasing, x[%d]=%v <= x[%d]=%v", i, x[i], i-1, x[i-1])
		}
	}

	h := make([]float64, n-1)
	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
		delta[i] = (y[i+1] - y[i]) / h[i]
	}

	m := make([]float64, n)
	if n == 2 {
		m[0], m[1] = delta[0], delta[0]
	} else {
		for i := 1; i < n-1; i++ {
			if delta[i-1]*delta[i] <= 0 {
				m[i] = 0
				continue
			}
			w1 := 2*h[i] + h[i-1]
			w2 := h[i] + 2*h[i-1]
			m[i] = (w1 + w2) / (w1/delta[i-1] + w2/delta[i])
		}
		m[0] = endpointSlope(h[0], h[1], delta[0], delta[1])
		m[n-1] = endpointSlope(h[n-2], h[n-3], delta[n-2], delta[n-3])
	}

	segments := make([]Segment, n-1)
	for i := 0; i < n-1; i++ {
		c := m[i]
		b := (3*delta[i] - 2*m[i] - m[i+1]) / h[i]
		a := (m[i] + m[i+1] - 2*delta[i]) / (h[i] * h[i])
		segments[i] = Segment{A: a, B: b, C: c, D: y[i]}
	}

	xCopy := append([]float64(nil), x...)
	yCopy := append([]float64(nil), y...)
	return &Curve{
		X:          xCopy,
		Y:          yCopy,
		Segments:   segments,
		LeftSlope:  m[0],
		RightSlope: m[n-1],
	}, nil
}

// endpointSlope computes the non-centered three-point PCHIP endpoint
// derivative, clipped so the result never reverses or overshoots the
// adjacent secant slope (Fritsch & Carlson 1980).
func endpointSlope(h0, h1, delta0, delta1 float64) float64 {
	slope := ((2*h0+h1)*delta0 - h0*delta1) / (h0 + h1)
	switch {
	case slope*delta0 <= 0:
		return 0
	case delta0*delta1 < 0 && math.Abs(slope) > 3*math.Abs(delta0):
		return 3 * delta0
	default:
		return slope
	}
}

// index returns the segment index covering xq, tie-breaking an exact knot
// match to the segment on its left (the one that ends at that knot).
func (c *Curve) index(xq float64) int {
	n := len(c.X)
	i := sort.Search(n, func(i int) bool { return c.X[i] >= xq })
	switch {
	case i == 0:
		return 0
	case i >= n:
		return n - 2
	default:
		return i - 1
	}
}

// Eval evaluates the interpolant at xq, linearly extrapolating with the
// boundary slope outside [X[0], X[len-1]].
func (c *Curve) Eval(xq float64) float64 {
	n := len(c.X)
	if xq < c.X[0] {
		return c.Y[0] + c.LeftSlope*(xq-c.X[0])
	}
	if xq > c.X[n-1] {
		return c.Y[n-1] + c.RightSlope*(xq-c.X[n-1])
	}
	i := c.index(xq)
	d := xq - c.X[i]
	s := c.Segments[i]
	return s.D + d*(s.C+d*(s.B+d*s.A))
}
