// Package trajectory implements the fixed-step numerical integration of a
// shot, the append-only raw point buffer with monotone 3-point
// interpolation, and the post-processing event filter that turns a raw
// sequence into the caller-facing enriched rows.
package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/windage-labs/ballistics/internal/pchip"
	"github.com/windage-labs/ballistics/vector"
)

// initialCapacity is the starting size of a Sequence's backing buffer; it
// doubles from there as points are appended.
const initialCapacity = 256

// RawTrajPoint is one integrated sample: simulation time, position,
// velocity, and the Mach ratio at that instant.
type RawTrajPoint struct {
	TimeS     float64
	Position  vector.Vector3
	Velocity  vector.Vector3
	MachRatio float64
}

// Key names a scalar component of RawTrajPoint that interpolation and
// lookup can be keyed on.
type Key int

const (
	KeyTime Key = iota
	KeyMach
	KeyPX
	KeyPY
	KeyPZ
	KeyVX
	KeyVY
	KeyVZ
)

func component(p RawTrajPoint, key Key) float64 {
	switch key {
	case KeyTime:
		return p.TimeS
	case KeyMach:
		return p.MachRatio
	case KeyPX:
		return p.Position.X
	case KeyPY:
		return p.Position.Y
	case KeyPZ:
		return p.Position.Z
	case KeyVX:
		return p.Velocity.X
	case KeyVY:
		return p.Velocity.Y
	case KeyVZ:
		return p.Velocity.Z
	default:
		panic(fmt.Sprintf("trajectory: unknown key %d", key))
	}
}

// NumericError reports a degenerate interpolation: identical abscissae or an
// unbracketable key.
type NumericError struct {
	Reason string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("trajectory: numeric error: %s", e.Reason)
}

// Sequence is the append-only buffer of raw points produced by integration.
// It grows by doubling starting from a capacity of 256 and is owned
// exclusively by the integrator during integration; thereafter it is
// read-only.
type Sequence struct {
	points []RawTrajPoint
}

// NewSequence returns an empty sequence pre-sized to the standard initial
// capacity.
func NewSequence() *Sequence {
	return &Sequence{points: make([]RawTrajPoint, 0, initialCapacity)}
}

// Append adds a point to the end of the sequence, doubling the backing
// array when full.
func (s *Sequence) Append(p RawTrajPoint) {
	if len(s.points) == cap(s.points) {
		grown := make([]RawTrajPoint, len(s.points), max(2*cap(s.points), initialCapacity))
		copy(grown, s.points)
		s.points = grown
	}
	s.points = append(s.points, p)
}

// Len returns the number of points in the sequence.
func (s *Sequence) Len() int {
	return len(s.points)
}

// At returns the point at idx, supporting negative indexing from the end
// (At(-1) is the last point).
func (s *Sequence) At(idx int) RawTrajPoint {
	if idx < 0 {
		idx += len(s.points)
	}
	return s.points[idx]
}

// BisectCenterIdx locates the index i such that buf[i-1], buf[i], buf[i+1]
// bracket value monotonically in key, honouring whichever local direction
// (increasing or decreasing) the key happens to move in. Returns -1 if the
// sequence has fewer than 3 points or no bracket is found.
func (s *Sequence) BisectCenterIdx(key Key, value float64) int {
	n := len(s.points)
	if n < 3 {
		return -1
	}
	for i := 1; i < n-1; i++ {
		lo := component(s.points[i-1], key)
		mid := component(s.points[i], key)
		hi := component(s.points[i+1], key)
		if between(value, lo, hi) || between(value, lo, mid) || between(value, mid, hi) {
			return i
		}
	}
	return -1
}

func between(v, a, b float64) bool {
	if a <= b {
		return v >= a && v <= b
	}
	return v >= b && v <= a
}

// InterpolateAt PCHIP-interpolates every component of RawTrajPoint using the
// three neighbours centred at idx, keyed by key = value: the keyed
// component is held exact at its neighbours' recorded values and the
// remaining components are Hermite-evaluated with slopes consistent with
// the sorted triple.
func (s *Sequence) InterpolateAt(idx int, key Key, value float64) (RawTrajPoint, error) {
	n := len(s.points)
	if idx < 1 || idx > n-2 {
		return RawTrajPoint{}, &NumericError{Reason: fmt.Sprintf("interpolation center index %d out of bounds for %d points", idx, n)}
	}

	triple := [3]RawTrajPoint{s.points[idx-1], s.points[idx], s.points[idx+1]}
	x := [3]float64{component(triple[0], key), component(triple[1], key), component(triple[2], key)}

	if knotExactMatch(x[0], x[1]) || knotExactMatch(x[1], x[2]) || knotExactMatch(x[0], x[2]) {
		return RawTrajPoint{}, &NumericError{Reason: "interpolation triple has identical abscissae"}
	}

	sortAscending(&x, &triple)

	result := RawTrajPoint{}
	for _, k := range []Key{KeyTime, KeyMach, KeyPX, KeyPY, KeyPZ, KeyVX, KeyVY, KeyVZ} {
		if k == key {
			continue
		}
		y := [3]float64{component(triple[0], k), component(triple[1], k), component(triple[2], k)}
		curve, err := pchip.Build(x[:], y[:])
		if err != nil {
			return RawTrajPoint{}, &NumericError{Reason: err.Error()}
		}
		setComponent(&result, k, curve.Eval(value))
	}
	setComponent(&result, key, value)

	return result, nil
}

func setComponent(p *RawTrajPoint, key Key, v float64) {
	switch key {
	case KeyTime:
		p.TimeS = v
	case KeyMach:
		p.MachRatio = v
	case KeyPX:
		p.Position.X = v
	case KeyPY:
		p.Position.Y = v
	case KeyPZ:
		p.Position.Z = v
	case KeyVX:
		p.Velocity.X = v
	case KeyVY:
		p.Velocity.Y = v
	case KeyVZ:
		p.Velocity.Z = v
	}
}

// knotExactMatch reports whether two abscissae are the same knot, via
// floats.EqualWithinAbs at zero tolerance rather than a bare == comparison.
func knotExactMatch(a, b float64) bool {
	return floats.EqualWithinAbs(a, b, 0)
}

func sortAscending(x *[3]float64, triple *[3]RawTrajPoint) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2-i; j++ {
			if x[j] > x[j+1] {
				x[j], x[j+1] = x[j+1], x[j]
				triple[j], triple[j+1] = triple[j+1], triple[j]
			}
		}
	}
}

// GetAt searches forward or backward from the index whose time first meets
// startTimeHint (0 searches from the start), locates the first monotonic
// bracket containing value for key, and interpolates.
func (s *Sequence) GetAt(key Key, value float64, startTimeHint float64) (RawTrajPoint, error) {
	n := len(s.points)
	if n < 3 {
		return RawTrajPoint{}, &NumericError{Reason: "sequence has fewer than 3 points"}
	}

	start := 0
	if startTimeHint > 0 {
		for i, p := range s.points {
			if p.TimeS >= startTimeHint {
				start = i
				break
			}
		}
	}
	if start < 1 {
		start = 1
	}
	if start > n-2 {
		start = n - 2
	}

	for i := start; i <= n-2; i++ {
		lo := component(s.points[i-1], key)
		mid := component(s.points[i], key)
		hi := component(s.points[i+1], key)
		if between(value, lo, hi) || between(value, lo, mid) || between(value, mid, hi) {
			return s.InterpolateAt(i, key, value)
		}
	}
	for i := start - 1; i >= 1; i-- {
		lo := component(s.points[i-1], key)
		mid := component(s.points[i], key)
		hi := component(s.points[i+1], key)
		if between(value, lo, hi) || between(value, lo, mid) || between(value, mid, hi) {
			return s.InterpolateAt(i, key, value)
		}
	}

	return RawTrajPoint{}, &NumericError{Reason: fmt.Sprintf("no bracket found for key=%v value=%v", key, value)}
}

// GetAtSlantHeight is GetAt keyed by the derived slant-height component
// py*cos(look) - px*sin(look) rather than a stored component.
func (s *Sequence) GetAtSlantHeight(lookAngleRad, value, startTimeHint float64) (RawTrajPoint, error) {
	n := len(s.points)
	if n < 3 {
		return RawTrajPoint{}, &NumericError{Reason: "sequence has fewer than 3 points"}
	}
	slant := func(p RawTrajPoint) float64 {
		return p.Position.Y*math.Cos(lookAngleRad) - p.Position.X*math.Sin(lookAngleRad)
	}

	start := 0
	if startTimeHint > 0 {
		for i, p := range s.points {
			if p.TimeS >= startTimeHint {
				start = i
				break
			}
		}
	}
	if start < 1 {
		start = 1
	}
	if start > n-2 {
		start = n - 2
	}

	bracketAt := func(i int) bool {
		lo, mid, hi := slant(s.points[i-1]), slant(s.points[i]), slant(s.points[i+1])
		return between(value, lo, hi) || between(value, lo, mid) || between(value, mid, hi)
	}

	for i := start; i <= n-2; i++ {
		if bracketAt(i) {
			return interpolateSlantAt(s, i, lookAngleRad, value)
		}
	}
	for i := start - 1; i >= 1; i-- {
		if bracketAt(i) {
			return interpolateSlantAt(s, i, lookAngleRad, value)
		}
	}

	return RawTrajPoint{}, &NumericError{Reason: fmt.Sprintf("no slant-height bracket found for value=%v", value)}
}

func interpolateSlantAt(s *Sequence, idx int, lookAngleRad, value float64) (RawTrajPoint, error) {
	slant := func(p RawTrajPoint) float64 {
		return p.Position.Y*math.Cos(lookAngleRad) - p.Position.X*math.Sin(lookAngleRad)
	}
	triple := [3]RawTrajPoint{s.points[idx-1], s.points[idx], s.points[idx+1]}
	x := [3]float64{slant(triple[0]), slant(triple[1]), slant(triple[2])}
	if knotExactMatch(x[0], x[1]) || knotExactMatch(x[1], x[2]) || knotExactMatch(x[0], x[2]) {
		return RawTrajPoint{}, &NumericError{Reason: "slant-height interpolation triple has identical abscissae"}
	}
	sortAscending(&x, &triple)

	result := RawTrajPoint{}
	for _, k := range []Key{KeyTime, KeyMach, KeyPX, KeyPY, KeyPZ, KeyVX, KeyVY, KeyVZ} {
		y := [3]float64{component(triple[0], k), component(triple[1], k), component(triple[2], k)}
		curve, err := pchip.Build(x[:], y[:])
		if err != nil {
			return RawTrajPoint{}, &NumericError{Reason: err.Error()}
		}
		setComponent(&result, k, curve.Eval(value))
	}
	return result, nil
}
