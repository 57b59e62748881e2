// Package wind models piecewise-constant wind segments along the range of a
// shot and exposes a monotonically-advancing cursor over them.
package wind

import (
	"math"

	"github.com/windage-labs/ballistics/vector"
)

// sentinelUntilFt terminates a wind segment list so a cursor never runs off
// the end regardless of how far downrange it is queried.
const sentinelUntilFt = 1e8

// Segment is a piecewise-constant wind condition valid from the end of the
// previous segment up to UntilDistanceFt. FromDirectionRad=0 is a headwind
// (blowing toward the shooter); pi/2 is wind from the shooter's left. Only
// the horizontal component is modelled.
type Segment struct {
	UntilDistanceFt  float64
	VelocityFps      float64
	FromDirectionRad float64
}

// vectorOf returns the shot-frame wind vector for a segment:
// (v*cos(theta), 0, v*sin(theta)).
func (s Segment) vectorOf() vector.Vector3 {
	return vector.New(
		s.VelocityFps*math.Cos(s.FromDirectionRad),
		0,
		s.VelocityFps*math.Sin(s.FromDirectionRad),
	)
}

// Sock advances a monotonic cursor over an ordered list of wind segments,
// recomputing the cached vector only when the queried range crosses a
// segment boundary. An empty segment list yields a zero vector everywhere.
type Sock struct {
	segments []Segment
	index    int
	current  vector.Vector3
}

// NewSock builds a Sock over segments, which must already be ordered by
// ascending UntilDistanceFt. A sentinel segment at 1e8 ft is appended
// automatically if the caller's last segment doesn't already reach it.
func NewSock(segments []Segment) *Sock {
	segs := append([]Segment(nil), segments...)
	if len(segs) == 0 || segs[len(segs)-1].UntilDistanceFt < sentinelUntilFt {
		last := Segment{UntilDistanceFt: sentinelUntilFt}
		if len(segs) > 0 {
			last.VelocityFps = segs[len(segs)-1].VelocityFps
			last.FromDirectionRad = segs[len(segs)-1].FromDirectionRad
		}
		segs = append(segs, last)
	}

	s := &Sock{segments: segs, current: segs[0].vectorOf()}
	return s
}

// CurrentVector returns the wind vector last computed by VectorForRange.
func (s *Sock) CurrentVector() vector.Vector3 {
	return s.current
}

// VectorForRange advances the cursor monotonically to cover rangeFt,
// recomputing the cached vector only when rangeFt crosses a segment
// boundary, and returns the resulting vector.
func (s *Sock) VectorForRange(rangeFt float64) vector.Vector3 {
	for s.index < len(s.segments)-1 && rangeFt >= s.segments[s.index].UntilDistanceFt {
		s.index++
	}
	s.current = s.segments[s.index].vectorOf()
	return s.current
}
