package drag

import (
	"fmt"
	"sort"

	"github.com/windage-labs/ballistics/internal/pchip"
)

// seaLevelSoundSpeedFps is the ICAO standard-atmosphere speed of sound at
// 59 F, used only to translate the caller-supplied (BC, velocity) anchors
// into the Mach domain the base drag table is indexed by.
const seaLevelSoundSpeedFps = 1116.45

// BCAnchor pins a ballistic coefficient to the muzzle velocity band it was
// measured at.
type BCAnchor struct {
	BC          float64
	VelocityFps float64
}

// Function is the drag-curve abstraction the integrator consumes: either a
// single-BC Curve or a velocity-varying MultiBC composes down to the
// same effective Cd(Mach) lookup, dispatched once at construction rather
// than per integration step.
type Function interface {
	CdEffective(mach float64) float64
	Drag(mach float64) float64
}

// CdEffective implements Function for a single-BC standard table: the table
// Cd divided by the curve's BC, so Drag(mach) == CdEffective(mach) * K.
func (c *Curve) CdEffective(mach float64) float64 {
	return c.Cd(mach) / c.bc
}

// MultiBC composes several (BC, velocity) anchors over a base standard drag
// shape into one cached effective-Cd curve, so BC(v) is resolved once per
// build rather than once per step.
type MultiBC struct {
	curve *pchip.Curve
}

// NewMultiBC builds a MultiBC from a base standard table and a set of
// (BC, velocity) anchors. Anchors must be supplied sorted by velocity
// descending (the convention of published multi-BC tables) and every BC
// must be positive; otherwise a ConfigError is returned.
func NewMultiBC(table []MachCdPoint, anchors []BCAnchor) (*MultiBC, error) {
	if len(anchors) < 1 {
		return nil, &ConfigError{Reason: "multi-BC requires at least 1 anchor"}
	}
	for i, a := range anchors {
		if a.BC <= 0 {
			return nil, &ConfigError{Reason: fmt.Sprintf("anchor %d: ballistic coefficient must be positive, got %v", i, a.BC)}
		}
		if i > 0 && anchors[i].VelocityFps >= anchors[i-1].VelocityFps {
			return nil, &ConfigError{Reason: fmt.Sprintf("multi-BC anchors must be sorted by velocity descending: anchor %d (%v fps) >= anchor %d (%v fps)", i, anchors[i].VelocityFps, i-1, anchors[i-1].VelocityFps)}
		}
	}

	base, err := NewCurve(table, 1.0)
	if err != nil {
		return nil, err
	}

	mach := make([]float64, len(table))
	cdEff := make([]float64, len(table))
	for i, p := range table {
		v := p.Mach * seaLevelSoundSpeedFps
		bc := bcAtVelocity(anchors, v)
		mach[i] = p.Mach
		cdEff[i] = base.Cd(p.Mach) / bc
	}

	curve, err := pchip.Build(mach, cdEff)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	return &MultiBC{curve: curve}, nil
}

// bcAtVelocity resolves BC(v) by piecewise-linear interpolation over anchors
// sorted by velocity descending, clamped to the nearest anchor's BC outside
// the covered range.
func bcAtVelocity(anchors []BCAnchor, v float64) float64 {
	n := len(anchors)
	if v >= anchors[0].VelocityFps {
		return anchors[0].BC
	}
	if v <= anchors[n-1].VelocityFps {
		return anchors[n-1].BC
	}
	i := sort.Search(n, func(i int) bool { return anchors[i].VelocityFps <= v })
	hi, lo := anchors[i-1], anchors[i]
	frac := (v - lo.VelocityFps) / (hi.VelocityFps - lo.VelocityFps)
	return lo.BC + frac*(hi.BC-lo.BC)
}

// CdEffective returns the precomposed effective drag coefficient at the
// given Mach ratio.
func (m *MultiBC) CdEffective(mach float64) float64 {
	return m.curve.Eval(mach)
}

// Drag returns the deceleration scaling factor CdEffective(mach) * K; the
// per-anchor BC has already been folded into CdEffective at build time.
func (m *MultiBC) Drag(mach float64) float64 {
	return m.CdEffective(mach) * K
}
