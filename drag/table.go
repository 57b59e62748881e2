// Package drag turns a standard or custom (Mach, Cd) table into a drag
// function usable by the integrator: Cd(Mach) via monotone cubic (PCHIP)
// interpolation, scaled by ballistic coefficient into a deceleration factor.
package drag

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/windage-labs/ballistics/internal/pchip"
)

// K encodes the standard-density, reference cross-section, and lb/in^2 ->
// lb/ft^2 conversions folded into the deceleration scaling Cd(Mach)*K/BC.
const K = 2.08551e-4

// MachCdPoint is one knot of a drag table: Cd at a given Mach number.
type MachCdPoint struct {
	Mach float64
	Cd   float64
}

// ConfigError reports an invalid table or ballistic coefficient supplied at
// construction time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("drag: config error: %s", e.Reason)
}

// Curve owns a PCHIP-interpolated Cd(Mach) table and a ballistic coefficient,
// exposing Drag(mach) = Cd(mach) * K / BC.
type Curve struct {
	bc    float64
	curve *pchip.Curve
}

// NewCurve builds a Curve from a standard or custom drag table and a
// ballistic coefficient. The table must have at least 2 points with
// strictly increasing Mach values; bc must be positive.
func NewCurve(table []MachCdPoint, bc float64) (*Curve, error) {
	if bc <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("ballistic coefficient must be positive, got %v", bc)}
	}
	if len(table) < 2 {
		return nil, &ConfigError{Reason: fmt.Sprintf("drag table needs at least 2 points, got %d", len(table))}
	}

	mach := make([]float64, len(table))
	cd := make([]float64, len(table))
	for i, p := range table {
		mach[i] = p.Mach
		cd[i] = p.Cd
	}

	if err := requireStrictlyIncreasing(mach); err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	c, err := pchip.Build(mach, cd)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	return &Curve{bc: bc, curve: c}, nil
}

// requireStrictlyIncreasing rejects a Mach column that is not strictly
// increasing, computed as the minimum consecutive difference via
// floats.Min rather than a per-pair hand loop.
func requireStrictlyIncreasing(mach []float64) error {
	if len(mach) < 2 {
		return nil
	}
	diffs := make([]float64, len(mach)-1)
	for i := 1; i < len(mach); i++ {
		diffs[i-1] = mach[i] - mach[i-1]
	}
	if floats.Min(diffs) <= 0 {
		return fmt.Errorf("drag table Mach values must be strictly increasing")
	}
	return nil
}

// Cd returns the interpolated (or linearly extrapolated) drag coefficient at
// the given Mach ratio.
func (c *Curve) Cd(mach float64) float64 {
	return c.curve.Eval(mach)
}

// Drag returns the deceleration scaling factor Cd(mach) * K / BC used by the
// integrator's drag acceleration term.
func (c *Curve) Drag(mach float64) float64 {
	return c.Cd(mach) * K / c.bc
}

// BallisticCoefficient returns the BC this curve was built with.
func (c *Curve) BallisticCoefficient() float64 {
	return c.bc
}
