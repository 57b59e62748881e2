// Package solver searches for barrel elevations that satisfy a zero
// distance or a maximum-range constraint, driving the trajectory package's
// integrator repeatedly rather than inverting the equations of motion.
package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/windage-labs/ballistics/shot"
	"github.com/windage-labs/ballistics/trajectory"
)

const (
	zeroAccuracyFt     = 5e-6
	maxIterations      = 20
	apexIsMaxRangeRad  = 1e-5
	calcStepMultiplier = 1.5
)

// OutOfRangeError reports a requested zero distance beyond what the shot
// can physically reach.
type OutOfRangeError struct {
	RequestedFt float64
	MaxRangeFt  float64
	LookAngle   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("solver: requested %v ft exceeds max range %v ft at look angle %v rad", e.RequestedFt, e.MaxRangeFt, e.LookAngle)
}

// ZeroFindingError reports a zero-angle search that did not converge within
// maxIterations.
type ZeroFindingError struct {
	LastAngleRad float64
	LastErrorFt  float64
	Iterations   int
}

func (e *ZeroFindingError) Error() string {
	return fmt.Sprintf("solver: zero-finding did not converge after %d iterations (last angle=%v rad, last error=%v ft)", e.Iterations, e.LastAngleRad, e.LastErrorFt)
}

// Result is the solver's internal control-flow variant: exactly one of its
// fields is meaningful, selected by Kind.
type Result struct {
	Kind       ResultKind
	AngleRad   float64
	OutOfRange OutOfRangeError
	Diverged   ZeroFindingError
}

// ResultKind discriminates Result.
type ResultKind int

const (
	Converged ResultKind = iota
	Diverged
	OutOfRange
)

// evaluator is the function the solver drives: given a barrel elevation, it
// integrates a full trajectory and returns y at the target x by
// interpolation.
type evaluator func(elevationRad float64) (yAtTarget float64, err error)

// ZeroAngle solves for the barrel elevation that puts the trajectory
// through (xTarget, yTarget) (the slant-distance target point), using a
// secant search with bisection fallback. eval integrates at a candidate
// elevation and returns y(xTarget). maxRangeAngle is the elevation that
// achieves maximum range, used to pick the lofted or low-angle bracket.
func ZeroAngle(eval evaluator, xTarget, yTarget, maxRangeAngle float64, lofted bool) Result {
	var lo, hi float64
	if lofted {
		lo, hi = maxRangeAngle, math.Pi/2-1e-6
	} else {
		lo, hi = -math.Pi/2+1e-6, maxRangeAngle
	}

	errorAt := func(angle float64) (float64, error) {
		y, err := eval(angle)
		if err != nil {
			return 0, err
		}
		return y - yTarget, nil
	}

	theta0 := math.Atan2(yTarget, xTarget)
	if theta0 < lo {
		theta0 = lo
	}
	if theta0 > hi {
		theta0 = hi
	}

	theta1 := theta0 + 1e-4
	if theta1 > hi {
		theta1 = theta0 - 1e-4
	}

	f0, err := errorAt(theta0)
	if err != nil {
		return Result{Kind: Diverged, Diverged: ZeroFindingError{LastAngleRad: theta0, Iterations: 0}}
	}
	f1, err := errorAt(theta1)
	if err != nil {
		return Result{Kind: Diverged, Diverged: ZeroFindingError{LastAngleRad: theta1, Iterations: 0}}
	}

	theta := theta1
	lastErr := f1
	for i := 1; i <= maxIterations; i++ {
		if floats.EqualWithinAbs(lastErr, 0, zeroAccuracyFt) {
			return Result{Kind: Converged, AngleRad: theta}
		}

		var next float64
		if f1 != f0 {
			next = theta1 - f1*(theta1-theta0)/(f1-f0)
		}
		if f1 == f0 || next < lo || next > hi || math.IsNaN(next) {
			next = (lo + hi) / 2
		}

		fn, err := errorAt(next)
		if err != nil {
			return Result{Kind: Diverged, Diverged: ZeroFindingError{LastAngleRad: theta, LastErrorFt: lastErr, Iterations: i}}
		}

		if (fn > 0) != (f1 > 0) {
			lo, hi = floats.Min([]float64{theta1, next}), floats.Max([]float64{theta1, next})
		}

		theta0, f0 = theta1, f1
		theta1, f1 = next, fn
		theta, lastErr = next, fn
	}

	return Result{Kind: Diverged, Diverged: ZeroFindingError{LastAngleRad: theta, LastErrorFt: lastErr, Iterations: maxIterations}}
}

// rangeEvaluator integrates at a candidate elevation and reports the
// ground-plane crossing range.
type rangeEvaluator func(elevationRad float64) (rangeFt float64, err error)

// FindMaxRange performs a golden-section search over rangeFor(theta) in
// [lowRad, highRad], returning the maximizing (range, angle) pair. It
// terminates when the search bracket narrows below apexIsMaxRangeRad.
func FindMaxRange(rangeFor rangeEvaluator, lowRad, highRad float64) (rangeFt, angleRad float64, err error) {
	const invPhi = 0.6180339887498949

	a, b := lowRad, highRad
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)

	fc, err := rangeFor(c)
	if err != nil {
		return 0, 0, err
	}
	fd, err := rangeFor(d)
	if err != nil {
		return 0, 0, err
	}

	for b-a > apexIsMaxRangeRad {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc, err = rangeFor(c)
			if err != nil {
				return 0, 0, err
			}
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd, err = rangeFor(d)
			if err != nil {
				return 0, 0, err
			}
		}
	}

	if fc > fd {
		return fc, c, nil
	}
	return fd, d, nil
}

// PositionEvaluator integrates a full trajectory at the given elevation and
// interpolates y at the given downrange x.
type PositionEvaluator func(elevationRad, xFt float64) (yFt float64, err error)

// ErrorAtDistance integrates at angle and returns y(xTarget) - yTarget by
// interpolation.
func ErrorAtDistance(posAt PositionEvaluator, angle, xTarget, yTarget float64) (float64, error) {
	y, err := posAt(angle, xTarget)
	if err != nil {
		return 0, err
	}
	return y - yTarget, nil
}

// FindApex integrates props out to rangeLimitFt (or an earlier termination
// condition), then reads the first vy=0 row from the resulting sequence. The
// integration is not cut short once vy turns negative.
func FindApex(props *shot.Props, cfg trajectory.Config, rangeLimitFt float64) (trajectory.RawTrajPoint, error) {
	seq, _, err := trajectory.Run(props, cfg, rangeLimitFt)
	if err != nil {
		return trajectory.RawTrajPoint{}, err
	}
	return seq.GetAt(trajectory.KeyVY, 0, 0)
}
