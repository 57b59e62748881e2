// Package ballistics is the facade over the exterior-ballistics core: it
// normalises caller inputs into a ShotProps, drives the integrator and
// event filter, and returns a HitResult or a typed error.
package ballistics

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/windage-labs/ballistics/shot"
	"github.com/windage-labs/ballistics/solver"
	"github.com/windage-labs/ballistics/trajectory"
)

// Config carries every knob that used to live as a process-wide default in
// the source material. There is no package-level singleton: every Fire call
// is configured explicitly by its caller.
type Config struct {
	Engine          trajectory.Engine
	CalcStepFt      float64
	CStepMultiplier float64
	HasMinAltitude  bool
	MinAltitudeFt   float64
	Logger          *logrus.Logger
}

func (c Config) integratorConfig() trajectory.Config {
	return trajectory.Config{
		Engine:          c.Engine,
		CalcStepFt:      c.CalcStepFt,
		CStepMultiplier: c.CStepMultiplier,
		HasMinAltitude:  c.HasMinAltitude,
		MinAltitudeFt:   c.MinAltitudeFt,
	}
}

func (c Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}

// Call bundles the per-shot request parameters the facade's Fire entry
// point is driven by.
type Call struct {
	RangeLimitFt float64
	RangeStepFt  float64
	TimeStepS    float64
	Flags        trajectory.EventFlag
}

// Fire builds ShotProps from the given conditions/weapon/ammo, integrates
// into a raw sequence with the configured engine, runs the event filter
// over the requested flags and steps, and returns the resulting HitResult.
// A terminal row is appended from the last raw point if the filter didn't
// already capture it.
func Fire(cfg Config, conditions shot.Conditions, weapon shot.Weapon, ammo shot.Ammo, call Call) (*trajectory.HitResult, error) {
	log := cfg.logger()

	props, err := shot.New(conditions, weapon, ammo)
	if err != nil {
		log.WithError(err).Warn("ballistics: failed to build shot props")
		return nil, err
	}

	seq, reason, err := trajectory.Run(props, cfg.integratorConfig(), call.RangeLimitFt)
	if err != nil {
		log.WithError(err).Warn("ballistics: integration failed")
		return nil, err
	}

	atm := conditions.Atmosphere
	densityAt := func(altFt float64) float64 {
		ratio, _ := atm.DensityFactorAndMachAt(altFt)
		return ratio
	}
	dragMagAt := func(p trajectory.RawTrajPoint) float64 {
		wind := props.WindSock.CurrentVector()
		vRel := p.Velocity.Sub(wind)
		ratio, _ := atm.DensityFactorAndMachAt(atm.AltitudeFt + p.Position.Y)
		return ratio * vRel.Magnitude() * ammo.DragFunction.Drag(p.MachRatio)
	}

	filterCfg := trajectory.FilterConfig{
		LookAngleRad: conditions.LookAngleRad,
		WeightGr:     ammo.WeightGr,
		RangeStepFt:  call.RangeStepFt,
		TimeStepS:    call.TimeStepS,
	}

	rows, err := trajectory.RunFilter(seq, densityAt, dragMagAt, filterCfg, call.Flags)
	if err != nil {
		log.WithError(err).Warn("ballistics: event filter failed")
		return nil, err
	}

	if seq.Len() > 0 {
		last := seq.At(-1)
		hasTerminal := len(rows) > 0 && math.Abs(rows[len(rows)-1].Raw.TimeS-last.TimeS) < 1e-9
		if !hasTerminal {
			rows = append(rows, trajectory.EnrichedRow{Raw: last})
		}
	}

	return &trajectory.HitResult{Rows: rows, TerminationReason: reason}, nil
}

// ZeroAngle solves for the barrel elevation achieving the given slant
// distance, checking achievable max range first so an unreachable request
// surfaces solver.OutOfRangeError rather than a failed search.
func ZeroAngle(cfg Config, conditions shot.Conditions, weapon shot.Weapon, ammo shot.Ammo, slantDistanceFt float64, lofted bool) (float64, error) {
	props, err := shot.New(conditions, weapon, ammo)
	if err != nil {
		return 0, err
	}

	icfg := cfg.integratorConfig()
	xTarget := math.Cos(conditions.LookAngleRad) * slantDistanceFt
	yTarget := math.Sin(conditions.LookAngleRad) * slantDistanceFt

	rangeFor := solver.NewRangeEvaluator(props, icfg, slantDistanceFt*3+1000)
	maxRangeFt, maxRangeAngle, err := solver.FindMaxRange(rangeFor, -math.Pi/2+1e-6, math.Pi/2-1e-6)
	if err != nil {
		return 0, err
	}
	if xTarget > maxRangeFt*math.Cos(conditions.LookAngleRad) {
		return 0, &solver.OutOfRangeError{RequestedFt: slantDistanceFt, MaxRangeFt: maxRangeFt, LookAngle: conditions.LookAngleRad}
	}

	posAt := solver.NewEvaluator(props, icfg)
	result := solver.ZeroAngle(solver.Fixed(posAt, xTarget), xTarget, yTarget, maxRangeAngle, lofted)

	switch result.Kind {
	case solver.Converged:
		return result.AngleRad, nil
	case solver.OutOfRange:
		oor := result.OutOfRange
		return 0, &oor
	default:
		diverged := result.Diverged
		return 0, &diverged
	}
}
