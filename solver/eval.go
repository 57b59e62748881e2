package solver

import (
	"github.com/windage-labs/ballistics/shot"
	"github.com/windage-labs/ballistics/trajectory"
)

// calcStep picks the integration step used while searching: each candidate
// elevation is integrated out to x_t plus 1.5 calc-steps, scaled from the
// caller's base step.
func calcStep(baseStepFt float64) float64 {
	return baseStepFt * calcStepMultiplier
}

// NewEvaluator builds a PositionEvaluator that fires props at the requested
// elevation (overriding Weapon.ZeroElevationRad) and interpolates y at xFt.
func NewEvaluator(props *shot.Props, cfg trajectory.Config) PositionEvaluator {
	return func(elevationRad, xFt float64) (float64, error) {
		p := *props
		p.Weapon.ZeroElevationRad = elevationRad

		rangeLimit := xFt + calcStep(cfg.CalcStepFt)
		seq, _, err := trajectory.Run(&p, cfg, rangeLimit)
		if err != nil {
			return 0, err
		}
		row, err := seq.GetAt(trajectory.KeyPX, xFt, 0)
		if err != nil {
			return 0, err
		}
		return row.Position.Y, nil
	}
}

// Fixed bakes a target x into a PositionEvaluator, producing the plain
// angle->y evaluator ZeroAngle drives.
func Fixed(posAt PositionEvaluator, xTarget float64) evaluator {
	return func(elevationRad float64) (float64, error) {
		return posAt(elevationRad, xTarget)
	}
}

// NewRangeEvaluator builds a rangeEvaluator that fires props at the
// requested elevation and reads the ground-plane (py=0) crossing range.
func NewRangeEvaluator(props *shot.Props, cfg trajectory.Config, rangeLimitFt float64) rangeEvaluator {
	return func(elevationRad float64) (float64, error) {
		p := *props
		p.Weapon.ZeroElevationRad = elevationRad

		seq, _, err := trajectory.Run(&p, cfg, rangeLimitFt)
		if err != nil {
			return 0, err
		}
		// Search back from the last point so the crossing found is the last
		// one; it only counts as the ground-plane range if descending.
		row, err := seq.GetAt(trajectory.KeyPY, 0, seq.At(-1).TimeS)
		if err != nil || row.Velocity.Y >= 0 {
			// No py=0 descending crossing within range: treat the furthest
			// downrange point reached as this angle's range.
			if seq.Len() > 0 {
				return seq.At(-1).Position.X, nil
			}
			return 0, err
		}
		return row.Position.X, nil
	}
}
