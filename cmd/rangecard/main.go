package main

import (
	"fmt"
	"os"

	"github.com/windage-labs/ballistics"
	"github.com/windage-labs/ballistics/atmosphere"
	"github.com/windage-labs/ballistics/drag"
	"github.com/windage-labs/ballistics/shot"
	"github.com/windage-labs/ballistics/trajectory"
)

func main() {
	curve, err := drag.NewCurve(drag.TableG7, 0.223)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build drag curve:", err)
		os.Exit(1)
	}

	conditions := shot.Conditions{Atmosphere: atmosphere.ICAO()}
	weapon := shot.Weapon{SightHeightFt: 2.0 / 12, TwistInSigned: 11.24}
	ammo := shot.Ammo{
		DragFunction:      curve,
		WeightGr:          168,
		LengthIn:          1.2,
		DiameterIn:        0.308,
		MuzzleVelocityFps: 2750,
	}

	cfg := ballistics.Config{Engine: trajectory.EngineRK4, CalcStepFt: 2}

	zeroRad, err := ballistics.ZeroAngle(cfg, conditions, weapon, ammo, 300, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zero angle:", err)
		os.Exit(1)
	}
	weapon.ZeroElevationRad = zeroRad

	result, err := ballistics.Fire(cfg, conditions, weapon, ammo, ballistics.Call{
		RangeLimitFt: 1000 * 3,
		RangeStepFt:  100 * 3,
		Flags:        trajectory.EventRange | trajectory.EventZero | trajectory.EventMach | trajectory.EventApex,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fire:", err)
		os.Exit(1)
	}

	fmt.Printf("zero angle: %.6f rad\n", zeroRad)
	fmt.Printf("termination: %s\n", result.TerminationReason)
	fmt.Println()
	fmt.Printf("%8s %10s %10s %10s %10s\n", "range(yd)", "drop(in)", "wind(in)", "vel(fps)", "energy(ft-lb)")
	for _, row := range result.Rows {
		if row.Flags&trajectory.EventRange == 0 {
			continue
		}
		fmt.Printf("%8.0f %10.2f %10.2f %10.1f %10.1f\n",
			row.Raw.Position.X/3,
			row.DropFt*12,
			row.WindageFt*12,
			row.Raw.Velocity.Magnitude(),
			row.EnergyFtLb,
		)
	}
}
