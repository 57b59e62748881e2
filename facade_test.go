package ballistics

import (
	"errors"
	"math"
	"testing"

	"github.com/windage-labs/ballistics/atmosphere"
	"github.com/windage-labs/ballistics/drag"
	"github.com/windage-labs/ballistics/shot"
	"github.com/windage-labs/ballistics/solver"
	"github.com/windage-labs/ballistics/trajectory"
	"github.com/windage-labs/ballistics/wind"
)

// standardScenario builds the .308 168gr G7 BC=0.223 MV=2750 fps load fired
// in gehtsoft-usa-go's TestPathG7, zeroed at 100 yd with the elevation its
// TestZero2 converges to for the same load (0.001228 rad).
func standardScenario(t *testing.T) (shot.Conditions, shot.Weapon, shot.Ammo) {
	t.Helper()
	curve, err := drag.NewCurve(drag.TableG7, 0.223)
	if err != nil {
		t.Fatalf("drag.NewCurve: %v", err)
	}
	conditions := shot.Conditions{Atmosphere: atmosphere.ICAO()}
	weapon := shot.Weapon{SightHeightFt: 2.0 / 12, ZeroElevationRad: 0.001228, TwistInSigned: 11.24}
	ammo := shot.Ammo{DragFunction: curve, WeightGr: 168, LengthIn: 1.2, DiameterIn: 0.308, MuzzleVelocityFps: 2750}
	return conditions, weapon, ammo
}

func standardConfig() Config {
	return Config{Engine: trajectory.EngineRK4, CalcStepFt: 1}
}

// rowNearRangeFt returns the row closest to rangeFt downrange, failing the
// test if none lands within a foot of it.
func rowNearRangeFt(t *testing.T, hit *trajectory.HitResult, rangeFt float64) trajectory.EnrichedRow {
	t.Helper()
	var best trajectory.EnrichedRow
	bestDelta := math.Inf(1)
	for _, r := range hit.Rows {
		if d := math.Abs(r.Raw.Position.X - rangeFt); d < bestDelta {
			bestDelta, best = d, r
		}
	}
	if bestDelta > 1 {
		t.Fatalf("no row within 1 ft of %v ft downrange (closest was %v ft away)", rangeFt, bestDelta)
	}
	return best
}

// TestFireMatchesReferenceTrajectoryAt500Yards fires the no-wind load
// gehtsoft-usa-go's TestPathG7 exercises and compares the 500 yd row against
// its reference output (data[5]: 1810.7 fps, mach 1.622, drop -56.3 in). The
// G7 table here is a shape-correct approximation rather than a verbatim copy
// of the published function, and the RK4 step size and atmosphere
// extrapolation are this module's own rather than gehtsoft's, so the
// tolerances track the reference's order of magnitude rather than demanding
// bit-exact agreement.
func TestFireMatchesReferenceTrajectoryAt500Yards(t *testing.T) {
	conditions, weapon, ammo := standardScenario(t)
	call := Call{RangeLimitFt: 1000 * 3, RangeStepFt: 100 * 3, Flags: trajectory.EventRange}

	hit, err := Fire(standardConfig(), conditions, weapon, ammo, call)
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	row := rowNearRangeFt(t, hit, 500*3)

	speedFps := row.Raw.Velocity.Magnitude()
	if math.Abs(speedFps-1810.7) > 100 {
		t.Errorf("velocity at 500 yd = %v fps, want ~1810.7 fps", speedFps)
	}
	if math.Abs(row.Raw.MachRatio-1.622) > 0.1 {
		t.Errorf("mach at 500 yd = %v, want ~1.622", row.Raw.MachRatio)
	}
	dropIn := row.DropFt * 12
	if math.Abs(dropIn-(-56.3)) > 20 {
		t.Errorf("drop at 500 yd = %v in, want ~-56.3 in", dropIn)
	}
}

// TestFireWithCrosswindDeflectsDownrange fires the same load with a 5 mph
// crosswind, the windy variant of TestPathG7 (reference windage -9.96 in at
// 500 yd). This module's wind segments are keyed by FromDirectionRad, a
// different angle convention than gehtsoft's signed bearing, so this checks
// that a crosswind actually deflects the round to a magnitude in the same
// single-digit-to-low-double-digit range as the reference rather than
// asserting an exact signed value under an unverified convention mapping.
func TestFireWithCrosswindDeflectsDownrange(t *testing.T) {
	conditions, weapon, ammo := standardScenario(t)
	const mph5InFps = 5 * 5280.0 / 3600.0
	conditions.Winds = []wind.Segment{{VelocityFps: mph5InFps, FromDirectionRad: math.Pi / 2}}

	call := Call{RangeLimitFt: 1000 * 3, RangeStepFt: 100 * 3, Flags: trajectory.EventRange}
	hit, err := Fire(standardConfig(), conditions, weapon, ammo, call)
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	row := rowNearRangeFt(t, hit, 500*3)

	windageIn := row.WindageFt * 12
	if windageIn <= 0 {
		t.Errorf("windage at 500 yd = %v in, want a positive deflection toward the crosswind", windageIn)
	}
	if math.Abs(windageIn) < 2 || math.Abs(windageIn) > 20 {
		t.Errorf("windage at 500 yd = %v in, want magnitude in [2,20] in (reference ~9.96 in)", windageIn)
	}
}

// TestZeroAngleMatchesReferenceForG1Load checks the zero-angle solver
// against gehtsoft-usa-go's TestZero1 (.223 69gr G1 BC=0.365, MV=2600,
// SH=3.2 in, 100 yd zero -> 0.001651 rad). Zero convergence over a short
// 100 yd zero range is dominated by gravity drop and geometry rather than
// the fine shape of the drag curve, so this tolerates comfortably tighter
// slack than the 500 yd magnitude comparisons above.
func TestZeroAngleMatchesReferenceForG1Load(t *testing.T) {
	curve, err := drag.NewCurve(drag.TableG1, 0.365)
	if err != nil {
		t.Fatalf("drag.NewCurve: %v", err)
	}
	conditions := shot.Conditions{Atmosphere: atmosphere.ICAO()}
	weapon := shot.Weapon{SightHeightFt: 3.2 / 12}
	ammo := shot.Ammo{DragFunction: curve, WeightGr: 69, MuzzleVelocityFps: 2600}

	angle, err := ZeroAngle(standardConfig(), conditions, weapon, ammo, 100*3, false)
	if err != nil {
		t.Fatalf("ZeroAngle: %v", err)
	}
	if math.Abs(angle-0.001651) > 5e-5 {
		t.Errorf("zero angle = %v rad, want ~0.001651 rad", angle)
	}
}

// TestZeroAngleOutOfRangeReportsDiagnostics requests a 5000 yd zero the
// standard load cannot reach and checks the solver.OutOfRangeError's
// diagnostic fields.
func TestZeroAngleOutOfRangeReportsDiagnostics(t *testing.T) {
	conditions, weapon, ammo := standardScenario(t)
	const requestedFt = 5000 * 3

	_, err := ZeroAngle(standardConfig(), conditions, weapon, ammo, requestedFt, false)
	if err == nil {
		t.Fatal("expected an OutOfRangeError for a 5000 yd zero request, got nil")
	}

	var oor *solver.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected *solver.OutOfRangeError, got %T: %v", err, err)
	}
	if oor.RequestedFt != requestedFt {
		t.Errorf("RequestedFt = %v, want %v", oor.RequestedFt, requestedFt)
	}
	if oor.MaxRangeFt <= 0 || oor.MaxRangeFt >= requestedFt {
		t.Errorf("MaxRangeFt = %v, want in (0, %v)", oor.MaxRangeFt, requestedFt)
	}
	if oor.LookAngle != conditions.LookAngleRad {
		t.Errorf("LookAngle = %v, want %v", oor.LookAngle, conditions.LookAngleRad)
	}
}
