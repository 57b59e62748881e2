package trajectory

import (
	"math"
	"testing"

	"github.com/windage-labs/ballistics/atmosphere"
	"github.com/windage-labs/ballistics/drag"
	"github.com/windage-labs/ballistics/shot"
)

func assertApproxEqualInt(t *testing.T, actual, expected, tolerance float64) {
	t.Helper()
	if math.Abs(actual-expected) > tolerance {
		t.Errorf("got %v, want %v (tolerance %v)", actual, expected, tolerance)
	}
}

func standardProps(t *testing.T) *shot.Props {
	t.Helper()
	curve, err := drag.NewCurve(drag.TableG7, 0.223)
	if err != nil {
		t.Fatalf("drag.NewCurve: %v", err)
	}
	props, err := shot.New(
		shot.Conditions{Atmosphere: atmosphere.ICAO()},
		shot.Weapon{SightHeightFt: 2.0 / 12, ZeroElevationRad: 0.001228, TwistInSigned: 11.24},
		shot.Ammo{DragFunction: curve, WeightGr: 168, LengthIn: 1.2, DiameterIn: 0.308, MuzzleVelocityFps: 2750},
	)
	if err != nil {
		t.Fatalf("shot.New: %v", err)
	}
	return props
}

func TestRunTerminatesOnRangeLimit(t *testing.T) {
	props := standardProps(t)
	cfg := Config{Engine: EngineRK4, CalcStepFt: 1}
	seq, reason, err := Run(props, cfg, 1000*3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != TerminationRangeLimit {
		t.Errorf("expected range_limit termination, got %v", reason)
	}
	if seq.Len() == 0 {
		t.Error("expected a non-empty sequence")
	}
}

func TestRunTerminatesOnMaxDropWhenAngledSteeplyDown(t *testing.T) {
	curve, err := drag.NewCurve(drag.TableG1, 0.3)
	if err != nil {
		t.Fatalf("drag.NewCurve: %v", err)
	}
	props, err := shot.New(
		shot.Conditions{Atmosphere: atmosphere.ICAO()},
		shot.Weapon{ZeroElevationRad: -1.4},
		shot.Ammo{DragFunction: curve, WeightGr: 150, LengthIn: 1.0, DiameterIn: 0.308, MuzzleVelocityFps: 2800},
	)
	if err != nil {
		t.Fatalf("shot.New: %v", err)
	}
	cfg := Config{Engine: EngineEuler, CalcStepFt: 2}
	_, reason, err := Run(props, cfg, 1000000)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != TerminationMaxDrop {
		t.Errorf("expected max_drop termination for steep downward shot, got %v", reason)
	}
}

func TestRunTerminatesOnMinVelocityOrMaxDropForExtremeRange(t *testing.T) {
	curve, err := drag.NewCurve(drag.TableG1, 0.1)
	if err != nil {
		t.Fatalf("drag.NewCurve: %v", err)
	}
	props, err := shot.New(
		shot.Conditions{Atmosphere: atmosphere.ICAO()},
		shot.Weapon{ZeroElevationRad: 0.01},
		shot.Ammo{DragFunction: curve, WeightGr: 45, LengthIn: 0.5, DiameterIn: 0.224, MuzzleVelocityFps: 1200},
	)
	if err != nil {
		t.Fatalf("shot.New: %v", err)
	}
	cfg := Config{Engine: EngineEuler, CalcStepFt: 2}
	_, reason, err := Run(props, cfg, 100000)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason != TerminationMinVelocity && reason != TerminationMaxDrop {
		t.Errorf("expected min_velocity or max_drop for a low-BC low-velocity extreme-range shot, got %v", reason)
	}
}

func TestEulerAndRK4AgreeClosely(t *testing.T) {
	props := standardProps(t)

	euler, _, err := Run(props, Config{Engine: EngineEuler, CalcStepFt: 1}, 1000*3)
	if err != nil {
		t.Fatalf("Run euler: %v", err)
	}
	rk4, _, err := Run(props, Config{Engine: EngineRK4, CalcStepFt: 1}, 1000*3)
	if err != nil {
		t.Fatalf("Run rk4: %v", err)
	}

	rowEuler, err := euler.GetAt(KeyPX, 500*3, 0)
	if err != nil {
		t.Fatalf("euler GetAt: %v", err)
	}
	rowRK4, err := rk4.GetAt(KeyPX, 500*3, 0)
	if err != nil {
		t.Fatalf("rk4 GetAt: %v", err)
	}

	assertApproxEqualInt(t, rowEuler.Position.Y, rowRK4.Position.Y, 0.1/12)
}

func TestCoriolisDisabledWithoutLatitude(t *testing.T) {
	props := standardProps(t)
	seq, _, err := Run(props, Config{Engine: EngineRK4, CalcStepFt: 1}, 1000*3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	row, err := seq.GetAt(KeyPX, 500*3, 0)
	if err != nil {
		t.Fatalf("GetAt: %v", err)
	}
	assertApproxEqualInt(t, row.Position.Z, 0, 1e-6)
}

func TestDtForClampsNearZeroVx(t *testing.T) {
	dt := dtFor(10, 1e-6)
	if math.IsInf(dt, 0) || math.IsNaN(dt) {
		t.Fatalf("expected finite dt near vx=0, got %v", dt)
	}
}
