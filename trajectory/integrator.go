package trajectory

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/windage-labs/ballistics/shot"
	"github.com/windage-labs/ballistics/vector"
)

// Physical constants governing integration.
const (
	gravityFtS2       = -32.17405
	minVelocityFps    = 50.0
	maxDropFt         = -15000.0
	earthRotationRate = 7.292115e-5 // rad/s
)

// Engine selects the numerical integration method.
type Engine int

const (
	EngineEuler Engine = iota
	EngineRK4
)

// TerminationReason is a stable string tag describing why integration
// stopped. It is not an error: benign stopping conditions are reported
// through this field, not through a returned error.
type TerminationReason string

const (
	TerminationNone        TerminationReason = "none"
	TerminationMinVelocity TerminationReason = "min_velocity"
	TerminationMaxDrop     TerminationReason = "max_drop"
	TerminationMinAltitude TerminationReason = "min_altitude"
	TerminationRangeLimit  TerminationReason = "range_limit"
)

// Config carries the integration parameters that used to be process-wide
// globals in the source material: engine choice, step sizing, and an
// optional floor on absolute altitude. There is no package-level default;
// every Facade call is configured explicitly.
type Config struct {
	Engine          Engine
	CalcStepFt      float64
	CStepMultiplier float64 // 0 means the standard default of 0.5
	HasMinAltitude  bool
	MinAltitudeFt   float64
}

func (c Config) stepMultiplier() float64 {
	if c.CStepMultiplier == 0 {
		return 0.5
	}
	return c.CStepMultiplier
}

// Run integrates props forward from the muzzle until a termination
// condition is met or simulated downrange distance exceeds
// rangeLimitFt+step, appending every step to the returned Sequence.
func Run(props *shot.Props, cfg Config, rangeLimitFt float64) (*Sequence, TerminationReason, error) {
	seq := NewSequence()

	elev := props.Weapon.ZeroElevationRad + props.Conditions.RelativeAngleRad
	az := 0.0
	if props.Conditions.HasAzimuth {
		az = props.Conditions.AzimuthRad
	}

	p := vector.New(0, -props.CantCos*props.Weapon.SightHeightFt, -props.CantSin*props.Weapon.SightHeightFt)
	v := vector.New(
		props.MuzzleVelocityFps*math.Cos(elev)*math.Cos(az),
		props.MuzzleVelocityFps*math.Sin(elev),
		props.MuzzleVelocityFps*math.Cos(elev)*math.Sin(az),
	)
	t := 0.0

	alt0 := props.Conditions.Atmosphere.AltitudeFt
	step := cfg.CalcStepFt * cfg.stepMultiplier()

	accelFn := func(p, v vector.Vector3, wind vector.Vector3, densityRatio, soundSpeed float64) (vector.Vector3, float64) {
		vRel := v.Sub(wind)
		speed := vRel.Magnitude()
		machRatio := speed / soundSpeed
		dragScale := -densityRatio * speed * props.Ammo.DragFunction.Drag(machRatio)
		dragAccel := vRel.Scale(dragScale)
		accel := dragAccel.Add(vector.New(0, gravityFtS2, 0))
		accel = accel.Add(coriolisAccel(props.Conditions, v))
		return accel, machRatio
	}

	mach := 0.0
	for {
		wind := props.WindSock.VectorForRange(p.X)
		densityRatio, soundSpeed := props.Conditions.Atmosphere.DensityFactorAndMachAt(alt0 + p.Y)

		dt := dtFor(step, v.X)

		var accel vector.Vector3
		var p2, v2 vector.Vector3

		switch cfg.Engine {
		case EngineEuler:
			accel, mach = accelFn(p, v, wind, densityRatio, soundSpeed)
			v2 = v.Add(accel.Scale(dt))
			p2 = p.Add(v.Scale(dt))
		default: // EngineRK4
			k1v, _ := accelFn(p, v, wind, densityRatio, soundSpeed)
			k1p := v

			v2stage := v.Add(k1v.Scale(dt / 2))
			k2v, m2 := accelFn(p, v2stage, wind, densityRatio, soundSpeed)
			k2p := v2stage

			v3stage := v.Add(k2v.Scale(dt / 2))
			k3v, m3 := accelFn(p, v3stage, wind, densityRatio, soundSpeed)
			k3p := v3stage

			v4stage := v.Add(k3v.Scale(dt))
			k4v, m4 := accelFn(p, v4stage, wind, densityRatio, soundSpeed)
			k4p := v4stage

			v2 = v.Add(k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(dt / 6))
			p2 = p.Add(k1p.Add(k2p.Scale(2)).Add(k3p.Scale(2)).Add(k4p).Scale(dt / 6))
			mach = (m2 + m3 + m4) / 3
		}

		t += dt
		p, v = p2, v2

		seq.Append(RawTrajPoint{TimeS: t, Position: p, Velocity: v, MachRatio: mach})

		if p.X > rangeLimitFt+step {
			return seq, TerminationRangeLimit, nil
		}
		if v.Magnitude() < minVelocityFps {
			return seq, TerminationMinVelocity, nil
		}
		if p.Y < maxDropFt {
			return seq, TerminationMaxDrop, nil
		}
		if cfg.HasMinAltitude && alt0+p.Y < cfg.MinAltitudeFt {
			return seq, TerminationMinAltitude, nil
		}
	}
}

// dtFor applies the calc-step/vx policy, clamping |vx| to a ceiling-avoiding
// floor so the step never diverges to infinity near vx == 0.
func dtFor(step, vx float64) float64 {
	const minVx = 1.0
	clampedAbs := floats.Max([]float64{math.Abs(vx), minVx})
	return step / math.Copysign(clampedAbs, vx)
}

// skewSymmetric returns the 3x3 skew-symmetric matrix of o, such that
// skewSymmetric(o) * v == o.Cross(v) for any v.
func skewSymmetric(o vector.Vector3) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -o.Z, o.Y,
		o.Z, 0, -o.X,
		-o.Y, o.X, 0,
	})
}

// coriolisAccel returns -2*Omega x v, using a lateral-only flat-fire
// approximation when only latitude is supplied, or the full 3-D
// skew-symmetric matrix product when both azimuth and latitude are known.
// With neither, Coriolis is disabled.
func coriolisAccel(c shot.Conditions, v vector.Vector3) vector.Vector3 {
	if !c.HasLatitude {
		return vector.Zero
	}
	sinLat := math.Sin(c.LatitudeRad)

	if !c.HasAzimuth {
		return vector.New(0, 0, -2*earthRotationRate*sinLat*v.X)
	}

	cosLat := math.Cos(c.LatitudeRad)
	sinAz := math.Sin(c.AzimuthRad)
	cosAz := math.Cos(c.AzimuthRad)
	omega := vector.New(
		earthRotationRate*cosLat*cosAz,
		earthRotationRate*sinLat,
		-earthRotationRate*cosLat*sinAz,
	)

	skew := skewSymmetric(omega)
	vVec := mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
	cross := mat.NewVecDense(3, nil)
	cross.MulVec(skew, vVec)

	return vector.New(-2*cross.AtVec(0), -2*cross.AtVec(1), -2*cross.AtVec(2))
}
