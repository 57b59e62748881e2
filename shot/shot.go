// Package shot normalises the caller-facing (Shot, Weapon, Ammo) inputs into
// an immutable ShotProps view carrying every trigonometric and stability
// quantity the integrator and solver need precomputed once per shot.
package shot

import (
	"fmt"
	"math"

	"github.com/windage-labs/ballistics/atmosphere"
	"github.com/windage-labs/ballistics/drag"
	"github.com/windage-labs/ballistics/wind"
)

// ConfigError reports invalid shot inputs at construction time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("shot: config error: %s", e.Reason)
}

// Conditions describes the site and aiming geometry a shot is fired under.
type Conditions struct {
	Atmosphere       *atmosphere.Atmosphere
	Winds            []wind.Segment
	LookAngleRad     float64
	CantAngleRad     float64
	RelativeAngleRad float64
	HasAzimuth       bool
	AzimuthRad       float64
	HasLatitude      bool
	LatitudeRad      float64
}

// Weapon describes the fixed physical properties of the firearm.
type Weapon struct {
	SightHeightFt    float64
	TwistInSigned    float64
	ZeroElevationRad float64
}

// TempSensitivity maps powder temperature (degrees F) to the muzzle velocity
// change in fps that New adds to Ammo.MuzzleVelocityFps.
type TempSensitivity func(powderTempF float64) (muzzleVelocityDeltaFps float64)

// Ammo describes the projectile and its loading.
type Ammo struct {
	DragFunction      drag.Function
	WeightGr          float64
	LengthIn          float64
	DiameterIn        float64
	MuzzleVelocityFps float64
	HasPowderTemp     bool
	PowderTempF       float64
	TempSensitivity   TempSensitivity
}

// Props is the immutable, precomputed view of a shot the integrator and
// solver consume. Constructing it does all trigonometric and stability work
// exactly once per shot.
type Props struct {
	Conditions Conditions
	Weapon     Weapon
	Ammo       Ammo

	CantCos float64
	CantSin float64

	MuzzleVelocityFps float64

	// StabilityCoeff is the Miller gyroscopic stability coefficient; zero
	// when twist, length, or diameter is unspecified (spin drift disabled).
	StabilityCoeff float64
	spinDriftable  bool

	WindSock *wind.Sock
}

// New builds Props from caller inputs, applying optional powder-temperature
// sensitivity to muzzle velocity and precomputing the Miller stability
// coefficient used for spin drift.
func New(c Conditions, w Weapon, a Ammo) (*Props, error) {
	if a.MuzzleVelocityFps <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("muzzle velocity must be positive, got %v", a.MuzzleVelocityFps)}
	}
	if a.WeightGr <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("bullet weight must be positive, got %v", a.WeightGr)}
	}

	mv := a.MuzzleVelocityFps
	if a.HasPowderTemp && a.TempSensitivity != nil {
		mv += a.TempSensitivity(a.PowderTempF)
	}

	p := &Props{
		Conditions:        c,
		Weapon:            w,
		Ammo:              a,
		CantCos:           math.Cos(c.CantAngleRad),
		CantSin:           math.Sin(c.CantAngleRad),
		MuzzleVelocityFps: mv,
		WindSock:          wind.NewSock(c.Winds),
	}

	p.spinDriftable = w.TwistInSigned != 0 && a.LengthIn != 0 && a.DiameterIn != 0
	if p.spinDriftable {
		p.StabilityCoeff = millerStabilityCoefficient(w, a, mv, c.Atmosphere)
	}

	return p, nil
}

// millerStabilityCoefficient computes Sd * Fv * Ftp per the Miller
// gyroscopic stability formula, using the shot's atmosphere for the
// temperature/pressure correction factor.
func millerStabilityCoefficient(w Weapon, a Ammo, mv float64, atmo *atmosphere.Atmosphere) float64 {
	d := a.DiameterIn
	twist := math.Abs(w.TwistInSigned) / d
	length := a.LengthIn / d

	sd := 30 * a.WeightGr / (twist * twist * d * d * d * length * (1 + length*length))
	fv := math.Cbrt(mv / 2800)

	tempF := atmo.TemperatureF
	pressInHg := atmo.PressureInHg
	ftp := ((tempF + 460) / 519) * (29.92 / pressInHg)

	return sd * fv * ftp
}

// SpinDriftFt returns the spin-drift lateral deflection at time t, zero if
// twist, length, or diameter was unspecified.
func (p *Props) SpinDriftFt(t float64) float64 {
	if !p.spinDriftable {
		return 0
	}
	sign := 1.0
	if p.Weapon.TwistInSigned < 0 {
		sign = -1.0
	}
	return sign * 1.25 * (p.StabilityCoeff + 1.2) * math.Pow(t, 1.83) / 12
}
