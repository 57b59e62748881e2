// Package atmosphere implements the ICAO troposphere relations used to turn
// a (altitude, pressure, temperature, humidity) site condition into a
// density ratio and local speed of sound at any altitude along a shot.
package atmosphere

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Standard-atmosphere constants, ICAO troposphere model.
const (
	stdTemperatureF = 59.0
	stdPressureInHg = 29.92
	stdDensityLbFt3 = 0.076474

	lapseRateFPerFt = -3.56616e-3
	soundSpeedCoeff = 49.0223 // fps per sqrt(degree Rankine)

	icaoStdTempR   = 518.67
	icaoFreezeR    = 459.67
	pressureExpt   = -5.255876
	tempFloorF     = -130.0
	cacheToleranceFt = 30.0

	humidityA0 = 1.24871
	humidityA1 = 0.0988438
	humidityA2 = 1.52907e-3
	humidityA3 = -3.07031e-6
	humidityA4 = 4.21329e-7
	humidityA5 = 3.342e-4
)

// ConfigError reports invalid atmosphere inputs at construction time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("atmosphere: config error: %s", e.Reason)
}

// Atmosphere is a single site condition: altitude, pressure, temperature,
// and relative humidity, plus the density ratio and speed of sound derived
// from them and cached for the construction altitude.
type Atmosphere struct {
	AltitudeFt   float64
	PressureInHg float64
	TemperatureF float64
	Humidity     float64

	seaLevelTempF float64
	seaLevelPress float64

	densityRatio float64
	machFps      float64

	// TemperatureClamped is set when the construction temperature, or any
	// subsequently queried altitude's derived temperature, hit the floor.
	TemperatureClamped bool
}

// ICAO returns the standard ICAO troposphere atmosphere: 59 F, 29.92 inHg,
// 0% humidity, at sea level.
func ICAO() *Atmosphere {
	a, err := New(0, stdPressureInHg, stdTemperatureF, 0)
	if err != nil {
		panic("atmosphere: ICAO standard atmosphere failed to construct: " + err.Error())
	}
	return a
}

// New builds an Atmosphere for the given site conditions. humidity must lie
// in [0, 1]; violating that is a ConfigError.
func New(altitudeFt, pressureInHg, temperatureF, humidity float64) (*Atmosphere, error) {
	if humidity < 0 || humidity > 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf("humidity must be within [0,1], got %v", humidity)}
	}
	if pressureInHg <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("pressure must be positive, got %v", pressureInHg)}
	}

	a := &Atmosphere{
		AltitudeFt:   altitudeFt,
		PressureInHg: pressureInHg,
		TemperatureF: temperatureF,
		Humidity:     humidity,
	}

	clampedTempF := floats.Max([]float64{temperatureF, tempFloorF})
	if clampedTempF != temperatureF {
		a.TemperatureClamped = true
	}

	a.seaLevelTempF = clampedTempF - lapseRateFPerFt*altitudeFt
	seaLevelTempR := a.seaLevelTempF + icaoFreezeR
	localTempR := clampedTempF + icaoFreezeR
	a.seaLevelPress = pressureInHg / math.Pow(localTempR/seaLevelTempR, -pressureExpt)

	a.densityRatio, a.machFps = a.computeAt(altitudeFt)

	return a, nil
}

// DensityRatioAndMach returns the cached (density ratio, local speed of
// sound in fps) for the construction altitude.
func (a *Atmosphere) DensityRatioAndMach() (float64, float64) {
	return a.densityRatio, a.machFps
}

// DensityFactorAndMachAt returns (density ratio, local speed of sound) at
// the given altitude. Within 30 ft of the construction altitude the cached
// values are returned unchanged; otherwise the site's sea-level temperature
// and pressure are re-extrapolated to the requested altitude via the
// standard lapse rate and pressure exponent.
func (a *Atmosphere) DensityFactorAndMachAt(altitudeFt float64) (float64, float64) {
	if math.Abs(altitudeFt-a.AltitudeFt) < cacheToleranceFt {
		return a.densityRatio, a.machFps
	}
	return a.computeAt(altitudeFt)
}

// computeAt recomputes (density ratio, speed of sound) at altitudeFt from
// the atmosphere's back-derived sea-level reference, clamping temperature to
// the floor and flagging it if tripped.
func (a *Atmosphere) computeAt(altitudeFt float64) (float64, float64) {
	tempF := floats.Max([]float64{a.seaLevelTempF + lapseRateFPerFt*altitudeFt, tempFloorF})
	if tempF != a.seaLevelTempF+lapseRateFPerFt*altitudeFt {
		a.TemperatureClamped = true
	}
	tempR := tempF + icaoFreezeR

	pressure := a.seaLevelPress * math.Pow(tempR/(a.seaLevelTempF+icaoFreezeR), -pressureExpt)

	vaporPressure := humidityA0 + tempF*(humidityA1+tempF*(humidityA2+tempF*(humidityA3+tempF*humidityA4)))
	partialVapor := a.Humidity * vaporPressure * humidityA5
	humidityCorrection := (pressure - partialVapor) / stdPressureInHg

	densityRatio := (icaoStdTempR / tempR) * humidityCorrection
	mach := soundSpeedCoeff * math.Sqrt(tempR)

	return densityRatio, mach
}

// StandardDensityLbFt3 is the ICAO sea-level standard air density, used by
// callers that need absolute (not ratio) density.
func StandardDensityLbFt3() float64 {
	return stdDensityLbFt3
}
