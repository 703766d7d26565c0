// Package physics derives the physical consequences of a small-body
// impact from the impactor's geometry and kinematics. All formulas are
// deterministic and all tuning values are named constants so they can
// be adjusted and tested independently.
package physics

import (
	"fmt"
	"math"

	"github.com/astroshield/go-impact-sim/internal/units"
)

type TargetType string

const (
	TargetSoil  TargetType = "soil"
	TargetRock  TargetType = "rock"
	TargetOcean TargetType = "ocean"
)

// Valid reports whether t is one of the supported target materials.
func (t TargetType) Valid() bool {
	switch t {
	case TargetSoil, TargetRock, TargetOcean:
		return true
	}
	return false
}

// Parameters describes a single impact scenario. Instances are
// immutable once validated; the engine never mutates them.
type Parameters struct {
	DiameterM      float64    `json:"diameter_m"`
	VelocityKMS    float64    `json:"velocity_kms"`
	ImpactAngleDeg float64    `json:"impact_angle_deg"`
	TargetType     TargetType `json:"target_type"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
}

// InvalidParameterError identifies the rejected field and the reason,
// so callers can surface a structured rejection rather than a generic
// failure.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// Validate checks every field of p. It is called once at the report
// entry point; downstream stages assume validated input. Out-of-range
// impact angles are rejected rather than clamped.
func (p Parameters) Validate() error {
	if p.DiameterM <= 0 {
		return &InvalidParameterError{Field: "diameter_m", Reason: "must be greater than zero"}
	}
	if p.VelocityKMS <= 0 {
		return &InvalidParameterError{Field: "velocity_kms", Reason: "must be greater than zero"}
	}
	if p.ImpactAngleDeg < 0 || p.ImpactAngleDeg > 90 {
		return &InvalidParameterError{Field: "impact_angle_deg", Reason: "must be between 0 and 90 degrees"}
	}
	if !p.TargetType.Valid() {
		return &InvalidParameterError{Field: "target_type", Reason: "must be one of soil, rock, ocean"}
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return &InvalidParameterError{Field: "latitude", Reason: "must be between -90 and 90"}
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return &InvalidParameterError{Field: "longitude", Reason: "must be between -180 and 180"}
	}
	return nil
}

// TsunamiEffects carries the ocean-impact wave model outputs.
type TsunamiEffects struct {
	InitialWaveHeightM float64 `json:"initial_wave_height_m"`
	MaxRunupM          float64 `json:"max_runup_m"`
}

// Effects is the derived physical picture of the impact.
type Effects struct {
	MassKG               float64 `json:"mass_kg"`
	EnergyJoules         float64 `json:"energy_joules"`
	EnergyMegatonsTNT    float64 `json:"energy_megatons"`
	HiroshimaEquivalents float64 `json:"hiroshima_equivalents"`
	IsAirburst           bool    `json:"is_airburst"`
	SeismicMagnitude     float64 `json:"seismic_magnitude"`
	FeltDistanceKM       float64 `json:"felt_distance_km"`
	CraterDiameterKM     float64 `json:"crater_diameter_km"`
	CraterDepthM         float64 `json:"crater_depth_m"`
	FireballRadiusKM     float64 `json:"fireball_radius_km"`
	ShockwaveIntensityDB float64 `json:"shockwave_intensity_db"`
	PeakWindKMH          float64 `json:"peak_wind_kmh"`

	Tsunami *TsunamiEffects `json:"tsunami,omitempty"`
}

// Fixed design parameters of the effect formulas. Energy-dependent
// laws take E in megatons TNT.
const (
	// ImpactorDensityKGM3 is the assumed bulk density of a rocky impactor.
	ImpactorDensityKGM3 = 3000.0

	SeismicMagnitudeOffset = 4.0

	CraterCoefficientKM  = 0.8
	CraterEnergyExponent = 0.294
	CraterAngleExponent  = 0.5
	// CraterDepthRatio relates final crater depth to final diameter.
	CraterDepthRatio = 0.2

	FireballCoefficientKM  = 2.3
	FireballEnergyExponent = 0.4

	ShockwaveBaseDB         = 120.0
	ShockwaveEnergyFactorDB = 10.0

	PeakWindCoefficientKMH = 120.0
	PeakWindEnergyExponent = 1.0 / 3.0

	// Ocean-impact wave model (Ward & Asphaug style momentum coupling).
	SeawaterDensityKGM3 = 1000.0
	OceanDepthM         = 4000.0
	RunupAmplification  = 2.0
)

// AirburstPolicy is the single source of truth for the airburst
// classification thresholds. Small bodies disrupt in the atmosphere
// before ground contact; very fast ones ablate regardless of size.
type AirburstPolicy struct {
	// DiameterBelowM: impactors strictly smaller than this burst in the air.
	DiameterBelowM float64
	// VelocityAboveKMS: impactors strictly faster than this burst in the air.
	VelocityAboveKMS float64
}

// DefaultAirburstPolicy matches the 150 m / 50 km/s design cutoffs.
func DefaultAirburstPolicy() AirburstPolicy {
	return AirburstPolicy{DiameterBelowM: 150, VelocityAboveKMS: 50}
}

// IsAirburst classifies an impactor under this policy.
func (ap AirburstPolicy) IsAirburst(diameterM, velocityKMS float64) bool {
	return diameterM < ap.DiameterBelowM || velocityKMS > ap.VelocityAboveKMS
}

// Calculator converts impact parameters into effects. The zero value
// is not usable; construct with NewCalculator.
type Calculator struct {
	policy AirburstPolicy
}

func NewCalculator(policy AirburstPolicy) *Calculator {
	return &Calculator{policy: policy}
}

// Compute derives the full effect set for validated parameters. It is
// a pure function: identical parameters always produce identical
// effects.
func (c *Calculator) Compute(p Parameters) Effects {
	massKG := ImpactorDensityKGM3 * (math.Pi / 6.0) * math.Pow(p.DiameterM, 3)
	velocityMS := p.VelocityKMS * units.KMSToMS
	energyJ := 0.5 * massKG * velocityMS * velocityMS
	energyMT := units.MegatonsTNT(energyJ)

	isAirburst := c.policy.IsAirburst(p.DiameterM, p.VelocityKMS)

	magnitude := math.Log10(energyMT) + SeismicMagnitudeOffset

	effects := Effects{
		MassKG:               massKG,
		EnergyJoules:         energyJ,
		EnergyMegatonsTNT:    energyMT,
		HiroshimaEquivalents: units.HiroshimaEquivalents(energyJ),
		IsAirburst:           isAirburst,
		SeismicMagnitude:     magnitude,
		FeltDistanceKM:       math.Pow(10, 0.5*magnitude-0.8),
		FireballRadiusKM:     FireballCoefficientKM * math.Pow(energyMT, FireballEnergyExponent),
		ShockwaveIntensityDB: ShockwaveBaseDB + ShockwaveEnergyFactorDB*math.Log10(energyMT),
		PeakWindKMH:          PeakWindCoefficientKMH * math.Pow(energyMT, PeakWindEnergyExponent),
	}

	if !isAirburst {
		sinAngle := math.Sin(p.ImpactAngleDeg * math.Pi / 180)
		effects.CraterDiameterKM = CraterCoefficientKM *
			math.Pow(energyMT, CraterEnergyExponent) *
			math.Pow(sinAngle, CraterAngleExponent)
		effects.CraterDepthM = CraterDepthRatio * effects.CraterDiameterKM * 1000
	}

	if p.TargetType == TargetOcean {
		waveHeight := 0.5 * math.Sqrt(massKG*velocityMS/(SeawaterDensityKGM3*OceanDepthM))
		effects.Tsunami = &TsunamiEffects{
			InitialWaveHeightM: waveHeight,
			MaxRunupM:          RunupAmplification * waveHeight,
		}
	}

	return effects
}
