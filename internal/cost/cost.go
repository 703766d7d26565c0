// Package cost produces order-of-magnitude USD estimates for the
// response operation and for the damage it avoids. Every multiplier is
// a named baseline constant so the bands can be retuned without
// touching the arithmetic.
package cost

import (
	"math"

	"github.com/astroshield/go-impact-sim/internal/physics"
)

// Baseline unit rates.
const (
	EvacuationCostPerPerson = 450.0   // $/person transported out of the zones
	ShelterCostPerPerson    = 1200.0  // $/person for first-week shelter and supplies
	HospitalCostPerPerson   = 300.0   // $/person medical surge capacity
	MilitaryCostPerPerson   = 150.0   // $/person logistics and security

	LivesValuePerPerson        = 25000.0 // $/mandatory-tier person, expected-casualty avoidance
	InfrastructurePerMegaton   = 90e6    // $/MT structural damage avoided by hardening and shutdown
	EconomyPerMegaton          = 140e6   // $/MT economic disruption avoided by early response
)

// roiPrecision fixes the rounding applied to the ROI ratio.
const roiPrecision = 100.0

// Estimate is the cost picture for one simulation. ROI is nil when the
// operational total is zero: the ratio is not computable rather than
// erroneous.
type Estimate struct {
	EvacuationCost float64 `json:"evacuation_cost"`
	ShelterCost    float64 `json:"shelter_cost"`
	HospitalCost   float64 `json:"hospital_cost"`
	MilitaryCost   float64 `json:"military_cost"`

	OperationalTotal float64 `json:"operational_total"`

	LivesValueAvoided     float64 `json:"lives_value_avoided"`
	InfrastructureAvoided float64 `json:"infrastructure_avoided"`
	EconomyAvoided        float64 `json:"economy_avoided"`

	AvoidedDamageTotal float64 `json:"avoided_damage_total"`

	ROI *float64 `json:"roi,omitempty"`
}

// EstimateCosts derives the cost bands from the impact energy and the
// population split. mandatoryPopulation is the mandatory-tier count;
// totalAffected is the population of the outermost zone disk.
func EstimateCosts(effects physics.Effects, totalAffected, mandatoryPopulation int64) Estimate {
	total := float64(totalAffected)
	mandatory := float64(mandatoryPopulation)

	est := Estimate{
		EvacuationCost: total * EvacuationCostPerPerson,
		ShelterCost:    mandatory * ShelterCostPerPerson,
		HospitalCost:   mandatory * HospitalCostPerPerson,
		MilitaryCost:   total * MilitaryCostPerPerson,

		LivesValueAvoided:     mandatory * LivesValuePerPerson,
		InfrastructureAvoided: effects.EnergyMegatonsTNT * InfrastructurePerMegaton,
		EconomyAvoided:        effects.EnergyMegatonsTNT * EconomyPerMegaton,
	}

	est.OperationalTotal = est.EvacuationCost + est.ShelterCost + est.HospitalCost + est.MilitaryCost
	est.AvoidedDamageTotal = est.LivesValueAvoided + est.InfrastructureAvoided + est.EconomyAvoided

	if est.OperationalTotal > 0 {
		roi := math.Round(est.AvoidedDamageTotal/est.OperationalTotal*roiPrecision) / roiPrecision
		est.ROI = &roi
	}

	return est
}
