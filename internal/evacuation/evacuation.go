// Package evacuation synthesizes safe-zone candidates from the risk
// picture. It proposes staging points outside the outermost zone on
// fixed compass bearings; road-network routing is the job of the
// external routing collaborator and is out of scope here.
package evacuation

import (
	"fmt"
	"math"

	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/population"
	"github.com/astroshield/go-impact-sim/internal/units"
)

const (
	// CandidateCount is the number of compass bearings proposed.
	CandidateCount = 8
	// SafetyMarginFactor places candidates beyond the outermost zone.
	SafetyMarginFactor = 1.2
	// ConvoySpeedKMH is the coarse evacuation travel speed used for
	// time estimates.
	ConvoySpeedKMH = 40.0
)

// SafeZone is one staging-point candidate outside the risk rings.
type SafeZone struct {
	Name            string  `json:"name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	BearingDeg      float64 `json:"bearing_deg"`
	DistanceKM      float64 `json:"distance_km"`
	TravelTimeHours float64 `json:"travel_time_hours"`
	Capacity        int64   `json:"capacity"`
}

var bearingNames = [CandidateCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// SafeZones proposes staging points around the impact coordinate.
// estimates must be the ordered zone list; the outermost radius sets
// the exclusion distance. Capacity is the mandatory-tier population
// split evenly across candidates.
func SafeZones(params physics.Parameters, estimates []population.ZoneEstimate) []SafeZone {
	if len(estimates) == 0 {
		return nil
	}

	outermostKM := estimates[len(estimates)-1].Zone.RadiusKM
	distanceKM := outermostKM * SafetyMarginFactor
	capacity := population.TierTotal(estimates, population.TierMandatory) / CandidateCount

	zones := make([]SafeZone, 0, CandidateCount)
	for i := 0; i < CandidateCount; i++ {
		bearing := float64(i) * (360.0 / CandidateCount)
		rad := bearing * math.Pi / 180

		// Equirectangular offset, consistent with the GeoJSON circles.
		offsetDeg := distanceKM / units.KMPerDegree
		zones = append(zones, SafeZone{
			Name:            fmt.Sprintf("Staging area %s", bearingNames[i]),
			Latitude:        params.Latitude + offsetDeg*math.Cos(rad),
			Longitude:       params.Longitude + offsetDeg*math.Sin(rad),
			BearingDeg:      bearing,
			DistanceKM:      distanceKM,
			TravelTimeHours: distanceKM / ConvoySpeedKMH,
			Capacity:        capacity,
		})
	}

	return zones
}
