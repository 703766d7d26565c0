// Package population maps risk-zone geometry to affected-population
// estimates under a uniform density assumption.
package population

import (
	"math"

	"github.com/astroshield/go-impact-sim/internal/riskzone"
)

type Tier string

const (
	TierMandatory   Tier = "mandatory"
	TierRecommended Tier = "recommended"
	TierMonitoring  Tier = "monitoring"
)

// DefaultDensityPerKM2 is the urban baseline used when no density is
// configured.
const DefaultDensityPerKM2 = 200.0

// ZoneEstimate annotates a risk zone with its population figures.
// AffectedCount is exclusive: it covers only the annulus between this
// zone and the next zone inward, so zone counts never double-count.
// CumulativeCount is the full-disk total out to this zone's radius.
type ZoneEstimate struct {
	Zone            riskzone.Zone `json:"zone"`
	AffectedCount   int64         `json:"affected_population"`
	CumulativeCount int64         `json:"cumulative_population"`
	Tier            Tier          `json:"tier"`
}

// Estimator computes population estimates for zone sets.
type Estimator struct {
	densityPerKM2 float64
}

func NewEstimator(densityPerKM2 float64) *Estimator {
	return &Estimator{densityPerKM2: densityPerKM2}
}

// Estimate annotates zones, which must already be sorted by increasing
// radius as riskzone.Zones guarantees.
func (e *Estimator) Estimate(zones []riskzone.Zone) []ZoneEstimate {
	estimates := make([]ZoneEstimate, 0, len(zones))

	innerRadius := 0.0
	for _, z := range zones {
		diskArea := math.Pi * z.RadiusKM * z.RadiusKM
		ringArea := diskArea - math.Pi*innerRadius*innerRadius

		estimates = append(estimates, ZoneEstimate{
			Zone:            z,
			AffectedCount:   int64(ringArea * e.densityPerKM2),
			CumulativeCount: int64(diskArea * e.densityPerKM2),
			Tier:            tierFor(z.Kind),
		})
		innerRadius = z.RadiusKM
	}

	return estimates
}

// tierFor assigns evacuation tiers: everything at or inside the
// moderate ring is mandatory, the shockwave ring is recommended, and
// the seismic ring is monitoring only.
func tierFor(kind riskzone.Kind) Tier {
	switch kind {
	case riskzone.KindDirect, riskzone.KindTsunami, riskzone.KindModerate:
		return TierMandatory
	case riskzone.KindShockwave:
		return TierRecommended
	default:
		return TierMonitoring
	}
}

// TotalAffected sums the exclusive per-zone counts, i.e. the population
// of the full outermost disk.
func TotalAffected(estimates []ZoneEstimate) int64 {
	var total int64
	for _, e := range estimates {
		total += e.AffectedCount
	}
	return total
}

// TierTotal sums the exclusive counts for one tier.
func TierTotal(estimates []ZoneEstimate, tier Tier) int64 {
	var total int64
	for _, e := range estimates {
		if e.Tier == tier {
			total += e.AffectedCount
		}
	}
	return total
}
