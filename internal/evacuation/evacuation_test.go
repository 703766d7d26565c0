package evacuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/population"
	"github.com/astroshield/go-impact-sim/internal/riskzone"
)

func sampleEstimates() []population.ZoneEstimate {
	return []population.ZoneEstimate{
		{Zone: riskzone.Zone{Kind: riskzone.KindDirect, RadiusKM: 5}, AffectedCount: 10_000, Tier: population.TierMandatory},
		{Zone: riskzone.Zone{Kind: riskzone.KindModerate, RadiusKM: 15}, AffectedCount: 30_000, Tier: population.TierMandatory},
		{Zone: riskzone.Zone{Kind: riskzone.KindShockwave, RadiusKM: 50}, AffectedCount: 200_000, Tier: population.TierRecommended},
		{Zone: riskzone.Zone{Kind: riskzone.KindSeismic, RadiusKM: 100}, AffectedCount: 500_000, Tier: population.TierMonitoring},
	}
}

func TestSafeZones(t *testing.T) {
	params := physics.Parameters{Latitude: 40, Longitude: -74}
	zones := SafeZones(params, sampleEstimates())

	require.Len(t, zones, CandidateCount)

	for i, z := range zones {
		assert.InDelta(t, 100*SafetyMarginFactor, z.DistanceKM, 1e-9, "candidate %d", i)
		assert.InDelta(t, z.DistanceKM/ConvoySpeedKMH, z.TravelTimeHours, 1e-9)
		assert.InDelta(t, float64(i)*45, z.BearingDeg, 1e-9)
		assert.NotEmpty(t, z.Name)

		// The candidate must sit outside the outermost ring.
		assert.Greater(t, z.DistanceKM, 100.0)
	}
}

func TestSafeZones_CapacitySplitsMandatoryTier(t *testing.T) {
	zones := SafeZones(physics.Parameters{}, sampleEstimates())
	require.NotEmpty(t, zones)

	// 40k mandatory across 8 candidates.
	for _, z := range zones {
		assert.Equal(t, int64(5000), z.Capacity)
	}
}

func TestSafeZones_DistinctCoordinates(t *testing.T) {
	zones := SafeZones(physics.Parameters{Latitude: 10, Longitude: 20}, sampleEstimates())

	seen := map[[2]float64]bool{}
	for _, z := range zones {
		key := [2]float64{z.Latitude, z.Longitude}
		assert.False(t, seen[key], "duplicate coordinate at bearing %g", z.BearingDeg)
		seen[key] = true
	}
}

func TestSafeZones_EmptyEstimates(t *testing.T) {
	assert.Nil(t, SafeZones(physics.Parameters{}, nil))
}
