package report

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/population"
)

func testBuilder(clock clockwork.Clock) *Builder {
	calc := physics.NewCalculator(physics.DefaultAirburstPolicy())
	estimator := population.NewEstimator(population.DefaultDensityPerKM2)
	return NewBuilder(calc, estimator, clock)
}

func surfaceParams() physics.Parameters {
	return physics.Parameters{
		DiameterM:      200,
		VelocityKMS:    17,
		ImpactAngleDeg: 30,
		TargetType:     physics.TargetSoil,
		Latitude:       40.7,
		Longitude:      -74.0,
	}
}

func TestBuild(t *testing.T) {
	frozen := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	builder := testBuilder(clockwork.NewFakeClockAt(frozen))

	rep, err := builder.Build(surfaceParams())
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.NotEmpty(t, rep.Metadata.ID)
	assert.Equal(t, "2026-03-14T09:26:53Z", rep.Metadata.GeneratedAt)

	assert.False(t, rep.Effects.IsAirburst)
	assert.Equal(t, AlertRed, rep.AlertLevel)
	assert.NotEmpty(t, rep.Zones)
	assert.Greater(t, rep.TotalAffected, int64(0))
	assert.NotNil(t, rep.Costs.ROI)
	assert.NotEmpty(t, rep.Timeline)
	assert.NotEmpty(t, rep.SafeZones)
}

func TestBuild_DeterministicBody(t *testing.T) {
	builder := testBuilder(clockwork.NewFakeClock())
	params := surfaceParams()

	first, err := builder.Build(params)
	require.NoError(t, err)
	second, err := builder.Build(params)
	require.NoError(t, err)

	// IDs are request-scoped; everything else repeats exactly.
	assert.NotEqual(t, first.Metadata.ID, second.Metadata.ID)

	first.Metadata = Metadata{}
	second.Metadata = Metadata{}
	assert.Equal(t, first, second)
}

func TestBuild_InvalidParameters(t *testing.T) {
	builder := testBuilder(clockwork.NewFakeClock())

	params := surfaceParams()
	params.DiameterM = -1

	rep, err := builder.Build(params)
	require.Error(t, err)
	assert.Nil(t, rep, "validation failures must not yield partial reports")

	var invalid *physics.InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "diameter_m", invalid.Field)
}

func TestAlertLevel(t *testing.T) {
	tests := []struct {
		energyMT float64
		want     AlertLevel
	}{
		{0.5, AlertGreen},
		{1, AlertGreen},
		{1.01, AlertYellow},
		{10, AlertYellow},
		{10.5, AlertOrange},
		{100, AlertOrange},
		{101, AlertRed},
		{50_000, AlertRed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, alertLevel(tt.energyMT), "energy %g MT", tt.energyMT)
	}
}

func TestBuild_AirburstReport(t *testing.T) {
	builder := testBuilder(clockwork.NewFakeClock())

	params := surfaceParams()
	params.DiameterM = 40
	params.VelocityKMS = 19

	rep, err := builder.Build(params)
	require.NoError(t, err)

	assert.True(t, rep.Effects.IsAirburst)
	assert.Zero(t, rep.Effects.CraterDiameterKM)

	// The timeline follows the airburst branch.
	for _, e := range rep.Timeline {
		if e.OffsetHours == 0 {
			assert.Contains(t, e.Action, "Atmospheric detonation")
		}
	}
}

func TestBuild_OceanReportIncludesTsunamiZone(t *testing.T) {
	builder := testBuilder(clockwork.NewFakeClock())

	params := surfaceParams()
	params.TargetType = physics.TargetOcean

	rep, err := builder.Build(params)
	require.NoError(t, err)

	require.NotNil(t, rep.Effects.Tsunami)
	kinds := make(map[string]bool)
	for _, z := range rep.Zones {
		kinds[string(z.Zone.Kind)] = true
	}
	assert.True(t, kinds["tsunami"])
}
