// Package report assembles the full simulation output. Build is the
// single validation entry point: every downstream stage assumes its
// input has already been checked.
package report

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/astroshield/go-impact-sim/internal/cost"
	"github.com/astroshield/go-impact-sim/internal/evacuation"
	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/population"
	"github.com/astroshield/go-impact-sim/internal/riskzone"
	"github.com/astroshield/go-impact-sim/internal/timeline"
)

type AlertLevel string

const (
	AlertGreen  AlertLevel = "green"
	AlertYellow AlertLevel = "yellow"
	AlertOrange AlertLevel = "orange"
	AlertRed    AlertLevel = "red"
)

// Criticality banding on impact energy.
const (
	redThresholdMT    = 100.0
	orangeThresholdMT = 10.0
	yellowThresholdMT = 1.0
)

// Report is the aggregate simulation result. Everything below Metadata
// is a deterministic function of Parameters; ID and GeneratedAt are the
// only request-scoped metadata.
type Report struct {
	Metadata Metadata `json:"metadata"`

	Parameters    physics.Parameters        `json:"parameters"`
	Effects       physics.Effects           `json:"effects"`
	AlertLevel    AlertLevel                `json:"alert_level"`
	Zones         []population.ZoneEstimate `json:"zones"`
	TotalAffected int64                     `json:"total_affected_population"`
	Costs         cost.Estimate             `json:"costs"`
	Timeline      []timeline.Entry          `json:"timeline"`
	SafeZones     []evacuation.SafeZone     `json:"safe_zones"`
}

type Metadata struct {
	ID          string `json:"id"`
	GeneratedAt string `json:"generated_at"`
}

// Builder wires the pipeline stages. The clock is injectable so tests
// can freeze the GeneratedAt stamp; nothing else in the report depends
// on time.
type Builder struct {
	calc      *physics.Calculator
	estimator *population.Estimator
	clock     clockwork.Clock
}

func NewBuilder(calc *physics.Calculator, estimator *population.Estimator, clock clockwork.Clock) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{calc: calc, estimator: estimator, clock: clock}
}

// Build validates params and runs the full pipeline in dependency
// order. A validation failure returns the structured field error and
// no partial report.
func (b *Builder) Build(params physics.Parameters) (*Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	effects := b.calc.Compute(params)
	zones := riskzone.Zones(effects, params)
	estimates := b.estimator.Estimate(zones)

	totalAffected := population.TotalAffected(estimates)
	mandatory := population.TierTotal(estimates, population.TierMandatory)

	return &Report{
		Metadata: Metadata{
			ID:          uuid.NewString(),
			GeneratedAt: b.clock.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		},
		Parameters:    params,
		Effects:       effects,
		AlertLevel:    alertLevel(effects.EnergyMegatonsTNT),
		Zones:         estimates,
		TotalAffected: totalAffected,
		Costs:         cost.EstimateCosts(effects, totalAffected, mandatory),
		Timeline:      timeline.Generate(effects),
		SafeZones:     evacuation.SafeZones(params, estimates),
	}, nil
}

func alertLevel(energyMT float64) AlertLevel {
	switch {
	case energyMT > redThresholdMT:
		return AlertRed
	case energyMT > orangeThresholdMT:
		return AlertOrange
	case energyMT > yellowThresholdMT:
		return AlertYellow
	default:
		return AlertGreen
	}
}
