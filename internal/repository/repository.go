package repository

import (
	"context"
	"time"

	"github.com/astroshield/go-impact-sim/internal/report"
)

// Filter narrows List queries. Nil fields are not applied.
type Filter struct {
	Limit       int
	Since       *time.Time
	Airburst    *bool
	MinEnergyMT *float64
	TargetType  string
}

// Summary is the list-view projection of a stored simulation.
type Summary struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	TargetType       string    `json:"target_type"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	EnergyMegatons   float64   `json:"energy_megatons"`
	SeismicMagnitude float64   `json:"seismic_magnitude"`
	IsAirburst       bool      `json:"is_airburst"`
	AlertLevel       string    `json:"alert_level"`
}

type SimulationRepository interface {
	Add(ctx context.Context, r *report.Report) error
	GetByID(ctx context.Context, id string) (*report.Report, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts Filter) ([]Summary, error)
}
