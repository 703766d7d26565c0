// impact-report runs one simulation from a JSON parameters file and
// prints the full report to stdout.
package main

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/astroshield/go-impact-sim/internal/config"
	"github.com/astroshield/go-impact-sim/internal/logging"
	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/population"
	"github.com/astroshield/go-impact-sim/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	if len(os.Args) != 2 {
		logging.Fatalf("usage: impact-report <parameters.json>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		logging.Fatalf("Failed to read parameters file: %v", err)
	}

	var params physics.Parameters
	if err := json.Unmarshal(data, &params); err != nil {
		logging.Fatalf("Failed to parse parameters: %v", err)
	}

	calc := physics.NewCalculator(physics.AirburstPolicy{
		DiameterBelowM:   cfg.Engine.AirburstMaxDiameterM,
		VelocityAboveKMS: cfg.Engine.AirburstMaxVelocityKMS,
	})
	estimator := population.NewEstimator(cfg.Engine.PopulationDensityPerKM2)
	builder := report.NewBuilder(calc, estimator, clockwork.NewRealClock())

	rep, err := builder.Build(params)
	if err != nil {
		logging.Fatalf("Simulation rejected: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logging.Fatalf("Failed to encode report: %v", err)
	}
}
