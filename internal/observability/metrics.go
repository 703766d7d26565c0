package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the simulation service.
type Metrics struct {
	SimulationsTotal   *prometheus.CounterVec // labels: outcome={success,invalid,error}
	AirburstsTotal     prometheus.Counter
	SimulationDuration prometheus.Histogram
	BatchJobsSubmitted prometheus.Counter
	StreamSubscribers  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SimulationsTotal,
		m.AirburstsTotal,
		m.SimulationDuration,
		m.BatchJobsSubmitted,
		m.StreamSubscribers,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests do not hit "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "simulations_total",
			Help:      "Simulation requests by outcome.",
		}, []string{"outcome"}),
		AirburstsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "airbursts_total",
			Help:      "Simulations classified as atmospheric airbursts.",
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of one report build including persistence.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		BatchJobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "batch_jobs_submitted_total",
			Help:      "Scenario jobs accepted onto the batch worker pool.",
		}),
		StreamSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_sim",
			Name:      "stream_subscribers",
			Help:      "Currently connected SSE subscribers.",
		}),
	}
}
