package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astroshield/go-impact-sim/internal/observability"
	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/report"
	"github.com/astroshield/go-impact-sim/internal/repository"
	"github.com/astroshield/go-impact-sim/internal/stream"
	"github.com/astroshield/go-impact-sim/internal/worker"
)

type Handler struct {
	builder     *report.Builder
	repo        repository.SimulationRepository
	pool        *worker.Pool[physics.Parameters]
	broadcaster *stream.Broadcaster
	metrics     *observability.Metrics
}

func NewHandler(
	builder *report.Builder,
	repo repository.SimulationRepository,
	pool *worker.Pool[physics.Parameters],
	broadcaster *stream.Broadcaster,
	metrics *observability.Metrics,
) *Handler {
	return &Handler{
		builder:     builder,
		repo:        repo,
		pool:        pool,
		broadcaster: broadcaster,
		metrics:     metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.POST("/api/simulations", h.simulate)
	r.POST("/api/simulations/batch", h.simulateBatch)
	r.GET("/api/simulations", h.listSimulations)
	r.GET("/api/simulations/:id", h.getSimulation)
	r.GET("/api/simulations/:id/zones.geojson", h.getZonesGeoJSON)
	r.GET("/api/simulations/:id/evacuation", h.getEvacuation)
	r.GET("/api/stream", h.streamReports)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// simulate runs one scenario synchronously, persists the report, and
// publishes it to stream subscribers.
func (h *Handler) simulate(c *gin.Context) {
	var params physics.Parameters
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	started := time.Now()
	rep, err := h.builder.Build(params)
	if err != nil {
		h.rejectInvalid(c, err)
		return
	}

	if err := h.repo.Add(c.Request.Context(), rep); err != nil {
		h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist simulation"})
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Publish(rep)
	}

	h.metrics.SimulationsTotal.WithLabelValues("success").Inc()
	h.metrics.SimulationDuration.Observe(time.Since(started).Seconds())
	if rep.Effects.IsAirburst {
		h.metrics.AirburstsTotal.Inc()
	}

	c.JSON(http.StatusOK, rep)
}

type batchRequest struct {
	Scenarios []physics.Parameters `json:"scenarios"`
}

// simulateBatch validates every scenario up front, then hands them to
// the worker pool. Nothing is enqueued when any scenario is invalid.
func (h *Handler) simulateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	if len(req.Scenarios) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenarios must not be empty"})
		return
	}

	for i, params := range req.Scenarios {
		if err := params.Validate(); err != nil {
			var invalid *physics.InvalidParameterError
			if errors.As(err, &invalid) {
				h.metrics.SimulationsTotal.WithLabelValues("invalid").Inc()
				c.JSON(http.StatusBadRequest, gin.H{
					"error":    "invalid scenario",
					"scenario": i,
					"field":    invalid.Field,
					"reason":   invalid.Reason,
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "scenario": i})
			return
		}
	}

	accepted := 0
	for _, params := range req.Scenarios {
		if h.pool.TrySubmit(params) {
			accepted++
		}
	}
	h.metrics.BatchJobsSubmitted.Add(float64(accepted))

	status := http.StatusAccepted
	if accepted < len(req.Scenarios) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"accepted": accepted,
		"dropped":  len(req.Scenarios) - accepted,
	})
}

func (h *Handler) listSimulations(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20, // default page size when no limit param is supplied
	}

	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}
	if a := c.Query("airburst"); a != "" {
		if b, err := strconv.ParseBool(a); err == nil {
			filter.Airburst = &b
		}
	}
	if m := c.Query("min_energy_mt"); m != "" {
		if mt, err := strconv.ParseFloat(m, 64); err == nil {
			filter.MinEnergyMT = &mt
		}
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if tt := c.Query("target"); tt != "" {
		filter.TargetType = tt
	}

	summaries, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list simulations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulations": summaries, "count": len(summaries)})
}

func (h *Handler) getSimulation(c *gin.Context) {
	rep, ok := h.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *Handler) getZonesGeoJSON(c *gin.Context) {
	rep, ok := h.loadReport(c)
	if !ok {
		return
	}

	fc := toGeoJSON(rep)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getEvacuation(c *gin.Context) {
	rep, ok := h.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"simulation_id": rep.Metadata.ID,
		"safe_zones":    rep.SafeZones,
	})
}

func (h *Handler) loadReport(c *gin.Context) (*report.Report, bool) {
	rep, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch simulation"})
		return nil, false
	}
	return rep, true
}

// streamReports serves the SSE feed of completed simulations.
func (h *Handler) streamReports(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	h.metrics.StreamSubscribers.Inc()
	defer h.metrics.StreamSubscribers.Dec()

	c.Stream(func(w io.Writer) bool {
		select {
		case rep, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("report", rep)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// rejectInvalid converts a validation failure into the structured
// field-level rejection the API contract promises.
func (h *Handler) rejectInvalid(c *gin.Context, err error) {
	h.metrics.SimulationsTotal.WithLabelValues("invalid").Inc()

	var invalid *physics.InvalidParameterError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid parameter",
			"field":  invalid.Field,
			"reason": invalid.Reason,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
