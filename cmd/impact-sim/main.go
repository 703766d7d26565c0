package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/astroshield/go-impact-sim/internal/api"
	"github.com/astroshield/go-impact-sim/internal/config"
	"github.com/astroshield/go-impact-sim/internal/logging"
	"github.com/astroshield/go-impact-sim/internal/observability"
	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/population"
	"github.com/astroshield/go-impact-sim/internal/report"
	"github.com/astroshield/go-impact-sim/internal/repository"
	"github.com/astroshield/go-impact-sim/internal/stream"
	"github.com/astroshield/go-impact-sim/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	broadcaster := stream.NewBroadcaster()

	calc := physics.NewCalculator(physics.AirburstPolicy{
		DiameterBelowM:   cfg.Engine.AirburstMaxDiameterM,
		VelocityAboveKMS: cfg.Engine.AirburstMaxVelocityKMS,
	})
	estimator := population.NewEstimator(cfg.Engine.PopulationDensityPerKM2)
	builder := report.NewBuilder(calc, estimator, clockwork.NewRealClock())

	// Batch scenarios go through the pool; each job is a full
	// build-persist-publish cycle.
	processor := func(ctx context.Context, params physics.Parameters) error {
		rep, err := builder.Build(params)
		if err != nil {
			slog.Error("batch scenario rejected", "error", err)
			metrics.SimulationsTotal.WithLabelValues("invalid").Inc()
			return err
		}
		if err := db.Add(ctx, rep); err != nil {
			slog.Error("error persisting batch simulation", "id", rep.Metadata.ID, "error", err)
			metrics.SimulationsTotal.WithLabelValues("error").Inc()
			return err
		}
		broadcaster.Publish(rep)
		metrics.SimulationsTotal.WithLabelValues("success").Inc()
		if rep.Effects.IsAirburst {
			metrics.AirburstsTotal.Inc()
		}
		slog.Info("batch simulation complete",
			"id", rep.Metadata.ID,
			"energy_mt", rep.Effects.EnergyMegatonsTNT,
			"airburst", rep.Effects.IsAirburst)
		return nil
	}

	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.BufferSize, processor)
	pool.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(builder, db, pool, broadcaster, metrics)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	pool.Stop()
	broadcaster.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
