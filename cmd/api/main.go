package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/autonex/aiops/internal/ai"
	"github.com/autonex/aiops/internal/api/handlers"
	"github.com/autonex/aiops/internal/api/router"
	"github.com/autonex/aiops/internal/config"
	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/validator"
	"github.com/autonex/aiops/internal/repository/postgres"
	"github.com/autonex/aiops/internal/services"
	"github.com/autonex/aiops/internal/simulator"
	"github.com/autonex/aiops/internal/worker"
	"github.com/autonex/aiops/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	metricRepo := postgres.NewMetricRepository(db)
	anomalyRepo := postgres.NewAnomalyRepository(db)
	incidentRepo := postgres.NewIncidentRepository(db)
	actionRepo := postgres.NewActionRepository(db)

	// Core components
	engine := detector.NewEngine()
	sim := simulator.New(cfg.Monitor.Services)
	aiClient := ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
	val := validator.New()

	// Services
	metricSvc := services.NewMetricService(metricRepo, cfg.Monitor.Services, log)
	anomalySvc := services.NewAnomalyService(metricRepo, anomalyRepo, engine, cfg.Monitor.Services, log)
	incidentSvc := services.NewIncidentService(incidentRepo, log)
	actionSvc := services.NewActionService(actionRepo, log)
	analysisSvc := services.NewAnalysisService(incidentRepo, anomalyRepo, metricRepo, actionRepo, aiClient, log)

	// Background workers
	scheduler := worker.NewScheduler(log)
	feed := worker.NewFeedWorker(sim, metricRepo, log)
	trainer := worker.NewTrainerWorker(metricRepo, engine, cfg.Monitor.TrainWindow, cfg.Monitor.TrainMinimum, log)

	if err := scheduler.Add("telemetry-feed", cfg.Monitor.FeedInterval, feed); err != nil {
		log.Fatalf("Failed to schedule feed worker: %v", err)
	}
	if err := scheduler.Add("model-trainer", cfg.Monitor.TrainInterval, trainer); err != nil {
		log.Fatalf("Failed to schedule trainer worker: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP surface
	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(db, engine, sim, log),
		Metric:   handlers.NewMetricHandler(metricSvc, log),
		Anomaly:  handlers.NewAnomalyHandler(anomalySvc, log),
		Incident: handlers.NewIncidentHandler(incidentSvc, analysisSvc, log, val),
		Action:   handlers.NewActionHandler(actionSvc, log, val),
		Demo:     handlers.NewDemoHandler(sim, log, val),
		Stats:    handlers.NewStatsHandler(metricSvc, anomalyRepo, incidentRepo, actionRepo, engine, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "Server shutdown failed")
	}
}
