package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autonex/aiops/internal/api/handlers"
	"github.com/autonex/aiops/internal/api/middleware"
	"github.com/autonex/aiops/internal/config"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/metrics"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Metric   *handlers.MetricHandler
	Anomaly  *handlers.AnomalyHandler
	Incident *handlers.IncidentHandler
	Action   *handlers.ActionHandler
	Demo     *handlers.DemoHandler
	Stats    *handlers.StatsHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Health checks
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Telemetry
	r.Route("/api/v1/metrics", func(r chi.Router) {
		r.Get("/latest", h.Metric.Latest)
		r.Get("/{service}/timeseries", h.Metric.Timeseries)
	})
	r.Get("/api/v1/services", h.Metric.Services)

	// Anomalies
	r.Route("/api/v1/anomalies", func(r chi.Router) {
		r.Get("/", h.Anomaly.List)
		r.Post("/detect", h.Anomaly.Detect)
	})

	// Incidents
	r.Route("/api/v1/incidents", func(r chi.Router) {
		r.Get("/", h.Incident.List)
		r.Post("/", h.Incident.Create)
		r.Get("/{id}", h.Incident.Get)
		r.Put("/{id}/status", h.Incident.UpdateStatus)
		r.Post("/{id}/analyze", h.Incident.Analyze)
		r.Post("/{id}/recommend", h.Incident.Recommend)
	})

	// Actions
	r.Route("/api/v1/actions", func(r chi.Router) {
		r.Get("/", h.Action.List)
		r.Get("/{id}", h.Action.Get)
		r.Post("/{id}/approve", h.Action.Approve)
		r.Post("/{id}/reject", h.Action.Reject)
	})

	// Demo controls
	r.Route("/api/v1/demo", func(r chi.Router) {
		r.Post("/inject-failure", h.Demo.InjectFailure)
		r.Post("/clear-failure", h.Demo.ClearFailure)
		r.Get("/status", h.Demo.Status)
	})

	// Dashboard
	r.Get("/api/v1/stats/dashboard", h.Stats.Dashboard)

	return r
}
