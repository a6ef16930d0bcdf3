package handlers

import (
	"net/http"
	"time"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
)

// ServiceHealth summarizes one service for the dashboard
type ServiceHealth struct {
	Name    string               `json:"name"`
	Status  string               `json:"status"`
	Metrics *metric.SystemMetric `json:"metrics,omitempty"`
}

// StatsHandler aggregates counters and per-service health for the dashboard
type StatsHandler struct {
	metricSvc    metric.Service
	anomalyRepo  anomaly.Repository
	incidentRepo incident.Repository
	actionRepo   action.Repository
	engine       *detector.Engine
	logger       *logger.Logger
}

func NewStatsHandler(
	metricSvc metric.Service,
	anomalyRepo anomaly.Repository,
	incidentRepo incident.Repository,
	actionRepo action.Repository,
	engine *detector.Engine,
	log *logger.Logger,
) *StatsHandler {
	return &StatsHandler{
		metricSvc:    metricSvc,
		anomalyRepo:  anomalyRepo,
		incidentRepo: incidentRepo,
		actionRepo:   actionRepo,
		engine:       engine,
		logger:       log,
	}
}

// Dashboard returns the aggregate counters and per-service health view
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	latest, err := h.metricSvc.LatestAll(ctx)
	if err != nil {
		writeServiceError(w, err, "Failed to get service metrics")
		return
	}

	byService := make(map[string]*metric.SystemMetric, len(latest))
	for _, m := range latest {
		byService[m.Service] = m
	}

	services := make([]ServiceHealth, 0, len(h.metricSvc.Services()))
	for _, name := range h.metricSvc.Services() {
		services = append(services, ServiceHealth{
			Name:    name,
			Status:  healthStatus(byService[name]),
			Metrics: byService[name],
		})
	}

	anomalies24h, err := h.anomalyRepo.CountSince(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		writeServiceError(w, err, "Failed to count anomalies")
		return
	}

	openIncidents, err := h.incidentRepo.CountByStatus(ctx, incident.StatusOpen)
	if err != nil {
		writeServiceError(w, err, "Failed to count incidents")
		return
	}

	totalIncidents, err := h.incidentRepo.CountByStatus(ctx, "")
	if err != nil {
		writeServiceError(w, err, "Failed to count incidents")
		return
	}

	pendingActions, err := h.actionRepo.CountByStatus(ctx, action.StatusPending)
	if err != nil {
		writeServiceError(w, err, "Failed to count actions")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"services":        services,
		"anomalies_24h":   anomalies24h,
		"open_incidents":  openIncidents,
		"total_incidents": totalIncidents,
		"pending_actions": pendingActions,
		"model_trained":   h.engine.Trained(),
	})
}

// healthStatus classifies a service from its latest sample
func healthStatus(m *metric.SystemMetric) string {
	if m == nil {
		return "unknown"
	}
	switch {
	case m.CPU > 80 || m.Memory > 80 || m.ErrorRate > 10:
		return "critical"
	case m.CPU > 60 || m.Memory > 60 || m.ErrorRate > 5:
		return "warning"
	default:
		return "healthy"
	}
}
