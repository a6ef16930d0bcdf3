package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
)

type MetricHandler struct {
	service metric.Service
	logger  *logger.Logger
}

func NewMetricHandler(service metric.Service, log *logger.Logger) *MetricHandler {
	return &MetricHandler{service: service, logger: log}
}

// Latest returns the most recent sample for every monitored service
func (h *MetricHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.service.LatestAll(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to get latest metrics")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, latest)
}

// Timeseries returns recent samples for one service, oldest first
func (h *MetricHandler) Timeseries(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	since := minutesParam(r, 30)

	samples, err := h.service.Timeseries(r.Context(), service, since)
	if err != nil {
		writeServiceError(w, err, "Failed to get timeseries")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, samples)
}

// Services returns the monitored service set
func (h *MetricHandler) Services(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.service.Services())
}
