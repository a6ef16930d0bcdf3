package handlers

import (
	"net/http"

	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
)

type AnomalyHandler struct {
	service anomaly.Service
	logger  *logger.Logger
}

func NewAnomalyHandler(service anomaly.Service, log *logger.Logger) *AnomalyHandler {
	return &AnomalyHandler{service: service, logger: log}
}

// List returns recent anomalies, newest first
func (h *AnomalyHandler) List(w http.ResponseWriter, r *http.Request) {
	since := minutesParam(r, 60)

	anomalies, err := h.service.List(r.Context(), since, limitParam(r))
	if err != nil {
		writeServiceError(w, err, "Failed to list anomalies")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, anomalies)
}

// Detect runs a detection pass over the latest sample of every service and
// returns any anomalies found
func (h *AnomalyHandler) Detect(w http.ResponseWriter, r *http.Request) {
	detected, err := h.service.DetectLatest(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to run detection")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, detected)
}
