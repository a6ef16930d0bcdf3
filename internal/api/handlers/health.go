package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
)

// FeedStatus reports the failure scenario state of the telemetry feed
type FeedStatus interface {
	FailureStatus() (active bool, service string)
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db     *sql.DB
	engine *detector.Engine
	feed   FeedStatus
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, engine *detector.Engine, feed FeedStatus, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		engine: engine,
		feed:   feed,
		logger: log,
	}
}

// Healthz handles the liveness probe. The payload carries the two externally
// observable state bits: whether the outlier model is fitted and whether the
// feed is running a failure scenario.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	mode := "normal"
	if active, _ := h.feed.FailureStatus(); active {
		mode = "active"
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"mode":          mode,
		"model_trained": h.engine.Trained(),
	})
}

// Readyz handles the readiness probe
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database connection failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "connected",
	})
}
