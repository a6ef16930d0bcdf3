package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/autonex/aiops/internal/api/dto"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
	"github.com/autonex/aiops/internal/pkg/validator"
	"github.com/autonex/aiops/internal/simulator"
)

// DemoHandler controls the failure scenario of the telemetry simulator
type DemoHandler struct {
	sim       *simulator.Simulator
	logger    *logger.Logger
	validator *validator.Validator
}

func NewDemoHandler(sim *simulator.Simulator, log *logger.Logger, val *validator.Validator) *DemoHandler {
	return &DemoHandler{sim: sim, logger: log, validator: val}
}

// InjectFailure starts a failure scenario for one service
func (h *DemoHandler) InjectFailure(w http.ResponseWriter, r *http.Request) {
	var req dto.InjectFailureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	if !h.sim.InjectFailure(req.Service) {
		utils.WriteError(w, errors.BadRequest("Unknown service: "+req.Service))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"service": req.Service,
	}).Info("Failure injected")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Failure injected", map[string]string{
		"service": req.Service,
	})
}

// ClearFailure ends any active failure scenario
func (h *DemoHandler) ClearFailure(w http.ResponseWriter, r *http.Request) {
	h.sim.ClearFailure()
	h.logger.Info("Failure cleared")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Failure cleared", nil)
}

// Status reports whether a failure scenario is active
func (h *DemoHandler) Status(w http.ResponseWriter, r *http.Request) {
	active, service := h.sim.FailureStatus()

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"failure_active": active,
		"service":        service,
	})
}
