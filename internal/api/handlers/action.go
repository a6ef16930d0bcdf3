package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autonex/aiops/internal/api/dto"
	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
	"github.com/autonex/aiops/internal/pkg/validator"
)

type ActionHandler struct {
	service   action.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewActionHandler(service action.Service, log *logger.Logger, val *validator.Validator) *ActionHandler {
	return &ActionHandler{service: service, logger: log, validator: val}
}

// List returns actions, optionally filtered by incident and status
func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := action.Filter{
		IncidentID: r.URL.Query().Get("incident_id"),
		Status:     r.URL.Query().Get("status"),
	}

	actions, err := h.service.List(r.Context(), filter, limitParam(r))
	if err != nil {
		writeServiceError(w, err, "Failed to list actions")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, actions)
}

// Get returns a single action by ID
func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get action")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}

// Approve records an approval decision on a pending action
func (h *ActionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	a, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"), req.ApprovedBy)
	if err != nil {
		writeServiceError(w, err, "Failed to approve action")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}

// Reject records a rejection decision on a pending action
func (h *ActionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to reject action")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}
