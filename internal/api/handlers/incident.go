package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autonex/aiops/internal/api/dto"
	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/utils"
	"github.com/autonex/aiops/internal/pkg/validator"
)

// Analyzer produces AI-backed analysis and recommendations for an incident
type Analyzer interface {
	Analyze(ctx context.Context, incidentID string) (string, error)
	Recommend(ctx context.Context, incidentID string) ([]incident.Proposal, error)
}

type IncidentHandler struct {
	service   incident.Service
	analyzer  Analyzer
	logger    *logger.Logger
	validator *validator.Validator
}

func NewIncidentHandler(service incident.Service, analyzer Analyzer, log *logger.Logger, val *validator.Validator) *IncidentHandler {
	return &IncidentHandler{service: service, analyzer: analyzer, logger: log, validator: val}
}

// Create opens a new incident
func (h *IncidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	inc, err := h.service.Create(r.Context(), req.Title, req.Severity, req.Service, req.AnomalyIDs)
	if err != nil {
		writeServiceError(w, err, "Failed to create incident")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, inc)
}

// List returns incidents, optionally filtered by status
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := incident.Filter{Status: r.URL.Query().Get("status")}

	incidents, err := h.service.List(r.Context(), filter, limitParam(r))
	if err != nil {
		writeServiceError(w, err, "Failed to list incidents")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, incidents)
}

// Get returns a single incident by ID
func (h *IncidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	inc, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get incident")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, inc)
}

// UpdateStatus moves an incident through its lifecycle
func (h *IncidentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateIncidentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	inc, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, err, "Failed to update incident status")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, inc)
}

// Analyze generates a root-cause analysis for an incident
func (h *IncidentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	analysis, err := h.analyzer.Analyze(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to analyze incident")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"incident_id": id,
		"analysis":    analysis,
	})
}

// Recommend generates remediation proposals for an incident and creates a
// pending action for each one
func (h *IncidentHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	proposals, err := h.analyzer.Recommend(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to generate recommendations")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"incident_id":     id,
		"recommendations": proposals,
	})
}
