package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
)

// IncidentService implements incident.Service
type IncidentService struct {
	repo   incident.Repository
	logger *logger.Logger
}

// NewIncidentService creates a new incident service
func NewIncidentService(repo incident.Repository, log *logger.Logger) incident.Service {
	return &IncidentService{
		repo:   repo,
		logger: log,
	}
}

// Create opens a new incident. Status is always open regardless of caller
// input; anomaly references are captured at creation time.
func (s *IncidentService) Create(ctx context.Context, title, severity, service string, anomalyIDs []string) (*incident.Incident, error) {
	if anomalyIDs == nil {
		anomalyIDs = []string{}
	}

	inc := &incident.Incident{
		ID:         uuid.New().String(),
		Title:      title,
		Status:     incident.StatusOpen,
		Severity:   severity,
		Service:    service,
		AnomalyIDs: anomalyIDs,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create incident")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"incident_id": inc.ID,
		"service":     service,
		"severity":    severity,
		"anomalies":   len(anomalyIDs),
	}).Info("Incident created")

	return inc, nil
}

// Get retrieves an incident by id
func (s *IncidentService) Get(ctx context.Context, id string) (*incident.Incident, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves incidents matching the filter
func (s *IncidentService) List(ctx context.Context, filter incident.Filter, limit int) ([]*incident.Incident, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return s.repo.List(ctx, filter, limit)
}

// UpdateStatus moves an incident to the given status. The first transition
// to resolved stamps resolved_at; re-resolving keeps the original timestamp.
func (s *IncidentService) UpdateStatus(ctx context.Context, id, status string) (*incident.Incident, error) {
	if !incident.ValidStatus(status) {
		return nil, errors.BadRequest("invalid incident status: " + status)
	}

	var resolvedAt *time.Time
	if status == incident.StatusResolved {
		now := time.Now().UTC()
		resolvedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, status, resolvedAt); err != nil {
		return nil, err
	}

	inc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"incident_id": id,
		"status":      status,
	}).Info("Incident status updated")

	return inc, nil
}
