package services

import (
	"context"
	"time"

	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
)

// ActionService implements action.Service
type ActionService struct {
	repo   action.Repository
	logger *logger.Logger
}

// NewActionService creates a new action service
func NewActionService(repo action.Repository, log *logger.Logger) action.Service {
	return &ActionService{
		repo:   repo,
		logger: log,
	}
}

// Get retrieves an action by id
func (s *ActionService) Get(ctx context.Context, id string) (*action.Action, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves actions matching the filter
func (s *ActionService) List(ctx context.Context, filter action.Filter, limit int) ([]*action.Action, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, filter, limit)
}

// Approve records an approval decision. executed_at marks only that the
// decision was recorded; carrying out the remediation belongs to an external
// executor.
func (s *ActionService) Approve(ctx context.Context, id, approvedBy string) (*action.Action, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != action.StatusPending {
		return nil, errors.Conflict("action already " + a.Status)
	}

	now := time.Now().UTC()
	a.Status = action.StatusApproved
	a.ApprovedBy = approvedBy
	a.ExecutedAt = &now

	if err := s.repo.UpdateDecision(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to approve action")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"action_id":   id,
		"incident_id": a.IncidentID,
		"approved_by": approvedBy,
	}).Info("Action approved")

	return a, nil
}

// Reject records a rejection decision
func (s *ActionService) Reject(ctx context.Context, id string) (*action.Action, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != action.StatusPending {
		return nil, errors.Conflict("action already " + a.Status)
	}

	a.Status = action.StatusRejected

	if err := s.repo.UpdateDecision(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to reject action")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"action_id":   id,
		"incident_id": a.IncidentID,
	}).Info("Action rejected")

	return a, nil
}
