package incident

import (
	"context"
	"time"
)

// Repository defines the interface for incident data access
type Repository interface {
	// Create inserts a new incident
	Create(ctx context.Context, inc *Incident) error

	// GetByID retrieves an incident by id
	GetByID(ctx context.Context, id string) (*Incident, error)

	// List retrieves incidents matching the filter, newest first
	List(ctx context.Context, filter Filter, limit int) ([]*Incident, error)

	// UpdateStatus sets the incident status. resolvedAt is written only when
	// non-nil; an already-set resolved_at is never overwritten.
	UpdateStatus(ctx context.Context, id, status string, resolvedAt *time.Time) error

	// SetAnalysis attaches a root-cause analysis text
	SetAnalysis(ctx context.Context, id, explanation string) error

	// SetRecommendations attaches the generated proposal list
	SetRecommendations(ctx context.Context, id string, proposals []Proposal) error

	// CountByStatus counts incidents with the given status; an empty status
	// counts all incidents
	CountByStatus(ctx context.Context, status string) (int64, error)
}
