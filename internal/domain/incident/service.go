package incident

import "context"

// Service defines the interface for incident business logic. Transitions are
// a closed set of operations rather than open-ended field patches.
type Service interface {
	// Create opens a new incident; status is always forced to open
	Create(ctx context.Context, title, severity, service string, anomalyIDs []string) (*Incident, error)

	// Get retrieves an incident by id
	Get(ctx context.Context, id string) (*Incident, error)

	// List retrieves incidents matching the filter, newest first
	List(ctx context.Context, filter Filter, limit int) ([]*Incident, error)

	// UpdateStatus moves an incident to the given status. Moving to resolved
	// stamps resolved_at exactly once; later resolutions keep the first
	// timestamp.
	UpdateStatus(ctx context.Context, id, status string) (*Incident, error)
}
