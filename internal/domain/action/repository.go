package action

import "context"

// Repository defines the interface for action data access
type Repository interface {
	// Create inserts a new action
	Create(ctx context.Context, a *Action) error

	// GetByID retrieves an action by id
	GetByID(ctx context.Context, id string) (*Action, error)

	// List retrieves actions matching the filter, newest first
	List(ctx context.Context, filter Filter, limit int) ([]*Action, error)

	// UpdateDecision records the approval or rejection decision
	UpdateDecision(ctx context.Context, a *Action) error

	// CountByStatus counts actions with the given status
	CountByStatus(ctx context.Context, status string) (int64, error)
}
