package action

import "context"

// Service defines the interface for action business logic
type Service interface {
	// Get retrieves an action by id
	Get(ctx context.Context, id string) (*Action, error)

	// List retrieves actions matching the filter, newest first
	List(ctx context.Context, filter Filter, limit int) ([]*Action, error)

	// Approve marks a pending action approved, stamping approved_by and
	// executed_at. Deciding a non-pending action is a conflict.
	Approve(ctx context.Context, id, approvedBy string) (*Action, error)

	// Reject marks a pending action rejected. Deciding a non-pending action
	// is a conflict.
	Reject(ctx context.Context, id string) (*Action, error)
}
