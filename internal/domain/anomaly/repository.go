package anomaly

import (
	"context"
	"time"
)

// Repository defines the interface for anomaly data access
type Repository interface {
	// Create inserts a new anomaly record
	Create(ctx context.Context, a *Anomaly) error

	// ListSince retrieves anomalies after the given time, newest first
	ListSince(ctx context.Context, since time.Time, limit int) ([]*Anomaly, error)

	// GetByIDs retrieves anomalies by their ids
	GetByIDs(ctx context.Context, ids []string) ([]*Anomaly, error)

	// CountSince counts anomalies after the given time
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
