package metric

import (
	"context"
	"time"
)

// Repository defines the interface for metric data access
type Repository interface {
	// Create inserts a new metric sample
	Create(ctx context.Context, m *SystemMetric) error

	// LatestForService retrieves the most recent sample for a service
	LatestForService(ctx context.Context, service string) (*SystemMetric, error)

	// ListByServiceSince retrieves samples for a service after the given
	// time, oldest first
	ListByServiceSince(ctx context.Context, service string, since time.Time, limit int) ([]*SystemMetric, error)

	// ListRecent retrieves the most recent samples across all services,
	// newest first
	ListRecent(ctx context.Context, limit int) ([]*SystemMetric, error)

	// ListRecentForService retrieves the most recent samples for a service,
	// newest first
	ListRecentForService(ctx context.Context, service string, limit int) ([]*SystemMetric, error)
}
