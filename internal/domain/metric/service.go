package metric

import (
	"context"
	"time"
)

// Service defines the interface for metric read paths
type Service interface {
	// LatestAll retrieves the most recent sample for every monitored service
	LatestAll(ctx context.Context) ([]*SystemMetric, error)

	// Timeseries retrieves samples for a service after the given time,
	// oldest first
	Timeseries(ctx context.Context, service string, since time.Time) ([]*SystemMetric, error)

	// Services returns the monitored service set
	Services() []string
}
