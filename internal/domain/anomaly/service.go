package anomaly

import (
	"context"
	"time"
)

// Service defines the interface for anomaly business logic
type Service interface {
	// DetectLatest runs a detection pass over the latest metric of every
	// monitored service and persists any anomalies found
	DetectLatest(ctx context.Context) ([]*Anomaly, error)

	// List retrieves recent anomalies
	List(ctx context.Context, since time.Time, limit int) ([]*Anomaly, error)
}
