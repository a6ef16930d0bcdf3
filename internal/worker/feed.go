package worker

import (
	"context"

	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/metrics"
)

// Source produces telemetry samples for a fixed set of services. The
// simulator implements it; a real collector would too.
type Source interface {
	Services() []string
	Sample(service string) *metric.SystemMetric
}

// FeedWorker pulls one sample per service from the source each cycle and
// persists it
type FeedWorker struct {
	source Source
	repo   metric.Repository
	logger *logger.Logger
}

// NewFeedWorker creates a new feed worker
func NewFeedWorker(source Source, repo metric.Repository, log *logger.Logger) *FeedWorker {
	return &FeedWorker{
		source: source,
		repo:   repo,
		logger: log,
	}
}

// RunOnce executes a single feed cycle. A persistence failure for one
// service does not stop the cycle for the remaining services.
func (w *FeedWorker) RunOnce(ctx context.Context) error {
	var lastErr error
	for _, svc := range w.source.Services() {
		m := w.source.Sample(svc)
		if err := w.repo.Create(ctx, m); err != nil {
			metrics.RecordFeedError()
			w.logger.ErrorWithErr(err, "Failed to persist metric sample")
			lastErr = err
			continue
		}
		metrics.RecordFeedSample(svc)
	}
	return lastErr
}
