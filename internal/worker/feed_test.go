package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// stubSource emits a fixed healthy sample per service
type stubSource struct {
	services []string
}

func (s *stubSource) Services() []string {
	return s.services
}

func (s *stubSource) Sample(service string) *metric.SystemMetric {
	return &metric.SystemMetric{
		Timestamp: time.Now().UTC(),
		Service:   service,
		CPU:       35, Memory: 45, Latency: 100, ErrorRate: 1, RequestsPerSec: 300,
	}
}

func TestFeedWorkerRunOnce(t *testing.T) {
	source := &stubSource{services: []string{"api-gateway", "auth-service", "database"}}
	repo := testutil.NewMockMetricRepository()
	w := NewFeedWorker(source, repo, testLogger())

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	if len(repo.Metrics) != 3 {
		t.Fatalf("persisted %d samples, want 3", len(repo.Metrics))
	}
	for i, svc := range source.services {
		if repo.Metrics[i].Service != svc {
			t.Errorf("sample %d service = %q, want %q", i, repo.Metrics[i].Service, svc)
		}
	}
}

func TestFeedWorkerRunOncePersistError(t *testing.T) {
	source := &stubSource{services: []string{"api-gateway"}}
	repo := testutil.NewMockMetricRepository()
	repo.CreateError = errors.New("disk full")
	w := NewFeedWorker(source, repo, testLogger())

	if err := w.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce() should surface the persistence error")
	}
}
