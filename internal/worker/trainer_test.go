package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/testutil"
)

func seedMetrics(t *testing.T, repo *testutil.MockMetricRepository, n int) {
	t.Helper()
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		if err := repo.Create(context.Background(), &metric.SystemMetric{
			Timestamp:      now,
			Service:        "api-gateway",
			CPU:            20 + float64(i%30),
			Memory:         30 + float64(i%30),
			Latency:        50 + float64(i%100),
			ErrorRate:      float64(i%3) * 0.5,
			RequestsPerSec: 100 + float64(i%400),
		}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTrainerWorkerSkipsBelowMinimum(t *testing.T) {
	repo := testutil.NewMockMetricRepository()
	seedMetrics(t, repo, 10)
	engine := detector.NewEngineWithSeed(1)
	w := NewTrainerWorker(repo, engine, 200, 50, testLogger())

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v, want silent skip", err)
	}
	if engine.Trained() {
		t.Error("engine must stay untrained after a skipped cycle")
	}
}

func TestTrainerWorkerTrains(t *testing.T) {
	repo := testutil.NewMockMetricRepository()
	seedMetrics(t, repo, 80)
	engine := detector.NewEngineWithSeed(1)
	w := NewTrainerWorker(repo, engine, 200, 50, testLogger())

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if !engine.Trained() {
		t.Error("engine should be trained after a full cycle")
	}
	if got := len(engine.Baseline()); got != metric.FeatureCount {
		t.Errorf("baseline has %d dimensions, want %d", got, metric.FeatureCount)
	}
}

func TestTrainerWorkerListError(t *testing.T) {
	repo := testutil.NewMockMetricRepository()
	repo.ListError = errors.New("db gone")
	engine := detector.NewEngineWithSeed(1)
	w := NewTrainerWorker(repo, engine, 200, 50, testLogger())

	if err := w.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce() should surface the repository error")
	}
	if engine.Trained() {
		t.Error("engine must stay untrained after a failed cycle")
	}
}
