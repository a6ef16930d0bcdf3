package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/testutil"
)

func trainedEngine(t *testing.T) *detector.Engine {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}

	samples := make([][]float64, 120)
	for i := range samples {
		samples[i] = []float64{
			uniform(20, 50),
			uniform(30, 60),
			uniform(50, 150),
			uniform(0, 2),
			uniform(100, 500),
		}
	}

	e := detector.NewEngineWithSeed(42)
	if err := e.Train(samples); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return e
}

func TestAnomalyServiceDetectLatestUntrained(t *testing.T) {
	metricRepo := testutil.NewMockMetricRepository()
	if err := metricRepo.Create(context.Background(), &metric.SystemMetric{
		Timestamp: time.Now().UTC(),
		Service:   "database",
		CPU:       95, Memory: 95, Latency: 950, ErrorRate: 45, RequestsPerSec: 60,
	}); err != nil {
		t.Fatal(err)
	}
	anomalyRepo := testutil.NewMockAnomalyRepository()

	svc := NewAnomalyService(metricRepo, anomalyRepo, detector.NewEngineWithSeed(1), []string{"database"}, testLogger())

	detected, err := svc.DetectLatest(context.Background())
	if err != nil {
		t.Fatalf("DetectLatest() error = %v", err)
	}
	if len(detected) != 0 {
		t.Errorf("untrained engine detected %d anomalies, want 0", len(detected))
	}
	if len(anomalyRepo.Anomalies) != 0 {
		t.Error("untrained engine must not persist anomalies")
	}
}

func TestAnomalyServiceDetectLatest(t *testing.T) {
	metricRepo := testutil.NewMockMetricRepository()
	now := time.Now().UTC()

	// Healthy sample for one service, a failure-grade sample for another.
	// A third service has no sample at all.
	if err := metricRepo.Create(context.Background(), &metric.SystemMetric{
		Timestamp: now,
		Service:   "api-gateway",
		CPU:       35, Memory: 45, Latency: 100, ErrorRate: 1, RequestsPerSec: 300,
	}); err != nil {
		t.Fatal(err)
	}
	if err := metricRepo.Create(context.Background(), &metric.SystemMetric{
		Timestamp: now,
		Service:   "database",
		CPU:       95, Memory: 95, Latency: 950, ErrorRate: 45, RequestsPerSec: 60,
	}); err != nil {
		t.Fatal(err)
	}

	anomalyRepo := testutil.NewMockAnomalyRepository()
	svc := NewAnomalyService(metricRepo, anomalyRepo, trainedEngine(t), []string{"api-gateway", "database", "cache"}, testLogger())

	detected, err := svc.DetectLatest(context.Background())
	if err != nil {
		t.Fatalf("DetectLatest() error = %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("detected %d anomalies, want 1", len(detected))
	}

	a := detected[0]
	if a.Service != "database" {
		t.Errorf("Service = %q, want database", a.Service)
	}
	if a.Confidence <= 0.5 {
		t.Errorf("Confidence = %v, want > 0.5", a.Confidence)
	}
	found := false
	for _, name := range metric.FeatureNames {
		if a.MetricType == name {
			found = true
		}
	}
	if !found {
		t.Errorf("MetricType = %q, want one of %v", a.MetricType, metric.FeatureNames)
	}
	if a.Severity == "" || a.ID == "" || a.Description == "" {
		t.Errorf("anomaly incomplete: %+v", a)
	}
	if len(anomalyRepo.Anomalies) != 1 {
		t.Errorf("persisted %d anomalies, want 1", len(anomalyRepo.Anomalies))
	}
}

func TestAnomalyServiceList(t *testing.T) {
	metricRepo := testutil.NewMockMetricRepository()
	anomalyRepo := testutil.NewMockAnomalyRepository()
	svc := NewAnomalyService(metricRepo, anomalyRepo, detector.NewEngineWithSeed(1), nil, testLogger())

	anomalies, err := svc.List(context.Background(), time.Now().Add(-time.Hour), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(anomalies) != 0 {
		t.Errorf("got %d anomalies, want 0", len(anomalies))
	}
}
