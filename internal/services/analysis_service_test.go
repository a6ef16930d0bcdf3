package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/testutil"
)

type analysisFixture struct {
	incidents *testutil.MockIncidentRepository
	anomalies *testutil.MockAnomalyRepository
	metrics   *testutil.MockMetricRepository
	actions   *testutil.MockActionRepository
	client    *testutil.StubAIClient
	svc       *AnalysisService
}

func newAnalysisFixture(client *testutil.StubAIClient) *analysisFixture {
	f := &analysisFixture{
		incidents: testutil.NewMockIncidentRepository(),
		anomalies: testutil.NewMockAnomalyRepository(),
		metrics:   testutil.NewMockMetricRepository(),
		actions:   testutil.NewMockActionRepository(),
		client:    client,
	}
	f.svc = NewAnalysisService(f.incidents, f.anomalies, f.metrics, f.actions, f.client, testLogger())
	return f
}

func (f *analysisFixture) seedIncident(t *testing.T, anomalyIDs []string) *incident.Incident {
	t.Helper()
	inc := &incident.Incident{
		ID:         "inc-1",
		Title:      "High CPU on database",
		Status:     incident.StatusOpen,
		Severity:   "critical",
		Service:    "database",
		AnomalyIDs: anomalyIDs,
		CreatedAt:  time.Now().UTC(),
	}
	if err := f.incidents.Create(context.Background(), inc); err != nil {
		t.Fatal(err)
	}
	return inc
}

func TestAnalysisServiceAnalyze(t *testing.T) {
	f := newAnalysisFixture(&testutil.StubAIClient{Response: "The database is CPU saturated."})
	f.seedIncident(t, []string{"anom-1"})

	if err := f.anomalies.Create(context.Background(), &anomaly.Anomaly{
		ID:          "anom-1",
		Timestamp:   time.Now().UTC(),
		Service:     "database",
		MetricType:  "cpu",
		Severity:    anomaly.SeverityCritical,
		Confidence:  0.91,
		Description: "Anomalous cpu detected",
		Value:       93.5,
		Baseline:    34.2,
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.metrics.Create(context.Background(), &metric.SystemMetric{
		Timestamp: time.Now().UTC(),
		Service:   "database",
		CPU:       93.5, Memory: 88.1, Latency: 820, ErrorRate: 31.2, RequestsPerSec: 72,
	}); err != nil {
		t.Fatal(err)
	}

	analysis, err := f.svc.Analyze(context.Background(), "inc-1")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis != "The database is CPU saturated." {
		t.Errorf("analysis = %q", analysis)
	}
	if f.incidents.Incidents["inc-1"].AIExplanation != analysis {
		t.Error("analysis was not stored on the incident")
	}

	if len(f.client.Sessions) != 1 || f.client.Sessions[0] != "incident-inc-1" {
		t.Errorf("sessions = %v, want [incident-inc-1]", f.client.Sessions)
	}
	prompt := f.client.Prompts[0]
	for _, want := range []string{"High CPU on database", "Anomalous cpu detected", "Root cause analysis"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalysisServiceAnalyzeProviderError(t *testing.T) {
	f := newAnalysisFixture(&testutil.StubAIClient{Err: stderrors.New("connection refused")})
	f.seedIncident(t, nil)

	_, err := f.svc.Analyze(context.Background(), "inc-1")
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeAIProvider {
		t.Errorf("Analyze() error = %v, want AI provider error", err)
	}
	if f.incidents.Incidents["inc-1"].AIExplanation != "" {
		t.Error("failed analysis must not be stored")
	}
}

func TestAnalysisServiceRecommend(t *testing.T) {
	response := `Recommended actions:
[{"action":"Scale Resources","description":"Add capacity","risk_level":"low","impact":"More headroom"},
 {"action":"Restart Service","description":"Rolling restart","risk_level":"medium","impact":"Fresh state"}]`
	f := newAnalysisFixture(&testutil.StubAIClient{Response: response})
	f.seedIncident(t, nil)

	proposals, err := f.svc.Recommend(context.Background(), "inc-1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(proposals) != 2 {
		t.Fatalf("got %d proposals, want 2", len(proposals))
	}
	if f.client.Sessions[0] != "recommend-inc-1" {
		t.Errorf("session = %q, want recommend-inc-1", f.client.Sessions[0])
	}
	if len(f.incidents.Incidents["inc-1"].Recommendations) != 2 {
		t.Error("recommendations were not stored on the incident")
	}

	if len(f.actions.Order) != 2 {
		t.Fatalf("got %d actions, want 2", len(f.actions.Order))
	}
	first := f.actions.Actions[f.actions.Order[0]]
	if first.Action != "Scale Resources" || first.Status != action.StatusPending {
		t.Errorf("first action = %q/%q, want Scale Resources/pending", first.Action, first.Status)
	}
	if first.IncidentID != "inc-1" {
		t.Errorf("IncidentID = %q", first.IncidentID)
	}
}

func TestAnalysisServiceRecommendActionOrder(t *testing.T) {
	response := `[{"action":"First","description":"a","risk_level":"low","impact":"x"},
{"action":"Second","description":"b","risk_level":"low","impact":"y"},
{"action":"Third","description":"c","risk_level":"low","impact":"z"}]`
	f := newAnalysisFixture(&testutil.StubAIClient{Response: response})
	f.seedIncident(t, nil)

	if _, err := f.svc.Recommend(context.Background(), "inc-1"); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Batch members share a CreatedAt; listing must still read back in
	// proposal order.
	listed, err := f.actions.List(context.Background(), action.Filter{IncidentID: "inc-1"}, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"First", "Second", "Third"}
	if len(listed) != len(want) {
		t.Fatalf("got %d actions, want %d", len(listed), len(want))
	}
	for i, a := range listed {
		if a.Action != want[i] {
			t.Errorf("action %d = %q, want %q", i, a.Action, want[i])
		}
		if a.Ordinal != i {
			t.Errorf("action %d ordinal = %d, want %d", i, a.Ordinal, i)
		}
	}
}

func TestAnalysisServiceRecommendFallback(t *testing.T) {
	f := newAnalysisFixture(&testutil.StubAIClient{Response: "I am unable to produce structured output."})
	f.seedIncident(t, nil)

	proposals, err := f.svc.Recommend(context.Background(), "inc-1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(proposals) != 3 {
		t.Fatalf("got %d fallback proposals, want 3", len(proposals))
	}
	if len(f.actions.Order) != 3 {
		t.Errorf("got %d actions, want 3", len(f.actions.Order))
	}
}

func TestAnalysisServiceRecommendIncidentNotFound(t *testing.T) {
	f := newAnalysisFixture(&testutil.StubAIClient{Response: "[]"})

	_, err := f.svc.Recommend(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Errorf("Recommend() error = %v, want not found", err)
	}
	if len(f.client.Sessions) != 0 {
		t.Error("missing incident must not reach the narrative generator")
	}
}
