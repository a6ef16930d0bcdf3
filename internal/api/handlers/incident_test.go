package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/validator"
	"github.com/autonex/aiops/internal/services"
	"github.com/autonex/aiops/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// stubAnalyzer is a canned-response Analyzer
type stubAnalyzer struct {
	analysis  string
	proposals []incident.Proposal
	err       error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, incidentID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.analysis, nil
}

func (s *stubAnalyzer) Recommend(ctx context.Context, incidentID string) ([]incident.Proposal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.proposals, nil
}

func incidentRouter(repo *testutil.MockIncidentRepository, analyzer Analyzer) chi.Router {
	h := NewIncidentHandler(services.NewIncidentService(repo, testLogger()), analyzer, testLogger(), validator.New())

	r := chi.NewRouter()
	r.Post("/incidents", h.Create)
	r.Get("/incidents", h.List)
	r.Get("/incidents/{id}", h.Get)
	r.Put("/incidents/{id}/status", h.UpdateStatus)
	r.Post("/incidents/{id}/analyze", h.Analyze)
	r.Post("/incidents/{id}/recommend", h.Recommend)
	return r
}

func TestIncidentHandlerCreate(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	router := incidentRouter(repo, &stubAnalyzer{})

	body := `{"title":"High CPU on database","severity":"critical","service":"database"}`
	req := httptest.NewRequest(http.MethodPost, "/incidents", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    incident.Incident `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Data.Status != incident.StatusOpen {
		t.Errorf("Status = %q, want %q", resp.Data.Status, incident.StatusOpen)
	}
	if len(repo.Incidents) != 1 {
		t.Errorf("persisted %d incidents, want 1", len(repo.Incidents))
	}
}

func TestIncidentHandlerCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"severity":"high","service":"database"}`},
		{"bad severity", `{"title":"x","severity":"catastrophic","service":"database"}`},
		{"missing service", `{"title":"x","severity":"high"}`},
		{"malformed json", `{`},
	}

	router := incidentRouter(testutil.NewMockIncidentRepository(), &stubAnalyzer{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/incidents", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestIncidentHandlerGetNotFound(t *testing.T) {
	router := incidentRouter(testutil.NewMockIncidentRepository(), &stubAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/incidents/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestIncidentHandlerUpdateStatus(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	router := incidentRouter(repo, &stubAnalyzer{})

	seedIncident(t, repo, "inc-1")

	body := `{"status":"resolved"}`
	req := httptest.NewRequest(http.MethodPut, "/incidents/inc-1/status", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if repo.Incidents["inc-1"].Status != incident.StatusResolved {
		t.Errorf("incident status = %q, want resolved", repo.Incidents["inc-1"].Status)
	}
	if repo.Incidents["inc-1"].ResolvedAt == nil {
		t.Error("resolve should stamp ResolvedAt")
	}
}

func TestIncidentHandlerUpdateStatusRejectsUnknown(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	router := incidentRouter(repo, &stubAnalyzer{})

	seedIncident(t, repo, "inc-1")

	req := httptest.NewRequest(http.MethodPut, "/incidents/inc-1/status", bytes.NewBufferString(`{"status":"escalated"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestIncidentHandlerAnalyze(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	router := incidentRouter(repo, &stubAnalyzer{analysis: "CPU saturation on the primary."})

	req := httptest.NewRequest(http.MethodPost, "/incidents/inc-1/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data["incident_id"] != "inc-1" {
		t.Errorf("incident_id = %q", resp.Data["incident_id"])
	}
	if resp.Data["analysis"] != "CPU saturation on the primary." {
		t.Errorf("analysis = %q", resp.Data["analysis"])
	}
}

func TestIncidentHandlerAnalyzeProviderError(t *testing.T) {
	router := incidentRouter(testutil.NewMockIncidentRepository(), &stubAnalyzer{
		err: errors.AIProviderError(context.DeadlineExceeded),
	})

	req := httptest.NewRequest(http.MethodPost, "/incidents/inc-1/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func seedIncident(t *testing.T, repo *testutil.MockIncidentRepository, id string) {
	t.Helper()
	if err := repo.Create(context.Background(), &incident.Incident{
		ID:       id,
		Title:    "Latency spike",
		Status:   incident.StatusOpen,
		Severity: "high",
		Service:  "api-gateway",
	}); err != nil {
		t.Fatal(err)
	}
}
