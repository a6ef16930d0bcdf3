package services

import (
	"context"
	"testing"

	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/testutil"
)

func TestIncidentServiceCreate(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	svc := NewIncidentService(repo, testLogger())

	inc, err := svc.Create(context.Background(), "High CPU on database", "critical", "database", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if inc.ID == "" {
		t.Error("incident should get an ID")
	}
	if inc.Status != incident.StatusOpen {
		t.Errorf("Status = %q, want %q", inc.Status, incident.StatusOpen)
	}
	if inc.AnomalyIDs == nil {
		t.Error("nil anomaly list should be normalized to empty")
	}
	if inc.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}
	if _, ok := repo.Incidents[inc.ID]; !ok {
		t.Error("incident was not persisted")
	}
}

func TestIncidentServiceUpdateStatusInvalid(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	svc := NewIncidentService(repo, testLogger())

	_, err := svc.UpdateStatus(context.Background(), "any", "escalated")
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("UpdateStatus() error = %v, want AppError", err)
	}
	if appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("Code = %q, want %q", appErr.Code, errors.ErrCodeBadRequest)
	}
}

func TestIncidentServiceResolveOnce(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	svc := NewIncidentService(repo, testLogger())

	inc, err := svc.Create(context.Background(), "Latency spike", "high", "api-gateway", []string{"a1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resolved, err := svc.UpdateStatus(context.Background(), inc.ID, incident.StatusResolved)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("first resolve should stamp ResolvedAt")
	}
	first := *resolved.ResolvedAt

	// Re-resolving keeps the original timestamp
	again, err := svc.UpdateStatus(context.Background(), inc.ID, incident.StatusResolved)
	if err != nil {
		t.Fatalf("second UpdateStatus() error = %v", err)
	}
	if again.ResolvedAt == nil || !again.ResolvedAt.Equal(first) {
		t.Errorf("ResolvedAt changed on re-resolve: %v, want %v", again.ResolvedAt, first)
	}
}

func TestIncidentServiceUpdateStatusNotFound(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	svc := NewIncidentService(repo, testLogger())

	_, err := svc.UpdateStatus(context.Background(), "missing", incident.StatusInvestigating)
	if !errors.IsNotFound(err) {
		t.Errorf("UpdateStatus() error = %v, want not found", err)
	}
}

func TestIncidentServiceListFilter(t *testing.T) {
	repo := testutil.NewMockIncidentRepository()
	svc := NewIncidentService(repo, testLogger())

	a, _ := svc.Create(context.Background(), "A", "medium", "cache", nil)
	b, _ := svc.Create(context.Background(), "B", "medium", "cache", nil)
	if _, err := svc.UpdateStatus(context.Background(), a.ID, incident.StatusResolved); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	open, err := svc.List(context.Background(), incident.Filter{Status: incident.StatusOpen}, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(open) != 1 || open[0].ID != b.ID {
		t.Errorf("open incidents = %d, want only %s", len(open), b.ID)
	}

	all, err := svc.List(context.Background(), incident.Filter{}, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all incidents = %d, want 2", len(all))
	}
}
