package services

import (
	"context"
	"testing"
	"time"

	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/testutil"
)

func pendingAction(id string) *action.Action {
	return &action.Action{
		ID:          id,
		IncidentID:  "inc-1",
		Action:      "Restart Service",
		Description: "Rolling restart of the service instances",
		RiskLevel:   "medium",
		Impact:      "Clears memory leaks",
		Status:      action.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestActionServiceApprove(t *testing.T) {
	repo := testutil.NewMockActionRepository()
	if err := repo.Create(context.Background(), pendingAction("act-1")); err != nil {
		t.Fatal(err)
	}
	svc := NewActionService(repo, testLogger())

	a, err := svc.Approve(context.Background(), "act-1", "oncall@autonex.io")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if a.Status != action.StatusApproved {
		t.Errorf("Status = %q, want %q", a.Status, action.StatusApproved)
	}
	if a.ApprovedBy != "oncall@autonex.io" {
		t.Errorf("ApprovedBy = %q", a.ApprovedBy)
	}
	if a.ExecutedAt == nil {
		t.Error("approval should stamp ExecutedAt")
	}
}

func TestActionServiceApproveTwice(t *testing.T) {
	repo := testutil.NewMockActionRepository()
	if err := repo.Create(context.Background(), pendingAction("act-1")); err != nil {
		t.Fatal(err)
	}
	svc := NewActionService(repo, testLogger())

	if _, err := svc.Approve(context.Background(), "act-1", "alice"); err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}

	_, err := svc.Approve(context.Background(), "act-1", "bob")
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeConflict {
		t.Errorf("second Approve() error = %v, want conflict", err)
	}
}

func TestActionServiceRejectAfterApprove(t *testing.T) {
	repo := testutil.NewMockActionRepository()
	if err := repo.Create(context.Background(), pendingAction("act-1")); err != nil {
		t.Fatal(err)
	}
	svc := NewActionService(repo, testLogger())

	if _, err := svc.Approve(context.Background(), "act-1", "alice"); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	_, err := svc.Reject(context.Background(), "act-1")
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeConflict {
		t.Errorf("Reject() after approve error = %v, want conflict", err)
	}
}

func TestActionServiceReject(t *testing.T) {
	repo := testutil.NewMockActionRepository()
	if err := repo.Create(context.Background(), pendingAction("act-2")); err != nil {
		t.Fatal(err)
	}
	svc := NewActionService(repo, testLogger())

	a, err := svc.Reject(context.Background(), "act-2")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if a.Status != action.StatusRejected {
		t.Errorf("Status = %q, want %q", a.Status, action.StatusRejected)
	}
	if a.ExecutedAt != nil {
		t.Error("rejection must not stamp ExecutedAt")
	}
}

func TestActionServiceApproveNotFound(t *testing.T) {
	svc := NewActionService(testutil.NewMockActionRepository(), testLogger())

	_, err := svc.Approve(context.Background(), "missing", "alice")
	if !errors.IsNotFound(err) {
		t.Errorf("Approve() error = %v, want not found", err)
	}
}
