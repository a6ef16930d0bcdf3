package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/autonex/aiops/internal/pkg/validator"
	"github.com/autonex/aiops/internal/simulator"
)

func demoRouter(sim *simulator.Simulator) chi.Router {
	h := NewDemoHandler(sim, testLogger(), validator.New())

	r := chi.NewRouter()
	r.Post("/demo/inject-failure", h.InjectFailure)
	r.Post("/demo/clear-failure", h.ClearFailure)
	r.Get("/demo/status", h.Status)
	return r
}

func TestDemoHandlerInjectFailure(t *testing.T) {
	sim := simulator.New([]string{"database", "cache"})
	router := demoRouter(sim)

	req := httptest.NewRequest(http.MethodPost, "/demo/inject-failure", bytes.NewBufferString(`{"service":"database"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if active, svc := sim.FailureStatus(); !active || svc != "database" {
		t.Errorf("FailureStatus = (%v, %q), want (true, database)", active, svc)
	}
}

func TestDemoHandlerInjectFailureUnknownService(t *testing.T) {
	router := demoRouter(simulator.New([]string{"database"}))

	req := httptest.NewRequest(http.MethodPost, "/demo/inject-failure", bytes.NewBufferString(`{"service":"mainframe"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDemoHandlerClearAndStatus(t *testing.T) {
	sim := simulator.New([]string{"database"})
	sim.InjectFailure("database")
	router := demoRouter(sim)

	req := httptest.NewRequest(http.MethodPost, "/demo/clear-failure", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/demo/status", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Data struct {
			FailureActive bool   `json:"failure_active"`
			Service       string `json:"service"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.FailureActive {
		t.Error("failure should be inactive after clear")
	}
}
