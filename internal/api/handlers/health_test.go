package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/simulator"
)

func TestHealthzReportsFeedMode(t *testing.T) {
	sim := simulator.New([]string{"database"})
	h := NewHealthHandler(nil, detector.NewEngineWithSeed(1), sim, testLogger())

	decode := func(t *testing.T) map[string]interface{} {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		h.Healthz(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Data map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp.Data
	}

	data := decode(t)
	if data["mode"] != "normal" {
		t.Errorf("mode = %v, want normal", data["mode"])
	}
	if data["model_trained"] != false {
		t.Errorf("model_trained = %v, want false", data["model_trained"])
	}

	sim.InjectFailure("database")
	if data := decode(t); data["mode"] != "active" {
		t.Errorf("mode during failure = %v, want active", data["mode"])
	}

	sim.ClearFailure()
	if data := decode(t); data["mode"] != "normal" {
		t.Errorf("mode after clear = %v, want normal", data["mode"])
	}
}
