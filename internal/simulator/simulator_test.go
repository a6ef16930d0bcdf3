package simulator

import "testing"

var testServices = []string{"api-gateway", "auth-service", "database"}

func TestSampleNormalRanges(t *testing.T) {
	s := New(testServices)

	for i := 0; i < 50; i++ {
		m := s.Sample("api-gateway")
		if m.Service != "api-gateway" {
			t.Fatalf("Service = %q", m.Service)
		}
		if m.CPU < 20 || m.CPU > 50 {
			t.Errorf("CPU = %v, want in [20, 50]", m.CPU)
		}
		if m.Memory < 30 || m.Memory > 60 {
			t.Errorf("Memory = %v, want in [30, 60]", m.Memory)
		}
		if m.Latency < 50 || m.Latency > 150 {
			t.Errorf("Latency = %v, want in [50, 150]", m.Latency)
		}
		if m.ErrorRate < 0 || m.ErrorRate > 2 {
			t.Errorf("ErrorRate = %v, want in [0, 2]", m.ErrorRate)
		}
		if m.RequestsPerSec < 100 || m.RequestsPerSec > 500 {
			t.Errorf("RequestsPerSec = %v, want in [100, 500]", m.RequestsPerSec)
		}
	}
}

func TestInjectFailureUnknownService(t *testing.T) {
	s := New(testServices)

	if s.InjectFailure("nonexistent") {
		t.Error("InjectFailure should reject an unknown service")
	}
	if active, _ := s.FailureStatus(); active {
		t.Error("rejected injection must not activate a failure")
	}
}

func TestInjectFailureDegradesService(t *testing.T) {
	s := New(testServices)

	if !s.InjectFailure("database") {
		t.Fatal("InjectFailure rejected a known service")
	}

	active, svc := s.FailureStatus()
	if !active || svc != "database" {
		t.Fatalf("FailureStatus = (%v, %q), want (true, database)", active, svc)
	}

	for i := 0; i < 20; i++ {
		m := s.Sample("database")
		if m.CPU < 70 {
			t.Errorf("failed service CPU = %v, want >= 70", m.CPU)
		}
		if m.Memory < 70 {
			t.Errorf("failed service Memory = %v, want >= 70", m.Memory)
		}
		if m.Latency < 300 {
			t.Errorf("failed service Latency = %v, want >= 300", m.Latency)
		}
		if m.ErrorRate < 10 {
			t.Errorf("failed service ErrorRate = %v, want >= 10", m.ErrorRate)
		}
	}

	// Other services keep producing healthy samples
	m := s.Sample("api-gateway")
	if m.CPU > 50 || m.ErrorRate > 2 {
		t.Errorf("healthy service degraded: CPU=%v ErrorRate=%v", m.CPU, m.ErrorRate)
	}
}

func TestClearFailure(t *testing.T) {
	s := New(testServices)

	s.InjectFailure("database")
	s.ClearFailure()

	if active, svc := s.FailureStatus(); active || svc != "" {
		t.Errorf("FailureStatus after clear = (%v, %q), want (false, \"\")", active, svc)
	}

	m := s.Sample("database")
	if m.CPU > 50 {
		t.Errorf("CPU after clear = %v, want back in normal range", m.CPU)
	}
}

func TestServicesOrder(t *testing.T) {
	s := New(testServices)

	got := s.Services()
	if len(got) != len(testServices) {
		t.Fatalf("got %d services, want %d", len(got), len(testServices))
	}
	for i, svc := range testServices {
		if got[i] != svc {
			t.Errorf("Services()[%d] = %q, want %q", i, got[i], svc)
		}
	}
}
