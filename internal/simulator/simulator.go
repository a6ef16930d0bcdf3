package simulator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/autonex/aiops/internal/domain/metric"
)

// failureRampWindow is how long an injected failure takes to reach full
// intensity
const failureRampWindow = time.Minute

// Simulator produces realistic synthetic telemetry for a fixed set of
// services, with an optional injected failure that ramps up over a minute.
// It implements the feed source contract so a real collector can replace it.
type Simulator struct {
	mu             sync.Mutex
	services       []string
	failureService string
	failureStart   time.Time
	rng            *rand.Rand
}

// New creates a simulator for the given service set
func New(services []string) *Simulator {
	return &Simulator{
		services: services,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Services returns the monitored service set in enumeration order
func (s *Simulator) Services() []string {
	return s.services
}

// Sample generates one metric sample for a service
func (s *Simulator) Sample(service string) *metric.SystemMetric {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &metric.SystemMetric{
		Timestamp:      time.Now().UTC(),
		Service:        service,
		CPU:            s.uniform(20, 50),
		Memory:         s.uniform(30, 60),
		Latency:        s.uniform(50, 150),
		ErrorRate:      s.uniform(0, 2),
		RequestsPerSec: s.uniform(100, 500),
	}

	if s.failureService == service {
		intensity := time.Since(s.failureStart).Seconds() / failureRampWindow.Seconds()
		if intensity > 1 {
			intensity = 1
		}
		m.CPU = s.uniform(70+intensity*20, 95)
		m.Memory = s.uniform(70+intensity*20, 95)
		m.Latency = s.uniform(300+intensity*700, 1000)
		m.ErrorRate = s.uniform(10+intensity*30, 50)
		m.RequestsPerSec = s.uniform(50, 100)
	}

	return m
}

// InjectFailure starts a failure scenario for a service. Returns false when
// the service is not in the monitored set.
func (s *Simulator) InjectFailure(service string) bool {
	known := false
	for _, svc := range s.services {
		if svc == service {
			known = true
			break
		}
	}
	if !known {
		return false
	}

	s.mu.Lock()
	s.failureService = service
	s.failureStart = time.Now()
	s.mu.Unlock()
	return true
}

// ClearFailure ends any active failure scenario
func (s *Simulator) ClearFailure() {
	s.mu.Lock()
	s.failureService = ""
	s.failureStart = time.Time{}
	s.mu.Unlock()
}

// FailureStatus reports whether a failure is active and which service it
// affects
func (s *Simulator) FailureStatus() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failureService != "", s.failureService
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
