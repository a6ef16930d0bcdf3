package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/errors"
)

// MockMetricRepository is a mock implementation of metric.Repository.
// Samples are kept in insertion order.
type MockMetricRepository struct {
	Metrics     []*metric.SystemMetric
	CreateError error
	ListError   error
}

func NewMockMetricRepository() *MockMetricRepository {
	return &MockMetricRepository{}
}

func (m *MockMetricRepository) Create(ctx context.Context, s *metric.SystemMetric) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Metrics = append(m.Metrics, s)
	return nil
}

func (m *MockMetricRepository) LatestForService(ctx context.Context, service string) (*metric.SystemMetric, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	for i := len(m.Metrics) - 1; i >= 0; i-- {
		if m.Metrics[i].Service == service {
			return m.Metrics[i], nil
		}
	}
	return nil, errors.NotFound("Metric")
}

func (m *MockMetricRepository) ListByServiceSince(ctx context.Context, service string, since time.Time, limit int) ([]*metric.SystemMetric, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]*metric.SystemMetric, 0)
	for _, s := range m.Metrics {
		if s.Service == service && s.Timestamp.After(since) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockMetricRepository) ListRecent(ctx context.Context, limit int) ([]*metric.SystemMetric, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]*metric.SystemMetric, 0, limit)
	for i := len(m.Metrics) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Metrics[i])
	}
	return out, nil
}

func (m *MockMetricRepository) ListRecentForService(ctx context.Context, service string, limit int) ([]*metric.SystemMetric, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]*metric.SystemMetric, 0, limit)
	for i := len(m.Metrics) - 1; i >= 0 && len(out) < limit; i-- {
		if m.Metrics[i].Service == service {
			out = append(out, m.Metrics[i])
		}
	}
	return out, nil
}

// MockAnomalyRepository is a mock implementation of anomaly.Repository
type MockAnomalyRepository struct {
	Anomalies   []*anomaly.Anomaly
	CreateError error
}

func NewMockAnomalyRepository() *MockAnomalyRepository {
	return &MockAnomalyRepository{}
}

func (m *MockAnomalyRepository) Create(ctx context.Context, a *anomaly.Anomaly) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Anomalies = append(m.Anomalies, a)
	return nil
}

func (m *MockAnomalyRepository) ListSince(ctx context.Context, since time.Time, limit int) ([]*anomaly.Anomaly, error) {
	out := make([]*anomaly.Anomaly, 0, limit)
	for i := len(m.Anomalies) - 1; i >= 0 && len(out) < limit; i-- {
		if m.Anomalies[i].Timestamp.After(since) {
			out = append(out, m.Anomalies[i])
		}
	}
	return out, nil
}

func (m *MockAnomalyRepository) GetByIDs(ctx context.Context, ids []string) ([]*anomaly.Anomaly, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]*anomaly.Anomaly, 0, len(ids))
	for _, a := range m.Anomalies {
		if wanted[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAnomalyRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, a := range m.Anomalies {
		if a.Timestamp.After(since) {
			count++
		}
	}
	return count, nil
}

// MockIncidentRepository is a mock implementation of incident.Repository
type MockIncidentRepository struct {
	Incidents   map[string]*incident.Incident
	Order       []string
	CreateError error
	UpdateError error
}

func NewMockIncidentRepository() *MockIncidentRepository {
	return &MockIncidentRepository{
		Incidents: make(map[string]*incident.Incident),
	}
}

func (m *MockIncidentRepository) Create(ctx context.Context, inc *incident.Incident) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Incidents[inc.ID] = inc
	m.Order = append(m.Order, inc.ID)
	return nil
}

func (m *MockIncidentRepository) GetByID(ctx context.Context, id string) (*incident.Incident, error) {
	inc, ok := m.Incidents[id]
	if !ok {
		return nil, errors.NotFound("Incident")
	}
	return inc, nil
}

func (m *MockIncidentRepository) List(ctx context.Context, filter incident.Filter, limit int) ([]*incident.Incident, error) {
	out := make([]*incident.Incident, 0, limit)
	for i := len(m.Order) - 1; i >= 0 && len(out) < limit; i-- {
		inc := m.Incidents[m.Order[i]]
		if filter.Status != "" && inc.Status != filter.Status {
			continue
		}
		out = append(out, inc)
	}
	return out, nil
}

func (m *MockIncidentRepository) UpdateStatus(ctx context.Context, id, status string, resolvedAt *time.Time) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	inc, ok := m.Incidents[id]
	if !ok {
		return errors.NotFound("Incident")
	}
	inc.Status = status
	if inc.ResolvedAt == nil && resolvedAt != nil {
		inc.ResolvedAt = resolvedAt
	}
	return nil
}

func (m *MockIncidentRepository) SetAnalysis(ctx context.Context, id, explanation string) error {
	inc, ok := m.Incidents[id]
	if !ok {
		return errors.NotFound("Incident")
	}
	inc.AIExplanation = explanation
	return nil
}

func (m *MockIncidentRepository) SetRecommendations(ctx context.Context, id string, proposals []incident.Proposal) error {
	inc, ok := m.Incidents[id]
	if !ok {
		return errors.NotFound("Incident")
	}
	inc.Recommendations = proposals
	return nil
}

func (m *MockIncidentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	for _, inc := range m.Incidents {
		if status == "" || inc.Status == status {
			count++
		}
	}
	return count, nil
}

// MockActionRepository is a mock implementation of action.Repository
type MockActionRepository struct {
	Actions     map[string]*action.Action
	Order       []string
	CreateError error
	UpdateError error
}

func NewMockActionRepository() *MockActionRepository {
	return &MockActionRepository{
		Actions: make(map[string]*action.Action),
	}
}

func (m *MockActionRepository) Create(ctx context.Context, a *action.Action) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Actions[a.ID] = a
	m.Order = append(m.Order, a.ID)
	return nil
}

func (m *MockActionRepository) GetByID(ctx context.Context, id string) (*action.Action, error) {
	a, ok := m.Actions[id]
	if !ok {
		return nil, errors.NotFound("Action")
	}
	return a, nil
}

func (m *MockActionRepository) List(ctx context.Context, filter action.Filter, limit int) ([]*action.Action, error) {
	out := make([]*action.Action, 0, limit)
	for _, id := range m.Order {
		a := m.Actions[id]
		if filter.IncidentID != "" && a.IncidentID != filter.IncidentID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	// newest first, ordinal breaking created_at ties
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Ordinal < out[j].Ordinal
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockActionRepository) UpdateDecision(ctx context.Context, a *action.Action) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Actions[a.ID]; !ok {
		return errors.NotFound("Action")
	}
	m.Actions[a.ID] = a
	return nil
}

func (m *MockActionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	for _, a := range m.Actions {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

// StubAIClient is a canned-response implementation of ai.Client
type StubAIClient struct {
	Response string
	Err      error
	Sessions []string
	Prompts  []string
}

func (s *StubAIClient) Complete(ctx context.Context, sessionID, prompt string) (string, error) {
	s.Sessions = append(s.Sessions, sessionID)
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
