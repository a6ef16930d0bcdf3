package client

import (
	"context"
	"fmt"
	"net/url"
)

// IncidentService handles incident management API calls
type IncidentService struct {
	client *Client
}

// Create opens a new incident
func (s *IncidentService) Create(ctx context.Context, req CreateIncidentRequest) (*Incident, error) {
	var inc Incident
	if err := s.client.doRequest(ctx, "POST", "/api/v1/incidents", req, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// List retrieves incidents, optionally filtered by status
func (s *IncidentService) List(ctx context.Context, status string) ([]Incident, error) {
	path := "/api/v1/incidents"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var incidents []Incident
	if err := s.client.doRequest(ctx, "GET", path, nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// Get retrieves a single incident by ID
func (s *IncidentService) Get(ctx context.Context, id string) (*Incident, error) {
	var inc Incident
	if err := s.client.doRequest(ctx, "GET", "/api/v1/incidents/"+url.PathEscape(id), nil, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// UpdateStatus moves an incident to the given status
func (s *IncidentService) UpdateStatus(ctx context.Context, id, status string) (*Incident, error) {
	path := fmt.Sprintf("/api/v1/incidents/%s/status", url.PathEscape(id))
	body := map[string]string{"status": status}

	var inc Incident
	if err := s.client.doRequest(ctx, "PUT", path, body, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// Analyze generates a root-cause analysis for an incident
func (s *IncidentService) Analyze(ctx context.Context, id string) (*AnalysisResult, error) {
	path := fmt.Sprintf("/api/v1/incidents/%s/analyze", url.PathEscape(id))

	var result AnalysisResult
	if err := s.client.doRequest(ctx, "POST", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Recommend generates remediation proposals for an incident
func (s *IncidentService) Recommend(ctx context.Context, id string) (*RecommendResult, error) {
	path := fmt.Sprintf("/api/v1/incidents/%s/recommend", url.PathEscape(id))

	var result RecommendResult
	if err := s.client.doRequest(ctx, "POST", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
