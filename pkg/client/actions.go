package client

import (
	"context"
	"fmt"
	"net/url"
)

// ActionService handles remediation action API calls
type ActionService struct {
	client *Client
}

// ActionListOptions contains options for listing actions
type ActionListOptions struct {
	IncidentID string
	Status     string
}

// List retrieves actions, newest first
func (s *ActionService) List(ctx context.Context, opts *ActionListOptions) ([]Action, error) {
	query := url.Values{}
	if opts != nil {
		if opts.IncidentID != "" {
			query.Set("incident_id", opts.IncidentID)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	path := "/api/v1/actions"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var actions []Action
	if err := s.client.doRequest(ctx, "GET", path, nil, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// Get retrieves a single action by ID
func (s *ActionService) Get(ctx context.Context, id string) (*Action, error) {
	var a Action
	if err := s.client.doRequest(ctx, "GET", "/api/v1/actions/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Approve records an approval decision on a pending action
func (s *ActionService) Approve(ctx context.Context, id, approvedBy string) (*Action, error) {
	path := fmt.Sprintf("/api/v1/actions/%s/approve", url.PathEscape(id))
	body := map[string]string{"approved_by": approvedBy}

	var a Action
	if err := s.client.doRequest(ctx, "POST", path, body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Reject records a rejection decision on a pending action
func (s *ActionService) Reject(ctx context.Context, id string) (*Action, error) {
	path := fmt.Sprintf("/api/v1/actions/%s/reject", url.PathEscape(id))

	var a Action
	if err := s.client.doRequest(ctx, "POST", path, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
