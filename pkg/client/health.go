package client

import "context"

// HealthService handles health check API calls
type HealthService struct {
	client *Client
}

// Check retrieves the liveness status
func (s *HealthService) Check(ctx context.Context) (*Health, error) {
	var h Health
	if err := s.client.doRequest(ctx, "GET", "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
