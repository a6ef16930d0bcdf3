package client

import "context"

// DemoService controls the simulator failure scenario
type DemoService struct {
	client *Client
}

// InjectFailure starts a failure scenario for one service
func (s *DemoService) InjectFailure(ctx context.Context, service string) error {
	body := map[string]string{"service": service}
	return s.client.doRequest(ctx, "POST", "/api/v1/demo/inject-failure", body, nil)
}

// ClearFailure ends any active failure scenario
func (s *DemoService) ClearFailure(ctx context.Context) error {
	return s.client.doRequest(ctx, "POST", "/api/v1/demo/clear-failure", nil, nil)
}

// Status reports whether a failure scenario is active
func (s *DemoService) Status(ctx context.Context) (*FailureStatus, error) {
	var status FailureStatus
	if err := s.client.doRequest(ctx, "GET", "/api/v1/demo/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StatsService handles dashboard statistics API calls
type StatsService struct {
	client *Client
}

// Dashboard retrieves the aggregate dashboard view
func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := s.client.doRequest(ctx, "GET", "/api/v1/stats/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
