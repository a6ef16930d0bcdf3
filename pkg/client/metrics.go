package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MetricService handles telemetry API calls
type MetricService struct {
	client *Client
}

// Latest retrieves the most recent sample for every monitored service
func (s *MetricService) Latest(ctx context.Context) ([]SystemMetric, error) {
	var metrics []SystemMetric
	if err := s.client.doRequest(ctx, "GET", "/api/v1/metrics/latest", nil, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// Timeseries retrieves recent samples for one service, oldest first
func (s *MetricService) Timeseries(ctx context.Context, service string, minutes int) ([]SystemMetric, error) {
	path := fmt.Sprintf("/api/v1/metrics/%s/timeseries", url.PathEscape(service))
	if minutes > 0 {
		path += "?minutes=" + strconv.Itoa(minutes)
	}

	var metrics []SystemMetric
	if err := s.client.doRequest(ctx, "GET", path, nil, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// Services retrieves the monitored service set
func (s *MetricService) Services(ctx context.Context) ([]string, error) {
	var services []string
	if err := s.client.doRequest(ctx, "GET", "/api/v1/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}
