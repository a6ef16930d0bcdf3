package client

import (
	"context"
	"net/url"
	"strconv"
)

// AnomalyService handles anomaly detection API calls
type AnomalyService struct {
	client *Client
}

// AnomalyListOptions contains options for listing anomalies
type AnomalyListOptions struct {
	Minutes int
	Limit   int
}

// List retrieves recent anomalies, newest first
func (s *AnomalyService) List(ctx context.Context, opts *AnomalyListOptions) ([]Anomaly, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Minutes > 0 {
			query.Set("minutes", strconv.Itoa(opts.Minutes))
		}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
	}

	path := "/api/v1/anomalies"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var anomalies []Anomaly
	if err := s.client.doRequest(ctx, "GET", path, nil, &anomalies); err != nil {
		return nil, err
	}
	return anomalies, nil
}

// Detect triggers a detection pass and returns any anomalies found
func (s *AnomalyService) Detect(ctx context.Context) ([]Anomaly, error) {
	var anomalies []Anomaly
	if err := s.client.doRequest(ctx, "POST", "/api/v1/anomalies/detect", nil, &anomalies); err != nil {
		return nil, err
	}
	return anomalies, nil
}
