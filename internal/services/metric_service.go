package services

import (
	"context"
	"time"

	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
)

const timeseriesLimit = 1000

// MetricService implements metric.Service
type MetricService struct {
	repo     metric.Repository
	services []string
	logger   *logger.Logger
}

// NewMetricService creates a new metric service
func NewMetricService(repo metric.Repository, services []string, log *logger.Logger) metric.Service {
	return &MetricService{
		repo:     repo,
		services: services,
		logger:   log,
	}
}

// LatestAll retrieves the most recent sample for every monitored service.
// Services that have no sample yet are skipped.
func (s *MetricService) LatestAll(ctx context.Context) ([]*metric.SystemMetric, error) {
	latest := make([]*metric.SystemMetric, 0, len(s.services))
	for _, svc := range s.services {
		m, err := s.repo.LatestForService(ctx, svc)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		latest = append(latest, m)
	}
	return latest, nil
}

// Timeseries retrieves samples for a service after the given time
func (s *MetricService) Timeseries(ctx context.Context, service string, since time.Time) ([]*metric.SystemMetric, error) {
	return s.repo.ListByServiceSince(ctx, service, since, timeseriesLimit)
}

// Services returns the monitored service set
func (s *MetricService) Services() []string {
	return s.services
}
