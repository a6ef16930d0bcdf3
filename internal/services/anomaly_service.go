package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/metrics"
)

const anomalyListLimit = 100

// AnomalyService implements anomaly.Service
type AnomalyService struct {
	metricRepo metric.Repository
	repo       anomaly.Repository
	engine     *detector.Engine
	services   []string
	logger     *logger.Logger
}

// NewAnomalyService creates a new anomaly service
func NewAnomalyService(
	metricRepo metric.Repository,
	repo anomaly.Repository,
	engine *detector.Engine,
	services []string,
	log *logger.Logger,
) anomaly.Service {
	return &AnomalyService{
		metricRepo: metricRepo,
		repo:       repo,
		engine:     engine,
		services:   services,
		logger:     log,
	}
}

// DetectLatest evaluates the latest sample of every monitored service in
// fixed enumeration order. Each service is scored independently; a positive
// detection is attributed to its worst-deviating dimension, assigned a
// severity, and persisted. Incidents are never created here.
func (s *AnomalyService) DetectLatest(ctx context.Context) ([]*anomaly.Anomaly, error) {
	metrics.RecordDetectionPass()

	detected := make([]*anomaly.Anomaly, 0)
	for _, svc := range s.services {
		m, err := s.metricRepo.LatestForService(ctx, svc)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		features := m.Features()
		isAnomaly, confidence, modelBaseline := s.engine.DetectWithBaseline(features)
		if !isAnomaly {
			continue
		}

		idx, value, baseline := detector.Attribute(features, modelBaseline)
		metricType := metric.FeatureNames[idx]
		severity := anomaly.SeverityForConfidence(confidence)

		a := &anomaly.Anomaly{
			ID:          uuid.New().String(),
			Timestamp:   m.Timestamp,
			Service:     svc,
			MetricType:  metricType,
			Severity:    severity,
			Confidence:  confidence,
			Description: fmt.Sprintf("Anomalous %s detected", metricType),
			Value:       value,
			Baseline:    baseline,
		}

		if err := s.repo.Create(ctx, a); err != nil {
			return nil, err
		}

		metrics.RecordAnomaly(svc, severity)
		s.logger.WithFields(map[string]interface{}{
			"anomaly_id":  a.ID,
			"service":     svc,
			"metric_type": metricType,
			"severity":    severity,
			"confidence":  confidence,
		}).Info("Anomaly detected")

		detected = append(detected, a)
	}

	return detected, nil
}

// List retrieves recent anomalies
func (s *AnomalyService) List(ctx context.Context, since time.Time, limit int) ([]*anomaly.Anomaly, error) {
	if limit <= 0 || limit > anomalyListLimit {
		limit = anomalyListLimit
	}
	return s.repo.ListSince(ctx, since, limit)
}
