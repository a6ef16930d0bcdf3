package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/errors"
)

// Timestamps are stored as RFC3339 UTC text so that string comparison and
// string ordering match chronological order on both drivers.

type MetricRepository struct {
	db *sql.DB
}

func NewMetricRepository(db *sql.DB) metric.Repository {
	return &MetricRepository{db: db}
}

func (r *MetricRepository) Create(ctx context.Context, m *metric.SystemMetric) error {
	query := `INSERT INTO system_metrics (timestamp, service, cpu, memory, latency, error_rate, requests_per_sec) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		m.Timestamp.UTC().Format(time.RFC3339), m.Service,
		m.CPU, m.Memory, m.Latency, m.ErrorRate, m.RequestsPerSec)
	if err != nil {
		return errors.DatabaseError("Failed to create metric", err)
	}

	return nil
}

func (r *MetricRepository) LatestForService(ctx context.Context, service string) (*metric.SystemMetric, error) {
	query := `SELECT timestamp, service, cpu, memory, latency, error_rate, requests_per_sec FROM system_metrics WHERE service = $1 ORDER BY timestamp DESC LIMIT 1`

	m, err := scanMetric(r.db.QueryRowContext(ctx, query, service))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Metric")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest metric", err)
	}

	return m, nil
}

func (r *MetricRepository) ListByServiceSince(ctx context.Context, service string, since time.Time, limit int) ([]*metric.SystemMetric, error) {
	query := `SELECT timestamp, service, cpu, memory, latency, error_rate, requests_per_sec FROM system_metrics WHERE service = $1 AND timestamp > $2 ORDER BY timestamp ASC LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, service, since.UTC().Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list metrics", err)
	}
	defer rows.Close()

	return collectMetrics(rows)
}

func (r *MetricRepository) ListRecent(ctx context.Context, limit int) ([]*metric.SystemMetric, error) {
	query := `SELECT timestamp, service, cpu, memory, latency, error_rate, requests_per_sec FROM system_metrics ORDER BY timestamp DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list recent metrics", err)
	}
	defer rows.Close()

	return collectMetrics(rows)
}

func (r *MetricRepository) ListRecentForService(ctx context.Context, service string, limit int) ([]*metric.SystemMetric, error) {
	query := `SELECT timestamp, service, cpu, memory, latency, error_rate, requests_per_sec FROM system_metrics WHERE service = $1 ORDER BY timestamp DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, service, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list recent metrics", err)
	}
	defer rows.Close()

	return collectMetrics(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMetric(row rowScanner) (*metric.SystemMetric, error) {
	var m metric.SystemMetric
	var ts string
	err := row.Scan(&ts, &m.Service, &m.CPU, &m.Memory, &m.Latency, &m.ErrorRate, &m.RequestsPerSec)
	if err != nil {
		return nil, err
	}
	m.Timestamp, _ = time.Parse(time.RFC3339, ts)
	return &m, nil
}

func collectMetrics(rows *sql.Rows) ([]*metric.SystemMetric, error) {
	out := make([]*metric.SystemMetric, 0, 100)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan metric", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
