package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/autonex/aiops/internal/domain/anomaly"
	"github.com/autonex/aiops/internal/pkg/errors"
)

type AnomalyRepository struct {
	db *sql.DB
}

func NewAnomalyRepository(db *sql.DB) anomaly.Repository {
	return &AnomalyRepository{db: db}
}

func (r *AnomalyRepository) Create(ctx context.Context, a *anomaly.Anomaly) error {
	query := `INSERT INTO anomalies (id, timestamp, service, metric_type, severity, confidence, description, value, baseline) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Timestamp.UTC().Format(time.RFC3339), a.Service, a.MetricType,
		a.Severity, a.Confidence, a.Description, a.Value, a.Baseline)
	if err != nil {
		return errors.DatabaseError("Failed to create anomaly", err)
	}

	return nil
}

func (r *AnomalyRepository) ListSince(ctx context.Context, since time.Time, limit int) ([]*anomaly.Anomaly, error) {
	query := `SELECT id, timestamp, service, metric_type, severity, confidence, description, value, baseline FROM anomalies WHERE timestamp > $1 ORDER BY timestamp DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, since.UTC().Format(time.RFC3339), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list anomalies", err)
	}
	defer rows.Close()

	return collectAnomalies(rows)
}

func (r *AnomalyRepository) GetByIDs(ctx context.Context, ids []string) ([]*anomaly.Anomaly, error) {
	if len(ids) == 0 {
		return []*anomaly.Anomaly{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT id, timestamp, service, metric_type, severity, confidence, description, value, baseline FROM anomalies WHERE id IN (%s) ORDER BY timestamp DESC`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get anomalies", err)
	}
	defer rows.Close()

	return collectAnomalies(rows)
}

func (r *AnomalyRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM anomalies WHERE timestamp > $1",
		since.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count anomalies", err)
	}
	return count, nil
}

func collectAnomalies(rows *sql.Rows) ([]*anomaly.Anomaly, error) {
	anomalies := make([]*anomaly.Anomaly, 0, 100)
	for rows.Next() {
		var a anomaly.Anomaly
		var ts string
		err := rows.Scan(&a.ID, &ts, &a.Service, &a.MetricType, &a.Severity, &a.Confidence, &a.Description, &a.Value, &a.Baseline)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan anomaly", err)
		}
		a.Timestamp, _ = time.Parse(time.RFC3339, ts)
		anomalies = append(anomalies, &a)
	}
	return anomalies, rows.Err()
}
