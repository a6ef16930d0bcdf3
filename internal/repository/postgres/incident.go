package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/autonex/aiops/internal/domain/incident"
	"github.com/autonex/aiops/internal/pkg/errors"
)

type IncidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) incident.Repository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(ctx context.Context, inc *incident.Incident) error {
	recommendations, err := json.Marshal(inc.Recommendations)
	if err != nil {
		return errors.Internal("Failed to encode recommendations", err)
	}
	anomalyIDs, err := json.Marshal(inc.AnomalyIDs)
	if err != nil {
		return errors.Internal("Failed to encode anomaly ids", err)
	}

	query := `INSERT INTO incidents (id, title, status, severity, service, root_cause, ai_explanation, recommendations, anomaly_ids, created_at, resolved_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, query,
		inc.ID, inc.Title, inc.Status, inc.Severity, inc.Service,
		inc.RootCause, inc.AIExplanation, string(recommendations), string(anomalyIDs),
		inc.CreatedAt.UTC().Format(time.RFC3339), nullableTime(inc.ResolvedAt))
	if err != nil {
		return errors.DatabaseError("Failed to create incident", err)
	}

	return nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*incident.Incident, error) {
	query := `SELECT id, title, status, severity, service, root_cause, ai_explanation, recommendations, anomaly_ids, created_at, resolved_at FROM incidents WHERE id = $1`

	inc, err := scanIncident(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Incident")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get incident", err)
	}

	return inc, nil
}

func (r *IncidentRepository) List(ctx context.Context, filter incident.Filter, limit int) ([]*incident.Incident, error) {
	query := `SELECT id, title, status, severity, service, root_cause, ai_explanation, recommendations, anomaly_ids, created_at, resolved_at FROM incidents`
	args := []interface{}{}

	if filter.Status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, filter.Status, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list incidents", err)
	}
	defer rows.Close()

	incidents := make([]*incident.Incident, 0, limit)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan incident", err)
		}
		incidents = append(incidents, inc)
	}

	return incidents, rows.Err()
}

func (r *IncidentRepository) UpdateStatus(ctx context.Context, id, status string, resolvedAt *time.Time) error {
	// COALESCE keeps the first resolved_at; re-resolving never moves it
	query := `UPDATE incidents SET status = $1, resolved_at = COALESCE(resolved_at, $2) WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, nullableTime(resolvedAt), id)
	if err != nil {
		return errors.DatabaseError("Failed to update incident status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Incident")
	}

	return nil
}

func (r *IncidentRepository) SetAnalysis(ctx context.Context, id, explanation string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE incidents SET ai_explanation = $1 WHERE id = $2", explanation, id)
	if err != nil {
		return errors.DatabaseError("Failed to set incident analysis", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Incident")
	}

	return nil
}

func (r *IncidentRepository) SetRecommendations(ctx context.Context, id string, proposals []incident.Proposal) error {
	encoded, err := json.Marshal(proposals)
	if err != nil {
		return errors.Internal("Failed to encode recommendations", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE incidents SET recommendations = $1 WHERE id = $2", string(encoded), id)
	if err != nil {
		return errors.DatabaseError("Failed to set incident recommendations", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Incident")
	}

	return nil
}

func (r *IncidentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	var err error

	if status == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM incidents").Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM incidents WHERE status = $1", status).Scan(&count)
	}
	if err != nil {
		return 0, errors.DatabaseError("Failed to count incidents", err)
	}

	return count, nil
}

func scanIncident(row rowScanner) (*incident.Incident, error) {
	var inc incident.Incident
	var recommendations, anomalyIDs, createdAt string
	var resolvedAt sql.NullString

	err := row.Scan(&inc.ID, &inc.Title, &inc.Status, &inc.Severity, &inc.Service,
		&inc.RootCause, &inc.AIExplanation, &recommendations, &anomalyIDs,
		&createdAt, &resolvedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recommendations), &inc.Recommendations); err != nil {
		inc.Recommendations = nil
	}
	if err := json.Unmarshal([]byte(anomalyIDs), &inc.AnomalyIDs); err != nil {
		inc.AnomalyIDs = []string{}
	}

	inc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if resolvedAt.Valid {
		if t, err := time.Parse(time.RFC3339, resolvedAt.String); err == nil {
			inc.ResolvedAt = &t
		}
	}

	return &inc, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
