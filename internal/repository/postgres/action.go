package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/autonex/aiops/internal/domain/action"
	"github.com/autonex/aiops/internal/pkg/errors"
)

type ActionRepository struct {
	db *sql.DB
}

func NewActionRepository(db *sql.DB) action.Repository {
	return &ActionRepository{db: db}
}

func (r *ActionRepository) Create(ctx context.Context, a *action.Action) error {
	query := `INSERT INTO actions (id, incident_id, action, description, risk_level, impact, ordinal, status, approved_by, executed_at, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.IncidentID, a.Action, a.Description, a.RiskLevel, a.Impact,
		a.Ordinal, a.Status, a.ApprovedBy, nullableTime(a.ExecutedAt),
		a.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return errors.DatabaseError("Failed to create action", err)
	}

	return nil
}

func (r *ActionRepository) GetByID(ctx context.Context, id string) (*action.Action, error) {
	query := `SELECT id, incident_id, action, description, risk_level, impact, ordinal, status, approved_by, executed_at, created_at FROM actions WHERE id = $1`

	a, err := scanAction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Action")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get action", err)
	}

	return a, nil
}

func (r *ActionRepository) List(ctx context.Context, filter action.Filter, limit int) ([]*action.Action, error) {
	where := []string{}
	args := []interface{}{}

	if filter.IncidentID != "" {
		args = append(args, filter.IncidentID)
		where = append(where, fmt.Sprintf("incident_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT id, incident_id, action, description, risk_level, impact, ordinal, status, approved_by, executed_at, created_at FROM actions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	// ordinal breaks created_at ties so a recommendation batch reads back in
	// proposal order
	query += fmt.Sprintf(" ORDER BY created_at DESC, ordinal LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list actions", err)
	}
	defer rows.Close()

	actions := make([]*action.Action, 0, limit)
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan action", err)
		}
		actions = append(actions, a)
	}

	return actions, rows.Err()
}

func (r *ActionRepository) UpdateDecision(ctx context.Context, a *action.Action) error {
	query := `UPDATE actions SET status = $1, approved_by = $2, executed_at = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		a.Status, a.ApprovedBy, nullableTime(a.ExecutedAt), a.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update action", err)
	}

	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return errors.NotFound("Action")
	}

	return nil
}

func (r *ActionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM actions WHERE status = $1", status).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count actions", err)
	}
	return count, nil
}

func scanAction(row rowScanner) (*action.Action, error) {
	var a action.Action
	var executedAt sql.NullString
	var createdAt string

	err := row.Scan(&a.ID, &a.IncidentID, &a.Action, &a.Description, &a.RiskLevel,
		&a.Impact, &a.Ordinal, &a.Status, &a.ApprovedBy, &executedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if executedAt.Valid {
		if t, err := time.Parse(time.RFC3339, executedAt.String); err == nil {
			a.ExecutedAt = &t
		}
	}

	return &a, nil
}
