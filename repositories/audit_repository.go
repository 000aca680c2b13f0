package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// auditRepository implements AuditRepository interface
type auditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) AuditRepository {
	return &auditRepository{db: db}
}

// insertAuditEntry writes one entry using q, which may be a transaction
func insertAuditEntry(ctx context.Context, db *database.DB, q queryer, entry *models.AuditLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var changes sql.NullString
	if len(entry.Changes) > 0 {
		encoded, err := toJSON(entry.Changes)
		if err != nil {
			return fmt.Errorf("failed to encode audit changes: %w", err)
		}
		changes = sql.NullString{String: encoded, Valid: true}
	}

	query := `
		INSERT INTO audit_logs (safety_plan_id, action, performed_by, previous_status, new_status, comments, changes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := q.QueryRowContext(ctx, db.Rebind(query),
		entry.SafetyPlanID,
		string(entry.Action),
		entry.PerformedBy,
		nullStatus(entry.PreviousStatus),
		nullStatus(entry.NewStatus),
		nullString(entry.Comments),
		changes,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

// Append inserts a new audit log entry for an existing plan
func (r *auditRepository) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	var exists int
	err := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT 1 FROM safety_plans WHERE id = ?"), entry.SafetyPlanID).Scan(&exists)
	if err == sql.ErrNoRows {
		return models.NotFoundf("safety plan with ID %d not found", entry.SafetyPlanID)
	}
	if err != nil {
		return fmt.Errorf("failed to check safety plan: %w", err)
	}

	return insertAuditEntry(ctx, r.db, r.db, entry)
}

// ListByPlan retrieves the audit trail of a plan, newest first
func (r *auditRepository) ListByPlan(ctx context.Context, planID int64) ([]models.AuditLogEntry, error) {
	query := `
		SELECT id, safety_plan_id, action, performed_by, previous_status, new_status, comments, changes, created_at
		FROM audit_logs
		WHERE safety_plan_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditLogEntry{}
	for rows.Next() {
		var entry models.AuditLogEntry
		var action string
		var previousStatus, newStatus, comments, changes sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.SafetyPlanID,
			&action,
			&entry.PerformedBy,
			&previousStatus,
			&newStatus,
			&comments,
			&changes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}

		entry.Action = models.AuditAction(action)
		if previousStatus.Valid {
			entry.PreviousStatus = models.StatusPtr(models.PlanStatus(previousStatus.String))
		}
		if newStatus.Valid {
			entry.NewStatus = models.StatusPtr(models.PlanStatus(newStatus.String))
		}
		entry.Comments = stringPtr(comments)
		if changes.Valid {
			if err := fromJSON(changes.String, &entry.Changes); err != nil {
				return nil, fmt.Errorf("failed to decode audit changes %d: %w", entry.ID, err)
			}
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return entries, nil
}

func nullStatus(s *models.PlanStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
