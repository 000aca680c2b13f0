package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// Columns written on insert and update, in planValues order
var planWriteColumns = []string{
	"group_name", "task_name", "date", "location", "shift", "machine_number", "region", "system",
	"can_social_distance",
	"q1_specialized_training", "q2_chemicals", "q3_impact_others", "q4_falls", "q5_barricades",
	"q6_loto", "q7_lifting", "q8_ergonomics", "q9_other_concerns", "q10_head_injury", "q11_other_ppe",
	"hazards", "assessments", "lead_name", "approver_name", "engineers", "comments", "status",
}

var planSelect = "SELECT id, " + strings.Join(planWriteColumns, ", ") +
	", share_token, revision, created_at FROM safety_plans"

// safetyPlanRepository implements SafetyPlanRepository interface
type safetyPlanRepository struct {
	db *database.DB
}

// NewSafetyPlanRepository creates a new safety plan repository
func NewSafetyPlanRepository(db *database.DB) SafetyPlanRepository {
	return &safetyPlanRepository{db: db}
}

func planValues(p *models.SafetyPlan) ([]any, error) {
	hazards, err := toJSON(nonNilStrings(p.Hazards))
	if err != nil {
		return nil, fmt.Errorf("failed to encode hazards: %w", err)
	}
	assessments := p.Assessments
	if assessments == nil {
		assessments = map[string]models.HazardAssessment{}
	}
	assessmentsJSON, err := toJSON(assessments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assessments: %w", err)
	}
	engineers, err := toJSON(nonNilStrings(p.Engineers))
	if err != nil {
		return nil, fmt.Errorf("failed to encode engineers: %w", err)
	}

	return []any{
		p.Group, p.TaskName, p.Date, p.Location, p.Shift, p.MachineNumber, p.Region, p.System,
		p.CanSocialDistance,
		p.Q1SpecializedTraining, p.Q2Chemicals, p.Q3ImpactOthers, p.Q4Falls, p.Q5Barricades,
		p.Q6Loto, p.Q7Lifting, p.Q8Ergonomics, p.Q9OtherConcerns, p.Q10HeadInjury, p.Q11OtherPPE,
		hazards, assessmentsJSON, p.LeadName, nullString(p.ApproverName), engineers, nullString(p.Comments),
		string(p.Status),
	}, nil
}

func scanPlan(row rowScanner) (*models.SafetyPlan, error) {
	var p models.SafetyPlan
	var hazards, assessments, engineers, status string
	var approverName, comments, shareToken sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Group, &p.TaskName, &p.Date, &p.Location, &p.Shift, &p.MachineNumber, &p.Region, &p.System,
		&p.CanSocialDistance,
		&p.Q1SpecializedTraining, &p.Q2Chemicals, &p.Q3ImpactOthers, &p.Q4Falls, &p.Q5Barricades,
		&p.Q6Loto, &p.Q7Lifting, &p.Q8Ergonomics, &p.Q9OtherConcerns, &p.Q10HeadInjury, &p.Q11OtherPPE,
		&hazards, &assessments, &p.LeadName, &approverName, &engineers, &comments,
		&status,
		&shareToken, &p.Revision, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = models.PlanStatus(status)
	p.ApproverName = stringPtr(approverName)
	p.Comments = stringPtr(comments)
	p.ShareToken = stringPtr(shareToken)

	p.Hazards = []string{}
	p.Engineers = []string{}
	p.Assessments = map[string]models.HazardAssessment{}
	if err := fromJSON(hazards, &p.Hazards); err != nil {
		return nil, fmt.Errorf("failed to decode hazards of plan %d: %w", p.ID, err)
	}
	if err := fromJSON(assessments, &p.Assessments); err != nil {
		return nil, fmt.Errorf("failed to decode assessments of plan %d: %w", p.ID, err)
	}
	if err := fromJSON(engineers, &p.Engineers); err != nil {
		return nil, fmt.Errorf("failed to decode engineers of plan %d: %w", p.ID, err)
	}

	return &p, nil
}

// Create inserts the plan and its creation entry in one transaction
func (r *safetyPlanRepository) Create(ctx context.Context, plan *models.SafetyPlan, entry *models.AuditLogEntry) error {
	values, err := planValues(plan)
	if err != nil {
		return err
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO safety_plans (" + strings.Join(planWriteColumns, ", ") + ", revision, created_at) " +
		"VALUES (" + placeholders(len(planWriteColumns)+2) + ") RETURNING id"
	args := append(values, 1, plan.CreatedAt)

	var id int64
	if err := tx.QueryRowContext(ctx, r.db.Rebind(query), args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create safety plan: %w", err)
	}

	entry.SafetyPlanID = id
	if err := insertAuditEntry(ctx, r.db, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit safety plan: %w", err)
	}

	plan.ID = id
	plan.Revision = 1
	return nil
}

// GetByID retrieves a safety plan by ID
func (r *safetyPlanRepository) GetByID(ctx context.Context, id int64) (*models.SafetyPlan, error) {
	plan, err := scanPlan(r.db.QueryRowContext(ctx, r.db.Rebind(planSelect+" WHERE id = ?"), id))
	if err == sql.ErrNoRows {
		return nil, models.NotFoundf("safety plan with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get safety plan: %w", err)
	}
	return plan, nil
}

// GetByShareToken retrieves a shared safety plan
func (r *safetyPlanRepository) GetByShareToken(ctx context.Context, token string) (*models.SafetyPlan, error) {
	plan, err := scanPlan(r.db.QueryRowContext(ctx, r.db.Rebind(planSelect+" WHERE share_token = ?"), token))
	if err == sql.ErrNoRows {
		return nil, models.NotFoundf("no safety plan is shared under this token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shared safety plan: %w", err)
	}
	return plan, nil
}

// List retrieves plans newest first, optionally filtered by status and group
func (r *safetyPlanRepository) List(ctx context.Context, filter models.SafetyPlanFilter) ([]models.SafetyPlan, error) {
	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Group != "" {
		where = append(where, "group_name = ?")
		args = append(args, filter.Group)
	}

	query := planSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query safety plans: %w", err)
	}
	defer rows.Close()

	plans := []models.SafetyPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan safety plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating safety plans: %w", err)
	}

	return plans, nil
}

// Update writes the plan guarded by its revision and appends the audit entry
func (r *safetyPlanRepository) Update(ctx context.Context, plan *models.SafetyPlan, expectedRevision int, entry *models.AuditLogEntry) error {
	values, err := planValues(plan)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sets := make([]string, len(planWriteColumns))
	for i, c := range planWriteColumns {
		sets[i] = c + " = ?"
	}
	query := "UPDATE safety_plans SET " + strings.Join(sets, ", ") +
		", revision = revision + 1 WHERE id = ? AND revision = ?"
	args := append(values, plan.ID, expectedRevision)

	result, err := tx.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update safety plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, r.db.Rebind("SELECT 1 FROM safety_plans WHERE id = ?"), plan.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return models.NotFoundf("safety plan with ID %d not found", plan.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to check safety plan: %w", err)
		}
		return models.Conflictf("safety plan %d was changed by someone else (expected revision %d)", plan.ID, expectedRevision)
	}

	entry.SafetyPlanID = plan.ID
	if err := insertAuditEntry(ctx, r.db, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit safety plan update: %w", err)
	}

	plan.Revision = expectedRevision + 1
	return nil
}

// SetShareToken stores the public share token of a plan
func (r *safetyPlanRepository) SetShareToken(ctx context.Context, id int64, token string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE safety_plans SET share_token = ? WHERE id = ?"), token, id)
	if err != nil {
		return fmt.Errorf("failed to share safety plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.NotFoundf("safety plan with ID %d not found", id)
	}
	return nil
}

// Count returns the number of safety plans
func (r *safetyPlanRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM safety_plans").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count safety plans: %w", err)
	}
	return count, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
