package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report snapshot repository
func NewReportRepository(db *database.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create stores a snapshot. A version is written once per plan.
func (r *reportRepository) Create(ctx context.Context, report *models.ReportSnapshot) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT 1 FROM report_list WHERE safety_plan_id = ? AND version_id = ?"),
		report.SafetyPlanID, report.VersionID,
	).Scan(&exists)
	if err == nil {
		return models.Conflictf("report %s of safety plan %d already exists", report.VersionID, report.SafetyPlanID)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check report snapshot: %w", err)
	}

	jobDetails, err := toJSON(report.JobDetails)
	if err != nil {
		return fmt.Errorf("failed to encode job details: %w", err)
	}
	riskReport, err := toJSON(report.SafetyRiskAssessment)
	if err != nil {
		return fmt.Errorf("failed to encode risk assessment: %w", err)
	}
	srbInfo, err := toJSON(report.SRBInfo)
	if err != nil {
		return fmt.Errorf("failed to encode SRB info: %w", err)
	}
	approvalInfo, err := toJSON(report.ApprovalInfo)
	if err != nil {
		return fmt.Errorf("failed to encode approval info: %w", err)
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO report_list (safety_plan_id, version_id, job_details, safety_risk_assessment, srb_info, approval_info, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, r.db.Rebind(query),
		report.SafetyPlanID,
		report.VersionID,
		jobDetails,
		riskReport,
		srbInfo,
		approvalInfo,
		report.CreatedAt,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("failed to create report snapshot: %w", err)
	}
	return nil
}

// ListByPlan retrieves the snapshots of one plan
func (r *reportRepository) ListByPlan(ctx context.Context, planID int64) ([]models.ReportSnapshot, error) {
	return r.query(ctx, " WHERE safety_plan_id = ?", planID)
}

// List retrieves all snapshots
func (r *reportRepository) List(ctx context.Context) ([]models.ReportSnapshot, error) {
	return r.query(ctx, "")
}

func (r *reportRepository) query(ctx context.Context, where string, args ...any) ([]models.ReportSnapshot, error) {
	query := "SELECT id, safety_plan_id, version_id, job_details, safety_risk_assessment, srb_info, approval_info, created_at " +
		"FROM report_list" + where + " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report snapshots: %w", err)
	}
	defer rows.Close()

	reports := []models.ReportSnapshot{}
	for rows.Next() {
		var report models.ReportSnapshot
		var jobDetails, riskReport, srbInfo, approvalInfo string

		err := rows.Scan(
			&report.ID,
			&report.SafetyPlanID,
			&report.VersionID,
			&jobDetails,
			&riskReport,
			&srbInfo,
			&approvalInfo,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report snapshot: %w", err)
		}

		for _, col := range []struct {
			raw  string
			dest any
		}{
			{jobDetails, &report.JobDetails},
			{riskReport, &report.SafetyRiskAssessment},
			{srbInfo, &report.SRBInfo},
			{approvalInfo, &report.ApprovalInfo},
		} {
			if err := fromJSON(col.raw, col.dest); err != nil {
				return nil, fmt.Errorf("failed to decode report snapshot %d: %w", report.ID, err)
			}
		}

		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report snapshots: %w", err)
	}

	return reports, nil
}
