package services

import (
	"context"
	"sort"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
)

// ReportService interface defines report snapshot operations
type ReportService interface {
	// Snapshot writes the report of the plan's current version. history is newest first.
	Snapshot(ctx context.Context, plan *models.SafetyPlan, history []models.AuditLogEntry) (*models.ReportSnapshot, error)
	ListForPlan(ctx context.Context, planID int64) ([]models.ReportSnapshot, error)
	List(ctx context.Context) ([]models.ReportSnapshot, error)
}

// reportService implements ReportService interface
type reportService struct {
	plans   repositories.SafetyPlanRepository
	reports repositories.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(plans repositories.SafetyPlanRepository, reports repositories.ReportRepository) ReportService {
	return &reportService{plans: plans, reports: reports}
}

func (s *reportService) Snapshot(ctx context.Context, plan *models.SafetyPlan, history []models.AuditLogEntry) (*models.ReportSnapshot, error) {
	summary := models.Summarize(plan)
	versionID := models.ReportVersionID(models.PlanVersion(history))

	report := &models.ReportSnapshot{
		SafetyPlanID: plan.ID,
		VersionID:    versionID,
		JobDetails: models.JobDetailsReport{
			SafetyPlanID:  plan.ID,
			VersionID:     versionID,
			Group:         plan.Group,
			TaskName:      plan.TaskName,
			Date:          plan.Date,
			Location:      plan.Location,
			Shift:         plan.Shift,
			MachineNumber: plan.MachineNumber,
			Region:        plan.Region,
			System:        plan.System,
			LeadName:      plan.LeadName,
			ApproverName:  plan.ApproverName,
			Engineers:     plan.Engineers,
			Comments:      plan.Comments,
		},
		SafetyRiskAssessment: models.SafetyRiskReport{
			SafetyQuestions: models.SafetyQuestions{
				ScreeningAnswers:  plan.ScreeningAnswers,
				CanSocialDistance: plan.CanSocialDistance,
			},
			Hazards:         plan.Hazards,
			Assessments:     plan.Assessments,
			OverallScore:    summary.OverallScore,
			OverallCategory: summary.OverallCategory,
		},
		SRBInfo: models.SRBReport{
			Required:            summary.SRB.Required,
			HazardsRequiringSRB: summary.SRB.Hazards,
			ChecklistsRequired:  summary.SRB.ChecklistTypes,
		},
		ApprovalInfo: approvalInfo(plan.Status, history),
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, errors.Wrapf(err, "failed to snapshot %s of safety plan %d", versionID, plan.ID)
	}

	reportSnapshotMetric.Inc()
	log.WithFields(log.Fields{"plan": plan.ID, "version": versionID}).Info("report snapshot written")
	return report, nil
}

// approvalInfo replays the trail oldest first. Every edit opens a new version and a
// decision closes the latest one.
func approvalInfo(current models.PlanStatus, history []models.AuditLogEntry) models.ApprovalInfo {
	info := models.ApprovalInfo{CurrentStatus: current, Versions: []models.ApprovalVersion{}}

	number := 0
	for i := len(history) - 1; i >= 0; i-- {
		e := history[i]
		switch e.Action {
		case models.ActionCreated, models.ActionEdited:
			number++
			status := current
			if e.NewStatus != nil {
				status = *e.NewStatus
			} else if n := len(info.Versions); n > 0 {
				status = info.Versions[n-1].Status
			}
			info.Versions = append(info.Versions, models.ApprovalVersion{
				VersionID:   models.ReportVersionID(number),
				Status:      status,
				SubmittedBy: e.PerformedBy,
				SubmittedAt: e.CreatedAt,
			})
		case models.ActionApproved, models.ActionRejected:
			if len(info.Versions) == 0 {
				continue
			}
			v := &info.Versions[len(info.Versions)-1]
			by, at := e.PerformedBy, e.CreatedAt
			v.ApprovedBy = &by
			v.ApprovedAt = &at
			v.Comments = e.Comments
			if e.NewStatus != nil {
				v.Status = *e.NewStatus
			}
		}
	}
	return info
}

// ListForPlan returns the plan's snapshots, newest version first
func (s *reportService) ListForPlan(ctx context.Context, planID int64) ([]models.ReportSnapshot, error) {
	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		return nil, err
	}
	reports, err := s.reports.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	sortByVersion(reports)
	return reports, nil
}

// List returns every snapshot, newest first
func (s *reportService) List(ctx context.Context) ([]models.ReportSnapshot, error) {
	return s.reports.List(ctx)
}

func sortByVersion(reports []models.ReportSnapshot) {
	sort.SliceStable(reports, func(i, j int) bool {
		vi, erri := version.NewVersion(reports[i].VersionID)
		vj, errj := version.NewVersion(reports[j].VersionID)
		if erri != nil || errj != nil {
			return reports[i].VersionID > reports[j].VersionID
		}
		return vi.GreaterThan(vj)
	})
}
