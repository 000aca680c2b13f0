package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
	"github.com/blogem/ehs-records/userctx"
)

// PlanView is a stored plan together with everything derived from it
type PlanView struct {
	*models.SafetyPlan
	Summary models.PlanSummary     `json:"summary"`
	Version string                 `json:"version"`
	History []models.AuditLogEntry `json:"history,omitempty"`
}

// PlanListItem is a plan row in a listing
type PlanListItem struct {
	models.SafetyPlan
	OverallScore       int                 `json:"overallScore"`
	OverallCategory    models.RiskCategory `json:"overallCategory"`
	UnmitigatedHazards []string            `json:"unmitigatedHazards"`
}

// SafetyPlanService interface defines the safety plan lifecycle
type SafetyPlanService interface {
	Create(ctx context.Context, form *models.SafetyPlanForm) (*PlanView, error)
	Get(ctx context.Context, id int64) (*PlanView, error)
	List(ctx context.Context, filter models.SafetyPlanFilter) ([]PlanListItem, error)
	Update(ctx context.Context, id int64, form *models.SafetyPlanForm) (*PlanView, error)
	Transition(ctx context.Context, id int64, req *models.TransitionRequest) (*PlanView, error)
	Share(ctx context.Context, id int64) (string, error)
	GetShared(ctx context.Context, token string) (*PlanView, error)
}

// safetyPlanService implements SafetyPlanService interface
type safetyPlanService struct {
	plans   repositories.SafetyPlanRepository
	audit   repositories.AuditRepository
	reports ReportService
}

// NewSafetyPlanService creates a new safety plan service
func NewSafetyPlanService(plans repositories.SafetyPlanRepository, audit repositories.AuditRepository, reports ReportService) SafetyPlanService {
	return &safetyPlanService{
		plans:   plans,
		audit:   audit,
		reports: reports,
	}
}

// Create validates the form, stores the plan with its creation entry and
// snapshots it when it is submitted straight away
func (s *safetyPlanService) Create(ctx context.Context, form *models.SafetyPlanForm) (*PlanView, error) {
	form.ApplyPreferences(userctx.GetPreferences(ctx))

	plan, err := form.ToPlan()
	if err != nil {
		return nil, err
	}
	if !plan.Status.IsInitial() {
		var errs models.ValidationErrors
		errs.Add("status", "A new plan must start as draft or pending")
		return nil, errs
	}

	entry := &models.AuditLogEntry{
		Action:      models.ActionCreated,
		PerformedBy: userctx.GetUser(ctx),
		NewStatus:   models.StatusPtr(plan.Status),
	}
	if err := s.plans.Create(ctx, plan, entry); err != nil {
		return nil, errors.Wrap(err, "failed to create safety plan")
	}

	planCreatedMetric.WithLabelValues(string(plan.Status)).Inc()
	auditEntryMetric.WithLabelValues(string(entry.Action)).Inc()
	log.WithFields(log.Fields{"plan": plan.ID, "status": plan.Status, "user": entry.PerformedBy}).Info("safety plan created")

	return s.afterWrite(ctx, plan)
}

// Get retrieves a plan with its summary, version and history
func (s *safetyPlanService) Get(ctx context.Context, id int64) (*PlanView, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, plan)
}

// List retrieves plans newest first with their overall risk
func (s *safetyPlanService) List(ctx context.Context, filter models.SafetyPlanFilter) ([]PlanListItem, error) {
	plans, err := s.plans.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PlanListItem, 0, len(plans))
	for i := range plans {
		summary := models.Summarize(&plans[i])
		items = append(items, PlanListItem{
			SafetyPlan:         plans[i],
			OverallScore:       summary.OverallScore,
			OverallCategory:    summary.OverallCategory,
			UnmitigatedHazards: summary.UnmitigatedHazards,
		})
	}
	return items, nil
}

// Update edits a plan that is not approved. Moving a draft or rejected plan to pending
// in the same edit resubmits it.
func (s *safetyPlanService) Update(ctx context.Context, id int64, form *models.SafetyPlanForm) (*PlanView, error) {
	current, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanEdit() {
		return nil, models.Conflictf("safety plan %d is approved and can no longer be edited", id)
	}
	if err := checkRevision(current, form.ExpectedRevision); err != nil {
		return nil, err
	}

	next, err := form.ToPlan()
	if err != nil {
		return nil, err
	}
	if form.Status == "" {
		next.Status = current.Status
	}
	if next.Status != current.Status {
		if next.Status.IsDecision() {
			var errs models.ValidationErrors
			errs.Add("status", "Approval decisions must be made through a transition")
			return nil, errs
		}
		if err := models.ValidateTransition(current.Status, next.Status); err != nil {
			return nil, err
		}
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.ShareToken = current.ShareToken
	next.Revision = current.Revision

	changes, err := models.DiffFields(current, next)
	if err != nil {
		return nil, errors.Wrap(err, "failed to diff safety plan")
	}
	if len(changes) == 0 && next.Status == current.Status {
		return s.view(ctx, current)
	}

	entry := &models.AuditLogEntry{
		Action:      models.ActionEdited,
		PerformedBy: userctx.GetUser(ctx),
		Changes:     changes,
	}
	if next.Status != current.Status {
		entry.PreviousStatus = models.StatusPtr(current.Status)
		entry.NewStatus = models.StatusPtr(next.Status)
	}

	if err := s.plans.Update(ctx, next, current.Revision, entry); err != nil {
		return nil, errors.Wrap(err, "failed to update safety plan")
	}

	auditEntryMetric.WithLabelValues(string(entry.Action)).Inc()
	if entry.NewStatus != nil {
		planTransitionMetric.WithLabelValues(string(current.Status), string(next.Status)).Inc()
	}
	log.WithFields(log.Fields{"plan": id, "fields": len(changes), "user": entry.PerformedBy}).Info("safety plan edited")

	return s.afterWrite(ctx, next)
}

// Transition moves a plan through the workflow
func (s *safetyPlanService) Transition(ctx context.Context, id int64, req *models.TransitionRequest) (*PlanView, error) {
	if errs := req.Validate(); errs.HasErrors() {
		return nil, errs
	}
	to := models.PlanStatus(req.Status)

	current, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkRevision(current, req.ExpectedRevision); err != nil {
		return nil, err
	}
	if err := models.ValidateTransition(current.Status, to); err != nil {
		return nil, err
	}

	next := current.Clone()
	next.Status = to

	performedBy := userctx.GetUser(ctx)
	if to.IsDecision() {
		approver := strings.TrimSpace(req.Approver)
		if approver == "" && userctx.IsAuthenticated(ctx) {
			approver = performedBy
		}
		if approver == "" {
			var errs models.ValidationErrors
			errs.Add("approver", "An approver is required to approve or reject a plan")
			return nil, errs
		}
		next.ApproverName = &approver
		performedBy = approver
	}

	changes, err := models.DiffFields(current, next)
	if err != nil {
		return nil, errors.Wrap(err, "failed to diff safety plan")
	}

	entry := &models.AuditLogEntry{
		Action:         models.ActionForTransition(to),
		PerformedBy:    performedBy,
		PreviousStatus: models.StatusPtr(current.Status),
		NewStatus:      models.StatusPtr(to),
		Comments:       req.Comments,
		Changes:        changes,
	}
	if err := s.plans.Update(ctx, next, current.Revision, entry); err != nil {
		return nil, errors.Wrap(err, "failed to transition safety plan")
	}

	auditEntryMetric.WithLabelValues(string(entry.Action)).Inc()
	planTransitionMetric.WithLabelValues(string(current.Status), string(to)).Inc()
	log.WithFields(log.Fields{"plan": id, "from": current.Status, "to": to, "user": performedBy}).Info("safety plan transitioned")

	return s.afterWrite(ctx, next)
}

// Share returns the plan's public token, creating one on first use
func (s *safetyPlanService) Share(ctx context.Context, id int64) (string, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if plan.ShareToken != nil {
		return *plan.ShareToken, nil
	}

	token := uuid.NewString()
	if err := s.plans.SetShareToken(ctx, id, token); err != nil {
		return "", errors.Wrap(err, "failed to share safety plan")
	}
	log.WithFields(log.Fields{"plan": id, "user": userctx.GetUser(ctx)}).Info("safety plan shared")
	return token, nil
}

// GetShared retrieves a plan by its public token. History is left out.
func (s *safetyPlanService) GetShared(ctx context.Context, token string) (*PlanView, error) {
	if strings.TrimSpace(token) == "" {
		return nil, models.NotFoundf("no safety plan is shared under this token")
	}
	plan, err := s.plans.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	view, err := s.view(ctx, plan)
	if err != nil {
		return nil, err
	}
	view.History = nil
	return view, nil
}

// afterWrite builds the fresh view and snapshots versions that land in pending.
// The plan is already committed here, so a failed snapshot is logged, not returned.
func (s *safetyPlanService) afterWrite(ctx context.Context, plan *models.SafetyPlan) (*PlanView, error) {
	view, err := s.view(ctx, plan)
	if err != nil {
		return nil, err
	}
	if plan.Status == models.StatusPending {
		if _, err := s.reports.Snapshot(ctx, plan, view.History); err != nil {
			log.WithError(err).WithFields(log.Fields{"plan": plan.ID, "version": view.Version}).
				Error("safety plan saved but its report snapshot failed")
		}
	}
	return view, nil
}

func (s *safetyPlanService) view(ctx context.Context, plan *models.SafetyPlan) (*PlanView, error) {
	history, err := s.audit.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &PlanView{
		SafetyPlan: plan,
		Summary:    models.Summarize(plan),
		Version:    models.FormatVersion(models.PlanVersion(history)),
		History:    history,
	}, nil
}

func checkRevision(plan *models.SafetyPlan, expected *int) error {
	if expected != nil && *expected != plan.Revision {
		return models.Conflictf("safety plan %d is at revision %d, not %d", plan.ID, plan.Revision, *expected)
	}
	return nil
}
