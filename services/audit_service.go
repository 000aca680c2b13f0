package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
	"github.com/blogem/ehs-records/userctx"
)

// AuditService interface defines access to the audit trail
type AuditService interface {
	Append(ctx context.Context, form *models.AuditLogForm) (*models.AuditLogEntry, error)
	List(ctx context.Context, planID int64) ([]models.AuditLogEntry, error)
	Version(ctx context.Context, planID int64) (int, error)
}

// auditService implements AuditService interface
type auditService struct {
	plans repositories.SafetyPlanRepository
	audit repositories.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(plans repositories.SafetyPlanRepository, audit repositories.AuditRepository) AuditService {
	return &auditService{plans: plans, audit: audit}
}

// Append records a manual entry. The trail has no update or delete, and approved
// plans take no further entries.
func (s *auditService) Append(ctx context.Context, form *models.AuditLogForm) (*models.AuditLogEntry, error) {
	entry, err := form.ToEntry(userctx.GetUser(ctx))
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetByID(ctx, entry.SafetyPlanID)
	if err != nil {
		return nil, err
	}
	switch {
	case plan.Status == models.StatusApproved:
		return nil, models.Conflictf("safety plan %d is approved and its trail is closed", plan.ID)
	case entry.Action == models.ActionCreated:
		return nil, models.Conflictf("safety plan %d already has its created entry", plan.ID)
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to append audit entry")
	}
	auditEntryMetric.WithLabelValues(string(entry.Action)).Inc()
	return entry, nil
}

// List returns the plan's entries newest first
func (s *auditService) List(ctx context.Context, planID int64) ([]models.AuditLogEntry, error) {
	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		return nil, err
	}
	return s.audit.ListByPlan(ctx, planID)
}

// Version derives the display version of a plan from its trail
func (s *auditService) Version(ctx context.Context, planID int64) (int, error) {
	entries, err := s.List(ctx, planID)
	if err != nil {
		return 0, err
	}
	return models.PlanVersion(entries), nil
}
