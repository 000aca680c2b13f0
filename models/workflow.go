package models

import "fmt"

// PlanStatus is the workflow state of a safety plan
type PlanStatus string

const (
	StatusDraft    PlanStatus = "draft"
	StatusPending  PlanStatus = "pending"
	StatusApproved PlanStatus = "approved"
	StatusRejected PlanStatus = "rejected"
)

// allowedTransitions maps a status to the statuses it may move to
var allowedTransitions = map[PlanStatus][]PlanStatus{
	StatusDraft:    {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusPending},
	StatusApproved: nil,
}

// ParsePlanStatus converts a raw string into a known status
func ParsePlanStatus(s string) (PlanStatus, error) {
	switch PlanStatus(s) {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return PlanStatus(s), nil
	}
	return "", fmt.Errorf("status must be one of: draft, pending, approved, rejected")
}

// IsInitial reports whether a plan may be created in this status
func (s PlanStatus) IsInitial() bool {
	return s == StatusDraft || s == StatusPending
}

// IsDecision reports whether reaching this status is an approver decision
func (s PlanStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanEdit reports whether field edits are allowed. Approved plans are immutable.
func (s PlanStatus) CanEdit() bool {
	return s != StatusApproved
}

// ValidateTransition returns ErrConflict for a move the workflow does not allow
func ValidateTransition(from, to PlanStatus) error {
	if from == StatusApproved {
		return Conflictf("plan is approved and can no longer change")
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return Conflictf("cannot move plan from %s to %s", from, to)
}

// ActionForTransition picks the audit action recorded for a status move
func ActionForTransition(to PlanStatus) AuditAction {
	switch to {
	case StatusApproved:
		return ActionApproved
	case StatusRejected:
		return ActionRejected
	default:
		return ActionEdited
	}
}

// TransitionRequest asks for a plan to move to a new status
type TransitionRequest struct {
	Status           string  `json:"status"`
	Approver         string  `json:"approver"`
	Comments         *string `json:"comments"`
	ExpectedRevision *int    `json:"expectedRevision,omitempty"`
}

// Validate validates the transition request. Approver identity is checked by the service
// since it may come from the session instead of the body.
func (r *TransitionRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.Status == "" {
		errs.Add("status", "Status is required")
	} else if _, err := ParsePlanStatus(r.Status); err != nil {
		errs.Add("status", err.Error())
	}
	return errs
}
