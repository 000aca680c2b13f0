package models

import (
	"fmt"
	"time"
)

// AuditAction is the kind of lifecycle event recorded against a plan
type AuditAction string

const (
	ActionCreated  AuditAction = "created"
	ActionEdited   AuditAction = "edited"
	ActionApproved AuditAction = "approved"
	ActionRejected AuditAction = "rejected"
)

// ParseAuditAction converts a raw string into a known action
func ParseAuditAction(s string) (AuditAction, error) {
	switch AuditAction(s) {
	case ActionCreated, ActionEdited, ActionApproved, ActionRejected:
		return AuditAction(s), nil
	}
	return "", fmt.Errorf("action must be one of: created, edited, approved, rejected")
}

// FieldChange holds the old and new JSON value of one changed plan field
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// AuditLogEntry is one immutable lifecycle event on a safety plan
type AuditLogEntry struct {
	ID             int64                  `json:"id"`
	SafetyPlanID   int64                  `json:"safetyPlanId"`
	Action         AuditAction            `json:"action"`
	PerformedBy    string                 `json:"performedBy"`
	PreviousStatus *PlanStatus            `json:"previousStatus"`
	NewStatus      *PlanStatus            `json:"newStatus"`
	Comments       *string                `json:"comments"`
	Changes        map[string]FieldChange `json:"changes,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// StatusPtr is a small helper for the optional status fields
func StatusPtr(s PlanStatus) *PlanStatus {
	return &s
}

// PlanVersion is 1 plus the number of edited entries
func PlanVersion(entries []AuditLogEntry) int {
	version := 1
	for _, e := range entries {
		if e.Action == ActionEdited {
			version++
		}
	}
	return version
}

// FormatVersion renders a version for display, e.g. "3.0"
func FormatVersion(version int) string {
	return fmt.Sprintf("%d.0", version)
}

// ReportVersionID is the identifier of a report snapshot, e.g. "v3.0"
func ReportVersionID(version int) string {
	return "v" + FormatVersion(version)
}

// AuditLogForm is the body of a manual audit append
type AuditLogForm struct {
	SafetyPlanID   int64   `json:"safetyPlanId"`
	Action         string  `json:"action"`
	PerformedBy    string  `json:"performedBy"`
	PreviousStatus *string `json:"previousStatus"`
	NewStatus      *string `json:"newStatus"`
	Comments       *string `json:"comments"`
}

// Validate validates the audit log form data
func (f *AuditLogForm) Validate() ValidationErrors {
	var errs ValidationErrors

	if f.SafetyPlanID <= 0 {
		errs.Add("safetyPlanId", "Safety plan ID is required")
	}
	if _, err := ParseAuditAction(f.Action); err != nil {
		errs.Add("action", err.Error())
	}
	for field, s := range map[string]*string{"previousStatus": f.PreviousStatus, "newStatus": f.NewStatus} {
		if s == nil {
			continue
		}
		if _, err := ParsePlanStatus(*s); err != nil {
			errs.Add(field, err.Error())
		}
	}

	// decisions always record the status pair
	if action := AuditAction(f.Action); action == ActionApproved || action == ActionRejected {
		if f.PreviousStatus == nil {
			errs.Add("previousStatus", "Previous status is required for "+f.Action+" entries")
		}
		if f.NewStatus == nil {
			errs.Add("newStatus", "New status is required for "+f.Action+" entries")
		} else if *f.NewStatus != f.Action {
			errs.Add("newStatus", "New status of "+f.Action+" entries must be "+f.Action)
		}
	}

	return errs
}

// ToEntry validates the form and builds an entry. performedBy falls back to actor.
func (f *AuditLogForm) ToEntry(actor string) (*AuditLogEntry, error) {
	if errs := f.Validate(); errs.HasErrors() {
		return nil, errs
	}

	entry := &AuditLogEntry{
		SafetyPlanID: f.SafetyPlanID,
		Action:       AuditAction(f.Action),
		PerformedBy:  withDefault(f.PerformedBy, actor),
		Comments:     trimmedOrNil(f.Comments),
	}
	if f.PreviousStatus != nil {
		entry.PreviousStatus = StatusPtr(PlanStatus(*f.PreviousStatus))
	}
	if f.NewStatus != nil {
		entry.NewStatus = StatusPtr(PlanStatus(*f.NewStatus))
	}
	return entry, nil
}
