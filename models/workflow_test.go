package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	allowed := [][2]PlanStatus{
		{StatusDraft, StatusPending},
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusRejected, StatusPending},
	}
	for _, tr := range allowed {
		assert.NoError(t, ValidateTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]PlanStatus{
		{StatusDraft, StatusApproved},
		{StatusDraft, StatusRejected},
		{StatusPending, StatusDraft},
		{StatusRejected, StatusApproved},
		{StatusPending, StatusPending},
	}
	for _, tr := range denied {
		err := ValidateTransition(tr[0], tr[1])
		assert.True(t, IsConflict(err), "%s -> %s should conflict, got %v", tr[0], tr[1], err)
	}
}

func TestApprovedIsFinal(t *testing.T) {
	for _, to := range []PlanStatus{StatusDraft, StatusPending, StatusApproved, StatusRejected} {
		assert.True(t, IsConflict(ValidateTransition(StatusApproved, to)))
	}
	assert.False(t, StatusApproved.CanEdit())
	assert.True(t, StatusRejected.CanEdit())
}

func TestParsePlanStatus(t *testing.T) {
	s, err := ParsePlanStatus("rejected")
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, s)

	_, err = ParsePlanStatus("Approved")
	assert.Error(t, err)
}

func TestActionForTransition(t *testing.T) {
	assert.Equal(t, ActionApproved, ActionForTransition(StatusApproved))
	assert.Equal(t, ActionRejected, ActionForTransition(StatusRejected))
	assert.Equal(t, ActionEdited, ActionForTransition(StatusPending))
}

func TestPlanVersion(t *testing.T) {
	entries := []AuditLogEntry{{Action: ActionCreated}}
	assert.Equal(t, 1, PlanVersion(entries))
	assert.Equal(t, "1.0", FormatVersion(PlanVersion(entries)))

	entries = append(entries, AuditLogEntry{Action: ActionEdited}, AuditLogEntry{Action: ActionApproved}, AuditLogEntry{Action: ActionEdited})
	assert.Equal(t, 3, PlanVersion(entries))
	assert.Equal(t, "v3.0", ReportVersionID(PlanVersion(entries)))
}
