package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFields(t *testing.T) {
	before := planFromForm(t, nil)
	after := before.Clone()
	after.TaskName = "Panel swap"
	after.Engineers = append(after.Engineers, "Mike Chen")
	after.Status = StatusApproved
	after.Revision++

	changes, err := DiffFields(before, after)
	require.NoError(t, err)

	assert.Len(t, changes, 2)
	assert.Equal(t, FieldChange{Old: "Electrical Panel Maintenance", New: "Panel swap"}, changes["taskName"])
	assert.Equal(t, []interface{}{"Mike Chen", "Lisa Park"}, changes["engineers"].Old)
	assert.Equal(t, []interface{}{"Mike Chen", "Lisa Park", "Mike Chen"}, changes["engineers"].New)
	assert.NotContains(t, changes, "status")
	assert.NotContains(t, changes, "revision")
}

func TestDiffFieldsAssessments(t *testing.T) {
	before := planFromForm(t, nil)
	after := before.Clone()
	a := after.Assessments["Electrical Work"]
	a.Severity = 4
	after.Assessments["Electrical Work"] = a

	changes, err := DiffFields(before, after)
	require.NoError(t, err)

	require.Contains(t, changes, "assessments")
	assert.Equal(t, 3, before.Assessments["Electrical Work"].Severity)
}

func TestDiffFieldsUnchanged(t *testing.T) {
	before := planFromForm(t, nil)

	changes, err := DiffFields(before, before.Clone())
	require.NoError(t, err)
	assert.Empty(t, changes)
}
