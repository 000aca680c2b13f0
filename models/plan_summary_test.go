package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFromForm(t *testing.T, mutate func(f *SafetyPlanForm)) *SafetyPlan {
	t.Helper()
	form := validPlanForm()
	if mutate != nil {
		mutate(&form)
	}
	plan, err := form.ToPlan()
	require.NoError(t, err)
	return plan
}

func TestSummarizeElectricalWork(t *testing.T) {
	plan := planFromForm(t, nil)

	s := Summarize(plan)

	require.Len(t, s.Hazards, 1)
	assert.Equal(t, 6, s.Hazards[0].Score)
	assert.Equal(t, RiskMedium, s.Hazards[0].Category)
	assert.Equal(t, []string{}, s.ChecklistHazards)
	assert.Equal(t, []string{}, s.PtwHazards)
	assert.Equal(t, []string{}, s.UnmitigatedHazards)
	assert.Equal(t, 6, s.OverallScore)
	assert.False(t, s.SRB.Required)
}

func TestSummarizeMissingAssessment(t *testing.T) {
	plan := planFromForm(t, func(f *SafetyPlanForm) {
		f.Hazards = []string{"Fall Risk"}
		f.Assessments = nil
	})

	s := Summarize(plan)

	assert.Equal(t, []string{"Fall Risk"}, s.UnmitigatedHazards)
	require.Len(t, s.Hazards, 1)
	assert.Equal(t, 0, s.Hazards[0].Score)
	assert.False(t, s.Hazards[0].Assessed)
	assert.Equal(t, "Working at Height", s.Hazards[0].Training)
}

func TestSummarizeRequirementsKeepSelectionOrder(t *testing.T) {
	plan := planFromForm(t, func(f *SafetyPlanForm) {
		f.Hazards = []string{"Hot Work", "Chemical Exposure", "Fall Risk"}
		f.Assessments = map[string]HazardAssessment{
			"Fall Risk":         {Severity: 4, Likelihood: 3, Mitigation: "Harness", RequiresChecklist: true, ChecklistType: strPtr("Working at Height Checklist"), RequiresPtW: true},
			"Chemical Exposure": {Severity: 2, Likelihood: 2, Mitigation: "", RequiresChecklist: true},
			"Hot Work":          {Severity: 2, Likelihood: 1, Mitigation: "Fire watch", RequiresPtW: true},
		}
	})

	s := Summarize(plan)

	assert.Equal(t, []string{"Chemical Exposure", "Fall Risk"}, s.ChecklistHazards)
	assert.Equal(t, []string{"Hot Work", "Fall Risk"}, s.PtwHazards)
	assert.Equal(t, []string{"Chemical Exposure"}, s.UnmitigatedHazards)
	assert.Equal(t, 12, s.OverallScore)
	assert.Equal(t, RiskExtreme, s.OverallCategory)
	assert.True(t, s.SRB.Required)
	assert.Equal(t, []string{"Fall Risk"}, s.SRB.Hazards)
	assert.Equal(t, []string{"Working at Height Checklist"}, s.SRB.ChecklistTypes)
}

func TestSummarizeQuestionPartition(t *testing.T) {
	plan := planFromForm(t, nil)

	s := Summarize(plan)

	flagged := make([]string, 0, len(s.FlaggedQuestions))
	for _, q := range s.FlaggedQuestions {
		flagged = append(flagged, q.Key)
	}
	assert.Equal(t, []string{"q1_specializedTraining", "q3_impactOthers", "q5_barricades", "q6_loto", "q11_otherPPE"}, flagged)
	assert.Len(t, s.ClearedQuestions, len(ScreeningQuestions)-len(flagged))
	assert.Equal(t, "q2_chemicals", s.ClearedQuestions[0].Key)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	plan := planFromForm(t, func(f *SafetyPlanForm) {
		f.Hazards = []string{"Electrical Work", "Noise Exposure"}
	})

	assert.Equal(t, Summarize(plan), Summarize(plan))
}
