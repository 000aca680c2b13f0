package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
	"github.com/blogem/ehs-records/userctx"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// planForm returns a valid form for a single assessed hazard
func planForm(status string) *models.SafetyPlanForm {
	return &models.SafetyPlanForm{
		Group:             "Maintenance Team A",
		TaskName:          "Electrical Panel Maintenance",
		Date:              "2024-12-20",
		Location:          "Building 3 - Fab",
		Shift:             "day",
		MachineNumber:     "4052",
		Region:            "Europe - Ireland",
		System:            "EUV",
		CanSocialDistance: models.AnswerYes,
		ScreeningAnswers: models.ScreeningAnswers{
			Q1SpecializedTraining: models.AnswerYes,
			Q2Chemicals:           models.AnswerNo,
			Q3ImpactOthers:        models.AnswerNo,
			Q4Falls:               models.AnswerNo,
			Q5Barricades:          models.AnswerNo,
			Q6Loto:                models.AnswerYes,
			Q7Lifting:             models.AnswerNo,
			Q8Ergonomics:          models.AnswerNo,
			Q9OtherConcerns:       models.AnswerNo,
			Q10HeadInjury:         models.AnswerNo,
			Q11OtherPPE:           models.AnswerNo,
		},
		Hazards: []string{"Electrical Work"},
		Assessments: map[string]models.HazardAssessment{
			"Electrical Work": {Severity: 3, Likelihood: 2, Mitigation: "LOTO"},
		},
		LeadName:  "John Murphy",
		Engineers: []string{"Mike Chen"},
		Status:    status,
	}
}

// SafetyPlanServiceTestSuite runs the plan lifecycle against the in-memory store
type SafetyPlanServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repos    *repositories.Repositories
	services *Services
}

// SetupTest sets up the test suite before each test
func (suite *SafetyPlanServiceTestSuite) SetupTest() {
	suite.ctx = userctx.SetUser(context.Background(), "jmurphy")
	suite.repos = repositories.NewMemoryRepositories()
	suite.services = NewServices(suite.repos)
}

func (suite *SafetyPlanServiceTestSuite) create(status string) *PlanView {
	view, err := suite.services.SafetyPlans.Create(suite.ctx, planForm(status))
	require.NoError(suite.T(), err)
	return view
}

// TestCreate_ElectricalWork tests the summary of a single medium-risk hazard
func (suite *SafetyPlanServiceTestSuite) TestCreate_ElectricalWork() {
	view := suite.create("")

	assert.Equal(suite.T(), models.StatusPending, view.Status)
	assert.Equal(suite.T(), 1, view.Revision)
	assert.Equal(suite.T(), 6, view.Summary.OverallScore)
	assert.Equal(suite.T(), models.RiskMedium, view.Summary.OverallCategory)
	assert.Empty(suite.T(), view.Summary.ChecklistHazards)
	assert.Empty(suite.T(), view.Summary.UnmitigatedHazards)
	assert.Equal(suite.T(), "1.0", view.Version)

	require.Len(suite.T(), view.History, 1)
	entry := view.History[0]
	assert.Equal(suite.T(), models.ActionCreated, entry.Action)
	assert.Equal(suite.T(), "jmurphy", entry.PerformedBy)
	require.NotNil(suite.T(), entry.NewStatus)
	assert.Equal(suite.T(), models.StatusPending, *entry.NewStatus)
}

// TestCreate_FallRiskUnassessed tests that a hazard without assessment is unmitigated
func (suite *SafetyPlanServiceTestSuite) TestCreate_FallRiskUnassessed() {
	form := planForm("draft")
	form.Hazards = []string{"Fall Risk"}
	form.Assessments = nil

	view, err := suite.services.SafetyPlans.Create(suite.ctx, form)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Fall Risk"}, view.Summary.UnmitigatedHazards)
	assert.Equal(suite.T(), 0, view.Summary.OverallScore)
	assert.Equal(suite.T(), models.RiskLow, view.Summary.OverallCategory)
}

// TestCreate_ValidationFailure tests that invalid forms are rejected without writes
func (suite *SafetyPlanServiceTestSuite) TestCreate_ValidationFailure() {
	form := planForm("")
	form.TaskName = ""
	form.Assessments["Electrical Work"] = models.HazardAssessment{Severity: 5, Likelihood: 1}

	_, err := suite.services.SafetyPlans.Create(suite.ctx, form)

	require.Error(suite.T(), err)
	assert.True(suite.T(), models.IsValidation(err))
	count, _ := suite.repos.SafetyPlans.Count(suite.ctx)
	assert.Equal(suite.T(), 0, count)
}

// TestCreate_RejectsDecisionStatus tests that a plan cannot start approved
func (suite *SafetyPlanServiceTestSuite) TestCreate_RejectsDecisionStatus() {
	_, err := suite.services.SafetyPlans.Create(suite.ctx, planForm("approved"))

	require.Error(suite.T(), err)
	assert.True(suite.T(), models.IsValidation(err))
}

// TestCreate_DefaultsFromPreferences tests that blank fields come from the caller's preferences
func (suite *SafetyPlanServiceTestSuite) TestCreate_DefaultsFromPreferences() {
	prefs := models.DefaultPreferences("jmurphy")
	prefs.Group = "EUV Europe"
	prefs.System = "DUV"
	ctx := userctx.SetPreferences(suite.ctx, prefs)

	form := planForm("draft")
	form.Group = ""
	form.System = ""

	view, err := suite.services.SafetyPlans.Create(ctx, form)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "EUV Europe", view.Group)
	assert.Equal(suite.T(), "DUV", view.System)
}

// TestLifecycle_DraftToApproved tests the versioning of a full approval
func (suite *SafetyPlanServiceTestSuite) TestLifecycle_DraftToApproved() {
	view := suite.create("draft")

	view, err := suite.services.SafetyPlans.Transition(suite.ctx, view.ID, &models.TransitionRequest{Status: "pending"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2.0", view.Version)

	view, err = suite.services.SafetyPlans.Transition(suite.ctx, view.ID, &models.TransitionRequest{
		Status:   "approved",
		Approver: "Sarah Johnson",
		Comments: strPtr("Looks good"),
	})
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), models.StatusApproved, view.Status)
	require.NotNil(suite.T(), view.ApproverName)
	assert.Equal(suite.T(), "Sarah Johnson", *view.ApproverName)
	assert.Equal(suite.T(), "2.0", view.Version)

	require.Len(suite.T(), view.History, 3)
	assert.Equal(suite.T(), models.ActionApproved, view.History[0].Action)
	assert.Equal(suite.T(), "Sarah Johnson", view.History[0].PerformedBy)
	assert.Equal(suite.T(), models.StatusPending, *view.History[0].PreviousStatus)
	assert.Equal(suite.T(), models.ActionEdited, view.History[1].Action)
	assert.Equal(suite.T(), models.StatusDraft, *view.History[1].PreviousStatus)
	assert.Equal(suite.T(), models.ActionCreated, view.History[2].Action)

	reports, err := suite.services.Reports.ListForPlan(suite.ctx, view.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), reports, 1)
	assert.Equal(suite.T(), "v2.0", reports[0].VersionID)
}

// TestLifecycle_PendingToApproved tests that a plan created as pending is version 1 when approved
func (suite *SafetyPlanServiceTestSuite) TestLifecycle_PendingToApproved() {
	view := suite.create("pending")

	view, err := suite.services.SafetyPlans.Transition(suite.ctx, view.ID, &models.TransitionRequest{Status: "approved"})

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), view.History, 2)
	assert.Equal(suite.T(), "1.0", view.Version)
	assert.Equal(suite.T(), "jmurphy", *view.ApproverName)
}

// TestTransition_ApproverRequired tests that anonymous callers must name an approver
func (suite *SafetyPlanServiceTestSuite) TestTransition_ApproverRequired() {
	view := suite.create("pending")

	_, err := suite.services.SafetyPlans.Transition(context.Background(), view.ID, &models.TransitionRequest{Status: "rejected"})

	require.Error(suite.T(), err)
	assert.True(suite.T(), models.IsValidation(err))
}

// TestTransition_InvalidMoves tests moves the workflow forbids
func (suite *SafetyPlanServiceTestSuite) TestTransition_InvalidMoves() {
	draft := suite.create("draft")
	_, err := suite.services.SafetyPlans.Transition(suite.ctx, draft.ID, &models.TransitionRequest{Status: "approved"})
	assert.True(suite.T(), models.IsConflict(err))

	pending := suite.create("pending")
	_, err = suite.services.SafetyPlans.Transition(suite.ctx, pending.ID, &models.TransitionRequest{Status: "approved"})
	require.NoError(suite.T(), err)
	_, err = suite.services.SafetyPlans.Transition(suite.ctx, pending.ID, &models.TransitionRequest{Status: "pending"})
	assert.True(suite.T(), models.IsConflict(err))

	_, err = suite.services.SafetyPlans.Transition(suite.ctx, 999, &models.TransitionRequest{Status: "pending"})
	assert.True(suite.T(), models.IsNotFound(err))
}

// TestUpdate_ApprovedPlanIsImmutable tests that edits after approval conflict and leave no trace
func (suite *SafetyPlanServiceTestSuite) TestUpdate_ApprovedPlanIsImmutable() {
	view := suite.create("pending")
	_, err := suite.services.SafetyPlans.Transition(suite.ctx, view.ID, &models.TransitionRequest{Status: "approved"})
	require.NoError(suite.T(), err)

	form := planForm("")
	form.TaskName = "Changed after approval"
	_, err = suite.services.SafetyPlans.Update(suite.ctx, view.ID, form)

	require.Error(suite.T(), err)
	assert.True(suite.T(), models.IsConflict(err))
	entries, err := suite.services.Audit.List(suite.ctx, view.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 2)
}

// TestUpdate_RecordsFieldChanges tests that an edit stores the changed fields and bumps the version
func (suite *SafetyPlanServiceTestSuite) TestUpdate_RecordsFieldChanges() {
	view := suite.create("draft")

	form := planForm("")
	form.TaskName = "Panel replacement"
	view, err := suite.services.SafetyPlans.Update(suite.ctx, view.ID, form)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusDraft, view.Status)
	assert.Equal(suite.T(), "2.0", view.Version)
	assert.Equal(suite.T(), 2, view.Revision)
	require.Len(suite.T(), view.History, 2)
	change, ok := view.History[0].Changes["taskName"]
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "Electrical Panel Maintenance", change.Old)
	assert.Equal(suite.T(), "Panel replacement", change.New)
	assert.Nil(suite.T(), view.History[0].NewStatus)
}

// TestUpdate_NoChanges tests that an identical edit is not audited
func (suite *SafetyPlanServiceTestSuite) TestUpdate_NoChanges() {
	view := suite.create("draft")

	view, err := suite.services.SafetyPlans.Update(suite.ctx, view.ID, planForm(""))

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), view.History, 1)
	assert.Equal(suite.T(), "1.0", view.Version)
}

// TestUpdate_StaleRevision tests optimistic concurrency on edits
func (suite *SafetyPlanServiceTestSuite) TestUpdate_StaleRevision() {
	view := suite.create("draft")

	form := planForm("")
	form.TaskName = "First edit"
	form.ExpectedRevision = intPtr(1)
	_, err := suite.services.SafetyPlans.Update(suite.ctx, view.ID, form)
	require.NoError(suite.T(), err)

	form.TaskName = "Second edit from a stale copy"
	_, err = suite.services.SafetyPlans.Update(suite.ctx, view.ID, form)
	require.Error(suite.T(), err)
	assert.True(suite.T(), models.IsConflict(err))
}

// TestUpdate_ResubmitRejectedPlan tests that editing a rejected plan back to pending resubmits it
func (suite *SafetyPlanServiceTestSuite) TestUpdate_ResubmitRejectedPlan() {
	view := suite.create("pending")
	_, err := suite.services.SafetyPlans.Transition(suite.ctx, view.ID, &models.TransitionRequest{
		Status:   "rejected",
		Comments: strPtr("Add barricades"),
	})
	require.NoError(suite.T(), err)

	form := planForm("pending")
	form.Q5Barricades = models.AnswerYes
	view, err = suite.services.SafetyPlans.Update(suite.ctx, view.ID, form)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusPending, view.Status)
	assert.Equal(suite.T(), "2.0", view.Version)
	assert.Equal(suite.T(), models.StatusRejected, *view.History[0].PreviousStatus)
	assert.Equal(suite.T(), models.StatusPending, *view.History[0].NewStatus)

	reports, err := suite.services.Reports.ListForPlan(suite.ctx, view.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), reports, 2)
	assert.Equal(suite.T(), "v2.0", reports[0].VersionID)
	assert.Equal(suite.T(), "v1.0", reports[1].VersionID)

	versions := reports[0].ApprovalInfo.Versions
	require.Len(suite.T(), versions, 2)
	assert.Equal(suite.T(), models.StatusRejected, versions[0].Status)
	require.NotNil(suite.T(), versions[0].Comments)
	assert.Equal(suite.T(), "Add barricades", *versions[0].Comments)
	assert.Equal(suite.T(), models.StatusPending, versions[1].Status)
}

// TestUpdate_DecisionThroughEdit tests that approval cannot be smuggled in through an edit
func (suite *SafetyPlanServiceTestSuite) TestUpdate_DecisionThroughEdit() {
	view := suite.create("pending")

	_, err := suite.services.SafetyPlans.Update(suite.ctx, view.ID, planForm("approved"))

	require.Error(suite.T(), err)
	assert.True(suite.T(), models.IsValidation(err))
}

// TestShare tests that the share token is stable and unlocks a history-free view
func (suite *SafetyPlanServiceTestSuite) TestShare() {
	view := suite.create("draft")

	token, err := suite.services.SafetyPlans.Share(suite.ctx, view.ID)
	require.NoError(suite.T(), err)
	again, err := suite.services.SafetyPlans.Share(suite.ctx, view.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), token, again)

	shared, err := suite.services.SafetyPlans.GetShared(context.Background(), token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), view.ID, shared.ID)
	assert.Nil(suite.T(), shared.History)

	_, err = suite.services.SafetyPlans.GetShared(context.Background(), "missing")
	assert.True(suite.T(), models.IsNotFound(err))

	entries, err := suite.services.Audit.List(suite.ctx, view.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 1)
}

// TestList_Filters tests listing by status and group
func (suite *SafetyPlanServiceTestSuite) TestList_Filters() {
	suite.create("draft")
	suite.create("pending")

	all, err := suite.services.SafetyPlans.List(suite.ctx, models.SafetyPlanFilter{})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)
	assert.Equal(suite.T(), 6, all[0].OverallScore)

	pending, err := suite.services.SafetyPlans.List(suite.ctx, models.SafetyPlanFilter{Status: models.StatusPending})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), pending, 1)
	assert.Equal(suite.T(), models.StatusPending, pending[0].Status)

	none, err := suite.services.SafetyPlans.List(suite.ctx, models.SafetyPlanFilter{Group: "Nobody"})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), none)
}

// TestSafetyPlanServiceTestSuite runs the test suite
func TestSafetyPlanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SafetyPlanServiceTestSuite))
}
