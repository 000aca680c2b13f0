package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

func setupTestDB(t *testing.T) *Repositories {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Initialize test database using the actual migration system
	db, err := database.InitializeDatabase(context.Background(), database.DialectSQLite, dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSQLRepositories(db)
}

// RepositoryContractSuite checks behaviour both storage backends must share
type RepositoryContractSuite struct {
	suite.Suite
	newRepos func(t *testing.T) *Repositories
	repos    *Repositories
	ctx      context.Context
}

func (s *RepositoryContractSuite) SetupTest() {
	s.repos = s.newRepos(s.T())
	s.ctx = context.Background()
}

func TestMemoryRepositories(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{newRepos: func(*testing.T) *Repositories { return NewMemoryRepositories() }})
}

func TestSQLiteRepositories(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{newRepos: setupTestDB})
}

func testPlan() *models.SafetyPlan {
	comments := "Routine maintenance"
	return &models.SafetyPlan{
		Group:             "Maintenance Team A",
		TaskName:          "Electrical Panel Maintenance",
		Date:              "2024-12-20",
		Location:          "Building 3 - Fab",
		Shift:             "day",
		MachineNumber:     "4052",
		Region:            models.DefaultRegion,
		System:            "EUV",
		CanSocialDistance: models.AnswerYes,
		ScreeningAnswers: models.ScreeningAnswers{
			Q1SpecializedTraining: "yes", Q2Chemicals: "no", Q3ImpactOthers: "yes", Q4Falls: "no",
			Q5Barricades: "yes", Q6Loto: "yes", Q7Lifting: "no", Q8Ergonomics: "no",
			Q9OtherConcerns: "no", Q10HeadInjury: "no", Q11OtherPPE: "yes",
		},
		Hazards: []string{"Electrical Work", "Floor/Barricades"},
		Assessments: map[string]models.HazardAssessment{
			"Electrical Work":  {Severity: 3, Likelihood: 2, Mitigation: "Proper LOTO procedures", RequiresPtW: true},
			"Floor/Barricades": {Severity: 2, Likelihood: 2, Mitigation: "Area cordoned off"},
		},
		LeadName:  "John Murphy",
		Engineers: []string{"Mike Chen", "Lisa Park", "Mike Chen"},
		Comments:  &comments,
		Status:    models.StatusPending,
	}
}

func (s *RepositoryContractSuite) createPlan() *models.SafetyPlan {
	plan := testPlan()
	entry := &models.AuditLogEntry{Action: models.ActionCreated, PerformedBy: "john", NewStatus: models.StatusPtr(models.StatusPending)}
	s.Require().NoError(s.repos.SafetyPlans.Create(s.ctx, plan, entry))
	return plan
}

func (s *RepositoryContractSuite) TestSafetyPlanCreateAndGet() {
	plan := s.createPlan()
	s.NotZero(plan.ID)
	s.Equal(1, plan.Revision)

	got, err := s.repos.SafetyPlans.GetByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal(plan.TaskName, got.TaskName)
	s.Equal([]string{"Electrical Work", "Floor/Barricades"}, got.Hazards)
	s.Equal([]string{"Mike Chen", "Lisa Park", "Mike Chen"}, got.Engineers)
	s.Equal(plan.Assessments, got.Assessments)
	s.Equal(models.StatusPending, got.Status)
	s.Require().NotNil(got.Comments)
	s.Equal("Routine maintenance", *got.Comments)
	s.Nil(got.ApproverName)
	s.Nil(got.ShareToken)
	s.WithinDuration(plan.CreatedAt, got.CreatedAt, time.Second)

	entries, err := s.repos.Audit.ListByPlan(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(models.ActionCreated, entries[0].Action)
	s.Equal(plan.ID, entries[0].SafetyPlanID)
	s.Nil(entries[0].PreviousStatus)
}

func (s *RepositoryContractSuite) TestSafetyPlanGetMissing() {
	_, err := s.repos.SafetyPlans.GetByID(s.ctx, 999)
	s.True(models.IsNotFound(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestSafetyPlanUpdateChecksRevision() {
	plan := s.createPlan()

	plan.TaskName = "Panel swap"
	entry := &models.AuditLogEntry{
		Action:      models.ActionEdited,
		PerformedBy: "john",
		Changes:     map[string]models.FieldChange{"taskName": {Old: "Electrical Panel Maintenance", New: "Panel swap"}},
	}
	s.Require().NoError(s.repos.SafetyPlans.Update(s.ctx, plan, 1, entry))
	s.Equal(2, plan.Revision)

	stale := &models.AuditLogEntry{Action: models.ActionEdited, PerformedBy: "jane"}
	err := s.repos.SafetyPlans.Update(s.ctx, plan, 1, stale)
	s.True(models.IsConflict(err), "got %v", err)

	got, err := s.repos.SafetyPlans.GetByID(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal("Panel swap", got.TaskName)
	s.Equal(2, got.Revision)

	entries, err := s.repos.Audit.ListByPlan(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(models.ActionEdited, entries[0].Action)
	s.Equal("Panel swap", entries[0].Changes["taskName"].New)
	s.Equal(models.ActionCreated, entries[1].Action)
}

func (s *RepositoryContractSuite) TestSafetyPlanUpdateMissing() {
	plan := testPlan()
	plan.ID = 42
	err := s.repos.SafetyPlans.Update(s.ctx, plan, 1, &models.AuditLogEntry{Action: models.ActionEdited, PerformedBy: "x"})
	s.True(models.IsNotFound(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestSafetyPlanListFilters() {
	first := s.createPlan()
	second := testPlan()
	second.Group = "Safety Team"
	second.Status = models.StatusDraft
	s.Require().NoError(s.repos.SafetyPlans.Create(s.ctx, second, &models.AuditLogEntry{Action: models.ActionCreated, PerformedBy: "x"}))

	all, err := s.repos.SafetyPlans.List(s.ctx, models.SafetyPlanFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second.ID, all[0].ID)
	s.Equal(first.ID, all[1].ID)

	drafts, err := s.repos.SafetyPlans.List(s.ctx, models.SafetyPlanFilter{Status: models.StatusDraft})
	s.Require().NoError(err)
	s.Require().Len(drafts, 1)
	s.Equal(second.ID, drafts[0].ID)

	team, err := s.repos.SafetyPlans.List(s.ctx, models.SafetyPlanFilter{Group: "Maintenance Team A"})
	s.Require().NoError(err)
	s.Require().Len(team, 1)
	s.Equal(first.ID, team[0].ID)

	count, err := s.repos.SafetyPlans.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *RepositoryContractSuite) TestSafetyPlanShareToken() {
	plan := s.createPlan()

	s.Require().NoError(s.repos.SafetyPlans.SetShareToken(s.ctx, plan.ID, "token-1"))
	shared, err := s.repos.SafetyPlans.GetByShareToken(s.ctx, "token-1")
	s.Require().NoError(err)
	s.Equal(plan.ID, shared.ID)

	_, err = s.repos.SafetyPlans.GetByShareToken(s.ctx, "nope")
	s.True(models.IsNotFound(err))

	s.True(models.IsNotFound(s.repos.SafetyPlans.SetShareToken(s.ctx, 999, "token-2")))
}

func (s *RepositoryContractSuite) TestAuditAppendOnly() {
	plan := s.createPlan()

	for i := 0; i < 3; i++ {
		entry := &models.AuditLogEntry{SafetyPlanID: plan.ID, Action: models.ActionEdited, PerformedBy: "auditor"}
		s.Require().NoError(s.repos.Audit.Append(s.ctx, entry))
		s.NotZero(entry.ID)
	}

	entries, err := s.repos.Audit.ListByPlan(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Len(entries, 4)
	for i := 1; i < len(entries); i++ {
		s.Greater(entries[i-1].ID, entries[i].ID, "entries must be newest first")
	}

	err = s.repos.Audit.Append(s.ctx, &models.AuditLogEntry{SafetyPlanID: 999, Action: models.ActionEdited, PerformedBy: "x"})
	s.True(models.IsNotFound(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestReportSnapshotsAreWrittenOnce() {
	plan := s.createPlan()
	report := &models.ReportSnapshot{
		SafetyPlanID: plan.ID,
		VersionID:    "v1.0",
		JobDetails:   models.JobDetailsReport{SafetyPlanID: plan.ID, VersionID: "v1.0", TaskName: plan.TaskName, Engineers: plan.Engineers},
		SRBInfo:      models.SRBReport{Required: false, HazardsRequiringSRB: []string{}, ChecklistsRequired: []string{}},
		ApprovalInfo: models.ApprovalInfo{CurrentStatus: models.StatusPending},
	}
	s.Require().NoError(s.repos.Reports.Create(s.ctx, report))
	s.NotZero(report.ID)

	dup := *report
	dup.ID = 0
	s.True(models.IsConflict(s.repos.Reports.Create(s.ctx, &dup)))

	reports, err := s.repos.Reports.ListByPlan(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	s.Equal(plan.TaskName, reports[0].JobDetails.TaskName)
	s.Equal(models.StatusPending, reports[0].ApprovalInfo.CurrentStatus)

	all, err := s.repos.Reports.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *RepositoryContractSuite) TestRecordCRUD() {
	permit := &models.Permit{
		Date: "2024-12-15", Submitter: "John Murphy", Manager: "Sarah O'Brien",
		Spq1: "no", Spq2: "no", Spq3: "yes", Spq4: "no", Spq5: "no", Status: models.PermitDraft,
	}
	s.Require().NoError(s.repos.Permits.Create(s.ctx, permit))
	s.NotZero(permit.ID)

	got, err := s.repos.Permits.GetByID(s.ctx, permit.ID)
	s.Require().NoError(err)
	s.Equal("yes", got.Spq3)

	changed := *got
	changed.Status = models.PermitApproved
	changed.CreatedAt = time.Time{}
	s.Require().NoError(s.repos.Permits.Update(s.ctx, permit.ID, &changed))
	s.Equal(permit.ID, changed.ID)
	s.WithinDuration(permit.CreatedAt, changed.CreatedAt, time.Second)

	got, err = s.repos.Permits.GetByID(s.ctx, permit.ID)
	s.Require().NoError(err)
	s.Equal(models.PermitApproved, got.Status)

	s.True(models.IsNotFound(s.repos.Permits.Update(s.ctx, 999, &changed)))
	_, err = s.repos.Permits.GetByID(s.ctx, 999)
	s.True(models.IsNotFound(err))

	s.Require().NoError(s.repos.Documents.Create(s.ctx, &models.Document{Title: "A", Category: "C", Description: "D", SharepointURL: "https://x/1"}))
	s.Require().NoError(s.repos.Documents.Create(s.ctx, &models.Document{Title: "B", Category: "C", Description: "D", SharepointURL: "https://x/2"}))
	docs, err := s.repos.Documents.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal("B", docs[0].Title)

	count, err := s.repos.Documents.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *RepositoryContractSuite) TestOtherRecordTables() {
	s.Require().NoError(s.repos.Inspections.Create(s.ctx, &models.CraneInspection{
		Inspector: "A", BuddyInspector: "B", Bay: "Bay A", Machine: "Crane-001", Date: "2024-01-02",
		Q1: "yes", Q2: "no", Q3: "no", Status: models.InspectionCompleted,
	}))
	s.Require().NoError(s.repos.Calibrations.Create(s.ctx, &models.DraegerCalibration{
		NC12: "NC1000", SerialNumber: "SN010000", CalibrationDate: "2024-02-01", CalibratedBy: "Emma", UpdatedAt: time.Now().UTC(),
	}))
	s.Require().NoError(s.repos.Incidents.Create(s.ctx, &models.Incident{
		Date: "2024-03-01", Type: "Near Miss", Location: "Fab 34", Description: "Dropped tool",
		Severity: 2, AssignedInvestigator: "Tom", Status: models.IncidentOpen,
	}))

	inspections, err := s.repos.Inspections.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(inspections, 1)
	s.Equal(models.InspectionCompleted, inspections[0].Status)

	calibrations, err := s.repos.Calibrations.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(calibrations, 1)
	s.Equal("SN010000", calibrations[0].SerialNumber)

	incidents, err := s.repos.Incidents.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(incidents, 1)
	s.Equal(2, incidents[0].Severity)
}

func (s *RepositoryContractSuite) TestPreferencesUpsert() {
	_, err := s.repos.Preferences.GetByUserID(s.ctx, "user_1")
	s.True(models.IsNotFound(err))

	prefs := models.DefaultPreferences("user_1")
	s.Require().NoError(s.repos.Preferences.Upsert(s.ctx, &prefs))
	firstID := prefs.ID

	prefs.System = "EUV"
	prefs.IsFirstTime = false
	s.Require().NoError(s.repos.Preferences.Upsert(s.ctx, &prefs))
	s.Equal(firstID, prefs.ID)

	got, err := s.repos.Preferences.GetByUserID(s.ctx, "user_1")
	s.Require().NoError(err)
	s.Equal("EUV", got.System)
	s.False(got.IsFirstTime)
	s.Equal(models.DefaultPrefSite, got.Site)
}

func (s *RepositoryContractSuite) TestUsers() {
	user := &models.User{ID: "u-1", Username: "admin", PasswordHash: "hash"}
	s.Require().NoError(s.repos.Users.Create(s.ctx, user))
	s.True(models.IsConflict(s.repos.Users.Create(s.ctx, &models.User{ID: "u-2", Username: "admin", PasswordHash: "x"})))

	got, err := s.repos.Users.GetByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal("hash", got.PasswordHash)

	count, err := s.repos.Users.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(3))
	require.Equal(t, "?", placeholders(1))
}
