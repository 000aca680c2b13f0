package services

import (
	"time"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
)

// Services holds all service instances
type Services struct {
	SafetyPlans  SafetyPlanService
	Audit        AuditService
	Reports      ReportService
	Permits      RecordService[models.Permit, models.PermitForm]
	Inspections  RecordService[models.CraneInspection, models.CraneInspectionForm]
	Calibrations RecordService[models.DraegerCalibration, models.DraegerCalibrationForm]
	Incidents    RecordService[models.Incident, models.IncidentForm]
	Documents    RecordService[models.Document, models.DocumentForm]
	Preferences  PreferencesService
	Users        UserService
	Dashboard    DashboardService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	reports := NewReportService(repos.SafetyPlans, repos.Reports)
	return &Services{
		SafetyPlans: NewSafetyPlanService(repos.SafetyPlans, repos.Audit, reports),
		Audit:       NewAuditService(repos.SafetyPlans, repos.Audit),
		Reports:     reports,
		Permits: newRecordService(repos.Permits, "permit",
			(*models.PermitForm).ToPermit, nil),
		Inspections: newRecordService(repos.Inspections, "crane inspection",
			(*models.CraneInspectionForm).ToCraneInspection, nil),
		Calibrations: newRecordService(repos.Calibrations, "Draeger calibration",
			(*models.DraegerCalibrationForm).ToCalibration, touchCalibration),
		Incidents: newRecordService(repos.Incidents, "incident",
			(*models.IncidentForm).ToIncident, nil),
		Documents: newRecordService(repos.Documents, "document",
			(*models.DocumentForm).ToDocument, nil),
		Preferences: NewPreferencesService(repos.Preferences),
		Users:       NewUserService(repos.Users),
		Dashboard:   NewDashboardService(repos),
	}
}

func touchCalibration(c *models.DraegerCalibration) {
	c.UpdatedAt = time.Now().UTC()
}
