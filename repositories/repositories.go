package repositories

import (
	"context"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// SafetyPlanRepository stores safety plans. Every content or status change is written
// together with its audit entry so the trail never disagrees with the plan.
type SafetyPlanRepository interface {
	// Create inserts the plan with revision 1 and its creation entry
	Create(ctx context.Context, plan *models.SafetyPlan, entry *models.AuditLogEntry) error
	GetByID(ctx context.Context, id int64) (*models.SafetyPlan, error)
	GetByShareToken(ctx context.Context, token string) (*models.SafetyPlan, error)
	List(ctx context.Context, filter models.SafetyPlanFilter) ([]models.SafetyPlan, error)
	// Update replaces the plan when its stored revision equals expectedRevision, bumps the
	// revision and appends entry. A stale revision returns models.ErrConflict.
	Update(ctx context.Context, plan *models.SafetyPlan, expectedRevision int, entry *models.AuditLogEntry) error
	SetShareToken(ctx context.Context, id int64, token string) error
	Count(ctx context.Context) (int, error)
}

// AuditRepository is the append-only audit trail
type AuditRepository interface {
	// Append fails with models.ErrNotFound when the plan does not exist
	Append(ctx context.Context, entry *models.AuditLogEntry) error
	// ListByPlan returns entries newest first
	ListByPlan(ctx context.Context, planID int64) ([]models.AuditLogEntry, error)
}

// ReportRepository stores report snapshots, one per plan version
type ReportRepository interface {
	// Create fails with models.ErrConflict when the plan already has this version
	Create(ctx context.Context, report *models.ReportSnapshot) error
	ListByPlan(ctx context.Context, planID int64) ([]models.ReportSnapshot, error)
	List(ctx context.Context) ([]models.ReportSnapshot, error)
}

// RecordRepository is plain CRUD over one collection
type RecordRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	// List returns records newest first
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, record *T) error
	Count(ctx context.Context) (int, error)
}

// PreferencesRepository stores one preferences row per user
type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

// UserRepository stores local accounts
type UserRepository interface {
	// Create fails with models.ErrConflict when the username is taken
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// Repositories struct holds all repository interfaces
type Repositories struct {
	SafetyPlans  SafetyPlanRepository
	Audit        AuditRepository
	Reports      ReportRepository
	Permits      RecordRepository[models.Permit]
	Inspections  RecordRepository[models.CraneInspection]
	Calibrations RecordRepository[models.DraegerCalibration]
	Incidents    RecordRepository[models.Incident]
	Documents    RecordRepository[models.Document]
	Preferences  PreferencesRepository
	Users        UserRepository
}

// NewSQLRepositories creates repositories backed by a relational database
func NewSQLRepositories(db *database.DB) *Repositories {
	return &Repositories{
		SafetyPlans:  NewSafetyPlanRepository(db),
		Audit:        NewAuditRepository(db),
		Reports:      NewReportRepository(db),
		Permits:      newSQLRecordRepository(db, permitTable),
		Inspections:  newSQLRecordRepository(db, craneInspectionTable),
		Calibrations: newSQLRecordRepository(db, calibrationTable),
		Incidents:    newSQLRecordRepository(db, incidentTable),
		Documents:    newSQLRecordRepository(db, documentTable),
		Preferences:  NewPreferencesRepository(db),
		Users:        NewUserRepository(db),
	}
}

// NewMemoryRepositories creates repositories that keep everything in process memory.
// All collections share one lock, so plan and audit writes stay atomic.
func NewMemoryRepositories() *Repositories {
	store := newMemoryStore()
	return &Repositories{
		SafetyPlans:  &memorySafetyPlanRepository{store: store},
		Audit:        &memoryAuditRepository{store: store},
		Reports:      &memoryReportRepository{store: store},
		Permits:      newMemTable(store, permitTable),
		Inspections:  newMemTable(store, craneInspectionTable),
		Calibrations: newMemTable(store, calibrationTable),
		Incidents:    newMemTable(store, incidentTable),
		Documents:    newMemTable(store, documentTable),
		Preferences:  &memoryPreferencesRepository{store: store},
		Users:        &memoryUserRepository{store: store},
	}
}
