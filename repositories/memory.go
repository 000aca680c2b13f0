package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blogem/ehs-records/models"
)

// memoryStore holds every in-memory collection behind one lock
type memoryStore struct {
	mu sync.RWMutex

	plans    map[int64]*models.SafetyPlan
	planSeq  int64
	audit    []models.AuditLogEntry
	auditSeq int64

	reports   []models.ReportSnapshot
	reportSeq int64

	prefs   map[string]models.UserPreferences
	prefSeq int64
	users   map[string]models.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		plans: make(map[int64]*models.SafetyPlan),
		prefs: make(map[string]models.UserPreferences),
		users: make(map[string]models.User),
	}
}

// appendAudit must be called with mu held for writing
func (s *memoryStore) appendAudit(entry *models.AuditLogEntry) {
	s.auditSeq++
	entry.ID = s.auditSeq
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	stored := *entry
	stored.Changes = copyChanges(entry.Changes)
	s.audit = append(s.audit, stored)
}

func copyChanges(c map[string]models.FieldChange) map[string]models.FieldChange {
	if c == nil {
		return nil
	}
	out := make(map[string]models.FieldChange, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

type memorySafetyPlanRepository struct {
	store *memoryStore
}

func (r *memorySafetyPlanRepository) Create(_ context.Context, plan *models.SafetyPlan, entry *models.AuditLogEntry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.planSeq++
	plan.ID = s.planSeq
	plan.Revision = 1
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	s.plans[plan.ID] = plan.Clone()

	entry.SafetyPlanID = plan.ID
	s.appendAudit(entry)
	return nil
}

func (r *memorySafetyPlanRepository) GetByID(_ context.Context, id int64) (*models.SafetyPlan, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, models.NotFoundf("safety plan with ID %d not found", id)
	}
	return plan.Clone(), nil
}

func (r *memorySafetyPlanRepository) GetByShareToken(_ context.Context, token string) (*models.SafetyPlan, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, plan := range s.plans {
		if plan.ShareToken != nil && *plan.ShareToken == token {
			return plan.Clone(), nil
		}
	}
	return nil, models.NotFoundf("no safety plan is shared under this token")
}

func (r *memorySafetyPlanRepository) List(_ context.Context, filter models.SafetyPlanFilter) ([]models.SafetyPlan, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := []models.SafetyPlan{}
	for _, plan := range s.plans {
		if filter.Status != "" && plan.Status != filter.Status {
			continue
		}
		if filter.Group != "" && plan.Group != filter.Group {
			continue
		}
		plans = append(plans, *plan.Clone())
	}
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.After(plans[j].CreatedAt)
		}
		return plans[i].ID > plans[j].ID
	})
	return plans, nil
}

func (r *memorySafetyPlanRepository) Update(_ context.Context, plan *models.SafetyPlan, expectedRevision int, entry *models.AuditLogEntry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.plans[plan.ID]
	if !ok {
		return models.NotFoundf("safety plan with ID %d not found", plan.ID)
	}
	if current.Revision != expectedRevision {
		return models.Conflictf("safety plan %d was changed by someone else (expected revision %d)", plan.ID, expectedRevision)
	}

	stored := plan.Clone()
	stored.Revision = expectedRevision + 1
	stored.CreatedAt = current.CreatedAt
	stored.ShareToken = current.ShareToken
	s.plans[plan.ID] = stored

	entry.SafetyPlanID = plan.ID
	s.appendAudit(entry)

	plan.Revision = stored.Revision
	return nil
}

func (r *memorySafetyPlanRepository) SetShareToken(_ context.Context, id int64, token string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, ok := s.plans[id]
	if !ok {
		return models.NotFoundf("safety plan with ID %d not found", id)
	}
	plan.ShareToken = &token
	return nil
}

func (r *memorySafetyPlanRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.plans), nil
}

type memoryAuditRepository struct {
	store *memoryStore
}

func (r *memoryAuditRepository) Append(_ context.Context, entry *models.AuditLogEntry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[entry.SafetyPlanID]; !ok {
		return models.NotFoundf("safety plan with ID %d not found", entry.SafetyPlanID)
	}
	s.appendAudit(entry)
	return nil
}

func (r *memoryAuditRepository) ListByPlan(_ context.Context, planID int64) ([]models.AuditLogEntry, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []models.AuditLogEntry{}
	// Appends are in id order, so walking backwards yields newest first
	for i := len(s.audit) - 1; i >= 0; i-- {
		if s.audit[i].SafetyPlanID == planID {
			e := s.audit[i]
			e.Changes = copyChanges(e.Changes)
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type memoryReportRepository struct {
	store *memoryStore
}

func (r *memoryReportRepository) Create(_ context.Context, report *models.ReportSnapshot) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reports {
		if existing.SafetyPlanID == report.SafetyPlanID && existing.VersionID == report.VersionID {
			return models.Conflictf("report %s of safety plan %d already exists", report.VersionID, report.SafetyPlanID)
		}
	}

	s.reportSeq++
	report.ID = s.reportSeq
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, *report)
	return nil
}

func (r *memoryReportRepository) ListByPlan(_ context.Context, planID int64) ([]models.ReportSnapshot, error) {
	return r.list(func(rep *models.ReportSnapshot) bool { return rep.SafetyPlanID == planID }), nil
}

func (r *memoryReportRepository) List(_ context.Context) ([]models.ReportSnapshot, error) {
	return r.list(func(*models.ReportSnapshot) bool { return true }), nil
}

func (r *memoryReportRepository) list(keep func(*models.ReportSnapshot) bool) []models.ReportSnapshot {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := []models.ReportSnapshot{}
	for i := len(s.reports) - 1; i >= 0; i-- {
		if keep(&s.reports[i]) {
			reports = append(reports, s.reports[i])
		}
	}
	return reports
}

// memTable implements RecordRepository for flat records
type memTable[T any] struct {
	store *memoryStore
	spec  tableSpec[T]
	rows  map[int64]T
	seq   int64
}

func newMemTable[T any](store *memoryStore, spec tableSpec[T]) RecordRepository[T] {
	return &memTable[T]{store: store, spec: spec, rows: make(map[int64]T)}
}

func (t *memTable[T]) Create(_ context.Context, record *T) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.seq++
	*t.spec.id(record) = t.seq
	if created := t.spec.created(record); created.IsZero() {
		*created = time.Now().UTC()
	}
	t.rows[t.seq] = *record
	return nil
}

func (t *memTable[T]) GetByID(_ context.Context, id int64) (*T, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	record, ok := t.rows[id]
	if !ok {
		return nil, models.NotFoundf("%s with ID %d not found", t.spec.label, id)
	}
	return &record, nil
}

func (t *memTable[T]) List(_ context.Context) ([]T, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	records := make([]T, 0, len(ids))
	for _, id := range ids {
		records = append(records, t.rows[id])
	}
	return records, nil
}

func (t *memTable[T]) Update(_ context.Context, id int64, record *T) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return models.NotFoundf("%s with ID %d not found", t.spec.label, id)
	}
	*t.spec.id(record) = id
	*t.spec.created(record) = *t.spec.created(&current)
	t.rows[id] = *record
	return nil
}

func (t *memTable[T]) Count(_ context.Context) (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return len(t.rows), nil
}

type memoryPreferencesRepository struct {
	store *memoryStore
}

func (r *memoryPreferencesRepository) GetByUserID(_ context.Context, userID string) (*models.UserPreferences, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.prefs[userID]
	if !ok {
		return nil, models.NotFoundf("no preferences saved for user %s", userID)
	}
	return &p, nil
}

func (r *memoryPreferencesRepository) Upsert(_ context.Context, prefs *models.UserPreferences) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if current, ok := s.prefs[prefs.UserID]; ok {
		prefs.ID = current.ID
		prefs.CreatedAt = current.CreatedAt
	} else {
		s.prefSeq++
		prefs.ID = s.prefSeq
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now
	s.prefs[prefs.UserID] = *prefs
	return nil
}

type memoryUserRepository struct {
	store *memoryStore
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return models.Conflictf("username %s is already taken", user.Username)
	}
	s.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[username]
	if !ok {
		return nil, models.NotFoundf("user %s not found", username)
	}
	return &user, nil
}

func (r *memoryUserRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.users), nil
}
