package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// tableSpec maps a flat record type onto its table. Both backends use it.
type tableSpec[T any] struct {
	name    string
	label   string
	columns []string
	// values returns the column values in columns order
	values func(*T) []any
	// dest returns scan targets for id, columns and created_at
	dest    func(*T) []any
	id      func(*T) *int64
	created func(*T) *time.Time
}

// sqlRecordRepository implements RecordRepository over one table
type sqlRecordRepository[T any] struct {
	db   *database.DB
	spec tableSpec[T]
}

func newSQLRecordRepository[T any](db *database.DB, spec tableSpec[T]) RecordRepository[T] {
	return &sqlRecordRepository[T]{db: db, spec: spec}
}

func (r *sqlRecordRepository[T]) selectQuery() string {
	return "SELECT id, " + strings.Join(r.spec.columns, ", ") + ", created_at FROM " + r.spec.name
}

// Create inserts a record and sets its ID
func (r *sqlRecordRepository[T]) Create(ctx context.Context, record *T) error {
	created := r.spec.created(record)
	if created.IsZero() {
		*created = time.Now().UTC()
	}

	query := "INSERT INTO " + r.spec.name + " (" + strings.Join(r.spec.columns, ", ") + ", created_at) " +
		"VALUES (" + placeholders(len(r.spec.columns)+1) + ") RETURNING id"
	args := append(r.spec.values(record), *created)

	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), args...).Scan(r.spec.id(record)); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.spec.label, err)
	}
	return nil
}

// GetByID retrieves a record by ID
func (r *sqlRecordRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var record T
	err := r.db.QueryRowContext(ctx, r.db.Rebind(r.selectQuery()+" WHERE id = ?"), id).Scan(r.spec.dest(&record)...)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundf("%s with ID %d not found", r.spec.label, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.spec.label, err)
	}
	return &record, nil
}

// List retrieves all records, newest first
func (r *sqlRecordRepository[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, r.selectQuery()+" ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", r.spec.label, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var record T
		if err := rows.Scan(r.spec.dest(&record)...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.spec.label, err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s records: %w", r.spec.label, err)
	}

	return records, nil
}

// Update replaces the stored record. The creation time is kept.
func (r *sqlRecordRepository[T]) Update(ctx context.Context, id int64, record *T) error {
	sets := make([]string, len(r.spec.columns))
	for i, c := range r.spec.columns {
		sets[i] = c + " = ?"
	}
	query := "UPDATE " + r.spec.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args := append(r.spec.values(record), id)

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.spec.label, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.NotFoundf("%s with ID %d not found", r.spec.label, id)
	}

	err = r.db.QueryRowContext(ctx, r.db.Rebind("SELECT created_at FROM "+r.spec.name+" WHERE id = ?"), id).
		Scan(r.spec.created(record))
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", r.spec.label, err)
	}

	*r.spec.id(record) = id
	return nil
}

// Count returns the number of records
func (r *sqlRecordRepository[T]) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.spec.name).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", r.spec.label, err)
	}
	return count, nil
}

var permitTable = tableSpec[models.Permit]{
	name:  "permits",
	label: "permit",
	columns: []string{
		"date", "submitter", "manager", "location", "work_type", "work_description",
		"spq1", "spq2", "spq3", "spq4", "spq5", "authority_name", "status",
	},
	values: func(p *models.Permit) []any {
		return []any{
			p.Date, p.Submitter, p.Manager, p.Location, p.WorkType, p.WorkDescription,
			p.Spq1, p.Spq2, p.Spq3, p.Spq4, p.Spq5, p.AuthorityName, p.Status,
		}
	},
	dest: func(p *models.Permit) []any {
		return []any{
			&p.ID,
			&p.Date, &p.Submitter, &p.Manager, &p.Location, &p.WorkType, &p.WorkDescription,
			&p.Spq1, &p.Spq2, &p.Spq3, &p.Spq4, &p.Spq5, &p.AuthorityName, &p.Status,
			&p.CreatedAt,
		}
	},
	id:      func(p *models.Permit) *int64 { return &p.ID },
	created: func(p *models.Permit) *time.Time { return &p.CreatedAt },
}

var craneInspectionTable = tableSpec[models.CraneInspection]{
	name:    "crane_inspections",
	label:   "crane inspection",
	columns: []string{"inspector", "buddy_inspector", "bay", "machine", "date", "q1", "q2", "q3", "status"},
	values: func(c *models.CraneInspection) []any {
		return []any{c.Inspector, c.BuddyInspector, c.Bay, c.Machine, c.Date, c.Q1, c.Q2, c.Q3, c.Status}
	},
	dest: func(c *models.CraneInspection) []any {
		return []any{
			&c.ID,
			&c.Inspector, &c.BuddyInspector, &c.Bay, &c.Machine, &c.Date, &c.Q1, &c.Q2, &c.Q3, &c.Status,
			&c.CreatedAt,
		}
	},
	id:      func(c *models.CraneInspection) *int64 { return &c.ID },
	created: func(c *models.CraneInspection) *time.Time { return &c.CreatedAt },
}

var calibrationTable = tableSpec[models.DraegerCalibration]{
	name:    "draeger_calibrations",
	label:   "Draeger calibration",
	columns: []string{"nc_12", "serial_number", "calibration_date", "calibrated_by", "updated_at"},
	values: func(d *models.DraegerCalibration) []any {
		return []any{d.NC12, d.SerialNumber, d.CalibrationDate, d.CalibratedBy, d.UpdatedAt}
	},
	dest: func(d *models.DraegerCalibration) []any {
		return []any{&d.ID, &d.NC12, &d.SerialNumber, &d.CalibrationDate, &d.CalibratedBy, &d.UpdatedAt, &d.CreatedAt}
	},
	id:      func(d *models.DraegerCalibration) *int64 { return &d.ID },
	created: func(d *models.DraegerCalibration) *time.Time { return &d.CreatedAt },
}

var incidentTable = tableSpec[models.Incident]{
	name:    "incidents",
	label:   "incident",
	columns: []string{"date", "type", "location", "description", "severity", "assigned_investigator", "status"},
	values: func(i *models.Incident) []any {
		return []any{i.Date, i.Type, i.Location, i.Description, i.Severity, i.AssignedInvestigator, i.Status}
	},
	dest: func(i *models.Incident) []any {
		return []any{
			&i.ID,
			&i.Date, &i.Type, &i.Location, &i.Description, &i.Severity, &i.AssignedInvestigator, &i.Status,
			&i.CreatedAt,
		}
	},
	id:      func(i *models.Incident) *int64 { return &i.ID },
	created: func(i *models.Incident) *time.Time { return &i.CreatedAt },
}

var documentTable = tableSpec[models.Document]{
	name:    "documents",
	label:   "document",
	columns: []string{"title", "category", "description", "sharepoint_url"},
	values: func(d *models.Document) []any {
		return []any{d.Title, d.Category, d.Description, d.SharepointURL}
	},
	dest: func(d *models.Document) []any {
		return []any{&d.ID, &d.Title, &d.Category, &d.Description, &d.SharepointURL, &d.CreatedAt}
	},
	id:      func(d *models.Document) *int64 { return &d.ID },
	created: func(d *models.Document) *time.Time { return &d.CreatedAt },
}
