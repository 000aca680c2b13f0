package database

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// Migration represents a database migration
type Migration struct {
	Version  string
	Filename string
	SQL      string
}

// RunMigrations executes all pending migrations for the connection's dialect
func RunMigrations(ctx context.Context, db *DB) error {
	if err := createMigrationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create migrations table")
	}

	migrations, err := LoadMigrations(db.Dialect)
	if err != nil {
		return errors.Wrap(err, "failed to load migrations")
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to get applied migrations")
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		log.WithField("migration", migration.Filename).Info("running migration")

		if err := runMigration(ctx, db, migration); err != nil {
			return errors.Wrapf(err, "failed to run migration %s", migration.Filename)
		}
	}

	return nil
}

// PendingMigrations lists migrations not yet applied
func PendingMigrations(ctx context.Context, db *DB) ([]Migration, error) {
	if err := createMigrationsTable(ctx, db); err != nil {
		return nil, errors.Wrap(err, "failed to create migrations table")
	}
	migrations, err := LoadMigrations(db.Dialect)
	if err != nil {
		return nil, err
	}
	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(ctx context.Context, db *DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

// LoadMigrations reads the embedded migration files of a dialect in filename order
func LoadMigrations(dialect Dialect) ([]Migration, error) {
	dir := path.Join("migrations", migrationDir(dialect))
	files, err := fs.Glob(migrationFiles, path.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no migration files found in %s", dir)
	}

	var migrations []Migration
	for _, file := range files {
		content, err := fs.ReadFile(migrationFiles, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read migration file %s", file)
		}

		filename := path.Base(file)
		migrations = append(migrations, Migration{
			Version:  strings.TrimSuffix(filename, ".sql"),
			Filename: filename,
			SQL:      string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func migrationDir(dialect Dialect) string {
	if dialect == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// getAppliedMigrations returns the set of already applied migration versions
func getAppliedMigrations(ctx context.Context, db *DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions[version] = true
	}

	return versions, rows.Err()
}

// runMigration executes a single migration and records it in one transaction
func runMigration(ctx context.Context, db *DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, db.Rebind("INSERT INTO migrations (version) VALUES (?)"), migration.Version); err != nil {
		return errors.Wrap(err, "failed to record migration")
	}
	return tx.Commit()
}
