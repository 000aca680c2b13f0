package config

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/repositories"
)

// BackendMemory keeps everything in process memory. The relational backends are named
// after their database.Dialect.
const BackendMemory = "memory"

// StorageFlags selects and connects the storage backend
type StorageFlags struct {
	Backend string
	DSN     string
}

func NewStorageFlags() *StorageFlags {
	return &StorageFlags{
		Backend: envString("EHS_STORAGE", string(database.DialectSQLite)),
		DSN:     envString("EHS_DATABASE_DSN", "ehs_records.db"),
	}
}

func (f *StorageFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Backend, "storage", f.Backend, "Storage backend (memory, sqlite3, postgres)")
	fs.StringVar(&f.DSN, "database-dsn", f.DSN, "Database DSN, a file path for sqlite3")
}

func (f *StorageFlags) Validate() error {
	if f.Backend == BackendMemory {
		return nil
	}
	if _, err := database.ParseDialect(f.Backend); err != nil {
		return err
	}
	if f.DSN == "" {
		return errors.New("--database-dsn is required for a relational backend")
	}
	return nil
}

// GetRepositories connects the configured backend and runs pending migrations.
// The returned DB is nil for the memory backend.
func (f *StorageFlags) GetRepositories(ctx context.Context) (*repositories.Repositories, *database.DB, error) {
	if f.Backend == BackendMemory {
		log.Warn("using in-memory storage, records are lost on exit")
		return repositories.NewMemoryRepositories(), nil, nil
	}

	db, err := f.GetDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewSQLRepositories(db), db, nil
}

// GetDB connects the relational backend and migrates it
func (f *StorageFlags) GetDB(ctx context.Context) (*database.DB, error) {
	dialect, err := database.ParseDialect(f.Backend)
	if err != nil {
		return nil, err
	}
	db, err := database.InitializeDatabase(ctx, dialect, f.DSN)
	if err != nil {
		log.WithError(err).Error("could not connect to db")
		return nil, err
	}
	return db, nil
}
