package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Dialect names the SQL flavour behind a connection. The value doubles as the database/sql driver name.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a storage name to a dialect
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql":
		return DialectPostgres, nil
	}
	return "", errors.Errorf("unsupported database dialect %q", name)
}

// DB is a connection pool that knows its dialect
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the database and verifies the connection
func Open(dialect Dialect, dsn string) (*DB, error) {
	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if dialect == DialectSQLite {
		// A single writer avoids SQLITE_BUSY between a transaction and other requests
		conn.SetMaxOpenConns(1)
		if _, err = conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "failed to enable foreign keys")
		}
	}

	return &DB{DB: conn, Dialect: dialect}, nil
}

// InitializeDatabase opens the database connection and runs migrations
func InitializeDatabase(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	db, err := Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	log.WithField("dialect", dialect).Info("database initialized")
	return db, nil
}

// Rebind rewrites ? placeholders into the dialect's bind variables
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
