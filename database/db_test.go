package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg := &DB{Dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.Rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite := &DB{Dialect: DialectSQLite}
	assert.Equal(t, "SELECT * FROM t WHERE a = ?", lite.Rebind("SELECT * FROM t WHERE a = ?"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgresql")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	d, err = ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestLoadMigrationsMatchAcrossDialects(t *testing.T) {
	lite, err := LoadMigrations(DialectSQLite)
	require.NoError(t, err)
	pg, err := LoadMigrations(DialectPostgres)
	require.NoError(t, err)

	require.Equal(t, len(lite), len(pg))
	for i := range lite {
		assert.Equal(t, lite[i].Version, pg[i].Version)
	}
	assert.Equal(t, "001_create_safety_plans", lite[0].Version)
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	ctx := context.Background()
	db, err := InitializeDatabase(ctx, DialectSQLite, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))

	pending, err := PendingMigrations(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
