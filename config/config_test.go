package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageFlags(t *testing.T) {
	t.Setenv("EHS_STORAGE", "memory")
	f := NewStorageFlags()
	assert.Equal(t, BackendMemory, f.Backend)
	assert.NoError(t, f.Validate())

	repos, db, err := f.GetRepositories(t.Context())
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.NotNil(t, repos.SafetyPlans)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--storage", "oracle"}))
	assert.Error(t, f.Validate())

	require.NoError(t, fs.Parse([]string{"--storage", "sqlite3", "--database-dsn", ""}))
	assert.Error(t, f.Validate())
}

func TestStorageFlags_SQLite(t *testing.T) {
	f := &StorageFlags{Backend: "sqlite3", DSN: filepath.Join(t.TempDir(), "ehs.db")}
	require.NoError(t, f.Validate())

	repos, db, err := f.GetRepositories(t.Context())
	require.NoError(t, err)
	defer db.Close()

	count, err := repos.SafetyPlans.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAuthFlags(t *testing.T) {
	t.Setenv("EHS_AUTH_ENABLED", "true")
	t.Setenv("OIDC_DOMAIN", "login.example.com")
	t.Setenv("OIDC_CLIENT_ID", "")

	f := NewAuthFlags()
	assert.True(t, f.Enabled)
	assert.Error(t, f.Validate())

	f.OpenID.Domain = ""
	assert.NoError(t, f.Validate())
}

func TestServerFlags(t *testing.T) {
	t.Setenv("PORT", "9090")
	f := NewServerFlags()
	assert.Equal(t, ":9090", f.ListenAddr)
	assert.NoError(t, f.Validate())

	f.MetricsAddr = ":9090"
	assert.Error(t, f.Validate())
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
