package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load_MissingFileGivesDefaults(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_AllSections(t *testing.T) {
	// Setup
	path := writeConfig(t, `
[store]
backend = "git"
dir = "/var/lib/tense"
namespace = "me"
remote = "backup"

[calendar]
timezone = "Europe/Madrid"
week_start = "monday"

[log]
level = "debug"

[tracker]
seed_sample_data = true
`)

	// Execute
	cfg, err := NewLoaderWithPath(path).Load()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.BackendGit, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/tense", cfg.Store.Dir)
	assert.Equal(t, "me", cfg.Store.Namespace)
	assert.Equal(t, "backup", cfg.Store.Remote)
	assert.Equal(t, "Europe/Madrid", cfg.Calendar.Timezone)
	assert.Equal(t, "monday", cfg.Calendar.WeekStart)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Tracker.SeedSampleData)
}

func TestLoader_Load_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "warn"
`)

	cfg, err := NewLoaderWithPath(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, domain.BackendFile, cfg.Store.Backend)
	assert.Equal(t, domain.DefaultNamespace, cfg.Store.Namespace)
	assert.Equal(t, domain.DefaultWeekStart, cfg.Calendar.WeekStart)
}

func TestLoader_Load_Warnings(t *testing.T) {
	path := writeConfig(t, `
colors = "on"

[store]
backend = "sqlite"
compress = true

[tracker]
seed_sample_data = "yes"

[ui]
theme = "dark"
`)

	cfg, err := NewLoaderWithPath(path).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"[tracker].seed_sample_data must be a boolean",
		"unknown key in [store]: compress",
		"unknown section: colors",
		"unknown section: ui",
	}, cfg.Warnings)
	assert.Equal(t, domain.BackendSQLite, cfg.Store.Backend)
}

func TestLoader_Load_InvalidBackend(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "mongodb"
`)

	_, err := NewLoaderWithPath(path).Load()

	assert.ErrorIs(t, err, domain.ErrInvalidBackend)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[store`)

	_, err := NewLoaderWithPath(path).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoader_Load_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, `
[store]
dir = "~/tense-data"
`)

	cfg, err := NewLoaderWithPath(path).Load()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tense-data"), cfg.Store.Dir)
}

func TestDefaultPath_UsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, domain.AppDirName, domain.ConfigFileName), DefaultPath())
}
