package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/testutil"
)

func TestInitConfig_Execute(t *testing.T) {
	// Setup
	mgr := &testutil.MockConfigManager{PathVal: "/home/me/.config/tense/config.toml"}

	// Execute
	out, err := NewInitConfig(mgr).Execute(context.Background(), InitConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/home/me/.config/tense/config.toml", out.Path)
	require.NotNil(t, mgr.Written)
	assert.Equal(t, domain.BackendFile, mgr.Written.Store.Backend)
}

func TestInitConfig_UsesGivenConfig(t *testing.T) {
	mgr := &testutil.MockConfigManager{}
	cfg := domain.NewDefaultConfig()
	cfg.Store.Backend = domain.BackendSQLite

	_, err := NewInitConfig(mgr).Execute(context.Background(), InitConfigInput{Config: cfg})

	require.NoError(t, err)
	assert.Same(t, cfg, mgr.Written)
}

func TestInitConfig_AlreadyExists(t *testing.T) {
	mgr := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}

	_, err := NewInitConfig(mgr).Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
	assert.True(t, mgr.InitCall)
}

func TestShowConfig_Execute(t *testing.T) {
	mgr := &testutil.MockConfigManager{PathVal: "/tmp/config.toml"}
	cfg := domain.NewDefaultConfig()

	out, err := NewShowConfig(mgr, cfg).Execute(context.Background(), ShowConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/config.toml", out.File.Path)
	assert.False(t, out.File.Exists)
	assert.Same(t, cfg, out.Effective)
}
