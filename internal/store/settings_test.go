package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/testutil"
)

func TestSettingsStore_Defaults(t *testing.T) {
	s := NewSettingsStore(testutil.NewMockBlobStore(), nil)
	require.NoError(t, s.Load())

	assert.Equal(t, domain.DefaultSettings(), s.Settings())
	assert.Equal(t, domain.ThemeSystem, s.Theme())
	assert.Equal(t, 60*time.Minute, s.DefaultActivityDuration())
	assert.False(t, s.AutoStop())
	assert.Equal(t, 120*time.Minute, s.AutoStopDuration())
	assert.False(t, s.CloudSync())
	assert.True(t, s.LastSync().IsZero())
	assert.True(t, s.FirstLaunch())
	for _, v := range s.All() {
		assert.True(t, v.IsDefault(), v.Def.Key)
	}
}

func TestSettingsStore_SetAndReload(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	s := NewSettingsStore(blobs, nil)
	require.NoError(t, s.Load())

	got, err := s.Set(domain.SettingAutoStopDuration, "1h30m")
	require.NoError(t, err)
	assert.Equal(t, "90", got)
	require.NoError(t, s.SetTheme(domain.ThemeDark))
	require.NoError(t, s.SetAutoStop(true, 45*time.Minute))
	require.NoError(t, s.SetLastSync(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, s.MarkLaunched())

	reloaded := NewSettingsStore(blobs, nil)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, domain.ThemeDark, reloaded.Theme())
	assert.True(t, reloaded.AutoStop())
	assert.Equal(t, 45*time.Minute, reloaded.AutoStopDuration())
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), reloaded.LastSync())
	assert.False(t, reloaded.FirstLaunch())
}

func TestSettingsStore_SetErrors(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	s := NewSettingsStore(blobs, nil)

	_, err := s.Set("volume", "11")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)

	_, err = s.Set(domain.SettingHaptics, "sometimes")
	assert.ErrorIs(t, err, domain.ErrInvalidSettingValue)

	_, err = s.Get("volume")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
	assert.Zero(t, blobs.Puts)
}

func TestSettingsStore_SaveFailureKeepsValue(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.PutErr = errors.New("read-only")
	s := NewSettingsStore(blobs, nil)

	require.Error(t, s.SetCloudSync(true))

	assert.False(t, s.CloudSync())
}

func TestSettingsStore_ResetAll(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	s := NewSettingsStore(blobs, nil)
	require.NoError(t, s.SetTheme(domain.ThemeLight))
	require.NoError(t, s.SetCloudSync(true))

	require.NoError(t, s.ResetAll())

	assert.Equal(t, domain.DefaultSettings(), s.Settings())
	var persisted map[string]string
	require.NoError(t, json.Unmarshal(blobs.Blobs[domain.KeySettings], &persisted))
	assert.Equal(t, domain.DefaultSettingValues(), persisted)
}

func TestSettingsStore_ResetAllKeepsBookkeeping(t *testing.T) {
	// Setup
	blobs := testutil.NewMockBlobStore()
	s := NewSettingsStore(blobs, nil)
	synced := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkLaunched())
	require.NoError(t, s.SetLastSync(synced))
	require.NoError(t, s.SetTheme(domain.ThemeDark))

	// Execute
	require.NoError(t, s.ResetAll())

	// Assert
	assert.Equal(t, domain.ThemeSystem, s.Theme())
	assert.False(t, s.FirstLaunch())
	assert.True(t, synced.Equal(s.LastSync()))

	reloaded := NewSettingsStore(blobs, nil)
	require.NoError(t, reloaded.Load())
	assert.False(t, reloaded.FirstLaunch())
	assert.True(t, synced.Equal(reloaded.LastSync()))
}

func TestSettingsStore_LoadSkipsBadEntries(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.Blobs[domain.KeySettings] = []byte(`{"theme":"dark","volume":"11","sounds":"loud"}`)
	logger := &testutil.MockLogger{}
	s := NewSettingsStore(blobs, logger)

	require.NoError(t, s.Load())

	assert.Equal(t, domain.ThemeDark, s.Theme())
	assert.True(t, s.Settings().Sounds)
	assert.Len(t, logger.ByLevel("WARN"), 2)
}

func TestSettingsStore_LoadCorrupt(t *testing.T) {
	blobs := testutil.NewMockBlobStore()
	blobs.Blobs[domain.KeySettings] = []byte(`[1,2`)
	logger := &testutil.MockLogger{}
	s := NewSettingsStore(blobs, logger)

	require.NoError(t, s.Load())

	assert.Equal(t, domain.DefaultSettings(), s.Settings())
	assert.Len(t, logger.ByLevel("ERROR"), 1)
}
