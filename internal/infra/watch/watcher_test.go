package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/runoshun/present-tense/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func jsonKey(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	return strings.TrimSuffix(base, ".json"), true
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c, ok := <-w.Changes():
		require.True(t, ok, "changes channel closed")
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestWatcher_EmitsDebouncedChange(t *testing.T) {
	// Setup
	dir := t.TempDir()
	w, err := New(dir, jsonKey, &testutil.MockLogger{}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Execute: several rapid writes collapse into one change.
	path := filepath.Join(dir, "activities.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	}

	// Assert
	assert.Equal(t, Change{Key: "activities"}, waitChange(t, w))
}

func TestWatcher_IgnoresUnmatchedPaths(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, jsonKey, nil, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lock"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{}"), 0o600))

	assert.Equal(t, Change{Key: "settings"}, waitChange(t, w))
}

func TestWatcher_StopClosesChanges(t *testing.T) {
	w, err := New(t.TempDir(), AnyFile, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	// Start is idempotent.
	require.NoError(t, w.Start(context.Background()))

	w.Stop()

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w, err := New(t.TempDir(), AnyFile, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()

	_, ok := <-w.Changes()
	assert.False(t, ok)
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := New(t.TempDir(), AnyFile, nil)
	require.NoError(t, err)

	assert.NotPanics(t, w.Stop)
}

func TestWatcher_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet")
	w, err := New(dir, AnyFile, nil)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	assert.DirExists(t, dir)
}
