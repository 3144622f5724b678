package sqlitestore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(domain.KeyActivities, []byte(`[{"id":"a"}]`)))
	got, err := s.Get(domain.KeyActivities)

	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}

func TestStore_PutOverwrites(t *testing.T) {
	// Setup
	s := openTestStore(t)
	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }
	require.NoError(t, s.Put("settings", []byte("one")))

	// Execute
	second := first.Add(time.Hour)
	s.now = func() time.Time { return second }
	require.NoError(t, s.Put("settings", []byte("two")))

	// Assert
	got, err := s.Get("settings")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	at, err := s.UpdatedAt("settings")
	require.NoError(t, err)
	assert.True(t, second.Equal(at), "updated_at = %v", at)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"settings"}, keys)
}

func TestStore_Get_Missing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("activities")
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)

	_, err = s.UpdatedAt("activities")
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("quick_actions", []byte("[]")))

	require.NoError(t, s.Delete("quick_actions"))
	_, err := s.Get("quick_actions")
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)

	assert.NoError(t, s.Delete("quick_actions"))
}

func TestStore_EmptyValue(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("settings", nil))

	got, err := s.Get("settings")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("activities", []byte("[]")))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("activities")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
	assert.Equal(t, path, reopened.Path())
}
