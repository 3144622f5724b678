package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/testutil"
)

func TestExportImport_RoundTrip(t *testing.T) {
	for _, format := range []string{domain.FormatJSON, domain.FormatYAML} {
		t.Run(format, func(t *testing.T) {
			// Setup
			src := newFixture(t)
			src.addCompleted(t, "Email", domain.CategoryWork, testNow.Add(-2*time.Hour), time.Hour)
			_, err := src.activities.StartActivity("Read", domain.CategoryEducation, "novel")
			require.NoError(t, err)
			dir := t.TempDir()

			// Execute
			exported, err := NewExportData(src.activities, src.clock, src.logger).Execute(context.Background(), ExportDataInput{Dir: dir, Format: format})
			require.NoError(t, err)

			dst := newFixture(t)
			imported, err := NewImportData(dst.activities, dst.logger).Execute(context.Background(), ImportDataInput{Path: exported.Path})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, domain.ExportFileName(testNow, format)), exported.Path)
			assert.Equal(t, 2, exported.Count)
			assert.Equal(t, 2, imported.Imported)
			assert.Equal(t, 0, imported.Replaced)

			got := dst.activities.Snapshot()
			require.Len(t, got, 2)
			assert.Equal(t, "Email", got[0].Title)
			assert.Equal(t, "novel", got[1].Description)
			require.NotNil(t, dst.activities.Current())
			assert.Equal(t, "Read", dst.activities.Current().Title)
		})
	}
}

func TestExportData_UnsupportedFormat(t *testing.T) {
	f := newFixture(t)

	_, err := NewExportData(f.activities, f.clock, f.logger).Execute(context.Background(), ExportDataInput{Dir: t.TempDir(), Format: "csv"})

	assert.Error(t, err)
}

func TestImportData_MalformedLeavesCollectionUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken json", "backup.json", `[{"id": "a", "title": `},
		{"not a list", "backup.yaml", "title: nope\n"},
		{"missing title", "backup.json", `[{"id":"a","title":"","category":"work","startTime":"2026-03-10T09:00:00Z","tags":[],"isRecurring":false}]`},
		{"unknown extension garbage", "backup.txt", "\x00\x01\x02"},
		{"json null", "backup.json", "null"},
		{"yaml null", "backup.yaml", "null\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			f := newFixture(t)
			f.addCompleted(t, "Keep me", domain.CategoryWork, testNow.Add(-time.Hour), 30*time.Minute)
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			puts := f.blobs.Puts

			// Execute
			_, err := NewImportData(f.activities, f.logger).Execute(context.Background(), ImportDataInput{Path: path})

			// Assert
			require.Error(t, err)
			assert.True(t, domain.IsSerializationError(err), "got %v", err)
			assert.Equal(t, puts, f.blobs.Puts)
			require.Equal(t, 1, f.activities.Len())
			assert.Equal(t, "Keep me", f.activities.Snapshot()[0].Title)
			assert.NotEmpty(t, f.logger.ByLevel("ERROR"))
		})
	}
}

func TestImportData_MissingFile(t *testing.T) {
	f := newFixture(t)

	_, err := NewImportData(f.activities, f.logger).Execute(context.Background(), ImportDataInput{Path: filepath.Join(t.TempDir(), "nope.json")})

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportData_ReplacesCollection(t *testing.T) {
	f := newFixture(t)
	f.addCompleted(t, "Old", domain.CategoryWork, testNow.Add(-time.Hour), time.Minute)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"id":"x1","title":"Imported","category":"hobby","startTime":"2026-03-09T18:00:00Z","endTime":"2026-03-09T19:00:00Z","tags":["music"],"isRecurring":false}
]`), 0o600))

	out, err := NewImportData(f.activities, f.logger).Execute(context.Background(), ImportDataInput{Path: path})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 1, out.Replaced)
	got, err := f.activities.Get("x1")
	require.NoError(t, err)
	assert.Equal(t, []string{"music"}, got.Tags)
}

func TestResetAll_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	f.addCompleted(t, "Email", domain.CategoryWork, testNow.Add(-time.Hour), time.Hour)
	require.NoError(t, f.settings.SetTheme(domain.ThemeDark))
	_, err := f.registry.Add("Guitar", domain.CategoryHobby)
	require.NoError(t, err)

	// Execute
	out, err := NewResetAll(f.activities, f.settings, f.logger).Execute(context.Background(), ResetAllInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Removed)
	assert.Equal(t, 0, f.activities.Len())
	assert.NotContains(t, f.blobs.Snapshot(), domain.KeyActivities)
	assert.Equal(t, domain.ThemeSystem, f.settings.Theme())
	assert.Len(t, f.registry.List(), 7)
}

func TestResetAll_DeleteFailure(t *testing.T) {
	f := newFixture(t)
	f.addCompleted(t, "Email", domain.CategoryWork, testNow.Add(-time.Hour), time.Hour)
	f.blobs.DeleteErr = errors.New("disk gone")

	_, err := NewResetAll(f.activities, f.settings, f.logger).Execute(context.Background(), ResetAllInput{})

	assert.Error(t, err)
	assert.Equal(t, 1, f.activities.Len())
}

func TestAutoStop_Execute(t *testing.T) {
	t.Run("disabled does nothing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.activities.StartActivity("Work", domain.CategoryWork, "")
		require.NoError(t, err)
		f.clock.Advance(10 * time.Hour)

		out, err := NewAutoStop(f.activities, f.settings, f.clock, f.logger).Execute(context.Background(), AutoStopInput{})

		require.NoError(t, err)
		assert.Nil(t, out.Stopped)
		assert.NotNil(t, f.activities.Current())
	})

	t.Run("stops at start plus duration", func(t *testing.T) {
		// Setup
		f := newFixture(t)
		require.NoError(t, f.settings.SetAutoStop(true, 90*time.Minute))
		started, err := f.activities.StartActivity("Work", domain.CategoryWork, "")
		require.NoError(t, err)
		f.clock.Advance(3 * time.Hour)

		// Execute
		out, err := NewAutoStop(f.activities, f.settings, f.clock, f.logger).Execute(context.Background(), AutoStopInput{})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, out.Stopped)
		assert.Equal(t, started.Start.Add(90*time.Minute), *out.Stopped.End)
		assert.Nil(t, f.activities.Current())
	})

	t.Run("not yet due", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.settings.SetAutoStop(true, 90*time.Minute))
		_, err := f.activities.StartActivity("Work", domain.CategoryWork, "")
		require.NoError(t, err)
		f.clock.Advance(time.Hour)

		out, err := NewAutoStop(f.activities, f.settings, f.clock, f.logger).Execute(context.Background(), AutoStopInput{})

		require.NoError(t, err)
		assert.Nil(t, out.Stopped)
	})
}

func TestSyncData_Execute(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t)
		syncer := &testutil.MockSyncer{}

		_, err := NewSyncData(syncer, f.settings, f.clock, f.logger).Execute(context.Background(), SyncDataInput{})

		assert.ErrorIs(t, err, domain.ErrSyncDisabled)
		assert.Equal(t, 0, syncer.Pushes)
	})

	t.Run("pushes and records last sync", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.settings.SetCloudSync(true))
		syncer := &testutil.MockSyncer{}

		out, err := NewSyncData(syncer, f.settings, f.clock, f.logger).Execute(context.Background(), SyncDataInput{})

		require.NoError(t, err)
		assert.True(t, out.Pushed)
		assert.Equal(t, 1, syncer.Pushes)
		assert.True(t, testNow.Equal(f.settings.LastSync()))
	})

	t.Run("backend without remote", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.settings.SetCloudSync(true))

		out, err := NewSyncData(nil, f.settings, f.clock, f.logger).Execute(context.Background(), SyncDataInput{})

		require.NoError(t, err)
		assert.False(t, out.Pushed)
		assert.False(t, f.settings.LastSync().IsZero())
	})

	t.Run("push failure keeps last sync", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.settings.SetCloudSync(true))
		syncer := &testutil.MockSyncer{PushErr: errors.New("remote rejected")}

		_, err := NewSyncData(syncer, f.settings, f.clock, f.logger).Execute(context.Background(), SyncDataInput{})

		assert.Error(t, err)
		assert.True(t, f.settings.LastSync().IsZero())
	})
}
