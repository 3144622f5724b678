package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/testutil"
)

func TestExportImportCommands(t *testing.T) {
	for _, format := range []string{domain.FormatJSON, domain.FormatYAML} {
		t.Run(format, func(t *testing.T) {
			// Setup
			src, _ := newTestContainer(t)
			addActivity(t, src, "Breakfast", domain.CategoryFood, testNow.Add(-2*time.Hour), 30*time.Minute)
			addActivity(t, src, "Email", domain.CategoryWork, testNow.Add(-time.Hour), 45*time.Minute)
			dir := t.TempDir()

			// Execute: export
			out, err := runCommand(t, newExportCommand(src), "--dir", dir, "-f", format)
			require.NoError(t, err)

			// Assert: export
			wantPath := filepath.Join(dir, domain.ExportFileName(testNow, format))
			assert.Equal(t, "Exported 2 activities to "+wantPath+"\n", out)
			require.FileExists(t, wantPath)

			// Execute: import into a container with other data
			dst, _ := newTestContainer(t)
			addActivity(t, dst, "Stale", domain.CategoryOther, testNow.Add(-5*time.Hour), time.Hour)
			out, err = runCommand(t, newImportCommand(dst), wantPath)

			// Assert: import replaces the collection
			require.NoError(t, err)
			assert.Equal(t, "Imported 2 activities (replaced 1)\n", out)
			got := dst.Activities.Snapshot()
			require.Len(t, got, 2)
			assert.Equal(t, "Breakfast", got[0].Title)
			assert.Equal(t, "Email", got[1].Title)
			assert.True(t, testNow.Add(-time.Hour).Equal(got[1].Start))
		})
	}
}

func TestExportCommand_UnsupportedFormat(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := runCommand(t, newExportCommand(c), "--dir", t.TempDir(), "-f", "csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestImportCommand_MalformedKeepsData(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	addActivity(t, c, "Keep me", domain.CategoryWork, testNow.Add(-time.Hour), 30*time.Minute)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1`), 0o600))

	// Execute
	_, err := runCommand(t, newImportCommand(c), path)

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, c.Activities.Len())
	assert.Equal(t, "Keep me", c.Activities.Snapshot()[0].Title)
}

func TestResetCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		input     string
		wantOut   string
		wantReset bool
	}{
		{name: "yes flag", args: []string{"-y"}, wantOut: "Deleted 1 activities and restored default settings\n", wantReset: true},
		{name: "confirmed", input: "y\n", wantOut: "Deleted 1 activities", wantReset: true},
		{name: "declined", input: "n\n", wantOut: "Aborted", wantReset: false},
		{name: "no answer", input: "", wantOut: "Aborted", wantReset: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, _ := newTestContainer(t)
			addActivity(t, c, "Focus", domain.CategoryWork, testNow.Add(-time.Hour), 30*time.Minute)
			require.NoError(t, c.Settings.SetTheme(domain.ThemeDark))
			_, err := c.QuickActions.Add("Guitar", domain.CategoryHobby)
			require.NoError(t, err)

			cmd := newResetCommand(c)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetArgs(tt.args)

			// Execute
			err = cmd.Execute()

			// Assert
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.wantOut)
			if tt.wantReset {
				assert.Equal(t, 0, c.Activities.Len())
				assert.Equal(t, domain.ThemeSystem, c.Settings.Theme())
			} else {
				assert.Equal(t, 1, c.Activities.Len())
				assert.Equal(t, domain.ThemeDark, c.Settings.Theme())
			}
			assert.Len(t, c.QuickActions.List(), 7, "quick actions survive a reset")
		})
	}
}

func TestSyncCommand_Disabled(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := runCommand(t, newSyncCommand(c))

	assert.ErrorIs(t, err, domain.ErrSyncDisabled)
	assert.True(t, c.Settings.LastSync().IsZero())
}

func TestSyncCommand_NoRemote(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	require.NoError(t, c.Settings.SetCloudSync(true))

	// Execute
	out, err := runCommand(t, newSyncCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to push for this backend")
	assert.Contains(t, out, "Last sync: 2026-03-10 10:00")
	assert.True(t, testNow.Equal(c.Settings.LastSync()))
}

func TestSyncCommand_Pushes(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	syncer := &testutil.MockSyncer{}
	c.Syncer = syncer
	c.AppConfig.Store.Remote = "origin"
	require.NoError(t, c.Settings.SetCloudSync(true))

	// Execute
	out, err := runCommand(t, newSyncCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Pushed to origin")
	assert.Equal(t, 1, syncer.Pushes)
}
