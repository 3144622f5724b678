package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/testutil"
)

// testNow is a Tuesday.
var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

// newTestContainer creates an app.Container with mock dependencies and a UTC calendar.
func newTestContainer(t *testing.T) (*app.Container, *testutil.MockClock) {
	t.Helper()
	clock := &testutil.MockClock{NowTime: testNow}
	cfg := domain.NewDefaultConfig()
	cfg.Calendar.Timezone = "UTC"
	c, err := app.NewWithDeps(
		app.Config{DataDir: t.TempDir()},
		cfg,
		testutil.NewMockBlobStore(),
		clock,
		&testutil.MockIDGenerator{},
		&testutil.MockLogger{},
	)
	require.NoError(t, err)
	c.ConfigManager = &testutil.MockConfigManager{PathVal: "/tmp/tense/config.toml"}
	return c, clock
}

// runCommand executes cmd with args and returns its combined output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// addActivity logs a completed activity directly in the store.
func addActivity(t *testing.T, c *app.Container, title string, category domain.Category, start time.Time, d time.Duration) *domain.Activity {
	t.Helper()
	end := start.Add(d)
	a, err := c.Activities.Add(domain.Activity{Title: title, Category: category, Start: start, End: &end})
	require.NoError(t, err)
	return a
}
