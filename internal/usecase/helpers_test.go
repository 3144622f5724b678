package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
	"github.com/runoshun/present-tense/internal/testutil"
)

// testNow is Tuesday 2026-03-10 10:00 UTC.
var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

var testCalendar = domain.Calendar{Location: time.UTC, WeekStart: time.Sunday}

// fixture wires the three stores over one in-memory blob store.
type fixture struct {
	blobs      *testutil.MockBlobStore
	clock      *testutil.MockClock
	logger     *testutil.MockLogger
	activities *store.ActivityStore
	registry   *store.QuickActionRegistry
	settings   *store.SettingsStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		blobs:  testutil.NewMockBlobStore(),
		clock:  &testutil.MockClock{NowTime: testNow},
		logger: &testutil.MockLogger{},
	}
	ids := &testutil.MockIDGenerator{}
	f.activities = store.NewActivityStore(f.blobs, f.clock, ids, f.logger)
	f.registry = store.NewQuickActionRegistry(f.blobs, &testutil.MockIDGenerator{Prefix: "qa"}, f.logger)
	f.settings = store.NewSettingsStore(f.blobs, f.logger)
	require.NoError(t, f.activities.Load(nil))
	require.NoError(t, f.registry.Load())
	require.NoError(t, f.settings.Load())
	return f
}

// addCompleted logs a completed activity directly in the store.
func (f *fixture) addCompleted(t *testing.T, title string, category domain.Category, start time.Time, d time.Duration) domain.Activity {
	t.Helper()

	end := start.Add(d)
	a, err := f.activities.Add(domain.Activity{Title: title, Category: category, Start: start, End: &end})
	require.NoError(t, err)
	return *a
}
