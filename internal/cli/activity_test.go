package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
)

// =============================================================================
// Start / Stop / Status
// =============================================================================

func TestStartCommand(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)

	// Execute
	out, err := runCommand(t, newStartCommand(c), "Write", "report", "-c", "work", "-d", "Q1 numbers")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Started \"Write report\" [work] at 10:00\n", out)
	current := c.Activities.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Write report", current.Title)
	assert.Equal(t, "Q1 numbers", current.Description)
	assert.Equal(t, domain.CategoryWork, current.Category)
}

func TestStartCommand_StopsPrevious(t *testing.T) {
	// Setup
	c, clock := newTestContainer(t)
	_, err := runCommand(t, newStartCommand(c), "Focus")
	require.NoError(t, err)
	clock.Advance(90 * time.Minute)

	// Execute
	out, err := runCommand(t, newStartCommand(c), "Lunch", "-c", "food")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped \"Focus\" (1h 30m)")
	assert.Contains(t, out, "Started \"Lunch\" [food] at 11:30")
	assert.Equal(t, 2, c.Activities.Len())
}

func TestStartCommand_InvalidCategory(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := runCommand(t, newStartCommand(c), "Focus", "-c", "napping")

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.Nil(t, c.Activities.Current())
}

func TestStopCommand(t *testing.T) {
	tests := []struct {
		name    string
		running bool
		want    string
	}{
		{name: "running activity", running: true, want: "Stopped \"Focus\" (45m)\n"},
		{name: "nothing running", running: false, want: "No activity in progress\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, clock := newTestContainer(t)
			if tt.running {
				_, err := c.Activities.StartActivity("Focus", domain.CategoryWork, "")
				require.NoError(t, err)
				clock.Advance(45 * time.Minute)
			}

			// Execute
			out, err := runCommand(t, newStopCommand(c))

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Nil(t, c.Activities.Current())
		})
	}
}

func TestStatusCommand(t *testing.T) {
	// Setup
	c, clock := newTestContainer(t)
	out, err := runCommand(t, newStatusCommand(c))
	require.NoError(t, err)
	assert.Equal(t, "No activity in progress\n", out)

	_, err = c.Activities.StartActivity("Reading", domain.CategoryEducation, "chapter 3")
	require.NoError(t, err)
	clock.Advance(20 * time.Minute)

	// Execute
	out, err = runCommand(t, newStatusCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Reading\n")
	assert.Contains(t, out, "Category: Education")
	assert.Contains(t, out, "Start:    2026-03-10 10:00")
	assert.Contains(t, out, "End:      (in progress)")
	assert.Contains(t, out, "Duration: 20m")
	assert.Contains(t, out, "Notes:    chapter 3")
}

// =============================================================================
// Add / Edit / Rm
// =============================================================================

func TestAddCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSpan string
		open     bool
	}{
		{
			name:     "explicit duration",
			args:     []string{"Morning run", "-c", "exercise", "--start", "07:00", "--for", "45m"},
			wantSpan: "07:00-07:45",
		},
		{
			name:     "default duration setting",
			args:     []string{"Breakfast", "-c", "food", "--start", "08:00"},
			wantSpan: "08:00-09:00",
		},
		{
			name:     "explicit end",
			args:     []string{"Standup", "--start", "2026-03-09 09:30", "--end", "2026-03-09T09:45"},
			wantSpan: "09:30-09:45",
		},
		{
			name:     "open",
			args:     []string{"Reading", "--start", "09:15", "--open"},
			wantSpan: "09:15-",
			open:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, _ := newTestContainer(t)

			// Execute
			out, err := runCommand(t, newAddCommand(c), tt.args...)

			// Assert
			require.NoError(t, err)
			assert.Contains(t, out, "["+tt.wantSpan+"]")
			require.Equal(t, 1, c.Activities.Len())
			assert.Equal(t, tt.open, c.Activities.Current() != nil)
		})
	}
}

func TestAddCommand_RecurringWithTags(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)

	// Execute
	_, err := runCommand(t, newAddCommand(c), "Standup", "-c", "work", "--start", "09:30", "--for", "15m",
		"--repeat", "weekdays", "-t", "team", "-t", "daily", "-t", "team")

	// Assert
	require.NoError(t, err)
	a := c.Activities.Snapshot()[0]
	assert.True(t, a.Recurring)
	assert.Equal(t, domain.PatternWeekdays, a.Pattern)
	assert.Equal(t, []string{"team", "daily"}, a.Tags)
}

func TestAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "end with open", args: []string{"X", "--end", "10:00", "--open"}, wantMsg: "--end cannot be used with --open"},
		{name: "bad start", args: []string{"X", "--start", "noon"}, wantMsg: "invalid time"},
		{name: "end before start", args: []string{"X", "--start", "09:00", "--end", "08:00"}, wantErr: domain.ErrEndBeforeStart},
		{name: "bad pattern", args: []string{"X", "--repeat", "hourly"}, wantErr: domain.ErrInvalidPattern},
		{name: "blank title", args: []string{" "}, wantErr: domain.ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t)

			_, err := runCommand(t, newAddCommand(c), tt.args...)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Equal(t, 0, c.Activities.Len())
		})
	}
}

func TestEditCommand(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	a := addActivity(t, c, "Focus", domain.CategoryWork, testNow.Add(-2*time.Hour), time.Hour)

	// Execute
	out, err := runCommand(t, newEditCommand(c), a.ID, "--title", "Deep work", "--end", "09:30", "-t", "q1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Updated \"Deep work\"\n", out)
	got, err := c.Activities.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep work", got.Title)
	assert.Equal(t, domain.CategoryWork, got.Category, "unchanged flags keep their value")
	require.NotNil(t, got.End)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), *got.End)
	assert.Equal(t, []string{"q1"}, got.Tags)
}

func TestEditCommand_Reopen(t *testing.T) {
	c, _ := newTestContainer(t)
	a := addActivity(t, c, "Focus", domain.CategoryWork, testNow.Add(-time.Hour), 30*time.Minute)

	_, err := runCommand(t, newEditCommand(c), a.ID, "--reopen")

	require.NoError(t, err)
	require.NotNil(t, c.Activities.Current())
	assert.Equal(t, a.ID, c.Activities.Current().ID)
}

func TestEditCommand_NotFound(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := runCommand(t, newEditCommand(c), "missing", "--title", "X")

	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestRmCommand(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	a := addActivity(t, c, "Focus", domain.CategoryWork, testNow.Add(-time.Hour), 30*time.Minute)

	// Execute
	out, err := runCommand(t, newRmCommand(c), a.ID, "missing")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+a.ID)
	assert.Contains(t, out, "No activity missing")
	assert.Equal(t, 0, c.Activities.Len())
}

// =============================================================================
// List
// =============================================================================

// seedListData logs one activity yesterday and two today.
func seedListData(t *testing.T) (list func() (string, error), decode func(args ...string) []domain.Activity) {
	t.Helper()
	container, _ := newTestContainer(t)
	addActivity(t, container, "Late show", domain.CategoryEntertainment, testNow.Add(-12*time.Hour), time.Hour)
	addActivity(t, container, "Breakfast", domain.CategoryFood, testNow.Add(-2*time.Hour), 30*time.Minute)
	addActivity(t, container, "Email", domain.CategoryWork, testNow.Add(-time.Hour), 45*time.Minute)

	list = func() (string, error) {
		return runCommand(t, newListCommand(container))
	}
	decode = func(args ...string) []domain.Activity {
		out, err := runCommand(t, newListCommand(container), append(args, "--json")...)
		require.NoError(t, err)
		var got []domain.Activity
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		return got
	}
	return list, decode
}

func titles(list []domain.Activity) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].Title
	}
	return out
}

func TestListCommand_DefaultsToToday(t *testing.T) {
	list, _ := seedListData(t)

	out, err := list()

	require.NoError(t, err)
	assert.Contains(t, out, "Breakfast")
	assert.Contains(t, out, "Email")
	assert.NotContains(t, out, "Late show")
	assert.Contains(t, out, "2 activities, 1h 15m logged")
}

func TestListCommand_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "all", args: []string{"--all"}, want: []string{"Late show", "Breakfast", "Email"}},
		{name: "yesterday", args: []string{"--date", "yesterday"}, want: []string{"Late show"}},
		{name: "explicit date", args: []string{"--date", "2026-03-10"}, want: []string{"Breakfast", "Email"}},
		{name: "range", args: []string{"--from", "2026-03-09", "--to", "2026-03-09"}, want: []string{"Late show"}},
		{name: "open-ended range", args: []string{"--from", "08:30"}, want: []string{"Email"}},
		{name: "period with category", args: []string{"-p", "week", "-c", "food"}, want: []string{"Breakfast"}},
		{name: "open only", args: []string{"--all", "--open"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, decode := seedListData(t)

			got := decode(tt.args...)

			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestListCommand_Empty(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := runCommand(t, newListCommand(c))

	require.NoError(t, err)
	assert.Equal(t, "No activities\n", out)
}

func TestListCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "period", args: []string{"-p", "decade"}},
		{name: "date", args: []string{"--date", "03/10/2026"}},
		{name: "reversed range", args: []string{"--from", "2026-03-10", "--to", "2026-03-01"}, wantErr: domain.ErrInvalidRange},
		{name: "category", args: []string{"-c", "napping"}, wantErr: domain.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t)

			_, err := runCommand(t, newListCommand(c), tt.args...)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestListCommand_MarksRunningAndTags(t *testing.T) {
	c, clock := newTestContainer(t)
	_, err := runCommand(t, newAddCommand(c), "Standup", "--start", "09:00", "--for", "15m", "-t", "team")
	require.NoError(t, err)
	_, err = c.Activities.StartActivity("Focus", domain.CategoryWork, "")
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)

	out, err := runCommand(t, newListCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "Standup #team")
	assert.Contains(t, out, "10:00-")
	assert.Contains(t, out, "10m *")
}
