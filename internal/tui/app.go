// Package tui provides the terminal dashboard for present-tense.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/infra/watch"
	"github.com/runoshun/present-tense/internal/usecase"
)

const tickInterval = time.Second

// Model is the main bubbletea model for the TUI.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	changes   <-chan watch.Change // nil without a watcher
	err       error

	// State
	day        time.Time // Start of the shown day
	now        time.Time // Time of the last tick
	current    *domain.Activity
	activities []domain.Activity
	actions    []domain.QuickAction
	status     string
	total      time.Duration

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Numeric state
	width  int
	height int
}

// New creates a new TUI Model with the given container.
// changes may be nil; when set, every Change reloads the stores.
func New(c *app.Container, changes <-chan watch.Change) *Model {
	now := c.Clock.Now()
	return &Model{
		container: c,
		changes:   changes,
		day:       c.Calendar.StartOfDay(now),
		now:       now,
		keys:      DefaultKeyMap(),
		styles:    NewStyles(PaletteFor(c.Settings.Theme())),
		help:      help.New(),
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadDay(),
		m.loadQuickActions(),
		m.tick(),
		m.waitForChange(),
	)
}

// loadDay returns a command that loads the activities of the shown day.
func (m *Model) loadDay() tea.Cmd {
	day := m.day
	return func() tea.Msg {
		out, err := m.container.ListActivitiesUseCase().Execute(context.Background(), usecase.ListActivitiesInput{Date: &day})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgDayLoaded{
			Day:        day,
			Current:    out.Current,
			Activities: out.Activities,
			Total:      out.Total,
		}
	}
}

// loadQuickActions returns a command that loads the quick action list.
func (m *Model) loadQuickActions() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListQuickActionsUseCase().Execute(context.Background(), usecase.ListQuickActionsInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgQuickActionsLoaded{Actions: out.Actions}
	}
}

// startQuickAction returns a command that starts the quick action at index.
func (m *Model) startQuickAction(index int) tea.Cmd {
	q := m.actions[index]
	return func() tea.Msg {
		out, err := m.container.StartQuickActionUseCase().Execute(context.Background(), usecase.StartQuickActionInput{Ref: q.ID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActivityStarted{Started: out.Started, Stopped: out.Stopped}
	}
}

// stopActivity returns a command that stops the running activity.
func (m *Model) stopActivity() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.StopActivityUseCase().Execute(context.Background(), usecase.StopActivityInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActivityStopped{Stopped: out.Stopped}
	}
}

// autoStop returns a command that applies the auto_stop setting.
// It produces no message when nothing was stopped.
func (m *Model) autoStop() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AutoStopUseCase().Execute(context.Background(), usecase.AutoStopInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		if out.Stopped == nil {
			return nil
		}
		return MsgActivityStopped{Stopped: out.Stopped, Auto: true}
	}
}

// reload returns a command that re-reads every store from the backend.
func (m *Model) reload() tea.Cmd {
	return func() tea.Msg {
		if err := m.container.Reload(); err != nil {
			return MsgError{Err: err}
		}
		return MsgReloaded{}
	}
}

// tick schedules the next MsgTick.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return MsgTick{Time: t}
	})
}

// waitForChange returns a command that blocks until the watcher reports a change.
// It returns nil without a watcher and stops listening once the channel closes.
func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return MsgStoreChanged{Change: change}
	}
}

// Day returns the start of the shown day.
func (m *Model) Day() time.Time {
	return m.day
}

// Current returns the running activity, or nil if none.
func (m *Model) Current() *domain.Activity {
	return m.current
}

// isToday reports whether the shown day is today.
func (m *Model) isToday() bool {
	return m.container.Calendar.SameDay(m.day, m.container.Clock.Now())
}
