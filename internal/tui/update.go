package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgDayLoaded:
		// Drop results for a day the user already navigated away from.
		if !msg.Day.Equal(m.day) {
			return m, nil
		}
		m.current = msg.Current
		m.activities = msg.Activities
		m.total = msg.Total
		return m, nil

	case MsgQuickActionsLoaded:
		m.actions = msg.Actions
		return m, nil

	case MsgActivityStarted:
		m.err = nil
		m.status = fmt.Sprintf("Started %q", msg.Started.Title)
		if msg.Stopped != nil {
			m.status = fmt.Sprintf("Stopped %q, started %q", msg.Stopped.Title, msg.Started.Title)
		}
		m.current = msg.Started
		return m, m.loadDay()

	case MsgActivityStopped:
		switch {
		case msg.Stopped == nil:
			m.status = "Nothing is running"
		case msg.Auto:
			m.status = fmt.Sprintf("Auto-stopped %q", msg.Stopped.Title)
		default:
			m.status = fmt.Sprintf("Stopped %q", msg.Stopped.Title)
		}
		m.current = nil
		return m, m.loadDay()

	case MsgStoreChanged:
		return m, tea.Batch(m.reload(), m.waitForChange())

	case MsgReloaded:
		m.styles = NewStyles(PaletteFor(m.container.Settings.Theme()))
		return m, tea.Batch(m.loadDay(), m.loadQuickActions())

	case MsgError:
		m.err = msg.Err
		m.status = ""
		return m, nil

	case MsgTick:
		m.now = m.container.Clock.Now()
		if m.current == nil {
			return m, m.tick()
		}
		return m, tea.Batch(m.tick(), m.autoStop())
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Quick):
		index, _ := quickIndex(msg.String())
		if index >= len(m.actions) {
			m.err = fmt.Errorf("no quick action %d", index+1)
			return m, nil
		}
		return m, m.startQuickAction(index)

	case key.Matches(msg, m.keys.Stop):
		return m, m.stopActivity()

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.showDay(m.day.AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		if m.isToday() {
			return m, nil
		}
		return m, m.showDay(m.day.AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.Today):
		return m, m.showDay(m.container.Clock.Now())

	case key.Matches(msg, m.keys.Reload):
		m.err = nil
		m.status = ""
		return m, m.reload()
	}

	return m, nil
}

// showDay switches to the day containing t and loads it.
func (m *Model) showDay(t time.Time) tea.Cmd {
	m.day = m.container.Calendar.StartOfDay(t)
	m.activities = nil
	m.total = 0
	m.err = nil
	m.status = ""
	return m.loadDay()
}
