package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/present-tense/internal/domain"
)

// maxQuickKeys is the number of quick actions reachable by digit keys.
const maxQuickKeys = 9

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	for _, w := range m.container.Warnings {
		b.WriteString(m.styles.Warning.Render("Warning: "+w) + "\n")
	}

	b.WriteString(m.viewCurrent())
	b.WriteString("\n")
	b.WriteString(m.viewQuickActions())
	b.WriteString("\n")
	b.WriteString(m.viewTimeline())
	b.WriteString("\n\n")
	b.WriteString(m.viewStatus())
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

// viewHeader renders the app name and the shown day right-aligned.
func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("present-tense")

	date := m.day.Format("Monday, Jan 2 2006")
	if m.isToday() {
		date += " (today)"
	}
	right := m.styles.Date.Render(date)

	headerWidth := max(m.width-4, 40) // App padding
	spacing := max(headerWidth-lipgloss.Width(title)-lipgloss.Width(right), 1)
	return title + strings.Repeat(" ", spacing) + right
}

// viewCurrent renders the running activity with its elapsed time.
func (m *Model) viewCurrent() string {
	if m.current == nil {
		return m.styles.Current.Render(m.styles.Idle.Render("Nothing is running. Press 1-9 to start."))
	}

	elapsed := m.current.Duration(m.now)
	line := m.styles.CurrentElapsed.Render(domain.FormatElapsed(elapsed)) + "  " +
		CategoryBadge(m.current.Category) + " " +
		m.styles.CurrentTitle.Render(m.current.Title)
	since := m.styles.Date.Render("since " + m.container.Calendar.In(m.current.Start).Format("15:04"))
	return m.styles.Current.Render(line + "\n" + since)
}

// viewQuickActions renders the numbered quick actions.
func (m *Model) viewQuickActions() string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Quick actions"))
	b.WriteString("\n")

	if len(m.actions) == 0 {
		b.WriteString(m.styles.Empty.Render("No quick actions"))
		return b.String()
	}

	items := make([]string, 0, min(len(m.actions), maxQuickKeys))
	for i, q := range m.actions {
		if i == maxQuickKeys {
			break
		}
		items = append(items, m.styles.QuickKey.Render(fmt.Sprintf("[%d]", i+1))+" "+m.styles.QuickTitle.Render(q.Title))
	}
	b.WriteString(strings.Join(items, "  "))
	return b.String()
}

// viewTimeline renders the activities of the shown day.
func (m *Model) viewTimeline() string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Timeline"))
	b.WriteString("\n")

	if len(m.activities) == 0 {
		b.WriteString(m.styles.Empty.Render("No activities on this day"))
		return b.String()
	}

	for i := range m.activities {
		b.WriteString(m.renderActivity(&m.activities[i]))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Total.Render("Total " + domain.FormatDuration(m.total)))
	return b.String()
}

// renderActivity renders one timeline row.
func (m *Model) renderActivity(a *domain.Activity) string {
	cal := m.container.Calendar
	span := cal.In(a.Start).Format("15:04") + " - "
	if a.End != nil {
		span += cal.In(*a.End).Format("15:04")
	} else {
		span += "now"
	}

	duration := m.styles.Duration.Render(domain.FormatDuration(a.Duration(m.now)))
	title := m.styles.Title.Render(a.Title)
	if a.IsCurrent() {
		duration = m.styles.Duration.Inherit(m.styles.Running).Render(domain.FormatDuration(a.Duration(m.now)))
		title = m.styles.Running.Render(a.Title)
	}
	return m.styles.Time.Render(span) + duration + CategoryBadge(a.Category) + " " + title
}

// viewStatus renders the last error or status message.
func (m *Model) viewStatus() string {
	switch {
	case m.err != nil:
		return m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n"
	case m.status != "":
		return m.styles.Status.Render(m.status) + "\n"
	}
	return ""
}
