package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/present-tense/internal/domain"
)

// Palette is the set of colors the styles are built from.
type Palette struct {
	Primary lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Muted   lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
}

// Colors defines the color palette for the TUI as light/dark pairs.
var Colors = struct {
	Primary lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
}{
	Primary: lipgloss.AdaptiveColor{Light: "#5B4BD5", Dark: "#A29BFE"}, // Purple
	Text:    lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#DFE6E9"},
	Muted:   lipgloss.AdaptiveColor{Light: "#8395A7", Dark: "#636E72"}, // Gray
	Error:   lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF7675"}, // Red
	Success: lipgloss.AdaptiveColor{Light: "#00876C", Dark: "#55EFC4"}, // Green
	Warning: lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#FDCB6E"}, // Yellow
}

// PaletteFor returns the palette for a theme preference.
// The system theme follows the terminal background.
func PaletteFor(theme domain.Theme) Palette {
	pick := func(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
		switch theme {
		case domain.ThemeLight:
			return lipgloss.Color(c.Light)
		case domain.ThemeDark:
			return lipgloss.Color(c.Dark)
		case domain.ThemeSystem:
		}
		return c
	}
	return Palette{
		Primary: pick(Colors.Primary),
		Text:    pick(Colors.Text),
		Muted:   pick(Colors.Muted),
		Error:   pick(Colors.Error),
		Success: pick(Colors.Success),
		Warning: pick(Colors.Warning),
	}
}

// Styles contains all the styles for the TUI.
type Styles struct {
	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Date   lipgloss.Style

	// Current activity panel
	Current        lipgloss.Style
	CurrentTitle   lipgloss.Style
	CurrentElapsed lipgloss.Style
	Idle           lipgloss.Style

	// Quick actions
	QuickKey   lipgloss.Style
	QuickTitle lipgloss.Style

	// Timeline
	Section  lipgloss.Style
	Time     lipgloss.Style
	Duration lipgloss.Style
	Title    lipgloss.Style
	Running  lipgloss.Style
	Empty    lipgloss.Style
	Total    lipgloss.Style

	// Status line
	Status   lipgloss.Style
	ErrorMsg lipgloss.Style
	Warning  lipgloss.Style
}

// NewStyles returns the styles for a palette.
func NewStyles(p Palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Date: lipgloss.NewStyle().
			Foreground(p.Muted),

		Current: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1).
			MarginTop(1),

		CurrentTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),

		CurrentElapsed: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Success),

		Idle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		QuickKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		QuickTitle: lipgloss.NewStyle().
			Foreground(p.Text),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			MarginTop(1),

		Time: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(13),

		Duration: lipgloss.NewStyle().
			Foreground(p.Text).
			Width(9),

		Title: lipgloss.NewStyle().
			Foreground(p.Text),

		Running: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Total: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),

		Status: lipgloss.NewStyle().
			Foreground(p.Success),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(p.Error),

		Warning: lipgloss.NewStyle().
			Foreground(p.Warning),
	}
}

// CategoryBadge renders a category label in its own color.
func CategoryBadge(c domain.Category) string {
	info := c.Info()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(info.Color)).
		Width(14).
		Render("● " + info.Label)
}
