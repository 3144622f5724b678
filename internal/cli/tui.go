package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/infra/watch"
	"github.com/runoshun/present-tense/internal/tui"
)

const logCategory = "cli"

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `tense` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive tracker",
		Long: `Launch the interactive tracker.

Press 1-9 to start a quick action, s to stop, ←/→ to browse days.
Changes made by other tense processes are picked up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// launchTUI runs the TUI until the user quits.
// Without a working watcher the TUI still runs, only without live reload.
func launchTUI(c *app.Container) error {
	if c == nil {
		return errors.New("cannot start the tracker: configuration failed to load")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan watch.Change
	watcher, err := c.NewWatcher()
	if err == nil {
		err = watcher.Start(ctx)
		defer watcher.Stop()
	}
	if err != nil {
		c.Log.Warn(logCategory, "live reload disabled: "+err.Error())
	} else {
		changes = watcher.Changes()
	}

	model := tui.New(c, changes)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
