// Package cli provides the command-line interface for present-tense.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/usecase"
)

// Command group IDs.
const (
	groupTrack  = "track"
	groupBrowse = "browse"
	groupData   = "data"
	groupSetup  = "setup"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for tense.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tense",
		Short: "Personal activity tracker",
		Long: `present-tense tracks what you spend your day on.

Start and stop activities as you go, log past ones, and look back at
where the time went by day, week, month or category.

Running tense without arguments opens the interactive tracker.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests or keygen)
			if c == nil {
				return nil
			}

			for _, w := range c.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			// Reset and import replace the data the check would act on.
			if cmd.Parent() == cmd.Root() && (cmd.Name() == "reset" || cmd.Name() == "import") {
				return nil
			}
			out, err := c.AutoStopUseCase().Execute(cmd.Context(), usecase.AutoStopInput{})
			if err != nil {
				return err
			}
			if out.Stopped != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Auto-stopped %q after %s\n",
					out.Stopped.Title, domain.FormatDuration(out.Stopped.Duration(c.Clock.Now())))
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTrack, Title: "Tracking:"},
		&cobra.Group{ID: groupBrowse, Title: "Browsing:"},
		&cobra.Group{ID: groupData, Title: "Data & Settings:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	// Tracking commands
	startCmd := newStartCommand(c)
	startCmd.GroupID = groupTrack

	stopCmd := newStopCommand(c)
	stopCmd.GroupID = groupTrack

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupTrack

	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTrack

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTrack

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTrack

	quickCmd := newQuickCommand(c)
	quickCmd.GroupID = groupTrack

	// Browsing commands
	listCmd := newListCommand(c)
	listCmd.GroupID = groupBrowse

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupBrowse

	calendarCmd := newCalendarCommand(c)
	calendarCmd.GroupID = groupBrowse

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupBrowse

	// Data commands
	settingsCmd := newSettingsCommand(c)
	settingsCmd.GroupID = groupData

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupData

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupData

	resetCmd := newResetCommand(c)
	resetCmd.GroupID = groupData

	syncCmd := newSyncCommand(c)
	syncCmd.GroupID = groupData

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Add subcommands
	root.AddCommand(
		startCmd,
		stopCmd,
		statusCmd,
		addCmd,
		editCmd,
		rmCmd,
		quickCmd,
		listCmd,
		statsCmd,
		calendarCmd,
		tuiCmd,
		settingsCmd,
		exportCmd,
		importCmd,
		resetCmd,
		syncCmd,
		configCmd,
	)

	return root
}
