package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/usecase"
)

// newSettingsCommand creates the settings command with its subcommands.
func newSettingsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change preferences",
		Long: `Preferences are stored with your data, not in the config file.

Durations accept minutes ("90") or Go durations ("1h30m").`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newSettingsShowCommand(c))
	cmd.AddCommand(newSettingsSetCommand(c))
	cmd.AddCommand(newSettingsResetCommand(c))

	return cmd
}

// newSettingsShowCommand creates the settings show subcommand.
func newSettingsShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show [key]",
		Short: "Show all preferences or one key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowSettingsInput{}
			if len(args) == 1 {
				in.Key = args[0]
			}
			out, err := c.ShowSettingsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if in.Key != "" && len(out.Settings) == 1 {
				_, _ = fmt.Fprintln(w, out.Settings[0].Value)
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			// Header
			_, _ = fmt.Fprintln(tw, "KEY\tVALUE\tDESCRIPTION")

			// Rows
			for _, s := range out.Settings {
				value := s.Value
				if value == "" {
					value = "-"
				}
				if !s.IsDefault() {
					value += " *"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Def.Key, value, s.Def.Description)
			}
			return nil
		},
	}
}

// newSettingsSetCommand creates the settings set subcommand.
func newSettingsSetCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a preference",
		Long: `Change a preference.

Examples:
  tense settings set theme dark
  tense settings set auto_stop true
  tense settings set auto_stop_duration 3h`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SetSettingUseCase().Execute(cmd.Context(), usecase.SetSettingInput{Key: args[0], Value: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", out.Key, out.Value)
			return nil
		},
	}
}

// newSettingsResetCommand creates the settings reset subcommand.
func newSettingsResetCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <key>",
		Short: "Restore a preference to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SetSettingUseCase().Execute(cmd.Context(), usecase.SetSettingInput{Key: args[0], Reset: true})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", out.Key, out.Value)
			return nil
		},
	}
}
