package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Dir    string
		Format string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all activities to a backup file",
		Long: `Write all activities to present_tense_backup_<unix time>.<format>.

Examples:
  tense export
  tense export --dir ~/backups --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ExportDataUseCase().Execute(cmd.Context(), usecase.ExportDataInput{Dir: opts.Dir, Format: opts.Format})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", out.Count, out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Destination directory (default: current directory)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", domain.FormatJSON, "Format: json or yaml")

	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all activities with a backup file",
		Long: `Replace all activities with the contents of a backup file.

The format is taken from the extension (.json, .yaml, .yml); other files are
tried as YAML, then JSON. If the file cannot be read, nothing is changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ImportDataUseCase().Execute(cmd.Context(), usecase.ImportDataInput{Path: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d activities (replaced %d)\n", out.Imported, out.Replaced)
			return nil
		},
	}
}

// newResetCommand creates the reset command.
func newResetCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all activities and restore default settings",
		Long: `Delete all activities and restore every preference to its default.
Quick actions are kept. Consider running 'tense export' first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Delete all activities and reset settings? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			out, err := c.ResetAllUseCase().Execute(cmd.Context(), usecase.ResetAllInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d activities and restored default settings\n", out.Removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

// newSyncCommand creates the sync command.
func newSyncCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push data to the configured remote",
		Long: `Push data to the configured remote and record the sync time.

Requires the cloud_sync setting. Only the git backend has a remote; with
other backends only the sync time is recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncDataUseCase().Execute(cmd.Context(), usecase.SyncDataInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Pushed {
				_, _ = fmt.Fprintf(w, "Pushed to %s\n", c.AppConfig.Store.Remote)
			} else {
				_, _ = fmt.Fprintln(w, "Nothing to push for this backend")
			}
			_, _ = fmt.Fprintf(w, "Last sync: %s\n", out.SyncedAt.In(location(c)).Format("2006-01-02 15:04"))
			return nil
		},
	}
}
