package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/usecase"
)

// newQuickCommand creates the quick command with its subcommands.
func newQuickCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quick",
		Aliases: []string{"q"},
		Short:   "Manage and start quick actions",
		Long: `Quick actions are one-tap templates for activities you start often.
They are referenced by their position in the list (1, 2, ...) or by ID.
The six built-in actions can be edited and reordered but not deleted.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newQuickListCommand(c))
	cmd.AddCommand(newQuickStartCommand(c))
	cmd.AddCommand(newQuickAddCommand(c))
	cmd.AddCommand(newQuickEditCommand(c))
	cmd.AddCommand(newQuickRmCommand(c))
	cmd.AddCommand(newQuickMoveCommand(c))

	return cmd
}

func printQuickActions(w io.Writer, actions []domain.QuickAction) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "#\tTITLE\tCATEGORY\tID\t")

	// Rows
	for i, q := range actions {
		kind := ""
		if q.IsDefault {
			kind = "(default)"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, q.Title, q.Category, q.ID, kind)
	}
}

// newQuickListCommand creates the quick list subcommand.
func newQuickListCommand(c *app.Container) *cobra.Command {
	var custom bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quick actions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListQuickActionsUseCase().Execute(cmd.Context(), usecase.ListQuickActionsInput{CustomOnly: custom})
			if err != nil {
				return err
			}
			printQuickActions(cmd.OutOrStdout(), out.Actions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&custom, "custom", false, "Only user-created actions")

	return cmd
}

// newQuickStartCommand creates the quick start subcommand.
func newQuickStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "start <position|id>",
		Short: "Start an activity from a quick action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StartQuickActionUseCase().Execute(cmd.Context(), usecase.StartQuickActionInput{Ref: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Stopped != nil {
				_, _ = fmt.Fprintf(w, "Stopped %q (%s)\n", out.Stopped.Title, domain.FormatDuration(out.Stopped.Duration(c.Clock.Now())))
			}
			_, _ = fmt.Fprintf(w, "Started %q [%s]\n", out.Started.Title, out.Started.Category)
			return nil
		},
	}
}

// newQuickAddCommand creates the quick add subcommand.
func newQuickAddCommand(c *app.Container) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quick action",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddQuickActionUseCase().Execute(cmd.Context(), usecase.AddQuickActionInput{
				Title:    strings.Join(args, " "),
				Category: category,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added quick action %q (%s)\n", out.Action.Title, out.Action.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: other)")

	return cmd
}

// newQuickEditCommand creates the quick edit subcommand.
func newQuickEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title    string
		Category string
	}

	cmd := &cobra.Command{
		Use:   "edit <position|id>",
		Short: "Rename or recategorize a quick action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.EditQuickActionInput{Ref: args[0]}
			if cmd.Flags().Changed("title") {
				in.Title = &opts.Title
			}
			if cmd.Flags().Changed("category") {
				in.Category = &opts.Category
			}

			out, err := c.EditQuickActionUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated quick action %q\n", out.Action.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "New category")

	return cmd
}

// newQuickRmCommand creates the quick rm subcommand.
func newQuickRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <position|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a quick action",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteQuickActionUseCase().Execute(cmd.Context(), usecase.DeleteQuickActionInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted quick action %q\n", out.Action.Title)
			return nil
		},
	}
}

// newQuickMoveCommand creates the quick move subcommand.
func newQuickMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Reorder a quick action",
		Long: `Move the quick action at position <from> so it ends up at position <to>.

Example:
  tense quick move 6 1      # make the last default action the first`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			out, err := c.MoveQuickActionUseCase().Execute(cmd.Context(), usecase.MoveQuickActionInput{From: from, To: to})
			if err != nil {
				return err
			}
			printQuickActions(cmd.OutOrStdout(), out.Actions)
			return nil
		},
	}
}
