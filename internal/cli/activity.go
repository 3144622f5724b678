package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/usecase"
)

// location returns the calendar's time zone.
func location(c *app.Container) *time.Location {
	return c.Calendar.In(c.Clock.Now()).Location()
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Category    string
		Description string
	}

	cmd := &cobra.Command{
		Use:   "start <title>",
		Short: "Start an activity now",
		Long: `Start a new activity. The activity that is currently running, if any,
is stopped first.

Examples:
  tense start "Write report" --category work
  tense start Lunch -c food -d "with Sam"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StartActivityUseCase().Execute(cmd.Context(), usecase.StartActivityInput{
				Title:       strings.Join(args, " "),
				Description: opts.Description,
				Category:    opts.Category,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			now := c.Clock.Now()
			if out.Stopped != nil {
				_, _ = fmt.Fprintf(w, "Stopped %q (%s)\n", out.Stopped.Title, domain.FormatDuration(out.Stopped.Duration(now)))
			}
			_, _ = fmt.Fprintf(w, "Started %q [%s] at %s\n", out.Started.Title, out.Started.Category, formatClock(out.Started.Start, location(c)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Category (default: other)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Description")

	return cmd
}

// newStopCommand creates the stop command.
func newStopCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.StopActivityUseCase().Execute(cmd.Context(), usecase.StopActivityInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Stopped == nil {
				_, _ = fmt.Fprintln(w, "No activity in progress")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Stopped %q (%s)\n", out.Stopped.Title, domain.FormatDuration(out.Stopped.Duration(c.Clock.Now())))
			return nil
		},
	}
}

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			current := c.Activities.Current()
			if current == nil {
				_, _ = fmt.Fprintln(w, "No activity in progress")
				return nil
			}
			printActivity(w, current, c.Clock.Now(), location(c))
			return nil
		},
	}
}

// newAddCommand creates the add command for logging past activities.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Category    string
		Description string
		Start       string
		End         string
		Repeat      string
		Tags        []string
		Duration    time.Duration
		Open        bool
	}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Log an activity",
		Long: `Log an activity with explicit times.

Without --end, the activity lasts --for, or the default_activity_duration
setting when --for is not given.

Examples:
  tense add "Morning run" -c exercise --start 07:00 --for 45m
  tense add "Standup" -c work --start "2026-03-09 09:30" --end "2026-03-09 09:45" --repeat weekdays
  tense add "Reading" -c education --start 21:00 --open`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := c.Clock.Now()
			loc := location(c)
			in := usecase.AddActivityInput{
				Title:       strings.Join(args, " "),
				Description: opts.Description,
				Category:    opts.Category,
				Pattern:     opts.Repeat,
				Tags:        opts.Tags,
				Duration:    opts.Duration,
				Open:        opts.Open,
			}
			if opts.Start != "" {
				start, err := parseTimeFlag(opts.Start, now, loc)
				if err != nil {
					return err
				}
				in.Start = start
			}
			if opts.End != "" {
				if opts.Open {
					return errors.New("--end cannot be used with --open")
				}
				end, err := parseTimeFlag(opts.End, now, loc)
				if err != nil {
					return err
				}
				in.End = &end
			}

			out, err := c.AddActivityUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s) [%s]\n", out.Activity.Title, out.Activity.ID, formatSpan(out.Activity, loc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Category (default: other)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Description")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Start time (default: now)")
	cmd.Flags().StringVar(&opts.End, "end", "", "End time")
	cmd.Flags().DurationVar(&opts.Duration, "for", 0, "Duration, used when --end is not given")
	cmd.Flags().StringVar(&opts.Repeat, "repeat", "", "Recurring pattern: daily, weekly, monthly, weekdays, weekends")
	cmd.Flags().StringArrayVarP(&opts.Tags, "tag", "t", nil, "Tags (can specify multiple)")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Leave the activity in progress")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Category    string
		Description string
		Start       string
		End         string
		Repeat      string
		Tags        []string
		Reopen      bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an activity",
		Long: `Edit an activity. Only the flags you pass are changed.

Examples:
  tense edit 3f2c... --title "Deep work" --category work
  tense edit 3f2c... --end 17:30
  tense edit 3f2c... --repeat ""        # stop repeating
  tense edit 3f2c... --tag focus --tag q1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := c.Clock.Now()
			loc := location(c)
			in := usecase.EditActivityInput{ID: args[0], Reopen: opts.Reopen}
			flags := cmd.Flags()

			if flags.Changed("title") {
				in.Title = &opts.Title
			}
			if flags.Changed("category") {
				in.Category = &opts.Category
			}
			if flags.Changed("description") {
				in.Description = &opts.Description
			}
			if flags.Changed("repeat") {
				in.Pattern = &opts.Repeat
			}
			if flags.Changed("tag") {
				in.Tags = &opts.Tags
			}
			if flags.Changed("start") {
				start, err := parseTimeFlag(opts.Start, now, loc)
				if err != nil {
					return err
				}
				in.Start = &start
			}
			if flags.Changed("end") {
				if opts.Reopen {
					return errors.New("--end cannot be used with --reopen")
				}
				end, err := parseTimeFlag(opts.End, now, loc)
				if err != nil {
					return err
				}
				in.End = &end
			}

			out, err := c.EditActivityUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", out.Activity.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&opts.Start, "start", "", "New start time")
	cmd.Flags().StringVar(&opts.End, "end", "", "New end time")
	cmd.Flags().StringVar(&opts.Repeat, "repeat", "", "Recurring pattern (empty to clear)")
	cmd.Flags().StringArrayVarP(&opts.Tags, "tag", "t", nil, "Replace tags (can specify multiple)")
	cmd.Flags().BoolVar(&opts.Reopen, "reopen", false, "Clear the end time and resume the activity")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete activities",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DeleteActivityUseCase()
			w := cmd.OutOrStdout()
			for _, id := range args {
				out, err := uc.Execute(cmd.Context(), usecase.DeleteActivityInput{ID: id})
				if err != nil {
					return err
				}
				if out.Deleted {
					_, _ = fmt.Fprintf(w, "Deleted %s\n", id)
				} else {
					_, _ = fmt.Fprintf(w, "No activity %s\n", id)
				}
			}
			return nil
		},
	}
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date     string
		From     string
		To       string
		Period   string
		Category string
		All      bool
		Open     bool
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities",
		Long: `List activities in ascending start order. Without filters, today's
activities are shown.

Examples:
  tense list                        # today
  tense list --date yesterday
  tense list --period week -c work
  tense list --from 2026-03-01 --to 2026-03-07
  tense list --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := c.Clock.Now()
			loc := location(c)
			in := usecase.ListActivitiesInput{Category: opts.Category, Open: opts.Open}

			switch {
			case opts.Date != "":
				d, err := parseDateFlag(opts.Date, now, loc)
				if err != nil {
					return err
				}
				in.Date = &d
			case opts.From != "" || opts.To != "":
				r, err := parseRangeFlags(opts.From, opts.To, now, loc)
				if err != nil {
					return err
				}
				in.Range = &r
			case opts.Period != "":
				p, ok := domain.ParseRangePreset(opts.Period)
				if !ok {
					return fmt.Errorf("invalid period %q (use day, week, month or year)", opts.Period)
				}
				in.Preset = p
			case !opts.All:
				in.Preset = domain.RangeDay
			}

			out, err := c.ListActivitiesUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.JSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out.Activities)
			}
			if len(out.Activities) == 0 {
				_, _ = fmt.Fprintln(w, "No activities")
				return nil
			}
			printActivities(w, out.Activities, now, loc)
			_, _ = fmt.Fprintf(w, "\n%d activities, %s logged\n", len(out.Activities), domain.FormatDuration(out.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "Calendar day (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Range start (YYYY-MM-DD or time)")
	cmd.Flags().StringVar(&opts.To, "to", "", "Range end, inclusive (YYYY-MM-DD or time)")
	cmd.Flags().StringVarP(&opts.Period, "period", "p", "", "Period containing now: day, week, month, year")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Only this category")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "All activities")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Only activities in progress")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// parseRangeFlags builds an inclusive range. A bare date as --to covers that whole day;
// a missing bound is open-ended.
func parseRangeFlags(from, to string, now time.Time, loc *time.Location) (domain.DateRange, error) {
	parseBound := func(s string, end bool) (time.Time, error) {
		if d, err := parseDateFlag(s, now, loc); err == nil {
			day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			if end {
				return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
			}
			return day, nil
		}
		return parseTimeFlag(s, now, loc)
	}

	r := domain.DateRange{
		Start: time.Unix(0, 0).In(loc),
		End:   time.Date(9999, 12, 31, 23, 59, 59, 0, loc),
	}
	var err error
	if from != "" {
		if r.Start, err = parseBound(from, false); err != nil {
			return domain.DateRange{}, err
		}
	}
	if to != "" {
		if r.End, err = parseBound(to, true); err != nil {
			return domain.DateRange{}, err
		}
	}
	return domain.NewDateRange(r.Start, r.End)
}
