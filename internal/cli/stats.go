package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/stats"
	"github.com/runoshun/present-tense/internal/usecase"
)

const barWidth = 20

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Period string
		Hourly bool
		Weekly bool
	}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show time statistics",
		Long: `Show where the time went: totals per category, the busiest weekday
and the overall usage figures.

Examples:
  tense stats                 # this week
  tense stats -p month --hourly
  tense stats -p all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ShowStatsInput{}
			if opts.Period != "all" {
				p, ok := domain.ParseRangePreset(opts.Period)
				if !ok {
					return fmt.Errorf("invalid period %q (use day, week, month, year or all)", opts.Period)
				}
				in.Preset = p
			}

			out, err := c.ShowStatsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			title := "All time"
			if in.Preset != "" {
				title = in.Preset.Display()
			}
			printSummary(w, title, out.Summary)
			printCategoryStats(w, out.Categories)
			if opts.Weekly {
				printWeekly(w, out.Weekly)
			}
			if opts.Hourly {
				printHourly(w, out.Hourly)
			}
			printOverview(w, out.Overview)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Period, "period", "p", string(domain.RangeWeek), "Period: day, week, month, year or all")
	cmd.Flags().BoolVar(&opts.Hourly, "hourly", false, "Show the time of day pattern")
	cmd.Flags().BoolVar(&opts.Weekly, "weekly", false, "Show the weekday pattern")

	return cmd
}

func printSummary(w io.Writer, title string, s stats.Summary) {
	_, _ = fmt.Fprintf(w, "%s\n", title)
	_, _ = fmt.Fprintf(w, "  Total time:     %s\n", domain.FormatDuration(s.TotalTime))
	_, _ = fmt.Fprintf(w, "  Activities:     %d\n", s.Count)
	_, _ = fmt.Fprintf(w, "  Average:        %s\n", domain.FormatDuration(s.AverageDuration))
	if s.HasMostActiveDay {
		_, _ = fmt.Fprintf(w, "  Most active:    %s\n", s.MostActiveDay)
	}
	if s.HasMostUsedCategory {
		_, _ = fmt.Fprintf(w, "  Top category:   %s\n", s.MostUsedCategory.Display())
	}
}

func printCategoryStats(w io.Writer, cats []stats.CategoryStat) {
	_, _ = fmt.Fprintln(w)
	if len(cats) == 0 {
		_, _ = fmt.Fprintln(w, "No activities in this period")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "CATEGORY\tTOTAL\tCOUNT\tAVERAGE\tSHARE\t")

	// Rows
	for _, s := range cats {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%5.1f%%\t%s\n",
			s.Category.Display(),
			domain.FormatDuration(s.Total),
			s.Count,
			domain.FormatDuration(s.Average),
			s.Percentage,
			bar(s.Percentage/100),
		)
	}
}

func printWeekly(w io.Writer, days []stats.WeekdayStat) {
	_, _ = fmt.Fprintln(w, "\nBy weekday")
	peak := time.Duration(0)
	for _, d := range days {
		peak = max(peak, d.Total)
	}
	for _, d := range days {
		_, _ = fmt.Fprintf(w, "  %s  %-*s %s\n", d.Weekday.String()[:3], barWidth, bar(ratio(d.Total, peak)), domain.FormatDuration(d.Total))
	}
}

func printHourly(w io.Writer, hours []stats.HourStat) {
	_, _ = fmt.Fprintln(w, "\nBy hour")
	peak := time.Duration(0)
	for _, h := range hours {
		peak = max(peak, h.Total)
	}
	for _, h := range hours {
		if h.Total == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %02d:00  %-*s %s\n", h.Hour, barWidth, bar(ratio(h.Total, peak)), domain.FormatDuration(h.Total))
	}
}

func printOverview(w io.Writer, o stats.Overview) {
	_, _ = fmt.Fprintln(w, "\nOverall")
	_, _ = fmt.Fprintf(w, "  Activities:     %d\n", o.TotalCount)
	_, _ = fmt.Fprintf(w, "  Time logged:    %s\n", domain.FormatDuration(o.TotalTime))
	_, _ = fmt.Fprintf(w, "  Days used:      %d\n", o.DaysOfUsage)
	if len(o.Favorites) > 0 {
		names := make([]string, len(o.Favorites))
		for i, f := range o.Favorites {
			names[i] = f.Display()
		}
		_, _ = fmt.Fprintf(w, "  Favorites:      %s\n", strings.Join(names, ", "))
	}
}

func ratio(d, peak time.Duration) float64 {
	if peak <= 0 {
		return 0
	}
	return float64(d) / float64(peak)
}

// bar renders a fraction in [0, 1] as a block bar.
func bar(fraction float64) string {
	n := int(fraction*barWidth + 0.5)
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n)
}

// newCalendarCommand creates the calendar command.
func newCalendarCommand(c *app.Container) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with activity counts",
		Long: `Show a month grid. Days with activities show how many were started;
today is marked with brackets.

Examples:
  tense calendar
  tense calendar --month 2026-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ShowCalendarInput{}
			if month != "" {
				m, err := parseMonthFlag(month, location(c))
				if err != nil {
					return err
				}
				in.Month = m
			}

			out, err := c.ShowCalendarUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s\n", out.Month.Format("January 2006"))
			for _, d := range out.Weekdays {
				_, _ = fmt.Fprintf(w, " %-6s", d.String()[:2])
			}
			_, _ = fmt.Fprintln(w)
			for _, week := range out.Weeks {
				for _, day := range week {
					_, _ = fmt.Fprintf(w, " %-6s", calendarCell(day.Date.Day(), day.Count, day.InMonth, day.IsToday))
				}
				_, _ = fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show (YYYY-MM, default: current)")

	return cmd
}

// calendarCell renders "12·3" for the 12th with three activities, "[12]" for today.
func calendarCell(day, count int, inMonth, today bool) string {
	if !inMonth {
		return "  ."
	}
	cell := fmt.Sprintf("%2d", day)
	if today {
		cell = "[" + strings.TrimSpace(cell) + "]"
	}
	if count > 0 {
		cell += fmt.Sprintf("·%d", count)
	}
	return cell
}
