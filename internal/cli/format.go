package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
)

// Accepted layouts for time flags, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseTimeFlag parses a time flag in loc. A bare "15:04" means that time today.
func parseTimeFlag(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if clock, err := time.ParseInLocation("15:04", s, loc); err == nil {
		day := now.In(loc)
		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use HH:MM, YYYY-MM-DD HH:MM or RFC 3339)", s)
}

// parseDateFlag parses "today", "yesterday" or YYYY-MM-DD in loc.
func parseDateFlag(s string, now time.Time, loc *time.Location) (time.Time, error) {
	day := now.In(loc)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return day, nil
	case "yesterday":
		return day.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today or yesterday)", s)
	}
	return t, nil
}

// parseMonthFlag parses YYYY-MM in loc.
func parseMonthFlag(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (use YYYY-MM)", s)
	}
	return t, nil
}

func formatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// formatSpan renders "09:00-10:30", or "09:00-" for an activity in progress.
func formatSpan(a *domain.Activity, loc *time.Location) string {
	if a.End == nil {
		return formatClock(a.Start, loc) + "-"
	}
	return formatClock(a.Start, loc) + "-" + formatClock(*a.End, loc)
}

// printActivities prints activities as a table.
func printActivities(w io.Writer, activities []domain.Activity, now time.Time, loc *time.Location) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tDATE\tTIME\tDURATION\tCATEGORY\tTITLE")

	// Rows
	for i := range activities {
		a := &activities[i]
		duration := domain.FormatDuration(a.Duration(now))
		if a.IsCurrent() {
			duration += " *"
		}
		title := a.Title
		if len(a.Tags) > 0 {
			title += " #" + strings.Join(a.Tags, " #")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.DayIdentifier(loc),
			formatSpan(a, loc),
			duration,
			a.Category,
			title,
		)
	}
}

// printActivity prints one activity in detail.
func printActivity(w io.Writer, a *domain.Activity, now time.Time, loc *time.Location) {
	_, _ = fmt.Fprintf(w, "%s\n", a.Title)
	_, _ = fmt.Fprintf(w, "  ID:       %s\n", a.ID)
	_, _ = fmt.Fprintf(w, "  Category: %s\n", a.Category.Display())
	_, _ = fmt.Fprintf(w, "  Start:    %s\n", a.Start.In(loc).Format("2006-01-02 15:04"))
	if a.End != nil {
		_, _ = fmt.Fprintf(w, "  End:      %s\n", a.End.In(loc).Format("2006-01-02 15:04"))
	} else {
		_, _ = fmt.Fprintln(w, "  End:      (in progress)")
	}
	_, _ = fmt.Fprintf(w, "  Duration: %s\n", domain.FormatDuration(a.Duration(now)))
	if a.Description != "" {
		_, _ = fmt.Fprintf(w, "  Notes:    %s\n", a.Description)
	}
	if a.Recurring {
		_, _ = fmt.Fprintf(w, "  Repeats:  %s\n", a.Pattern)
	}
	if len(a.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(a.Tags, ", "))
	}
}
