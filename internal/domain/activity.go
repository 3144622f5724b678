// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DayLayout is the layout of calendar-day identifiers.
const DayLayout = "2006-01-02"

// RecurringPattern describes how an activity repeats.
type RecurringPattern string

const (
	PatternNone     RecurringPattern = ""
	PatternDaily    RecurringPattern = "daily"
	PatternWeekly   RecurringPattern = "weekly"
	PatternMonthly  RecurringPattern = "monthly"
	PatternWeekdays RecurringPattern = "weekdays"
	PatternWeekends RecurringPattern = "weekends"
)

// AllPatterns returns all recurring patterns.
func AllPatterns() []RecurringPattern {
	return []RecurringPattern{PatternDaily, PatternWeekly, PatternMonthly, PatternWeekdays, PatternWeekends}
}

// ParsePattern parses a recurring pattern name.
func ParsePattern(s string) (RecurringPattern, error) {
	p := RecurringPattern(strings.ToLower(strings.TrimSpace(s)))
	if p == PatternNone || !slices.Contains(AllPatterns(), p) {
		return PatternNone, ErrInvalidPattern
	}
	return p, nil
}

// Display returns a human-readable representation of the pattern.
func (p RecurringPattern) Display() string {
	switch p {
	case PatternDaily:
		return "Daily"
	case PatternWeekly:
		return "Weekly"
	case PatternMonthly:
		return "Monthly"
	case PatternWeekdays:
		return "Weekdays"
	case PatternWeekends:
		return "Weekends"
	default:
		return ""
	}
}

// Activity is a logged, possibly open-ended, user action.
// Fields are ordered to minimize memory padding.
type Activity struct {
	Start       time.Time        `json:"startTime" yaml:"startTime"`                         // Start time
	End         *time.Time       `json:"endTime,omitempty" yaml:"endTime,omitempty"`         // End time (nil = in progress)
	ID          string           `json:"id" yaml:"id"`                                       // UUID
	Title       string           `json:"title" yaml:"title"`                                 // Title (required)
	Description string           `json:"description,omitempty" yaml:"description,omitempty"` // Free text (optional)
	Category    Category         `json:"category" yaml:"category"`                           // Category
	Pattern     RecurringPattern `json:"recurringPattern,omitempty" yaml:"recurringPattern,omitempty"`
	Tags        []string         `json:"tags" yaml:"tags"`
	Recurring   bool             `json:"isRecurring" yaml:"isRecurring"`
}

// IsCurrent returns true if the activity has no end time.
func (a *Activity) IsCurrent() bool {
	return a.End == nil
}

// IsCompleted returns true if the activity has an end time.
func (a *Activity) IsCompleted() bool {
	return a.End != nil
}

// Duration returns (End or now) - Start, never negative.
func (a *Activity) Duration(now time.Time) time.Duration {
	end := now
	if a.End != nil {
		end = *a.End
	}
	d := end.Sub(a.Start)
	if d < 0 {
		return 0
	}
	return d
}

// DayIdentifier returns the calendar day of the start time in loc.
func (a *Activity) DayIdentifier(loc *time.Location) string {
	return DayIdentifier(a.Start, loc)
}

// DayIdentifier formats t as a calendar day in loc.
func DayIdentifier(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// Validate checks required fields.
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	if !a.Category.IsValid() {
		return &ValidationError{Field: "category", Err: ErrInvalidCategory}
	}
	if a.End != nil && a.End.Before(a.Start) {
		return &ValidationError{Field: "endTime", Err: ErrEndBeforeStart}
	}
	if a.Recurring && a.Pattern != PatternNone && !slices.Contains(AllPatterns(), a.Pattern) {
		return &ValidationError{Field: "recurringPattern", Err: ErrInvalidPattern}
	}
	return nil
}

// Normalize trims text fields, de-duplicates tags and drops the pattern of
// non-recurring activities.
func (a *Activity) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	if a.Category == "" {
		a.Category = CategoryOther
	}
	if !a.Recurring {
		a.Pattern = PatternNone
	}
	a.Tags = NormalizeTags(a.Tags)
}

// NormalizeTags trims tags and drops empty and duplicate entries, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Clone returns a deep copy.
func (a Activity) Clone() Activity {
	if a.End != nil {
		end := *a.End
		a.End = &end
	}
	a.Tags = slices.Clone(a.Tags)
	return a
}

// CloneActivities deep-copies a slice of activities.
func CloneActivities(list []Activity) []Activity {
	out := make([]Activity, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// FormatDuration renders a duration as "1h 5m" or "5m".
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := total % 3600 / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatElapsed renders a running timer as "HH:MM:SS" or "MM:SS".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
