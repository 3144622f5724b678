package domain

import (
	"strings"
	"time"
)

// Calendar carries the day-boundary and week semantics used by queries and stats.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// DefaultCalendar uses the local time zone and Sunday-first weeks.
func DefaultCalendar() Calendar {
	return Calendar{Location: time.Local, WeekStart: time.Sunday}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// In converts t into the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.loc())
}

// StartOfDay returns midnight of t's calendar day.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = c.In(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc())
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	a, b = c.In(a), c.In(b)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// StartOfWeek returns midnight of the first day of t's week.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.WeekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// Weekdays returns the seven weekdays starting at WeekStart.
func (c Calendar) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(c.WeekStart) + i) % 7)
	}
	return out
}

// ParseWeekday parses an English weekday name ("monday", "Mon").
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, true
		}
	}
	return time.Sunday, false
}

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates and returns a range.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t lies in [Start, End].
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// RangePreset selects a calendar period relative to now.
type RangePreset string

const (
	RangeDay   RangePreset = "day"
	RangeWeek  RangePreset = "week"
	RangeMonth RangePreset = "month"
	RangeYear  RangePreset = "year"
)

// ParseRangePreset parses a preset name.
func ParseRangePreset(s string) (RangePreset, bool) {
	switch p := RangePreset(strings.ToLower(strings.TrimSpace(s))); p {
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return p, true
	}
	return "", false
}

// Display returns a human-readable representation of the preset.
func (p RangePreset) Display() string {
	switch p {
	case RangeDay:
		return "Today"
	case RangeWeek:
		return "This week"
	case RangeMonth:
		return "This month"
	case RangeYear:
		return "This year"
	default:
		return string(p)
	}
}

// RangeFor returns the calendar period of preset containing now.
// End is one nanosecond before the next period starts.
func (c Calendar) RangeFor(preset RangePreset, now time.Time) DateRange {
	var start, next time.Time
	day := c.StartOfDay(now)
	switch preset {
	case RangeDay:
		start, next = day, day.AddDate(0, 0, 1)
	case RangeMonth:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, c.loc())
		next = start.AddDate(0, 1, 0)
	case RangeYear:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, c.loc())
		next = start.AddDate(1, 0, 0)
	default:
		start = c.StartOfWeek(now)
		next = start.AddDate(0, 0, 7)
	}
	return DateRange{Start: start, End: next.Add(-time.Nanosecond)}
}

// DayRange returns the range covering the calendar day of t.
func (c Calendar) DayRange(t time.Time) DateRange {
	return c.RangeFor(RangeDay, t)
}
