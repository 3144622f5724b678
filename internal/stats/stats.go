// Package stats derives per-category, per-hour and per-weekday aggregates
// from an activity snapshot. Results are recomputed on every call.
//
// Totals count completed activities only; open activities would grow without
// bound while being aggregated. Hourly and weekly patterns attribute time to
// the period an activity starts in rather than splitting by true overlap.
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/query"
)

// CategoryStat is the aggregate of one category over a range.
// Fields are ordered to minimize memory padding.
type CategoryStat struct {
	Category   domain.Category
	Total      time.Duration // Completed activities only
	Average    time.Duration // Total / Count
	Percentage float64       // Share of the range total, 0-100
	Count      int           // All matches, including in-progress
}

// HourStat is the time attributed to one hour of the day.
type HourStat struct {
	Hour  int
	Total time.Duration
}

// WeekdayStat is the time attributed to one weekday.
type WeekdayStat struct {
	Total   time.Duration
	Weekday time.Weekday
}

// Engine computes aggregates relative to a calendar and a clock.
type Engine struct {
	Clock    domain.Clock
	Calendar domain.Calendar
}

// NewEngine creates a new Engine.
func NewEngine(cal domain.Calendar, clock domain.Clock) *Engine {
	return &Engine{Calendar: cal, Clock: clock}
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// TotalTimeForCategory sums the durations of completed activities of category,
// restricted to r when it is not nil.
func (e *Engine) TotalTimeForCategory(list []domain.Activity, category domain.Category, r *domain.DateRange) time.Duration {
	now := e.now()
	var total time.Duration
	for i := range list {
		a := &list[i]
		if a.Category != category || !a.IsCompleted() {
			continue
		}
		if r != nil && !r.Contains(a.Start) {
			continue
		}
		total += a.Duration(now)
	}
	return total
}

// AverageDailyTimeForCategory returns the total over the trailing days-day window
// divided by days, whether or not every day has activity.
func (e *Engine) AverageDailyTimeForCategory(list []domain.Activity, category domain.Category, days int) time.Duration {
	if days <= 0 {
		return 0
	}
	now := e.now()
	r := domain.DateRange{Start: now.AddDate(0, 0, -days), End: now}
	return e.TotalTimeForCategory(list, category, &r) / time.Duration(days)
}

// CategoryStats aggregates every category with at least one activity in r.
// Rows are sorted by total descending; ties keep the canonical category order.
func (e *Engine) CategoryStats(list []domain.Activity, r *domain.DateRange) []CategoryStat {
	now := e.now()
	byCategory := make(map[domain.Category]*CategoryStat)
	for _, a := range query.InRange(list, r) {
		s, ok := byCategory[a.Category]
		if !ok {
			s = &CategoryStat{Category: a.Category}
			byCategory[a.Category] = s
		}
		s.Count++
		if a.IsCompleted() {
			s.Total += a.Duration(now)
		}
	}

	out := make([]CategoryStat, 0, len(byCategory))
	for _, s := range byCategory {
		s.Average = s.Total / time.Duration(s.Count)
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b CategoryStat) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.Order(), b.Category.Order())
	})
	return out
}

// CategoryStatsWithPercentages is CategoryStats with each row's share of the
// summed totals. When the sum is zero every percentage is zero.
func (e *Engine) CategoryStatsWithPercentages(list []domain.Activity, r *domain.DateRange) []CategoryStat {
	rows := e.CategoryStats(list, r)
	var sum time.Duration
	for _, s := range rows {
		sum += s.Total
	}
	if sum == 0 {
		return rows
	}
	for i := range rows {
		rows[i].Percentage = 100 * float64(rows[i].Total) / float64(sum)
	}
	return rows
}

// DailyPattern returns 24 rows, one per hour. A completed activity's duration
// is split evenly across every hour from its start hour to its end hour
// inclusive. Spans crossing midnight wrap around to hour 0.
func (e *Engine) DailyPattern(list []domain.Activity, r *domain.DateRange) []HourStat {
	rows := make([]HourStat, 24)
	for h := range rows {
		rows[h].Hour = h
	}
	now := e.now()
	for _, a := range query.InRange(list, r) {
		if !a.IsCompleted() {
			continue
		}
		start := e.Calendar.In(a.Start)
		end := e.Calendar.In(*a.End)
		span := wallHourSpan(start, end)
		share := a.Duration(now) / time.Duration(span+1)
		for i := 0; i <= span; i++ {
			rows[(start.Hour()+i)%24].Total += share
		}
	}
	return rows
}

// wallHourSpan counts hour boundaries between start and end in their wall clock.
func wallHourSpan(start, end time.Time) int {
	days := int(dayNumber(end) - dayNumber(start))
	span := days*24 + end.Hour() - start.Hour()
	if span < 0 {
		return 0
	}
	return span
}

func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// WeeklyPattern returns 7 rows starting at the calendar's first weekday.
// The full duration of a completed activity goes to the weekday it starts on.
func (e *Engine) WeeklyPattern(list []domain.Activity, r *domain.DateRange) []WeekdayStat {
	weekdays := e.Calendar.Weekdays()
	rows := make([]WeekdayStat, len(weekdays))
	index := make(map[time.Weekday]int, len(weekdays))
	for i, d := range weekdays {
		rows[i].Weekday = d
		index[d] = i
	}
	now := e.now()
	for _, a := range query.InRange(list, r) {
		if !a.IsCompleted() {
			continue
		}
		rows[index[e.Calendar.In(a.Start).Weekday()]].Total += a.Duration(now)
	}
	return rows
}

// MostActiveDay returns the weekday with the largest weekly total, the first
// one in week order on ties. ok is false when no completed time exists; an
// empty period has no most active day rather than defaulting to the first weekday.
func (e *Engine) MostActiveDay(list []domain.Activity, r *domain.DateRange) (time.Weekday, bool) {
	best := -1
	var bestTotal time.Duration
	for i, row := range e.WeeklyPattern(list, r) {
		if row.Total > bestTotal {
			best, bestTotal = i, row.Total
		}
	}
	if best < 0 {
		return time.Sunday, false
	}
	return e.Calendar.Weekdays()[best], true
}

// MostUsedCategory returns the first row of CategoryStats.
func (e *Engine) MostUsedCategory(list []domain.Activity, r *domain.DateRange) (domain.Category, bool) {
	rows := e.CategoryStats(list, r)
	if len(rows) == 0 {
		return "", false
	}
	return rows[0].Category, true
}
