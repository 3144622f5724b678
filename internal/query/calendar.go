package query

import (
	"time"

	"github.com/runoshun/present-tense/internal/domain"
)

// CalendarDay is one cell of a month grid.
// Fields are ordered to minimize memory padding.
type CalendarDay struct {
	Date       time.Time
	ID         string // YYYY-MM-DD
	Count      int    // Activities started that day
	InMonth    bool   // False for padding days of adjacent months
	IsToday    bool
	HasEntries bool
}

// CalendarMonth returns the grid of weeks covering the month of month.
// Weeks start at cal.WeekStart; leading and trailing cells belong to adjacent months.
func CalendarMonth(list []domain.Activity, month, now time.Time, cal domain.Calendar) [][]CalendarDay {
	month = cal.In(month)
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	next := first.AddDate(0, 1, 0)

	counts := make(map[string]int, len(list))
	for i := range list {
		counts[list[i].DayIdentifier(cal.Location)]++
	}
	today := domain.DayIdentifier(now, cal.Location)

	var weeks [][]CalendarDay
	for day := cal.StartOfWeek(first); day.Before(next); {
		week := make([]CalendarDay, 0, 7)
		for range 7 {
			id := day.Format(domain.DayLayout)
			week = append(week, CalendarDay{
				Date:       day,
				ID:         id,
				Count:      counts[id],
				InMonth:    day.Month() == first.Month(),
				IsToday:    id == today,
				HasEntries: counts[id] > 0,
			})
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
