// Package query provides pure, date-scoped views over an activity snapshot.
// Every function leaves its input untouched and returns activities sorted
// ascending by start time.
package query

import (
	"slices"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
)

// ForDate returns activities whose start falls on the calendar day of date.
// Activities crossing midnight belong to their start day only.
func ForDate(list []domain.Activity, date time.Time, cal domain.Calendar) []domain.Activity {
	return filterSorted(list, func(a *domain.Activity) bool {
		return cal.SameDay(a.Start, date)
	})
}

// ForDateRange returns activities whose start lies in [start, end].
func ForDateRange(list []domain.Activity, start, end time.Time) []domain.Activity {
	r := domain.DateRange{Start: start, End: end}
	return InRange(list, &r)
}

// InRange returns activities whose start lies in r. A nil range matches everything.
func InRange(list []domain.Activity, r *domain.DateRange) []domain.Activity {
	if r == nil {
		return filterSorted(list, func(*domain.Activity) bool { return true })
	}
	return filterSorted(list, func(a *domain.Activity) bool {
		return r.Contains(a.Start)
	})
}

// ForCategory returns activities of the given category.
func ForCategory(list []domain.Activity, category domain.Category) []domain.Activity {
	return filterSorted(list, func(a *domain.Activity) bool {
		return a.Category == category
	})
}

// Open returns the in-progress activities.
func Open(list []domain.Activity) []domain.Activity {
	return filterSorted(list, func(a *domain.Activity) bool {
		return a.IsCurrent()
	})
}

// DaysWithActivities returns the set of calendar-day identifiers (YYYY-MM-DD)
// of every activity start in the full collection.
func DaysWithActivities(list []domain.Activity, cal domain.Calendar) map[string]struct{} {
	days := make(map[string]struct{}, len(list))
	for i := range list {
		days[list[i].DayIdentifier(cal.Location)] = struct{}{}
	}
	return days
}

// SortedDays returns the keys of a day set in ascending order.
func SortedDays(days map[string]struct{}) []string {
	out := make([]string, 0, len(days))
	for d := range days {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// CountForDate returns the number of activities started on the calendar day of date.
func CountForDate(list []domain.Activity, date time.Time, cal domain.Calendar) int {
	n := 0
	for i := range list {
		if cal.SameDay(list[i].Start, date) {
			n++
		}
	}
	return n
}

// SortByStart sorts in place, ascending by start. Equal starts keep their order.
func SortByStart(list []domain.Activity) {
	slices.SortStableFunc(list, func(a, b domain.Activity) int {
		return a.Start.Compare(b.Start)
	})
}

func filterSorted(list []domain.Activity, keep func(*domain.Activity) bool) []domain.Activity {
	out := make([]domain.Activity, 0)
	for i := range list {
		if keep(&list[i]) {
			out = append(out, list[i].Clone())
		}
	}
	SortByStart(out)
	return out
}
