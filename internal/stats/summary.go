package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/query"
)

// favoriteLimit is the number of categories reported by Overview.
const favoriteLimit = 5

// Summary holds the headline figures of a range.
// Fields are ordered to minimize memory padding.
type Summary struct {
	MostUsedCategory    domain.Category
	TotalTime           time.Duration // Completed activities only
	AverageDuration     time.Duration // Mean of completed durations
	Count               int           // All activities in range
	MostActiveDay       time.Weekday
	HasMostActiveDay    bool
	HasMostUsedCategory bool
}

// Summary computes the headline figures of r.
func (e *Engine) Summary(list []domain.Activity, r *domain.DateRange) Summary {
	now := e.now()
	inRange := query.InRange(list, r)

	s := Summary{Count: len(inRange)}
	completed := 0
	for i := range inRange {
		if inRange[i].IsCompleted() {
			s.TotalTime += inRange[i].Duration(now)
			completed++
		}
	}
	if completed > 0 {
		s.AverageDuration = s.TotalTime / time.Duration(completed)
	}
	s.MostActiveDay, s.HasMostActiveDay = e.MostActiveDay(inRange, nil)
	s.MostUsedCategory, s.HasMostUsedCategory = e.MostUsedCategory(inRange, nil)
	return s
}

// Overview holds lifetime figures over the whole collection.
type Overview struct {
	Favorites   []domain.Category // Top categories by activity count
	TotalTime   time.Duration     // Completed activities only
	TotalCount  int
	DaysOfUsage int // Distinct calendar days with activity
}

// Overview computes lifetime figures.
func (e *Engine) Overview(list []domain.Activity) Overview {
	now := e.now()
	o := Overview{TotalCount: len(list)}
	counts := make(map[domain.Category]int)
	for i := range list {
		if list[i].IsCompleted() {
			o.TotalTime += list[i].Duration(now)
		}
		counts[list[i].Category]++
	}
	o.DaysOfUsage = len(query.DaysWithActivities(list, e.Calendar))

	for c := range counts {
		o.Favorites = append(o.Favorites, c)
	}
	slices.SortFunc(o.Favorites, func(a, b domain.Category) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a.Order(), b.Order())
	})
	if len(o.Favorites) > favoriteLimit {
		o.Favorites = o.Favorites[:favoriteLimit]
	}
	return o
}
