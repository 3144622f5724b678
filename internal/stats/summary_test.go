package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/present-tense/internal/domain"
)

func TestEngine_Summary(t *testing.T) {
	e := newTestEngine(time.Sunday)
	list := []domain.Activity{
		completed(domain.CategoryWork, at(10, 9, 0), 2*time.Hour),
		completed(domain.CategoryFood, at(10, 12, 0), time.Hour),
		open(domain.CategoryWork, at(10, 17, 0)),
		completed(domain.CategoryWork, at(2, 9, 0), 5*time.Hour), // previous week
	}
	r := e.Calendar.RangeFor(domain.RangeWeek, now)

	got := e.Summary(list, &r)

	assert.Equal(t, Summary{
		Count:               3,
		TotalTime:           3 * time.Hour,
		AverageDuration:     90 * time.Minute,
		MostActiveDay:       time.Tuesday,
		HasMostActiveDay:    true,
		MostUsedCategory:    domain.CategoryWork,
		HasMostUsedCategory: true,
	}, got)
}

func TestEngine_Summary_Empty(t *testing.T) {
	e := newTestEngine(time.Sunday)

	got := e.Summary(nil, nil)

	assert.Zero(t, got.Count)
	assert.Zero(t, got.AverageDuration)
	assert.False(t, got.HasMostActiveDay)
	assert.False(t, got.HasMostUsedCategory)
}

func TestEngine_Overview(t *testing.T) {
	e := newTestEngine(time.Sunday)
	var list []domain.Activity
	add := func(c domain.Category, n int, day int) {
		for i := range n {
			list = append(list, completed(c, at(day, i, 0), 30*time.Minute))
		}
	}
	add(domain.CategoryHobby, 3, 1)
	add(domain.CategoryWork, 3, 2)
	add(domain.CategoryFood, 2, 3)
	add(domain.CategorySleep, 1, 3)
	add(domain.CategoryHealth, 1, 4)
	add(domain.CategoryOther, 1, 4)
	list = append(list, open(domain.CategoryOther, at(5, 9, 0)))

	got := e.Overview(list)

	assert.Equal(t, 12, got.TotalCount)
	assert.Equal(t, 11*30*time.Minute, got.TotalTime)
	assert.Equal(t, 5, got.DaysOfUsage)
	assert.Equal(t, []domain.Category{
		domain.CategoryWork,
		domain.CategoryHobby,
		domain.CategoryFood,
		domain.CategoryOther,
		domain.CategorySleep,
	}, got.Favorites)
}
