package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/stats"
	"github.com/runoshun/present-tense/internal/store"
)

// ShowStatsInput contains the parameters for computing statistics.
type ShowStatsInput struct {
	Preset domain.RangePreset // Period containing now; empty = all time
}

// ShowStatsOutput contains the computed statistics.
// Fields are ordered to minimize memory padding.
type ShowStatsOutput struct {
	Range      *domain.DateRange // nil for all time
	Categories []stats.CategoryStat
	Hourly     []stats.HourStat
	Weekly     []stats.WeekdayStat
	Overview   stats.Overview
	Summary    stats.Summary
}

// ShowStats is the use case for the statistics view.
type ShowStats struct {
	activities *store.ActivityStore
	engine     *stats.Engine
	clock      domain.Clock
}

// NewShowStats creates a new ShowStats use case.
func NewShowStats(activities *store.ActivityStore, clock domain.Clock, cal domain.Calendar) *ShowStats {
	return &ShowStats{
		activities: activities,
		engine:     stats.NewEngine(cal, clock),
		clock:      clock,
	}
}

// Execute computes every aggregate over one snapshot.
func (uc *ShowStats) Execute(_ context.Context, in ShowStatsInput) (*ShowStatsOutput, error) {
	snapshot := uc.activities.Snapshot()

	var r *domain.DateRange
	if in.Preset != "" {
		rng := uc.engine.Calendar.RangeFor(in.Preset, uc.clock.Now())
		r = &rng
	}

	return &ShowStatsOutput{
		Range:      r,
		Summary:    uc.engine.Summary(snapshot, r),
		Categories: uc.engine.CategoryStatsWithPercentages(snapshot, r),
		Hourly:     uc.engine.DailyPattern(snapshot, r),
		Weekly:     uc.engine.WeeklyPattern(snapshot, r),
		Overview:   uc.engine.Overview(snapshot),
	}, nil
}
