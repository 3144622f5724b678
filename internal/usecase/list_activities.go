package usecase

import (
	"context"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/query"
	"github.com/runoshun/present-tense/internal/store"
)

// ListActivitiesInput contains the parameters for listing activities.
// Date, Range and Preset are alternatives; with none set, all activities are listed.
// Fields are ordered to minimize memory padding.
type ListActivitiesInput struct {
	Date     *time.Time         // Activities of this calendar day
	Range    *domain.DateRange  // Activities starting inside the range
	Preset   domain.RangePreset // Period containing now (day, week, month, year)
	Category string             // Optional category filter
	Open     bool               // Only in-progress activities
}

// ListActivitiesOutput contains the listed activities.
// Fields are ordered to minimize memory padding.
type ListActivitiesOutput struct {
	Range      *domain.DateRange // Effective range, nil when unbounded
	Current    *domain.Activity  // Running activity, if any
	Activities []domain.Activity // Ascending by start time
	Total      time.Duration     // Sum of completed durations
}

// ListActivities is the use case for listing activities.
type ListActivities struct {
	activities *store.ActivityStore
	clock      domain.Clock
	calendar   domain.Calendar
}

// NewListActivities creates a new ListActivities use case.
func NewListActivities(activities *store.ActivityStore, clock domain.Clock, cal domain.Calendar) *ListActivities {
	return &ListActivities{activities: activities, clock: clock, calendar: cal}
}

// Execute returns the matching activities sorted by start time.
func (uc *ListActivities) Execute(_ context.Context, in ListActivitiesInput) (*ListActivitiesOutput, error) {
	now := uc.clock.Now()
	snapshot := uc.activities.Snapshot()
	out := &ListActivitiesOutput{Current: uc.activities.Current()}

	switch {
	case in.Date != nil:
		r := uc.calendar.DayRange(*in.Date)
		out.Range = &r
		out.Activities = query.ForDate(snapshot, *in.Date, uc.calendar)
	case in.Range != nil:
		if in.Range.End.Before(in.Range.Start) {
			return nil, domain.ErrInvalidRange
		}
		r := *in.Range
		out.Range = &r
		out.Activities = query.ForDateRange(snapshot, r.Start, r.End)
	case in.Preset != "":
		r := uc.calendar.RangeFor(in.Preset, now)
		out.Range = &r
		out.Activities = query.InRange(snapshot, &r)
	default:
		out.Activities = query.InRange(snapshot, nil)
	}

	if in.Category != "" {
		c, err := parseCategory(in.Category)
		if err != nil {
			return nil, err
		}
		out.Activities = query.ForCategory(out.Activities, c)
	}
	if in.Open {
		out.Activities = query.Open(out.Activities)
	}

	for i := range out.Activities {
		if out.Activities[i].IsCompleted() {
			out.Total += out.Activities[i].Duration(now)
		}
	}
	return out, nil
}
