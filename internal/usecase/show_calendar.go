package usecase

import (
	"context"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/query"
	"github.com/runoshun/present-tense/internal/store"
)

// ShowCalendarInput contains the parameters for the month view.
type ShowCalendarInput struct {
	Month time.Time // Any time inside the month (zero = now)
}

// ShowCalendarOutput contains the month grid.
type ShowCalendarOutput struct {
	Month    time.Time
	Weeks    [][]query.CalendarDay
	Weekdays []time.Weekday // Column order
}

// ShowCalendar is the use case for the calendar month view.
type ShowCalendar struct {
	activities *store.ActivityStore
	clock      domain.Clock
	calendar   domain.Calendar
}

// NewShowCalendar creates a new ShowCalendar use case.
func NewShowCalendar(activities *store.ActivityStore, clock domain.Clock, cal domain.Calendar) *ShowCalendar {
	return &ShowCalendar{activities: activities, clock: clock, calendar: cal}
}

// Execute builds the grid of the requested month.
func (uc *ShowCalendar) Execute(_ context.Context, in ShowCalendarInput) (*ShowCalendarOutput, error) {
	now := uc.clock.Now()
	month := in.Month
	if month.IsZero() {
		month = now
	}
	return &ShowCalendarOutput{
		Month:    uc.calendar.In(month),
		Weeks:    query.CalendarMonth(uc.activities.Snapshot(), month, now, uc.calendar),
		Weekdays: uc.calendar.Weekdays(),
	}, nil
}
