package usecase

import (
	"context"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// AddActivityInput contains the parameters for logging an activity.
// Fields are ordered to minimize memory padding.
type AddActivityInput struct {
	Start       time.Time     // Start time (zero = now)
	End         *time.Time    // End time (nil = Start + Duration)
	Title       string        // Activity title (required)
	Description string        // Optional free text
	Category    string        // Category name (defaults to "other")
	Pattern     string        // Recurring pattern (empty = not recurring)
	Tags        []string      // Tags
	Duration    time.Duration // Used when End is nil (zero = default_activity_duration)
	Open        bool          // Leave the activity in progress
}

// AddActivityOutput contains the result of logging an activity.
type AddActivityOutput struct {
	Activity *domain.Activity
}

// AddActivity is the use case for logging an activity with explicit times.
type AddActivity struct {
	activities *store.ActivityStore
	settings   *store.SettingsStore
	clock      domain.Clock
}

// NewAddActivity creates a new AddActivity use case.
func NewAddActivity(activities *store.ActivityStore, settings *store.SettingsStore, clock domain.Clock) *AddActivity {
	return &AddActivity{activities: activities, settings: settings, clock: clock}
}

// Execute validates the input and appends the activity.
func (uc *AddActivity) Execute(_ context.Context, in AddActivityInput) (*AddActivityOutput, error) {
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	pattern, err := parsePattern(in.Pattern)
	if err != nil {
		return nil, err
	}

	start := in.Start
	if start.IsZero() {
		start = uc.clock.Now()
	}

	a := domain.Activity{
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Start:       start,
		Tags:        in.Tags,
		Recurring:   pattern != domain.PatternNone,
		Pattern:     pattern,
	}
	switch {
	case in.Open:
	case in.End != nil:
		end := *in.End
		a.End = &end
	default:
		d := in.Duration
		if d <= 0 {
			d = uc.settings.DefaultActivityDuration()
		}
		end := start.Add(d)
		a.End = &end
	}

	added, err := uc.activities.Add(a)
	if err != nil {
		return nil, err
	}
	return &AddActivityOutput{Activity: added}, nil
}
