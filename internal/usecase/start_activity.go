// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// StartActivityInput contains the parameters for starting an activity.
type StartActivityInput struct {
	Title       string // Activity title (required)
	Description string // Optional free text
	Category    string // Category name (defaults to "other")
}

// StartActivityOutput contains the result of starting an activity.
type StartActivityOutput struct {
	Started *domain.Activity // The new current activity
	Stopped *domain.Activity // The activity that was running before, if any
}

// StartActivity is the use case for starting a new activity now.
type StartActivity struct {
	activities *store.ActivityStore
	logger     domain.Logger
}

// NewStartActivity creates a new StartActivity use case.
func NewStartActivity(activities *store.ActivityStore, logger domain.Logger) *StartActivity {
	return &StartActivity{activities: activities, logger: logger}
}

// Execute stops the running activity, if any, and starts a new one.
func (uc *StartActivity) Execute(_ context.Context, in StartActivityInput) (*StartActivityOutput, error) {
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	previous := uc.activities.Current()
	started, err := uc.activities.StartActivity(in.Title, category, in.Description)
	if err != nil {
		return nil, err
	}

	out := &StartActivityOutput{Started: started}
	if previous != nil {
		// Re-read to pick up the end time set by the store.
		if stopped, getErr := uc.activities.Get(previous.ID); getErr == nil {
			out.Stopped = stopped
		}
	}
	uc.logger.Info(logCategory, fmt.Sprintf("started %q (%s)", started.Title, started.Category))
	return out, nil
}
