package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// StopActivityInput contains the parameters for stopping the current activity.
type StopActivityInput struct{}

// StopActivityOutput contains the result of stopping the current activity.
type StopActivityOutput struct {
	Stopped *domain.Activity // nil when nothing was running
}

// StopActivity is the use case for stopping the running activity.
type StopActivity struct {
	activities *store.ActivityStore
	logger     domain.Logger
}

// NewStopActivity creates a new StopActivity use case.
func NewStopActivity(activities *store.ActivityStore, logger domain.Logger) *StopActivity {
	return &StopActivity{activities: activities, logger: logger}
}

// Execute stops the running activity. Nothing running is not an error.
func (uc *StopActivity) Execute(_ context.Context, _ StopActivityInput) (*StopActivityOutput, error) {
	stopped, err := uc.activities.StopCurrentActivity()
	if err != nil {
		return nil, err
	}
	if stopped != nil {
		uc.logger.Info(logCategory, fmt.Sprintf("stopped %q", stopped.Title))
	}
	return &StopActivityOutput{Stopped: stopped}, nil
}
