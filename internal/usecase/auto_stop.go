package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// AutoStopInput contains the parameters for the auto-stop check.
type AutoStopInput struct{}

// AutoStopOutput contains the result of the auto-stop check.
type AutoStopOutput struct {
	Stopped *domain.Activity // nil when nothing was stopped
}

// AutoStop stops the running activity once it exceeds auto_stop_duration.
// The end time is start + duration, not now, so time spent away is not logged.
type AutoStop struct {
	activities *store.ActivityStore
	settings   *store.SettingsStore
	clock      domain.Clock
	logger     domain.Logger
}

// NewAutoStop creates a new AutoStop use case.
func NewAutoStop(activities *store.ActivityStore, settings *store.SettingsStore, clock domain.Clock, logger domain.Logger) *AutoStop {
	return &AutoStop{activities: activities, settings: settings, clock: clock, logger: logger}
}

// Execute applies the auto_stop setting to the running activity.
func (uc *AutoStop) Execute(_ context.Context, _ AutoStopInput) (*AutoStopOutput, error) {
	prefs := uc.settings.Settings()
	if !prefs.AutoStop || prefs.AutoStopDuration <= 0 {
		return &AutoStopOutput{}, nil
	}

	current := uc.activities.Current()
	if current == nil || current.Duration(uc.clock.Now()) <= prefs.AutoStopDuration {
		return &AutoStopOutput{}, nil
	}

	stopped, err := uc.activities.StopCurrentAt(current.Start.Add(prefs.AutoStopDuration))
	if err != nil {
		return nil, err
	}
	if stopped != nil {
		uc.logger.Info(logCategory, fmt.Sprintf("auto-stopped %q after %s", stopped.Title, domain.FormatDuration(prefs.AutoStopDuration)))
	}
	return &AutoStopOutput{Stopped: stopped}, nil
}
