package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// ResetAllInput contains the parameters for resetting all data.
type ResetAllInput struct{}

// ResetAllOutput contains the result of a reset.
type ResetAllOutput struct {
	Removed int // Activities deleted
}

// ResetAll is the use case for erasing activities and restoring default settings.
// Quick actions are kept.
type ResetAll struct {
	activities *store.ActivityStore
	settings   *store.SettingsStore
	logger     domain.Logger
}

// NewResetAll creates a new ResetAll use case.
func NewResetAll(activities *store.ActivityStore, settings *store.SettingsStore, logger domain.Logger) *ResetAll {
	return &ResetAll{activities: activities, settings: settings, logger: logger}
}

// Execute clears the activity blob and resets every setting.
func (uc *ResetAll) Execute(_ context.Context, _ ResetAllInput) (*ResetAllOutput, error) {
	removed := uc.activities.Len()
	if err := uc.activities.Clear(); err != nil {
		return nil, err
	}
	if err := uc.settings.ResetAll(); err != nil {
		return nil, fmt.Errorf("reset settings: %w", err)
	}
	uc.logger.Warn(logCategory, fmt.Sprintf("reset all data (%d activities removed)", removed))
	return &ResetAllOutput{Removed: removed}, nil
}
