package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/store"
)

// ShowSettingsInput contains the parameters for showing settings.
type ShowSettingsInput struct {
	Key string // Single key (empty = all)
}

// ShowSettingsOutput contains settings in definition order.
type ShowSettingsOutput struct {
	Settings []store.SettingValue
}

// ShowSettings is the use case for displaying preferences.
type ShowSettings struct {
	settings *store.SettingsStore
}

// NewShowSettings creates a new ShowSettings use case.
func NewShowSettings(settings *store.SettingsStore) *ShowSettings {
	return &ShowSettings{settings: settings}
}

// Execute returns the requested settings. Unknown keys return ErrUnknownSetting.
func (uc *ShowSettings) Execute(_ context.Context, in ShowSettingsInput) (*ShowSettingsOutput, error) {
	all := uc.settings.All()
	if in.Key == "" {
		return &ShowSettingsOutput{Settings: all}, nil
	}
	if _, err := uc.settings.Get(in.Key); err != nil {
		return nil, err
	}
	for _, v := range all {
		if v.Def.Key == in.Key {
			return &ShowSettingsOutput{Settings: []store.SettingValue{v}}, nil
		}
	}
	return &ShowSettingsOutput{}, nil
}
