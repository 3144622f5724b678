package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// SetSettingInput contains the parameters for changing a setting.
type SetSettingInput struct {
	Key   string // Setting key (required)
	Value string // Raw value, parsed according to the key's type
	Reset bool   // Restore the key's default instead of Value
}

// SetSettingOutput contains the stored value.
type SetSettingOutput struct {
	Key   string
	Value string // Canonical form
}

// SetSetting is the use case for changing one preference.
type SetSetting struct {
	settings *store.SettingsStore
	logger   domain.Logger
}

// NewSetSetting creates a new SetSetting use case.
func NewSetSetting(settings *store.SettingsStore, logger domain.Logger) *SetSetting {
	return &SetSetting{settings: settings, logger: logger}
}

// Execute validates and stores the value.
func (uc *SetSetting) Execute(_ context.Context, in SetSettingInput) (*SetSettingOutput, error) {
	raw := in.Value
	if in.Reset {
		def, ok := domain.LookupSetting(in.Key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSetting, in.Key)
		}
		raw = def.Default
	}

	value, err := uc.settings.Set(in.Key, raw)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug(logCategory, fmt.Sprintf("setting %s = %q", in.Key, value))
	return &SetSettingOutput{Key: in.Key, Value: value}, nil
}
