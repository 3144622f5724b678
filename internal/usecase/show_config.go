package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	File      domain.ConfigInfo // Config file info
	Effective *domain.Config    // Defaults merged with the file
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	config        *domain.Config
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, cfg *domain.Config) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		config:        cfg,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	return &ShowConfigOutput{
		File:      uc.configManager.Info(),
		Effective: uc.config,
	}, nil
}
