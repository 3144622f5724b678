package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// AddQuickActionInput contains the parameters for adding a quick action.
type AddQuickActionInput struct {
	Title    string // Title (required)
	Category string // Category name (defaults to "other")
}

// AddQuickActionOutput contains the created quick action.
type AddQuickActionOutput struct {
	Action *domain.QuickAction
}

// AddQuickAction is the use case for adding a custom quick action.
type AddQuickAction struct {
	registry *store.QuickActionRegistry
}

// NewAddQuickAction creates a new AddQuickAction use case.
func NewAddQuickAction(registry *store.QuickActionRegistry) *AddQuickAction {
	return &AddQuickAction{registry: registry}
}

// Execute appends the quick action.
func (uc *AddQuickAction) Execute(_ context.Context, in AddQuickActionInput) (*AddQuickActionOutput, error) {
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	q, err := uc.registry.Add(in.Title, category)
	if err != nil {
		return nil, err
	}
	return &AddQuickActionOutput{Action: q}, nil
}
