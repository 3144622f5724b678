package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// EditQuickActionInput contains the parameters for editing a quick action.
// Nil fields are left unchanged.
type EditQuickActionInput struct {
	Title    *string
	Category *string
	Ref      string // 1-based position or ID (required)
}

// EditQuickActionOutput contains the updated quick action.
type EditQuickActionOutput struct {
	Action *domain.QuickAction
}

// EditQuickAction is the use case for editing a quick action.
// Defaults can be renamed but never lose their default flag.
type EditQuickAction struct {
	registry *store.QuickActionRegistry
}

// NewEditQuickAction creates a new EditQuickAction use case.
func NewEditQuickAction(registry *store.QuickActionRegistry) *EditQuickAction {
	return &EditQuickAction{registry: registry}
}

// Execute applies the changes.
func (uc *EditQuickAction) Execute(_ context.Context, in EditQuickActionInput) (*EditQuickActionOutput, error) {
	q, _, err := resolveQuickAction(uc.registry, in.Ref)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		q.Title = *in.Title
	}
	if in.Category != nil {
		c, parseErr := parseCategory(*in.Category)
		if parseErr != nil {
			return nil, parseErr
		}
		q.Category = c
	}
	updated, err := uc.registry.Update(q)
	if err != nil {
		return nil, err
	}
	return &EditQuickActionOutput{Action: updated}, nil
}
