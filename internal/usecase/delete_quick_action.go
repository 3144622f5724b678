package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// DeleteQuickActionInput contains the parameters for deleting a quick action.
type DeleteQuickActionInput struct {
	Ref string // 1-based position or ID (required)
}

// DeleteQuickActionOutput contains the deleted quick action.
type DeleteQuickActionOutput struct {
	Action domain.QuickAction
}

// DeleteQuickAction is the use case for deleting a custom quick action.
type DeleteQuickAction struct {
	registry *store.QuickActionRegistry
}

// NewDeleteQuickAction creates a new DeleteQuickAction use case.
func NewDeleteQuickAction(registry *store.QuickActionRegistry) *DeleteQuickAction {
	return &DeleteQuickAction{registry: registry}
}

// Execute removes the quick action. Defaults return ErrDefaultQuickAction.
func (uc *DeleteQuickAction) Execute(_ context.Context, in DeleteQuickActionInput) (*DeleteQuickActionOutput, error) {
	q, _, err := resolveQuickAction(uc.registry, in.Ref)
	if err != nil {
		return nil, err
	}
	if err := uc.registry.Delete(q.ID); err != nil {
		return nil, err
	}
	return &DeleteQuickActionOutput{Action: q}, nil
}
