package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// ListQuickActionsInput contains the parameters for listing quick actions.
type ListQuickActionsInput struct {
	CustomOnly bool // Only user-created actions
}

// ListQuickActionsOutput contains the quick actions in display order.
type ListQuickActionsOutput struct {
	Actions []domain.QuickAction
}

// ListQuickActions is the use case for listing quick actions.
type ListQuickActions struct {
	registry *store.QuickActionRegistry
}

// NewListQuickActions creates a new ListQuickActions use case.
func NewListQuickActions(registry *store.QuickActionRegistry) *ListQuickActions {
	return &ListQuickActions{registry: registry}
}

// Execute returns the quick actions.
func (uc *ListQuickActions) Execute(_ context.Context, in ListQuickActionsInput) (*ListQuickActionsOutput, error) {
	if in.CustomOnly {
		return &ListQuickActionsOutput{Actions: uc.registry.Custom()}, nil
	}
	return &ListQuickActionsOutput{Actions: uc.registry.List()}, nil
}
