package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// MoveQuickActionInput contains the parameters for reordering quick actions.
type MoveQuickActionInput struct {
	From int // 1-based current position
	To   int // 1-based final position
}

// MoveQuickActionOutput contains the new order.
type MoveQuickActionOutput struct {
	Actions []domain.QuickAction
}

// MoveQuickAction is the use case for reordering quick actions.
type MoveQuickAction struct {
	registry *store.QuickActionRegistry
}

// NewMoveQuickAction creates a new MoveQuickAction use case.
func NewMoveQuickAction(registry *store.QuickActionRegistry) *MoveQuickAction {
	return &MoveQuickAction{registry: registry}
}

// Execute moves the action at From so it ends up at To.
func (uc *MoveQuickAction) Execute(_ context.Context, in MoveQuickActionInput) (*MoveQuickActionOutput, error) {
	if err := uc.registry.Move(in.From-1, in.To-1); err != nil {
		return nil, err
	}
	return &MoveQuickActionOutput{Actions: uc.registry.List()}, nil
}
