package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// StartQuickActionInput contains the parameters for starting a quick action.
type StartQuickActionInput struct {
	Ref string // 1-based position or ID (required)
}

// StartQuickActionOutput contains the result of starting a quick action.
type StartQuickActionOutput struct {
	Started *domain.Activity
	Stopped *domain.Activity
	Action  domain.QuickAction
}

// StartQuickAction is the use case for starting an activity from a template.
type StartQuickAction struct {
	registry *store.QuickActionRegistry
	start    *StartActivity
}

// NewStartQuickAction creates a new StartQuickAction use case.
func NewStartQuickAction(registry *store.QuickActionRegistry, activities *store.ActivityStore, logger domain.Logger) *StartQuickAction {
	return &StartQuickAction{
		registry: registry,
		start:    NewStartActivity(activities, logger),
	}
}

// Execute starts an activity with the action's title and category.
func (uc *StartQuickAction) Execute(ctx context.Context, in StartQuickActionInput) (*StartQuickActionOutput, error) {
	q, _, err := resolveQuickAction(uc.registry, in.Ref)
	if err != nil {
		return nil, err
	}
	out, err := uc.start.Execute(ctx, StartActivityInput{Title: q.Title, Category: string(q.Category)})
	if err != nil {
		return nil, err
	}
	return &StartQuickActionOutput{Started: out.Started, Stopped: out.Stopped, Action: q}, nil
}
