package usecase

import (
	"context"

	"github.com/runoshun/present-tense/internal/store"
)

// DeleteActivityInput contains the parameters for deleting an activity.
type DeleteActivityInput struct {
	ID string // Activity ID (required)
}

// DeleteActivityOutput contains the result of deleting an activity.
type DeleteActivityOutput struct {
	Deleted bool // False when no activity had the ID
}

// DeleteActivity is the use case for deleting an activity.
type DeleteActivity struct {
	activities *store.ActivityStore
}

// NewDeleteActivity creates a new DeleteActivity use case.
func NewDeleteActivity(activities *store.ActivityStore) *DeleteActivity {
	return &DeleteActivity{activities: activities}
}

// Execute removes the activity. Unknown IDs are not an error.
func (uc *DeleteActivity) Execute(_ context.Context, in DeleteActivityInput) (*DeleteActivityOutput, error) {
	_, getErr := uc.activities.Get(in.ID)
	if err := uc.activities.Delete(in.ID); err != nil {
		return nil, err
	}
	return &DeleteActivityOutput{Deleted: getErr == nil}, nil
}
