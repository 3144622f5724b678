package usecase

import (
	"context"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// EditActivityInput contains the parameters for editing an activity.
// Nil fields are left unchanged.
type EditActivityInput struct {
	Title       *string
	Description *string
	Category    *string
	Pattern     *string // Empty string clears recurrence
	Start       *time.Time
	End         *time.Time
	Tags        *[]string
	ID          string // Activity ID (required)
	Reopen      bool   // Clear the end time
}

// EditActivityOutput contains the result of editing an activity.
type EditActivityOutput struct {
	Activity *domain.Activity
}

// EditActivity is the use case for editing an activity.
type EditActivity struct {
	activities *store.ActivityStore
}

// NewEditActivity creates a new EditActivity use case.
func NewEditActivity(activities *store.ActivityStore) *EditActivity {
	return &EditActivity{activities: activities}
}

// Execute applies the changes and saves the activity.
func (uc *EditActivity) Execute(_ context.Context, in EditActivityInput) (*EditActivityOutput, error) {
	a, err := uc.activities.Get(in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Category != nil {
		c, parseErr := parseCategory(*in.Category)
		if parseErr != nil {
			return nil, parseErr
		}
		a.Category = c
	}
	if in.Pattern != nil {
		p, parseErr := parsePattern(*in.Pattern)
		if parseErr != nil {
			return nil, parseErr
		}
		a.Pattern = p
		a.Recurring = p != domain.PatternNone
	}
	if in.Start != nil {
		a.Start = *in.Start
	}
	if in.End != nil {
		end := *in.End
		a.End = &end
	}
	if in.Reopen {
		a.End = nil
	}
	if in.Tags != nil {
		a.Tags = append([]string{}, (*in.Tags)...)
	}

	updated, err := uc.activities.Update(*a)
	if err != nil {
		return nil, err
	}
	return &EditActivityOutput{Activity: updated}, nil
}
