package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/present-tense/internal/domain"
)

func titles(actions []domain.QuickAction) []string {
	out := make([]string, len(actions))
	for i, q := range actions {
		out[i] = q.Title
	}
	return out
}

func TestListQuickActions_Execute(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry.Add("Guitar", domain.CategoryHobby)
	require.NoError(t, err)
	uc := NewListQuickActions(f.registry)

	all, err := uc.Execute(context.Background(), ListQuickActionsInput{})
	require.NoError(t, err)
	custom, err := uc.Execute(context.Background(), ListQuickActionsInput{CustomOnly: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Work", "Sleep", "Eat", "Exercise", "Socialize", "Hobby", "Guitar"}, titles(all.Actions))
	assert.Equal(t, []string{"Guitar"}, titles(custom.Actions))
}

func TestAddQuickAction_Execute(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		title    string
		category string
		want     domain.Category
	}{
		{name: "with category", title: "Guitar", category: "hobby", want: domain.CategoryHobby},
		{name: "default category", title: "Errands", want: domain.CategoryOther},
		{name: "empty title", title: "  ", wantErr: domain.ErrEmptyTitle},
		{name: "bad category", title: "Nap", category: "napping", wantErr: domain.ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			out, err := NewAddQuickAction(f.registry).Execute(context.Background(), AddQuickActionInput{Title: tt.title, Category: tt.category})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, f.registry.List(), 6)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Action.Category)
			assert.False(t, out.Action.IsDefault)
			assert.Len(t, f.registry.List(), 7)
		})
	}
}

func TestEditQuickAction_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	title := "Deep work"
	category := "education"

	// Execute: defaults may be renamed but stay default.
	out, err := NewEditQuickAction(f.registry).Execute(context.Background(), EditQuickActionInput{Ref: "1", Title: &title, Category: &category})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Deep work", out.Action.Title)
	assert.Equal(t, domain.CategoryEducation, out.Action.Category)
	assert.True(t, out.Action.IsDefault)
	assert.Equal(t, "Deep work", f.registry.List()[0].Title)
}

func TestEditQuickAction_ByID(t *testing.T) {
	f := newFixture(t)
	added, err := f.registry.Add("Guitar", domain.CategoryHobby)
	require.NoError(t, err)
	title := "Piano"

	out, err := NewEditQuickAction(f.registry).Execute(context.Background(), EditQuickActionInput{Ref: added.ID, Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Piano", out.Action.Title)
	assert.Equal(t, domain.CategoryHobby, out.Action.Category)
}

func TestEditQuickAction_InvalidRef(t *testing.T) {
	f := newFixture(t)
	uc := NewEditQuickAction(f.registry)
	title := "x"

	_, err := uc.Execute(context.Background(), EditQuickActionInput{Ref: "0", Title: &title})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = uc.Execute(context.Background(), EditQuickActionInput{Ref: "missing", Title: &title})
	assert.ErrorIs(t, err, domain.ErrQuickActionNotFound)
}

func TestDeleteQuickAction_Execute(t *testing.T) {
	t.Run("custom action", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.registry.Add("Guitar", domain.CategoryHobby)
		require.NoError(t, err)

		out, err := NewDeleteQuickAction(f.registry).Execute(context.Background(), DeleteQuickActionInput{Ref: "7"})

		require.NoError(t, err)
		assert.Equal(t, "Guitar", out.Action.Title)
		assert.Len(t, f.registry.List(), 6)
	})

	t.Run("default action is protected", func(t *testing.T) {
		f := newFixture(t)
		before := f.registry.List()

		_, err := NewDeleteQuickAction(f.registry).Execute(context.Background(), DeleteQuickActionInput{Ref: "2"})

		assert.ErrorIs(t, err, domain.ErrDefaultQuickAction)
		assert.Equal(t, before, f.registry.List())
	})
}

func TestMoveQuickAction_Execute(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		want    []string
		from    int
		to      int
	}{
		{name: "down", from: 1, to: 3, want: []string{"Sleep", "Eat", "Work", "Exercise", "Socialize", "Hobby"}},
		{name: "up", from: 6, to: 1, want: []string{"Hobby", "Work", "Sleep", "Eat", "Exercise", "Socialize"}},
		{name: "same position", from: 2, to: 2, want: []string{"Work", "Sleep", "Eat", "Exercise", "Socialize", "Hobby"}},
		{name: "out of range", from: 1, to: 7, wantErr: domain.ErrIndexOutOfRange},
		{name: "zero", from: 0, to: 1, wantErr: domain.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			out, err := NewMoveQuickAction(f.registry).Execute(context.Background(), MoveQuickActionInput{From: tt.from, To: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(out.Actions))
			assert.Equal(t, tt.want, titles(f.registry.List()))
		})
	}
}

func TestStartQuickAction_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	uc := NewStartQuickAction(f.registry, f.activities, f.logger)

	// Execute
	first, err := uc.Execute(context.Background(), StartQuickActionInput{Ref: "3"})
	require.NoError(t, err)
	f.clock.Advance(20 * time.Minute)
	second, err := uc.Execute(context.Background(), StartQuickActionInput{Ref: "1"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Eat", first.Started.Title)
	assert.Equal(t, domain.CategoryFood, first.Started.Category)
	assert.Nil(t, first.Stopped)

	assert.Equal(t, "Work", second.Action.Title)
	require.NotNil(t, second.Stopped)
	assert.Equal(t, "Eat", second.Stopped.Title)
	assert.Equal(t, "Work", f.activities.Current().Title)
}
