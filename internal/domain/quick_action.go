package domain

// QuickAction is a reusable activity template for one-tap logging.
// Fields are ordered to minimize memory padding.
type QuickAction struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Category  Category `json:"category" yaml:"category"`
	IsDefault bool     `json:"isDefault" yaml:"isDefault"`
}

// CanDelete returns true for user-created actions.
func (q *QuickAction) CanDelete() bool {
	return !q.IsDefault
}

// DefaultQuickActions returns the seed set created on first run.
// IDs are left empty for the registry to assign.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{Title: "Work", Category: CategoryWork, IsDefault: true},
		{Title: "Sleep", Category: CategorySleep, IsDefault: true},
		{Title: "Eat", Category: CategoryFood, IsDefault: true},
		{Title: "Exercise", Category: CategoryExercise, IsDefault: true},
		{Title: "Socialize", Category: CategorySocial, IsDefault: true},
		{Title: "Hobby", Category: CategoryHobby, IsDefault: true},
	}
}
