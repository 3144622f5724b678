package domain

import "strings"

// Category classifies an activity. The set is closed.
type Category string

const (
	CategoryWork          Category = "work"
	CategorySleep         Category = "sleep"
	CategoryFood          Category = "food"
	CategoryExercise      Category = "exercise"
	CategorySocial        Category = "social"
	CategoryHobby         Category = "hobby"
	CategoryTransport     Category = "transport"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryEntertainment Category = "entertainment"
	CategoryHousehold     Category = "household"
	CategoryPersonal      Category = "personal"
	CategoryOther         Category = "other"
)

// CategoryInfo holds the presentation metadata of a category.
type CategoryInfo struct {
	Label string // Display label
	Icon  string // Icon name
	Color string // Hex color (#RRGGBB)
}

// allCategories is the canonical category order. Stats and tie-breaks follow it.
var allCategories = []Category{
	CategoryWork,
	CategorySleep,
	CategoryFood,
	CategoryExercise,
	CategorySocial,
	CategoryHobby,
	CategoryTransport,
	CategoryHealth,
	CategoryEducation,
	CategoryEntertainment,
	CategoryHousehold,
	CategoryPersonal,
	CategoryOther,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryWork:          {Label: "Work", Icon: "briefcase", Color: "#0A84FF"},
	CategorySleep:         {Label: "Sleep", Icon: "bed", Color: "#BF5AF2"},
	CategoryFood:          {Label: "Food", Icon: "fork-knife", Color: "#FF9F0A"},
	CategoryExercise:      {Label: "Exercise", Icon: "run", Color: "#30D158"},
	CategorySocial:        {Label: "Social", Icon: "people", Color: "#FF375F"},
	CategoryHobby:         {Label: "Hobby", Icon: "gamepad", Color: "#FFD60A"},
	CategoryTransport:     {Label: "Transport", Icon: "car", Color: "#8E8E93"},
	CategoryHealth:        {Label: "Health", Icon: "cross", Color: "#FF453A"},
	CategoryEducation:     {Label: "Education", Icon: "book", Color: "#5E5CE6"},
	CategoryEntertainment: {Label: "Entertainment", Icon: "tv", Color: "#66D4CF"},
	CategoryHousehold:     {Label: "Household", Icon: "house", Color: "#AC8E68"},
	CategoryPersonal:      {Label: "Personal", Icon: "person", Color: "#64D2FF"},
	CategoryOther:         {Label: "Other", Icon: "circle", Color: "#98989D"},
}

// categoryIndex maps a category to its position in allCategories.
var categoryIndex = func() map[Category]int {
	m := make(map[Category]int, len(allCategories))
	for i, c := range allCategories {
		m[c] = i
	}
	return m
}()

// AllCategories returns all categories in canonical order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// IsValid returns true if the category is one of the known values.
func (c Category) IsValid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the presentation metadata. Unknown categories get the "other" entry.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[CategoryOther]
}

// Display returns the display label.
func (c Category) Display() string {
	return c.Info().Label
}

// Order returns the canonical position of the category, or len(AllCategories()) if unknown.
func (c Category) Order() int {
	if i, ok := categoryIndex[c]; ok {
		return i
	}
	return len(allCategories)
}
