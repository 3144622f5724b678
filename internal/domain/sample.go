package domain

import "time"

// SampleActivities returns the demo data seeded on first run when enabled.
// Times are relative to the calendar day of now. IDs come from ids.
func SampleActivities(now time.Time, cal Calendar, ids IDGenerator) []Activity {
	today := cal.StartOfDay(now)
	at := func(dayOffset, hour, minute int) time.Time {
		return today.AddDate(0, 0, dayOffset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	return []Activity{
		{
			ID:          ids.NewID(),
			Title:       "Morning work session",
			Description: "Focus on project planning",
			Start:       at(0, 9, 0),
			End:         ptr(at(0, 10, 30)),
			Category:    CategoryWork,
			Tags:        []string{"planning", "focus"},
			Recurring:   true,
			Pattern:     PatternWeekly,
		},
		{
			ID:        ids.NewID(),
			Title:     "Breakfast",
			Start:     at(0, 7, 30),
			End:       ptr(at(0, 8, 0)),
			Category:  CategoryFood,
			Tags:      []string{},
			Recurring: true,
			Pattern:   PatternDaily,
		},
		{
			ID:          ids.NewID(),
			Title:       "Morning run",
			Description: "5km around the park",
			Start:       at(-1, 6, 0),
			End:         ptr(at(-1, 7, 0)),
			Category:    CategoryExercise,
			Tags:        []string{"running", "outdoor"},
		},
		{
			ID:       ids.NewID(),
			Title:    "Reading",
			Start:    at(-2, 21, 0),
			End:      ptr(at(-2, 22, 0)),
			Category: CategoryEducation,
			Tags:     []string{"books"},
		},
	}
}
