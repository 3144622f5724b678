package usecase

import (
	"strconv"
	"strings"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// logCategory is the log category shared by the use cases.
const logCategory = "usecase"

// parseCategory parses a user-supplied category. Empty means "other".
func parseCategory(s string) (domain.Category, error) {
	if strings.TrimSpace(s) == "" {
		return domain.CategoryOther, nil
	}
	c, err := domain.ParseCategory(s)
	if err != nil {
		return "", &domain.ValidationError{Field: "category", Err: err}
	}
	return c, nil
}

// parsePattern parses a user-supplied recurring pattern. Empty means none.
func parsePattern(s string) (domain.RecurringPattern, error) {
	if strings.TrimSpace(s) == "" {
		return domain.PatternNone, nil
	}
	p, err := domain.ParsePattern(s)
	if err != nil {
		return "", &domain.ValidationError{Field: "recurringPattern", Err: err}
	}
	return p, nil
}

// resolveQuickAction finds a quick action by 1-based position or by ID.
func resolveQuickAction(registry *store.QuickActionRegistry, ref string) (domain.QuickAction, int, error) {
	ref = strings.TrimSpace(ref)
	list := registry.List()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(list) {
			return domain.QuickAction{}, -1, domain.ErrIndexOutOfRange
		}
		return list[n-1], n - 1, nil
	}
	for i, q := range list {
		if q.ID == ref {
			return q, i, nil
		}
	}
	return domain.QuickAction{}, -1, domain.ErrQuickActionNotFound
}
