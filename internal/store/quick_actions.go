package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/runoshun/present-tense/internal/domain"
)

// QuickActionRegistry is the ordered list of quick actions, persisted under
// the "quick_actions" blob. Default actions cannot be deleted.
// Fields are ordered to minimize memory padding.
type QuickActionRegistry struct {
	blobs   domain.BlobStore
	logger  domain.Logger
	ids     domain.IDGenerator
	actions []domain.QuickAction
	mu      sync.Mutex
}

// NewQuickActionRegistry creates an empty registry. Call Load to read persisted data.
func NewQuickActionRegistry(blobs domain.BlobStore, ids domain.IDGenerator, logger domain.Logger) *QuickActionRegistry {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &QuickActionRegistry{blobs: blobs, ids: ids, logger: logger}
}

// Load reads the persisted list. When the blob is missing or corrupt the
// registry is seeded with the default actions and saved immediately.
func (r *QuickActionRegistry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.blobs.Get(domain.KeyQuickActions)
	if err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
		return fmt.Errorf("load quick actions: %w", err)
	}
	if err == nil {
		list, decErr := decodeQuickActions(data)
		if decErr == nil {
			r.actions = list
			return nil
		}
		r.logger.Error(logCategory, (&domain.SerializationError{Source: domain.KeyQuickActions, Err: decErr}).Error())
	}

	r.actions = domain.DefaultQuickActions()
	for i := range r.actions {
		r.actions[i].ID = r.ids.NewID()
	}
	if err := r.persist(); err != nil {
		return err
	}
	r.logger.Info(logCategory, "seeded default quick actions")
	return nil
}

// decodeQuickActions parses the persisted list and rejects entries that Add
// or Update would have refused.
func decodeQuickActions(data []byte) ([]domain.QuickAction, error) {
	var list []domain.QuickAction
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if list == nil {
		return nil, errors.New("document is not a quick action list")
	}
	for i := range list {
		if list[i].ID == "" {
			return nil, fmt.Errorf("quick action %d: missing id", i)
		}
		title, err := validateQuickAction(list[i].Title, list[i].Category)
		if err != nil {
			return nil, fmt.Errorf("quick action %d: %w", i, err)
		}
		list[i].Title = title
	}
	return list, nil
}

func (r *QuickActionRegistry) persist() error {
	list := r.actions
	if list == nil {
		list = []domain.QuickAction{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal quick actions: %w", err)
	}
	if err := r.blobs.Put(domain.KeyQuickActions, data); err != nil {
		return fmt.Errorf("save quick actions: %w", err)
	}
	return nil
}

func (r *QuickActionRegistry) mutate(fn func() error) error {
	prev := slices.Clone(r.actions)
	if err := fn(); err != nil {
		r.actions = prev
		return err
	}
	if err := r.persist(); err != nil {
		r.actions = prev
		r.logger.Error(logCategory, err.Error())
		return err
	}
	return nil
}

func (r *QuickActionRegistry) indexOf(id string) int {
	return slices.IndexFunc(r.actions, func(q domain.QuickAction) bool { return q.ID == id })
}

func validateQuickAction(title string, category domain.Category) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &domain.ValidationError{Field: "title", Err: domain.ErrEmptyTitle}
	}
	if !category.IsValid() {
		return "", &domain.ValidationError{Field: "category", Err: domain.ErrInvalidCategory}
	}
	return title, nil
}

// Add appends a user-created action.
func (r *QuickActionRegistry) Add(title string, category domain.Category) (*domain.QuickAction, error) {
	title, err := validateQuickAction(title, category)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	q := domain.QuickAction{ID: r.ids.NewID(), Title: title, Category: category}
	if err := r.mutate(func() error {
		r.actions = append(r.actions, q)
		return nil
	}); err != nil {
		return nil, err
	}
	return &q, nil
}

// Update replaces the title and category of the action with the same ID.
// The default flag cannot be changed.
func (r *QuickActionRegistry) Update(q domain.QuickAction) (*domain.QuickAction, error) {
	title, err := validateQuickAction(q.Title, q.Category)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out domain.QuickAction
	err = r.mutate(func() error {
		i := r.indexOf(q.ID)
		if i < 0 {
			return domain.ErrQuickActionNotFound
		}
		r.actions[i].Title = title
		r.actions[i].Category = q.Category
		out = r.actions[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a user-created action. Deleting a default action returns
// ErrDefaultQuickAction and leaves the registry unchanged; missing IDs are a no-op.
func (r *QuickActionRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	if !r.actions[i].CanDelete() {
		return domain.ErrDefaultQuickAction
	}
	return r.mutate(func() error {
		r.actions = slices.Delete(r.actions, i, i+1)
		return nil
	})
}

// Move removes the action at from and reinserts it so it ends up at index to.
func (r *QuickActionRegistry) Move(from, to int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.actions)
	if from < 0 || from >= n || to < 0 || to >= n {
		return domain.ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	return r.mutate(func() error {
		q := r.actions[from]
		r.actions = slices.Delete(r.actions, from, from+1)
		r.actions = slices.Insert(r.actions, to, q)
		return nil
	})
}

// Get returns the action with id, or ErrQuickActionNotFound.
func (r *QuickActionRegistry) Get(id string) (*domain.QuickAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrQuickActionNotFound
	}
	q := r.actions[i]
	return &q, nil
}

// List returns all actions in order.
func (r *QuickActionRegistry) List() []domain.QuickAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.actions)
}

// Defaults returns the default actions in order.
func (r *QuickActionRegistry) Defaults() []domain.QuickAction {
	return r.filter(func(q domain.QuickAction) bool { return q.IsDefault })
}

// Custom returns the user-created actions in order.
func (r *QuickActionRegistry) Custom() []domain.QuickAction {
	return r.filter(func(q domain.QuickAction) bool { return !q.IsDefault })
}

func (r *QuickActionRegistry) filter(keep func(domain.QuickAction) bool) []domain.QuickAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.QuickAction, 0, len(r.actions))
	for _, q := range r.actions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
