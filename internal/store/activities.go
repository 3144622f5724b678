// Package store holds the in-memory collections (activities, quick actions,
// settings) and persists each one as a single blob on every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
)

const logCategory = "store"

// ActivityStore owns the canonical activity list.
// Every mutation rewrites the whole "activities" blob; if the write fails the
// mutation is rolled back so memory and storage never diverge.
// Fields are ordered to minimize memory padding.
type ActivityStore struct {
	blobs      domain.BlobStore
	clock      domain.Clock
	logger     domain.Logger
	ids        domain.IDGenerator
	currentID  string
	activities []domain.Activity
	mu         sync.Mutex
}

// NewActivityStore creates an empty store. Call Load to read persisted data.
func NewActivityStore(blobs domain.BlobStore, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *ActivityStore {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ActivityStore{
		blobs:      blobs,
		clock:      clock,
		ids:        ids,
		logger:     logger,
		activities: []domain.Activity{},
	}
}

// Load reads the persisted collection. A missing blob yields an empty
// collection, or seed when it is not nil. A corrupt blob is logged and
// replaced by an empty collection in memory; it is never returned as an error.
// Only storage failures are returned.
func (s *ActivityStore) Load(seed func() []domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.blobs.Get(domain.KeyActivities)
	switch {
	case errors.Is(err, domain.ErrBlobNotFound):
		s.activities = []domain.Activity{}
		if seed != nil {
			s.activities = seed()
			if err := s.persist(); err != nil {
				s.activities = []domain.Activity{}
				return err
			}
			s.logger.Info(logCategory, fmt.Sprintf("seeded %d sample activities", len(s.activities)))
		}
	case err != nil:
		return fmt.Errorf("load activities: %w", err)
	default:
		list, decErr := domain.DecodeActivities(data, domain.FormatJSON, domain.KeyActivities)
		if decErr != nil {
			s.logger.Error(logCategory, decErr.Error())
			list = []domain.Activity{}
		}
		s.activities = list
	}
	s.recomputeCurrent()
	return nil
}

// recomputeCurrent marks the open activity with the latest start as current.
func (s *ActivityStore) recomputeCurrent() {
	s.currentID = ""
	var latest time.Time
	for i := range s.activities {
		a := &s.activities[i]
		if a.IsCurrent() && (s.currentID == "" || a.Start.After(latest)) {
			s.currentID, latest = a.ID, a.Start
		}
	}
}

func (s *ActivityStore) persist() error {
	data, err := json.Marshal(s.activities)
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}
	if err := s.blobs.Put(domain.KeyActivities, data); err != nil {
		return fmt.Errorf("save activities: %w", err)
	}
	return nil
}

// mutate applies fn and persists the result, restoring the previous state on failure.
func (s *ActivityStore) mutate(fn func() error) error {
	prev := domain.CloneActivities(s.activities)
	prevCurrent := s.currentID
	if err := fn(); err != nil {
		s.activities, s.currentID = prev, prevCurrent
		return err
	}
	if err := s.persist(); err != nil {
		s.activities, s.currentID = prev, prevCurrent
		s.logger.Error(logCategory, err.Error())
		return err
	}
	return nil
}

func (s *ActivityStore) indexOf(id string) int {
	return slices.IndexFunc(s.activities, func(a domain.Activity) bool { return a.ID == id })
}

// Add normalizes, validates and appends a. An empty ID is assigned.
func (s *ActivityStore) Add(a domain.Activity) (*domain.Activity, error) {
	a = a.Clone()
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = s.ids.NewID()
	}
	err := s.mutate(func() error {
		s.activities = append(s.activities, a)
		if a.IsCurrent() {
			s.recomputeCurrent()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := a.Clone()
	return &out, nil
}

// Update replaces the activity with the same ID.
// Returns ErrActivityNotFound if it does not exist.
func (s *ActivityStore) Update(a domain.Activity) (*domain.Activity, error) {
	a = a.Clone()
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.mutate(func() error {
		i := s.indexOf(a.ID)
		if i < 0 {
			return domain.ErrActivityNotFound
		}
		s.activities[i] = a
		s.recomputeCurrent()
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := a.Clone()
	return &out, nil
}

// Delete removes the activity with id. Missing IDs are a no-op.
func (s *ActivityStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return nil
	}
	return s.mutate(func() error {
		s.activities = slices.DeleteFunc(s.activities, func(a domain.Activity) bool { return a.ID == id })
		if s.currentID == id {
			s.recomputeCurrent()
		}
		return nil
	})
}

// StartActivity stops the current activity, if any, then appends a new open
// activity and marks it current. Both changes are saved together.
func (s *ActivityStore) StartActivity(title string, category domain.Category, description string) (*domain.Activity, error) {
	a := domain.Activity{
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        []string{},
	}
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	a.ID = s.ids.NewID()
	a.Start = now
	err := s.mutate(func() error {
		s.stopCurrentLocked(now)
		s.activities = append(s.activities, a)
		s.currentID = a.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := a.Clone()
	return &out, nil
}

// StopCurrentActivity sets end = now on the current activity and clears it.
// Returns nil without error when nothing is running.
func (s *ActivityStore) StopCurrentActivity() (*domain.Activity, error) {
	return s.StopCurrentAt(s.clock.Now())
}

// StopCurrentAt is StopCurrentActivity with an explicit end time.
// An end before the start is clamped to the start.
func (s *ActivityStore) StopCurrentAt(end time.Time) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return nil, nil
	}
	var stopped *domain.Activity
	err := s.mutate(func() error {
		stopped = s.stopCurrentLocked(end)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stopped, nil
}

func (s *ActivityStore) stopCurrentLocked(end time.Time) *domain.Activity {
	i := s.indexOf(s.currentID)
	s.currentID = ""
	if i < 0 {
		return nil
	}
	if end.Before(s.activities[i].Start) {
		end = s.activities[i].Start
	}
	s.activities[i].End = &end
	out := s.activities[i].Clone()
	return &out
}

// Current returns a copy of the running activity, or nil.
func (s *ActivityStore) Current() *domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(s.currentID)
	if s.currentID == "" || i < 0 {
		return nil
	}
	out := s.activities[i].Clone()
	return &out
}

// Get returns a copy of the activity with id, or ErrActivityNotFound.
func (s *ActivityStore) Get(id string) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrActivityNotFound
	}
	out := s.activities[i].Clone()
	return &out, nil
}

// Snapshot returns a deep copy of the collection in insertion order.
func (s *ActivityStore) Snapshot() []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneActivities(s.activities)
}

// Len returns the number of activities.
func (s *ActivityStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activities)
}

// Replace swaps the whole collection, as done by import.
func (s *ActivityStore) Replace(list []domain.Activity) error {
	list = domain.CloneActivities(list)
	for i := range list {
		list[i].Normalize()
		if err := list[i].Validate(); err != nil {
			return fmt.Errorf("activity %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func() error {
		s.activities = list
		s.recomputeCurrent()
		return nil
	})
}

// Clear empties the collection and deletes the persisted blob.
func (s *ActivityStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.blobs.Delete(domain.KeyActivities); err != nil {
		return fmt.Errorf("delete activities: %w", err)
	}
	s.activities = []domain.Activity{}
	s.currentID = ""
	return nil
}

// Export encodes the collection in format while holding the lock, so the dump
// is consistent with concurrent mutations.
func (s *ActivityStore) Export(format string) ([]byte, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := domain.EncodeActivities(s.activities, format)
	if err != nil {
		return nil, 0, err
	}
	return data, len(s.activities), nil
}
