package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
)

// SettingsStore is a key/value preference store with fixed defaults,
// persisted as a JSON object under the "settings" blob.
type SettingsStore struct {
	blobs  domain.BlobStore
	logger domain.Logger
	values map[string]string
	mu     sync.Mutex
}

// NewSettingsStore creates a store holding the defaults. Call Load to read persisted data.
func NewSettingsStore(blobs domain.BlobStore, logger domain.Logger) *SettingsStore {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &SettingsStore{blobs: blobs, logger: logger, values: domain.DefaultSettingValues()}
}

// Load merges persisted values over the defaults. Unknown keys and invalid
// values are dropped with a warning; a corrupt blob is logged and ignored.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = domain.DefaultSettingValues()
	data, err := s.blobs.Get(domain.KeySettings)
	if errors.Is(err, domain.ErrBlobNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Error(logCategory, (&domain.SerializationError{Source: domain.KeySettings, Err: err}).Error())
		return nil
	}
	for key, value := range raw {
		def, ok := domain.LookupSetting(key)
		if !ok {
			s.logger.Warn(logCategory, fmt.Sprintf("ignoring unknown setting %q", key))
			continue
		}
		canonical, err := def.Normalize(value)
		if err != nil {
			s.logger.Warn(logCategory, fmt.Sprintf("ignoring invalid value %q for %s", value, key))
			continue
		}
		s.values[key] = canonical
	}
	return nil
}

func (s *SettingsStore) persist(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.blobs.Put(domain.KeySettings, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Get returns the canonical raw value of key.
func (s *SettingsStore) Get(key string) (string, error) {
	if _, ok := domain.LookupSetting(key); !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

// Set parses raw according to the type of key and persists it.
func (s *SettingsStore) Set(key, raw string) (string, error) {
	def, ok := domain.LookupSetting(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	canonical, err := def.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := maps.Clone(s.values)
	next[key] = canonical
	if err := s.persist(next); err != nil {
		return "", err
	}
	s.values = next
	return canonical, nil
}

// All returns every setting with its current value, in definition order.
func (s *SettingsStore) All() []SettingValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	defs := domain.SettingDefinitions()
	out := make([]SettingValue, len(defs))
	for i, d := range defs {
		out[i] = SettingValue{Def: d, Value: s.values[d.Key]}
	}
	return out
}

// SettingValue pairs a definition with its current value.
type SettingValue struct {
	Value string
	Def   domain.SettingDef
}

// IsDefault reports whether the value equals the documented default.
func (v SettingValue) IsDefault() bool {
	return v.Value == v.Def.Default
}

// Settings returns the typed view.
func (s *SettingsStore) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SettingsFromValues(s.values)
}

// ResetAll restores every preference to its default. The first-launch marker and
// the last sync time are bookkeeping, not preferences, and survive the reset.
func (s *SettingsStore) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defaults := domain.DefaultSettingValues()
	for _, key := range []string{domain.SettingFirstLaunch, domain.SettingLastSync} {
		defaults[key] = s.values[key]
	}
	if err := s.persist(defaults); err != nil {
		return err
	}
	s.values = defaults
	return nil
}

// Theme returns the color scheme preference.
func (s *SettingsStore) Theme() domain.Theme {
	return s.Settings().Theme
}

// AutoStop reports whether running activities are stopped automatically.
func (s *SettingsStore) AutoStop() bool {
	return s.Settings().AutoStop
}

// AutoStopDuration returns how long an activity may run before auto-stop.
func (s *SettingsStore) AutoStopDuration() time.Duration {
	return s.Settings().AutoStopDuration
}

// CloudSync reports whether sync is enabled.
func (s *SettingsStore) CloudSync() bool {
	return s.Settings().CloudSync
}

// LastSync returns the time of the last sync, zero if never.
func (s *SettingsStore) LastSync() time.Time {
	return s.Settings().LastSync
}

// FirstLaunch reports whether the app has not been launched before.
func (s *SettingsStore) FirstLaunch() bool {
	return s.Settings().FirstLaunch
}

// DefaultActivityDuration returns the default length of manually added activities.
func (s *SettingsStore) DefaultActivityDuration() time.Duration {
	return s.Settings().DefaultActivityDuration
}

// SetTheme sets the color scheme.
func (s *SettingsStore) SetTheme(t domain.Theme) error {
	_, err := s.Set(domain.SettingTheme, string(t))
	return err
}

// SetAutoStop toggles auto-stop and sets its duration.
func (s *SettingsStore) SetAutoStop(enabled bool, after time.Duration) error {
	if _, err := s.Set(domain.SettingAutoStop, strconv.FormatBool(enabled)); err != nil {
		return err
	}
	_, err := s.Set(domain.SettingAutoStopDuration, strconv.Itoa(int(after/time.Minute)))
	return err
}

// SetCloudSync toggles the cloud sync stub.
func (s *SettingsStore) SetCloudSync(enabled bool) error {
	_, err := s.Set(domain.SettingCloudSync, strconv.FormatBool(enabled))
	return err
}

// SetLastSync records the time of the last sync.
func (s *SettingsStore) SetLastSync(t time.Time) error {
	_, err := s.Set(domain.SettingLastSync, t.Format(time.RFC3339))
	return err
}

// MarkLaunched clears the first-launch marker.
func (s *SettingsStore) MarkLaunched() error {
	_, err := s.Set(domain.SettingFirstLaunch, "false")
	return err
}
