package domain

import (
	"strconv"
	"strings"
	"time"
)

// Theme is the color scheme preference.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Setting keys.
const (
	SettingTheme                   = "theme"
	SettingDefaultActivityDuration = "default_activity_duration"
	SettingAutoStop                = "auto_stop"
	SettingAutoStopDuration        = "auto_stop_duration"
	SettingNotifications           = "notifications"
	SettingHaptics                 = "haptics"
	SettingSounds                  = "sounds"
	SettingCloudSync               = "cloud_sync"
	SettingLastSync                = "last_sync"
	SettingFirstLaunch             = "first_launch"
)

// SettingKind is the value type of a setting.
type SettingKind int

const (
	KindBool SettingKind = iota
	KindMinutes
	KindTheme
	KindTime
)

// SettingDef describes one preference key.
type SettingDef struct {
	Key         string
	Default     string // Canonical raw value
	Description string
	Kind        SettingKind
}

var settingDefs = []SettingDef{
	{Key: SettingTheme, Kind: KindTheme, Default: string(ThemeSystem), Description: "Color scheme: system, light or dark"},
	{Key: SettingDefaultActivityDuration, Kind: KindMinutes, Default: "60", Description: "Default duration of manually added activities (minutes)"},
	{Key: SettingAutoStop, Kind: KindBool, Default: "false", Description: "Stop the current activity automatically"},
	{Key: SettingAutoStopDuration, Kind: KindMinutes, Default: "120", Description: "Auto-stop after this many minutes"},
	{Key: SettingNotifications, Kind: KindBool, Default: "true", Description: "Enable notifications"},
	{Key: SettingHaptics, Kind: KindBool, Default: "true", Description: "Enable haptic feedback"},
	{Key: SettingSounds, Kind: KindBool, Default: "true", Description: "Enable sounds"},
	{Key: SettingCloudSync, Kind: KindBool, Default: "false", Description: "Enable cloud sync"},
	{Key: SettingLastSync, Kind: KindTime, Default: "", Description: "Time of the last sync (empty = never)"},
	{Key: SettingFirstLaunch, Kind: KindBool, Default: "true", Description: "First launch marker"},
}

// SettingDefinitions returns all preference definitions in display order.
func SettingDefinitions() []SettingDef {
	out := make([]SettingDef, len(settingDefs))
	copy(out, settingDefs)
	return out
}

// LookupSetting returns the definition of key.
func LookupSetting(key string) (SettingDef, bool) {
	for _, d := range settingDefs {
		if d.Key == key {
			return d, true
		}
	}
	return SettingDef{}, false
}

// Normalize parses raw according to the setting kind and returns the canonical form.
// Minutes accept a plain number ("90") or a Go duration ("1h30m").
func (d SettingDef) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch d.Kind {
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", ErrInvalidSettingValue
		}
		return strconv.FormatBool(b), nil
	case KindMinutes:
		m, err := ParseMinutes(raw)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(int(m / time.Minute)), nil
	case KindTheme:
		switch Theme(strings.ToLower(raw)) {
		case ThemeSystem, ThemeLight, ThemeDark:
			return strings.ToLower(raw), nil
		}
		return "", ErrInvalidSettingValue
	case KindTime:
		if raw == "" {
			return "", nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return "", ErrInvalidSettingValue
		}
		return t.Format(time.RFC3339), nil
	}
	return "", ErrInvalidSettingValue
}

// ParseMinutes parses "90" as 90 minutes, or any Go duration string.
func ParseMinutes(raw string) (time.Duration, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, ErrInvalidSettingValue
		}
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, ErrInvalidSettingValue
	}
	return d.Truncate(time.Minute), nil
}

// Settings is a typed view of all preferences.
type Settings struct {
	LastSync                time.Time // Zero = never synced
	Theme                   Theme
	DefaultActivityDuration time.Duration
	AutoStopDuration        time.Duration
	AutoStop                bool
	Notifications           bool
	Haptics                 bool
	Sounds                  bool
	CloudSync               bool
	FirstLaunch             bool
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Theme:                   ThemeSystem,
		DefaultActivityDuration: 60 * time.Minute,
		AutoStop:                false,
		AutoStopDuration:        120 * time.Minute,
		Notifications:           true,
		Haptics:                 true,
		Sounds:                  true,
		CloudSync:               false,
		FirstLaunch:             true,
	}
}

// DefaultSettingValues returns the canonical raw default of every key.
func DefaultSettingValues() map[string]string {
	values := make(map[string]string, len(settingDefs))
	for _, d := range settingDefs {
		values[d.Key] = d.Default
	}
	return values
}

// SettingsFromValues builds the typed view from canonical raw values.
// Missing or unparsable values fall back to their defaults.
func SettingsFromValues(values map[string]string) Settings {
	s := DefaultSettings()
	boolValue := func(key string, def bool) bool {
		b, err := strconv.ParseBool(values[key])
		if err != nil {
			return def
		}
		return b
	}
	minutesValue := func(key string, def time.Duration) time.Duration {
		raw, ok := values[key]
		if !ok {
			return def
		}
		d, err := ParseMinutes(raw)
		if err != nil {
			return def
		}
		return d
	}

	switch t := Theme(values[SettingTheme]); t {
	case ThemeSystem, ThemeLight, ThemeDark:
		s.Theme = t
	}
	s.DefaultActivityDuration = minutesValue(SettingDefaultActivityDuration, s.DefaultActivityDuration)
	s.AutoStop = boolValue(SettingAutoStop, s.AutoStop)
	s.AutoStopDuration = minutesValue(SettingAutoStopDuration, s.AutoStopDuration)
	s.Notifications = boolValue(SettingNotifications, s.Notifications)
	s.Haptics = boolValue(SettingHaptics, s.Haptics)
	s.Sounds = boolValue(SettingSounds, s.Sounds)
	s.CloudSync = boolValue(SettingCloudSync, s.CloudSync)
	s.FirstLaunch = boolValue(SettingFirstLaunch, s.FirstLaunch)
	if raw := values[SettingLastSync]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			s.LastSync = t
		}
	}
	return s
}
