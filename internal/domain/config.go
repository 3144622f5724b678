package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Store backends.
const (
	BackendFile   = "file"
	BackendGit    = "git"
	BackendSQLite = "sqlite"
)

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultNamespace = "tense"
	DefaultRemote    = "origin"
	DefaultWeekStart = "sunday"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Store    StoreConfig    `toml:"store"`
	Calendar CalendarConfig `toml:"calendar"`
	Log      LogConfig      `toml:"log"`
	Tracker  TrackerConfig  `toml:"tracker"`
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Backend       string `toml:"backend,omitempty"`        // "file" (default), "git" or "sqlite"
	Dir           string `toml:"dir,omitempty"`            // Data directory (default: XDG data home)
	Namespace     string `toml:"namespace,omitempty"`      // Git ref namespace (default: "tense")
	Remote        string `toml:"remote,omitempty"`         // Git remote used by sync (default: "origin")
	EncryptionKey string `toml:"encryption_key,omitempty"` // 64 hex chars; encrypts git blobs when set
}

// CalendarConfig holds settings from the [calendar] section.
type CalendarConfig struct {
	Timezone  string `toml:"timezone,omitempty"`   // IANA name; empty = local
	WeekStart string `toml:"week_start,omitempty"` // First weekday (default: sunday)
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// TrackerConfig holds settings from the [tracker] section.
type TrackerConfig struct {
	SeedSampleData bool `toml:"seed_sample_data,omitempty"` // Seed sample activities on first run
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   BackendFile,
			Namespace: DefaultNamespace,
			Remote:    DefaultRemote,
		},
		Calendar: CalendarConfig{
			WeekStart: DefaultWeekStart,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ResolveCalendar resolves the [calendar] section. Invalid values fall back to defaults
// and are reported as warnings.
func (c *Config) ResolveCalendar() (Calendar, []string) {
	cal := DefaultCalendar()
	var warnings []string
	if c.Calendar.Timezone != "" {
		loc, err := time.LoadLocation(c.Calendar.Timezone)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unknown timezone %q, using local time", c.Calendar.Timezone))
		} else {
			cal.Location = loc
		}
	}
	if c.Calendar.WeekStart != "" {
		day, ok := ParseWeekday(c.Calendar.WeekStart)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown week_start %q, using sunday", c.Calendar.WeekStart))
		} else {
			cal.WeekStart = day
		}
	}
	return cal, warnings
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Directory and file names for present-tense.
const (
	AppDirName     = "present-tense" // Directory name under XDG config/data homes
	ConfigFileName = "config.toml"   // Config file name
	LogFileName    = "tense.log"     // Log file name
	ExportPrefix   = "present_tense_backup_"
)

// Blob keys.
const (
	KeyActivities   = "activities"
	KeyQuickActions = "quick_actions"
	KeySettings     = "settings"
)

// ConfigDir returns the config directory for configHome (XDG_CONFIG_HOME or ~/.config).
func ConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// ConfigPath returns the config file path for configHome.
func ConfigPath(configHome string) string {
	return filepath.Join(ConfigDir(configHome), ConfigFileName)
}

// DefaultDataDir returns $XDG_DATA_HOME/present-tense or ~/.local/share/present-tense.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDirName)
}

// LogPath returns the log file path inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}

// ExportFileName returns the export file name for t and format ("json" or "yaml").
func ExportFileName(t time.Time, format string) string {
	return fmt.Sprintf("%s%d.%s", ExportPrefix, t.Unix(), format)
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Backend   string
	Namespace string
	Remote    string
	WeekStart string
	LogLevel  string
}

// RenderConfigTemplate renders the commented config template from cfg.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Backend:   cfg.Store.Backend,
		Namespace: cfg.Store.Namespace,
		Remote:    cfg.Store.Remote,
		WeekStart: cfg.Calendar.WeekStart,
		LogLevel:  cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
