// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/present-tense/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	path string // Config file path (e.g., ~/.config/present-tense/config.toml)
}

// NewLoader creates a Loader for the default config location.
func NewLoader() *Loader {
	return &Loader{path: DefaultPath()}
}

// NewLoaderWithPath creates a Loader for an explicit file.
// This is useful for testing and for the --config flag.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{path: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/present-tense/config.toml, or "" if no
// home directory can be determined.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.ConfigPath(configHome)
}

// Load returns the file configuration merged over the defaults.
// A missing file yields the defaults.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()
	if l.path == "" {
		return base, nil
	}

	override, err := l.loadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", l.path, err)
	}

	merged := mergeConfigs(base, override)
	if err := validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToDomainConfig(raw), nil
}

// sectionReader walks one table, reporting unknown keys and wrong types.
type sectionReader struct {
	warnings *[]string
	section  string
}

func (r sectionReader) unknown(key string) {
	*r.warnings = append(*r.warnings, fmt.Sprintf("unknown key in [%s]: %s", r.section, key))
}

func (r sectionReader) str(key string, v any, dst *string) {
	s, ok := v.(string)
	if !ok {
		*r.warnings = append(*r.warnings, fmt.Sprintf("[%s].%s must be a string", r.section, key))
		return
	}
	*dst = s
}

func (r sectionReader) boolean(key string, v any, dst *bool) {
	b, ok := v.(bool)
	if !ok {
		*r.warnings = append(*r.warnings, fmt.Sprintf("[%s].%s must be a boolean", r.section, key))
		return
	}
	*dst = b
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		r := sectionReader{section: section, warnings: &warnings}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					r.str(k, v, &res.Store.Backend)
				case "dir":
					r.str(k, v, &res.Store.Dir)
				case "namespace":
					r.str(k, v, &res.Store.Namespace)
				case "remote":
					r.str(k, v, &res.Store.Remote)
				case "encryption_key":
					r.str(k, v, &res.Store.EncryptionKey)
				default:
					r.unknown(k)
				}
			}
		case "calendar":
			for k, v := range m {
				switch k {
				case "timezone":
					r.str(k, v, &res.Calendar.Timezone)
				case "week_start":
					r.str(k, v, &res.Calendar.WeekStart)
				default:
					r.unknown(k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					r.str(k, v, &res.Log.Level)
				default:
					r.unknown(k)
				}
			}
		case "tracker":
			for k, v := range m {
				switch k {
				case "seed_sample_data":
					r.boolean(k, v, &res.Tracker.SeedSampleData)
				default:
					r.unknown(k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = strings.ToLower(override.Store.Backend)
	}
	if override.Store.Dir != "" {
		result.Store.Dir = expandHome(override.Store.Dir)
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Store.Remote != "" {
		result.Store.Remote = override.Store.Remote
	}
	if override.Store.EncryptionKey != "" {
		result.Store.EncryptionKey = override.Store.EncryptionKey
	}
	if override.Calendar.Timezone != "" {
		result.Calendar.Timezone = override.Calendar.Timezone
	}
	if override.Calendar.WeekStart != "" {
		result.Calendar.WeekStart = override.Calendar.WeekStart
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Tracker.SeedSampleData {
		result.Tracker.SeedSampleData = true
	}
	return &result
}

// validate rejects values the app cannot start with.
func validate(cfg *domain.Config) error {
	switch cfg.Store.Backend {
	case domain.BackendFile, domain.BackendGit, domain.BackendSQLite:
	default:
		return fmt.Errorf("%w: %q (want file, git or sqlite)", domain.ErrInvalidBackend, cfg.Store.Backend)
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
