package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Serialization formats for export and import.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatForPath picks a format from the file extension. Empty means "try both".
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// EncodeActivities serializes the full activity collection.
func EncodeActivities(list []Activity, format string) ([]byte, error) {
	if list == nil {
		list = []Activity{}
	}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return nil, fmt.Errorf("marshal activities: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal activities: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal activities: %w", err)
		}
		return data, nil
	}
}

// DecodeActivities parses an activity collection. source names the blob or file
// for error reporting. With an empty format, YAML is tried first, then JSON.
// Any failure is returned as a *SerializationError.
func DecodeActivities(data []byte, format, source string) ([]Activity, error) {
	var list []Activity
	var err error
	switch format {
	case FormatJSON:
		err = decodeJSON(data, &list)
	case FormatYAML:
		err = yaml.Unmarshal(data, &list)
	default:
		if yamlErr := yaml.Unmarshal(data, &list); yamlErr != nil {
			list = nil
			if jsonErr := decodeJSON(data, &list); jsonErr != nil {
				err = fmt.Errorf("YAML error: %w, JSON error: %v", yamlErr, jsonErr)
			}
		}
	}
	if err != nil {
		return nil, &SerializationError{Source: source, Err: err}
	}
	// A null document decodes without error but is not a collection.
	if list == nil {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, &SerializationError{Source: source, Err: fmt.Errorf("empty document")}
		}
		return nil, &SerializationError{Source: source, Err: fmt.Errorf("document is not an activity list")}
	}
	for i := range list {
		if vErr := list[i].Validate(); vErr != nil {
			return nil, &SerializationError{Source: source, Err: fmt.Errorf("activity %d: %w", i, vErr)}
		}
		if list[i].ID == "" {
			return nil, &SerializationError{Source: source, Err: fmt.Errorf("activity %d: missing id", i)}
		}
	}
	return list, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}

// UUIDGenerator generates random UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
