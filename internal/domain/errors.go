package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrNoCurrentActivity   = errors.New("no activity in progress")
	ErrQuickActionNotFound = errors.New("quick action not found")
	ErrDefaultQuickAction  = errors.New("default quick actions cannot be deleted")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidPattern      = errors.New("invalid recurring pattern")
	ErrInvalidRange        = errors.New("range end is before range start")
	ErrEndBeforeStart      = errors.New("end time is before start time")
	ErrUnknownSetting      = errors.New("unknown setting")
	ErrInvalidSettingValue = errors.New("invalid setting value")
	ErrSyncDisabled        = errors.New("cloud sync is disabled (run 'tense settings set cloud_sync true')")
	ErrBlobNotFound        = errors.New("blob not found")
	ErrInvalidBackend      = errors.New("invalid store backend")
	ErrConfigExists        = errors.New("config file already exists")
)

// ValidationError reports a required field that failed validation.
// It matches its sentinel cause via errors.Is.
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SerializationError reports a corrupt persisted blob or a malformed import file.
type SerializationError struct {
	Err    error
	Source string // Blob key or file path
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsSerializationError reports whether err wraps a SerializationError.
func IsSerializationError(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}
