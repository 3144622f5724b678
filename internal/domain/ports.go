package domain

import "time"

// BlobStore persists flat serialized blobs under fixed keys.
// Every write overwrites the whole blob.
type BlobStore interface {
	// Get returns the blob for key, or ErrBlobNotFound.
	Get(key string) ([]byte, error)

	// Put creates or overwrites the blob for key.
	Put(key string, data []byte) error

	// Delete removes the blob for key. Missing keys are not an error.
	Delete(key string) error
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// Syncer pushes persisted blobs to a remote.
type Syncer interface {
	Push() error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration merged over defaults.
	Load() (*Config, error)
}

// ConfigManager manages the configuration file.
type ConfigManager interface {
	// Path returns the config file path.
	Path() string

	// Info reads the config file.
	Info() ConfigInfo

	// Init writes the config template. Fails with ErrConfigExists if present.
	Init(cfg *Config) error
}

// Logger writes application log entries.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	NewID() string
}
