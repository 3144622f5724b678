// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockBlobStore is an in-memory domain.BlobStore.
// Fields are ordered to minimize memory padding.
type MockBlobStore struct {
	Blobs     map[string][]byte
	GetErr    error
	PutErr    error
	DeleteErr error
	Puts      int // Number of successful Put calls
	mu        sync.Mutex
}

// NewMockBlobStore creates a new MockBlobStore with an initialized map.
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Blobs: make(map[string][]byte)}
}

// Get returns a copy of the stored blob.
func (m *MockBlobStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	data, ok := m.Blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data.
func (m *MockBlobStore) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Blobs[key] = append([]byte(nil), data...)
	m.Puts++
	return nil
}

// Delete removes the blob.
func (m *MockBlobStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Blobs, key)
	return nil
}

// Snapshot returns a copy of all blobs.
func (m *MockBlobStore) Snapshot() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.Blobs)
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
}

// Initialize records the call.
func (m *MockStoreInitializer) Initialize() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// MockSyncer is a test double for domain.Syncer.
type MockSyncer struct {
	PushErr error
	Pushes  int
}

// Push records the call.
func (m *MockSyncer) Push() error {
	if m.PushErr != nil {
		return m.PushErr
	}
	m.Pushes++
	return nil
}

// LogEntry is one captured log line.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger captures log entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) log(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

func (m *MockLogger) Debug(category, msg string) { m.log("DEBUG", category, msg) }
func (m *MockLogger) Info(category, msg string)  { m.log("INFO", category, msg) }
func (m *MockLogger) Warn(category, msg string)  { m.log("WARN", category, msg) }
func (m *MockLogger) Error(category, msg string) { m.log("ERROR", category, msg) }

// ByLevel returns captured entries of level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockIDGenerator returns sequential IDs: "id-1", "id-2", ...
type MockIDGenerator struct {
	Prefix string
	n      int
}

// NewID returns the next sequential ID.
func (m *MockIDGenerator) NewID() string {
	m.n++
	prefix := m.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, m.n)
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr  error
	Written  *domain.Config
	PathVal  string
	InitCall bool
}

// Path returns the configured path.
func (m *MockConfigManager) Path() string {
	return m.PathVal
}

// Info returns the config file info.
func (m *MockConfigManager) Info() domain.ConfigInfo {
	return domain.ConfigInfo{Path: m.PathVal, Exists: m.Written != nil}
}

// Init records the written config.
func (m *MockConfigManager) Init(cfg *domain.Config) error {
	m.InitCall = true
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Written = cfg
	return nil
}

// Compile-time interface checks.
var (
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.BlobStore        = (*MockBlobStore)(nil)
	_ domain.StoreInitializer = (*MockStoreInitializer)(nil)
	_ domain.Syncer           = (*MockSyncer)(nil)
	_ domain.Logger           = (*MockLogger)(nil)
	_ domain.IDGenerator      = (*MockIDGenerator)(nil)
	_ domain.ConfigManager    = (*MockConfigManager)(nil)
)
