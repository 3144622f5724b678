// Package filestore provides a file-based implementation of domain.BlobStore.
// Each blob lives in <dir>/<key>.json and is replaced atomically.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/runoshun/present-tense/internal/domain"
)

const (
	blobExt      = ".json"
	lockFileName = ".lock"
)

// Ensure Store implements the blob ports.
var (
	_ domain.BlobStore        = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Store implements domain.BlobStore using one file per key.
type Store struct {
	dir      string
	lockPath string
}

// New creates a Store rooted at dir.
// The directory does not need to exist; it is created on first write.
func New(dir string) *Store {
	return &Store{
		dir:      dir,
		lockPath: filepath.Join(dir, lockFileName),
	}
}

// Dir returns the directory holding the blobs.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the blob for key.
func (s *Store) Get(key string) ([]byte, error) {
	path, err := s.blobPath(key)
	if err != nil {
		return nil, err
	}

	var content []byte
	err = s.withLock(syscall.LOCK_SH, func() error {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				return domain.ErrBlobNotFound
			}
			return fmt.Errorf("read blob %s: %w", key, readErr)
		}
		content = data
		return nil
	})
	return content, err
}

// Put writes the blob for key, replacing any previous content.
func (s *Store) Put(key string, data []byte) error {
	path, err := s.blobPath(key)
	if err != nil {
		return err
	}
	return s.withLock(syscall.LOCK_EX, func() error {
		return writeAtomic(path, data, 0o600)
	})
}

// Delete removes the blob for key.
func (s *Store) Delete(key string) error {
	path, err := s.blobPath(key)
	if err != nil {
		return err
	}
	return s.withLock(syscall.LOCK_EX, func() error {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("delete blob %s: %w", key, rmErr)
		}
		return nil
	})
}

// Keys lists the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, blobExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, blobExt))
	}
	slices.Sort(keys)
	return keys, nil
}

// IsInitialized checks if the store directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Initialize creates the store directory if it doesn't exist.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

func (s *Store) blobPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.dir, key+blobExt), nil
}

func (s *Store) withLock(lockType int, fn func() error) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)
	return fn()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// IsBlobFile reports whether a path inside the store directory holds a blob.
// The watcher uses it to ignore lock and temp files.
func IsBlobFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, blobExt) && !strings.HasPrefix(base, ".")
}

// KeyFromPath returns the blob key for a blob file path.
func KeyFromPath(path string) (string, error) {
	if !IsBlobFile(path) {
		return "", errors.New("not a blob file")
	}
	return strings.TrimSuffix(filepath.Base(path), blobExt), nil
}
