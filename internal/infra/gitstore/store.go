// Package gitstore provides a Git plumbing-based implementation of domain.BlobStore.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/infra/crypto"
)

// Ensure Store implements the blob ports.
var (
	_ domain.BlobStore        = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
	_ domain.Syncer           = (*Store)(nil)
)

// Store implements domain.BlobStore using Git refs pointing at blobs.
// No commits or trees are created, so the repository's history is untouched.
//
// Data structure:
//
//	refs/<namespace>/
//	  initialized   → blob (marker)
//	  blobs/
//	    <key>       → blob (serialized data, optionally encrypted)
type Store struct {
	repo      *git.Repository
	encryptor *crypto.Encryptor
	repoPath  string // path to the repository
	namespace string // e.g., "tense"
	remote    string // e.g., "origin"
	mu        sync.RWMutex
}

// Options configures a Store.
type Options struct {
	Encryptor *crypto.Encryptor
	Namespace string
	Remote    string
}

// Open opens the repository at repoPath, creating a bare one if it does not exist.
func Open(repoPath string, opts Options) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(repoPath, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	s := NewWithRepo(repo, opts)
	s.repoPath = repoPath
	return s, nil
}

// NewWithRepo creates a Store with an existing repository instance.
// Push needs a repository path and fails for stores created this way.
func NewWithRepo(repo *git.Repository, opts Options) *Store {
	if opts.Namespace == "" {
		opts.Namespace = domain.DefaultNamespace
	}
	if opts.Remote == "" {
		opts.Remote = domain.DefaultRemote
	}
	return &Store{
		repo:      repo,
		encryptor: opts.Encryptor,
		namespace: opts.Namespace,
		remote:    opts.Remote,
	}
}

// RefsDir returns the directory holding the loose blob refs, or "" for
// stores created without a repository path.
func (s *Store) RefsDir() string {
	if s.repoPath == "" {
		return ""
	}
	return filepath.Join(s.repoPath, "refs", s.namespace, "blobs")
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// blobRef returns the ref name for a key.
func (s *Store) blobRef(key string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "blobs/" + key)
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Get returns the blob for key.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.blobRef(key), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("get blob ref %s: %w", key, err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put writes the blob and moves the key's ref to it.
func (s *Store) Put(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.blobRef(key), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set blob ref %s: %w", key, err)
	}
	return nil
}

// Delete removes the key's ref. The blob object is left for git gc.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Storer.RemoveReference(s.blobRef(key)); err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("remove blob ref %s: %w", key, err)
		}
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	defer refs.Close()

	prefix := s.refPrefix() + "blobs/"
	var keys []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := string(ref.Name())
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			keys = append(keys, name[len(prefix):])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// writeBlob writes data to a blob and returns the hash.
// If encryption is enabled, the data is encrypted before writing.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	blobData := data
	if s.encryptor != nil {
		encrypted, err := s.encryptor.Encrypt(data)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("encrypt data: %w", err)
		}
		blobData = encrypted
	}

	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(blobData)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}
	if _, writeErr := writer.Write(blobData); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

// readBlob reads and optionally decrypts data from a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}

	if s.encryptor != nil {
		decrypted, err := s.encryptor.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("decrypt data: %w", err)
		}
		return decrypted, nil
	}
	return data, nil
}

// Initialize writes the initialized marker if it doesn't exist.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("check initialized ref: %w", err)
	}

	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set initialized ref: %w", err)
	}
	return nil
}

// IsInitialized checks if the store has been initialized.
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	return err == nil
}

// Push pushes the namespace refs to the configured remote.
func (s *Store) Push() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repoPath == "" {
		return errors.New("push: repository path unknown")
	}

	// go-git push requires auth config, so use the git command.
	refspec := fmt.Sprintf("+refs/%s/*:refs/%s/*", s.namespace, s.namespace)
	cmd := exec.Command("git", "-C", s.repoPath, "push", s.remote, refspec) //nolint:gosec // refspec is constructed from trusted config
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("push failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, " ~^:?*[\\") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
