// Package crypto encrypts blobs stored by the git backend.
// Sealing the same plaintext twice yields the same ciphertext (the nonce is
// remembered per plaintext digest), so unchanged blobs keep their git hash.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32

	cacheFileName = "nonce-cache"
)

var (
	// ErrInvalidKey is returned when the encryption key is invalid.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrCiphertextTooShort is returned when the ciphertext is too short.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Encryptor seals blobs with AES-256-GCM.
// Fields are ordered to minimize memory padding.
type Encryptor struct {
	gcm      cipher.AEAD
	nonces   map[[sha256.Size]byte][NonceSize]byte // plaintext digest -> nonce
	cacheDir string
	mu       sync.Mutex
}

// GenerateKey returns a random 64-character hex key.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// NewEncryptor creates an Encryptor from a hex key.
// cacheDir persists the nonce cache across runs; empty keeps it in memory.
func NewEncryptor(hexKey, cacheDir string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	e := &Encryptor{
		gcm:      gcm,
		nonces:   make(map[[sha256.Size]byte][NonceSize]byte),
		cacheDir: cacheDir,
	}
	if cacheDir != "" {
		_ = e.loadCache() // A broken cache only costs determinism.
	}
	return e, nil
}

// Encrypt returns nonce || ciphertext || tag.
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	digest := sha256.Sum256(plaintext)

	e.mu.Lock()
	nonce, ok := e.nonces[digest]
	if !ok {
		if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("generate nonce: %w", err)
		}
		e.nonces[digest] = nonce
	}
	e.mu.Unlock()

	if !ok && e.cacheDir != "" {
		_ = e.SaveCache()
	}
	return e.gcm.Seal(append([]byte(nil), nonce[:]...), nonce[:], plaintext, nil), nil
}

// Decrypt reverses Encrypt.
func (e *Encryptor) Decrypt(sealed []byte) ([]byte, error) {
	if len(sealed) < NonceSize {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := e.gcm.Open(nil, sealed[:NonceSize], sealed[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func (e *Encryptor) cachePath() string {
	return filepath.Join(e.cacheDir, cacheFileName)
}

// loadCache reads fixed-size records: digest (32 bytes) + nonce (12 bytes).
func (e *Encryptor) loadCache() error {
	data, err := os.ReadFile(e.cachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	const record = sha256.Size + NonceSize
	for off := 0; off+record <= len(data); off += record {
		var digest [sha256.Size]byte
		var nonce [NonceSize]byte
		copy(digest[:], data[off:])
		copy(nonce[:], data[off+sha256.Size:])
		e.nonces[digest] = nonce
	}
	return nil
}

// SaveCache writes the nonce cache to disk.
func (e *Encryptor) SaveCache() error {
	if err := os.MkdirAll(e.cacheDir, 0o700); err != nil {
		return err
	}

	e.mu.Lock()
	buf := make([]byte, 0, len(e.nonces)*(sha256.Size+NonceSize))
	for digest, nonce := range e.nonces {
		buf = append(buf, digest[:]...)
		buf = append(buf, nonce[:]...)
	}
	e.mu.Unlock()

	tmp := e.cachePath() + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, e.cachePath())
}

// CacheSize returns the number of remembered nonces.
func (e *Encryptor) CacheSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.nonces)
}

// ClearCache forgets every nonce, in memory and on disk.
func (e *Encryptor) ClearCache() error {
	e.mu.Lock()
	e.nonces = make(map[[sha256.Size]byte][NonceSize]byte)
	e.mu.Unlock()

	if e.cacheDir == "" {
		return nil
	}
	if err := os.Remove(e.cachePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Fingerprint returns a short identifier of the key, safe to log.
func (e *Encryptor) Fingerprint() string {
	probe := e.gcm.Seal(nil, make([]byte, NonceSize), nil, nil)
	return fmt.Sprintf("%08x", binary.BigEndian.Uint32(probe[:4]))
}
