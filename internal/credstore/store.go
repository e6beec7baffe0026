package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
)

// Credentials is the persisted token/user pair.
//
// The pair is written and cleared as a unit: a reader never observes a
// token without its matching user record, or vice versa.
type Credentials struct {
	// Token is the opaque session token issued by the API
	Token string `json:"token"`

	// User is the serialized user record as returned by the API
	User json.RawMessage `json:"user"`

	// UpdatedAt is when the pair was last written
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClearFunc is notified after the stored credentials have been cleared.
//
// The HTTP layer clears credentials on a 401 response; the session state
// machine subscribes here so its in-memory status cannot keep reporting
// authenticated against a wiped token.
type ClearFunc func()

// Store manages the persisted credential slot.
//
// Credentials are encrypted at rest with AES-GCM under a key derived from
// a passphrase via PBKDF2. All operations are single scoped
// read-modify-write sections guarded by one mutex.
type Store struct {
	mu sync.RWMutex

	// storePath is the file path where credentials are stored
	storePath string

	// masterKey is the encryption key derived from passphrase
	masterKey []byte

	// creds is the in-memory copy of the persisted pair, nil when logged out
	creds *Credentials

	// onClear holds subscribers notified after a clear
	onClear []ClearFunc
}

// New creates a credential store backed by the given file.
//
// An existing store file is loaded eagerly so that a restored process sees
// the credentials from its previous run.
func New(storePath, passphrase string) (*Store, error) {
	salt := []byte("naxum-credential-store")
	masterKey := pbkdf2.Key([]byte(passphrase), salt, 100000, 32, sha256.New)

	store := &Store{
		storePath: storePath,
		masterKey: masterKey,
	}

	if _, err := os.Stat(storePath); err == nil {
		if err := store.load(); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Save persists the token/user pair atomically.
func (s *Store) Save(token string, user json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = &Credentials{
		Token:     token,
		User:      user,
		UpdatedAt: time.Now(),
	}

	if err := s.save(); err != nil {
		s.creds = nil
		return err
	}

	return nil
}

// Load returns the stored pair, or ok=false when either half is missing.
func (s *Store) Load() (token string, user json.RawMessage, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil || s.creds.Token == "" || len(s.creds.User) == 0 {
		return "", nil, false
	}

	return s.creds.Token, s.creds.User, true
}

// Token returns the stored session token, or empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil {
		return ""
	}
	return s.creds.Token
}

// Clear removes the stored pair and notifies subscribers.
//
// Clearing an already-empty store is a no-op and does not notify.
func (s *Store) Clear() error {
	s.mu.Lock()

	if s.creds == nil {
		s.mu.Unlock()
		return nil
	}

	s.creds = nil
	err := os.Remove(s.storePath)
	subscribers := make([]ClearFunc, len(s.onClear))
	copy(subscribers, s.onClear)
	s.mu.Unlock()

	// Subscribers run outside the lock so they may call back into the store.
	for _, fn := range subscribers {
		fn()
	}

	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to remove credentials", err)
	}

	return nil
}

// OnClear registers a subscriber notified after each clear.
func (s *Store) OnClear(fn ClearFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// save persists the encrypted pair to disk. Caller must hold the lock.
func (s *Store) save() error {
	data, err := json.Marshal(s.creds)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to encode credentials", err)
	}

	sealed, err := s.encrypt(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to encrypt credentials", err)
	}

	dir := filepath.Dir(s.storePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to create credential directory", err)
	}

	envelope, err := json.Marshal(map[string]string{"credentials": sealed})
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to encode credentials", err)
	}

	if err := os.WriteFile(s.storePath, envelope, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to write credentials", err)
	}

	return nil
}

// load reads the encrypted pair from disk. Only called from New.
func (s *Store) load() error {
	data, err := os.ReadFile(s.storePath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialRead, "failed to read credentials", err)
	}

	var envelope map[string]string
	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialRead, "failed to decode credentials", err)
	}

	plaintext, err := s.decrypt(envelope["credentials"])
	if err != nil {
		return errors.Wrap(errors.ErrCodeCredentialDecrypt, "failed to decrypt credentials", err)
	}

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return errors.Wrap(errors.ErrCodeCredentialRead, "failed to decode credentials", err)
	}

	s.creds = &creds
	return nil
}

// encrypt encrypts a value using AES-GCM
func (s *Store) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a value using AES-GCM
func (s *Store) decrypt(ciphertext string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
