// Package tokenstore persists the session's bearer tokens between
// invocations. Two slots are used: "access" and "refresh". Values live in
// a single YAML file under the user's config directory, optionally sealed
// with AES-256-GCM.
package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/starward/starward/internal/crypto"
)

// Fixed slot names, matching the keys the backend's web client uses.
const (
	SlotAccess  = "access"
	SlotRefresh = "refresh"
)

// Store reads and writes named token slots in a file. It is safe for
// concurrent use within a process; the file is re-read on every Get so
// tokens written by another invocation are picked up.
type Store struct {
	path   string
	cipher *crypto.Cipher
	mu     sync.Mutex
}

// New creates a Store backed by the file at path. cipher may be nil for
// plaintext storage.
func New(path string, cipher *crypto.Cipher) *Store {
	return &Store{path: path, cipher: cipher}
}

// Get returns the value of the named slot. The second return is false
// when the slot is absent; absence is never an error.
func (s *Store) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return "", false
	}
	sealed, ok := slots[name]
	if !ok || sealed == "" {
		return "", false
	}
	value, err := s.cipher.Decrypt(sealed)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Set writes the named slot, creating the file and its directory if needed.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	sealed, err := s.cipher.Encrypt(value)
	if err != nil {
		return fmt.Errorf("sealing token: %w", err)
	}
	slots[name] = sealed
	return s.save(slots)
}

// SetPair writes the access and refresh slots in one file write.
func (s *Store) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	sealedAccess, err := s.cipher.Encrypt(access)
	if err != nil {
		return fmt.Errorf("sealing access token: %w", err)
	}
	sealedRefresh, err := s.cipher.Encrypt(refresh)
	if err != nil {
		return fmt.Errorf("sealing refresh token: %w", err)
	}
	slots[SlotAccess] = sealedAccess
	slots[SlotRefresh] = sealedRefresh
	return s.save(slots)
}

// Clear removes the named slot. Clearing an absent slot is a no-op.
func (s *Store) Clear(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := slots[name]; !ok {
		return nil
	}
	delete(slots, name)
	return s.save(slots)
}

// ClearAll removes every stored token. Safe to call when nothing is stored.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// load must be called with s.mu held.
func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	slots := map[string]string{}
	if err := yaml.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return slots, nil
}

// save must be called with s.mu held. The file is written 0600: it holds
// live credentials.
func (s *Store) save(slots map[string]string) error {
	data, err := yaml.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encoding token file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}
