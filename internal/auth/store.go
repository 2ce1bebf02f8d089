package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// SessionKey is the key under which the logged-in username is persisted.
const SessionKey = "carbon-user"

// Store persists the logged-in username between invocations.
type Store interface {
	// Load returns the saved username, or "" when nobody is logged in.
	Load() (string, error)
	Save(username string) error
	Clear() error
}

// FileStore keeps the username in a small YAML document.
type FileStore struct {
	Path string
}

// Load reads the session file. A missing file means no saved user.
func (s FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading session file %s: %w", s.Path, err)
	}

	var doc map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parsing session file %s: %w", s.Path, err)
	}
	return doc[SessionKey], nil
}

// Save writes the username, creating the parent directory if needed.
func (s FileStore) Save(username string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o750); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := yaml.Marshal(map[string]string{SessionKey: username})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.Path, err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", s.Path, err)
	}
	return nil
}

// MemoryStore keeps the username in memory only.
type MemoryStore struct {
	mu   sync.Mutex
	user string
}

// Load returns the stored username.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

// Save stores the username.
func (s *MemoryStore) Save(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = username
	return nil
}

// Clear forgets the username.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = ""
	return nil
}
