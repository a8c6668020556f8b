// ABOUTME: Persists the session bearer token between runs
// ABOUTME: Stores a single access_token key as JSON in the XDG config directory

package credstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// AppName is the directory name used under the user's config home
const AppName = "reads"

// sessionFile is the file holding the token inside the config directory
const sessionFile = "session.json"

// Store holds at most one bearer token. An empty token from Load means
// the user is not authenticated.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type sessionData struct {
	AccessToken string `json:"access_token"`
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// FileStore keeps the token in <configDir>/session.json
type FileStore struct {
	configDir string
	mu        sync.Mutex
}

// NewFileStore creates a file-backed store rooted at configDir
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// Path returns the location of the session file
func (s *FileStore) Path() string {
	return filepath.Join(s.configDir, sessionFile)
}

// Load reads the token. A missing or unreadable session file yields "".
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var session sessionData
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupt file, treat as signed out
		return "", nil
	}
	return session.AccessToken, nil
}

// Save overwrites any previous token
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sessionData{AccessToken: token}, "", "  ")
	if err != nil {
		return err
	}
	return writePrivate(s.configDir, s.Path(), data)
}

// writePrivate replaces path through a 0600 temp file in dir, so an
// existing file with wider permissions never keeps them
func writePrivate(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Clear removes the token. Clearing an absent token is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore keeps the token in process memory only
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates a store, optionally seeded with a token
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load returns the current token
func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Save replaces the token
func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear forgets the token
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
