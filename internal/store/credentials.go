// Package store provides the two key/value stores behind authentication
// state: a durable, file-backed credential store and a transient,
// process-lifetime store used by the password recovery flow. No component
// outside internal/session and internal/recovery should touch these
// directly.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credentials is the durable session state persisted across runs.
type Credentials struct {
	AuthToken string `json:"auth_token"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// CredentialStore persists session credentials.
type CredentialStore interface {
	Load() (*Credentials, error)
	Save(*Credentials) error
	Clear() error
}

// FileStore keeps credentials in a JSON file (dir/credentials.json).
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "credentials.json")}
}

// Load reads persisted credentials. A missing file is not an error; it
// returns empty credentials.
func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save writes credentials to disk.
func (s *FileStore) Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Clear removes persisted credentials. Clearing an already-empty store is
// a no-op; both the explicit logout path and the global auth-failure
// handler call this and neither may fail on repetition.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
