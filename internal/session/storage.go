// File: internal/session/storage.go
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStorage persists exactly one durable value: the session token. It is
// the sole bootstrap input for rehydrating a session at startup.
type TokenStorage interface {
	Save(token string) error
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	// Delete removes the persisted token. Idempotent.
	Delete() error
}

// FileStorage stores the token in a single file on the local device,
// created with owner-only permissions.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed token storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (f *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStorage) Delete() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// NoopStorage discards writes and loads nothing. Used in tests and for
// callers that opt out of persistence.
type NoopStorage struct{}

func (NoopStorage) Save(string) error     { return nil }
func (NoopStorage) Load() (string, error) { return "", nil }
func (NoopStorage) Delete() error         { return nil }
