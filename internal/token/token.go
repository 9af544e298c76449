package token

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the bearer token between runs. Get returns an empty string
// (not an error) when no token is stored; callers treat absence as
// "not signed in".
type Store interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// FileStore keeps the token in a single file with 0600 permissions.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore rooted at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Set(token string) error {
	if token == "" {
		return errors.New("token is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileStore) Delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
