// Package storage is the blob-store collaborator for profile pictures:
// given bytes and a filename, persist them and return the path stored in
// the picture column. Overwrites delete the previous file first.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

type Store interface {
	Put(filename string, data []byte) (string, error)
	Remove(filename string) error
}

// Pictures is the store the handlers write profile pictures through,
// configured at startup.
var Pictures Store

type LocalStore struct {
	dir    string
	prefix string
}

// NewLocal stores files under dir and reports paths as prefix/<filename>.
func NewLocal(dir, prefix string) *LocalStore {
	return &LocalStore{dir: dir, prefix: prefix}
}

func (s *LocalStore) Put(filename string, data []byte) (string, error) {
	// Filenames are single path elements; anything that would resolve
	// outside dir is refused.
	if filename == "" || filename == "." || filename == ".." || filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid picture filename %q", filename)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create picture directory: %w", err)
	}

	path := filepath.Join(s.dir, filename)

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("remove existing picture: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write picture: %w", err)
	}

	return s.prefix + "/" + filename, nil
}

func (s *LocalStore) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
