// Package file stores each key as a JSON document under a directory.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"checklist/internal/kv"
)

const (
	// Ext is appended to every key to form its filename.
	Ext = ".json"

	fileMode = 0o600
	dirMode  = 0o700
)

// Storage persists values as <dir>/<key>.json.
type Storage struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Storage { return &Storage{dir: dir} }

// Path returns the file backing key.
func (s *Storage) Path(key string) string {
	return filepath.Join(s.dir, key+Ext)
}

func (s *Storage) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path(key))
	if err != nil {
		return nil, err
	}
	if b == nil { // file didn't exist
		return nil, kv.ErrNotFound
	}
	return b, nil
}

func (s *Storage) Set(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return writeFile(s.Path(key), value, fileMode)
}

func (s *Storage) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// validKey rejects keys that would escape the storage directory.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}

// readFile reads the file at path; a missing file is not an error.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

var _ kv.Storage = (*Storage)(nil)
