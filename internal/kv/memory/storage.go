// Package memory provides an in-process kv.Storage.
package memory

import (
	"sync"

	"checklist/internal/kv"
)

// Storage keeps values in a map. It is the closest analogue of browser localStorage
// and is used for ephemeral runs and tests.
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte

	// Error injection for testing
	GetErr    error
	SetErr    error
	DeleteErr error
}

func New() *Storage {
	return &Storage{
		values: make(map[string][]byte),
	}
}

func (s *Storage) Get(key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return nil, kv.ErrNotFound
	}
	// callers own the returned slice
	return append([]byte(nil), v...), nil
}

func (s *Storage) Set(key string, value []byte) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	s.values[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *Storage) Delete(key string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Len reports how many keys are stored.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

var _ kv.Storage = (*Storage)(nil)
