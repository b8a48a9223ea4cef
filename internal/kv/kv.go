// Package kv defines the synchronous key-value storage the checklist persists into.
package kv

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Storage is a small synchronous key-value medium.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
