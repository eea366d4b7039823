// Package cache provides a simple caching interface with Add and Get methods.
// Computed curve results are stored here keyed by a hash of their inputs.
// Backends are in-memory and memcached.
package cache

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a cache key is not found.
var ErrNotFound = errors.New("cache: key not found")

// Cache defines the interface for cache implementations.
type Cache interface {
	// Add stores a value in the cache with the given key.
	// A zero duration means the item does not expire.
	Add(key string, value []byte, duration time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(key string) ([]byte, error)

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
}
