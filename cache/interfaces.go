// Package cache provides the key-value cache backend abstraction used by
// the cache-aside read path: a Store interface with Redis and in-memory
// implementations, value serialization, and backend-wide metrics.
package cache

import (
	"context"
	"time"
)

// Store cache storage interface
// All storage backends must implement this interface
type Store interface {
	// Name returns the storage backend name
	Name() string

	// Get a cache value
	// Returns ErrCacheMiss when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set a cache value with a time-to-live (full key overwrite)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete a cache key (idempotent: deleting an absent key is a no-op)
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix deletes all keys with the given prefix
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Exists checks if the key exists
	Exists(ctx context.Context, key string) bool

	// Close the storage connection
	Close() error
}

// Serializer serialization interface
type Serializer interface {
	// Serialize object to byte array
	Serialize(v any) ([]byte, error)

	// Deserialize byte array to object
	Deserialize(data []byte, v any) error

	// Name returns the serializer name
	Name() string
}
