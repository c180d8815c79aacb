package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore in-memory cache storage.
// Production uses RedisStore; MemoryStore serves tests and local runs
// without a Redis backend.
type MemoryStore struct {
	name    string
	data    map[string]*memoryItem
	mu      sync.RWMutex
	maxSize int
}

// memoryItem a cached entry
type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates a memory store
func NewMemoryStore(name string, maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 10000
	}
	store := &MemoryStore{
		name:    name,
		data:    make(map[string]*memoryItem),
		maxSize: maxSize,
	}
	// background cleanup of expired entries
	go store.cleanupLoop()
	return store
}

// Name returns the store name
func (s *MemoryStore) Name() string {
	return s.name
}

// Get retrieves a cache value
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		s.Delete(ctx, key)
		return nil, ErrCacheMiss
	}

	return item.value, nil
}

// Set stores a cache value
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) >= s.maxSize {
		s.evictOne()
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.data[key] = &memoryItem{
		value:     value,
		expiresAt: expiresAt,
	}

	return nil
}

// Delete removes a cache key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// DeleteByPrefix deletes by prefix
func (s *MemoryStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
		}
	}
	return nil
}

// Exists checks if the key exists
func (s *MemoryStore) Exists(ctx context.Context, key string) bool {
	s.mu.RLock()
	item, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		return false
	}

	return true
}

// Close clears the store
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*memoryItem)
	return nil
}

// Size returns the current number of entries
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// evictOne evicts one entry (earliest expiry first)
func (s *MemoryStore) evictOne() {
	var oldest string
	var oldestTime time.Time

	for key, item := range s.data {
		if oldest == "" || (!item.expiresAt.IsZero() && item.expiresAt.Before(oldestTime)) {
			oldest = key
			oldestTime = item.expiresAt
		}
	}

	if oldest != "" {
		delete(s.data, oldest)
	}
}

// cleanupLoop periodically removes expired entries
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

// cleanup removes expired entries
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, item := range s.data {
		if !item.expiresAt.IsZero() && now.After(item.expiresAt) {
			delete(s.data, key)
		}
	}
}
