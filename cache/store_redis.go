package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore Redis cache storage
type RedisStore struct {
	name      string
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a Redis store
func NewRedisStore(name string, client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		name:      name,
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Name returns the store name
func (s *RedisStore) Name() string {
	return s.name
}

// buildKey builds the full key
func (s *RedisStore) buildKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + key
}

// Get retrieves a cache value
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	fullKey := s.buildKey(key)
	result, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, ErrStoreGet.Wrap(err)
	}
	return result, nil
}

// Set stores a cache value
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	fullKey := s.buildKey(key)
	if err := s.client.Set(ctx, fullKey, value, ttl).Err(); err != nil {
		return ErrStoreSet.Wrap(err)
	}
	return nil
}

// Delete removes a cache key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	fullKey := s.buildKey(key)
	if err := s.client.Del(ctx, fullKey).Err(); err != nil {
		return ErrStoreDelete.Wrap(err)
	}
	return nil
}

// DeleteByPrefix deletes by prefix
// Uses SCAN to avoid blocking the backend
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	fullPrefix := s.buildKey(prefix)

	var cursor uint64
	var keys []string

	for {
		var err error
		var batch []string
		batch, cursor, err = s.client.Scan(ctx, cursor, fullPrefix+"*", 100).Result()
		if err != nil {
			return ErrStoreDelete.Wrap(err)
		}
		keys = append(keys, batch...)
		if cursor == 0 {
			break
		}
	}

	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return ErrStoreDelete.Wrap(err)
		}
	}

	return nil
}

// Exists checks if the key exists
func (s *RedisStore) Exists(ctx context.Context, key string) bool {
	fullKey := s.buildKey(key)
	n, err := s.client.Exists(ctx, fullKey).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Close is a no-op: the Redis client is managed by the caller
func (s *RedisStore) Close() error {
	return nil
}
