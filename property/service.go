package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/KOMKZ/property-catalog/cache"
	"github.com/KOMKZ/property-catalog/logger"
	"go.uber.org/zap"
)

// KeyAllProperties cache key of the full collection
const KeyAllProperties = "all_properties"

// PropertyKey cache key of a single record
func PropertyKey(id uint64) string {
	return fmt.Sprintf("property_%d", id)
}

// CacheStats snapshot of the collection-cache state.
// Computed on demand, never persisted. CacheTimeout reports the configured
// TTL, not the remaining lifetime of the entry.
type CacheStats struct {
	AllPropertiesCached bool   `json:"all_properties_cached"`
	AllPropertiesCount  int    `json:"all_properties_count"`
	CacheKey            string `json:"cache_key"`
	CacheTimeout        int    `json:"cache_timeout"` // seconds
}

// CacheService cache-aside read path over the property repository.
//
// Concurrency: no in-process locks and no single-flight. Concurrent misses
// on the same key may each query the store and each write the cache; writes
// are full-key overwrites of equivalent values, so the result is bounded
// staleness, not corruption. An invalidation concurrent with an in-flight
// fetch may be overwritten by that fetch ("lost invalidation"), bounded by
// the entry TTL.
//
// Errors: a miss is not a fault. Store and cache transport failures
// propagate to the caller unhandled; only the not-found outcome of GetByID
// is recovered locally (as ErrPropertyNotFound).
type CacheService struct {
	store      cache.Store
	serializer cache.Serializer
	repo       Repository
	cfg        CacheConfig
	log        logger.Logger
}

// NewCacheService creates the cache-aside service.
// The store handle is injected so tests can substitute an in-memory fake.
func NewCacheService(store cache.Store, repo Repository, cfg CacheConfig, log logger.Logger) *CacheService {
	cfg.ApplyDefaults()
	return &CacheService{
		store:      store,
		serializer: cache.NewJSONSerializer(),
		repo:       repo,
		cfg:        cfg,
		log:        log,
	}
}

// GetAllProperties returns all properties, newest first.
// Cache-aside on KeyAllProperties: on miss the repository result is
// materialized, cached for the configured TTL and returned. An empty
// collection is a valid, cacheable result.
func (s *CacheService) GetAllProperties(ctx context.Context) ([]Property, error) {
	data, err := s.store.Get(ctx, KeyAllProperties)
	if err == nil {
		var properties []Property
		if err := s.serializer.Deserialize(data, &properties); err != nil {
			return nil, cache.ErrDeserialize.Wrap(err)
		}
		s.log.InfoCtx(ctx, "cache HIT",
			zap.String("key", KeyAllProperties),
			zap.Int("count", len(properties)))
		return properties, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, err
	}

	s.log.InfoCtx(ctx, "cache MISS", zap.String("key", KeyAllProperties))

	properties, err := s.repo.ListAllByNewest(ctx)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []Property{}
	}

	payload, err := s.serializer.Serialize(properties)
	if err != nil {
		return nil, cache.ErrSerialize.Wrap(err)
	}
	if err := s.store.Set(ctx, KeyAllProperties, payload, s.cfg.AllPropertiesTTL); err != nil {
		return nil, err
	}

	s.log.InfoCtx(ctx, "cached properties",
		zap.String("key", KeyAllProperties),
		zap.Int("count", len(properties)),
		zap.Duration("ttl", s.cfg.AllPropertiesTTL))

	return properties, nil
}

// GetPropertyByID returns a single property.
// Cache-aside on PropertyKey(id). A missing record yields
// ErrPropertyNotFound and is NOT cached: every subsequent lookup for that
// id queries the store again (no negative caching).
func (s *CacheService) GetPropertyByID(ctx context.Context, id uint64) (*Property, error) {
	key := PropertyKey(id)

	data, err := s.store.Get(ctx, key)
	if err == nil {
		var p Property
		if err := s.serializer.Deserialize(data, &p); err != nil {
			return nil, cache.ErrDeserialize.Wrap(err)
		}
		s.log.InfoCtx(ctx, "cache HIT", zap.String("key", key))
		return &p, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			s.log.WarnCtx(ctx, "property not found", zap.Uint64("id", id))
		}
		return nil, err
	}

	payload, err := s.serializer.Serialize(p)
	if err != nil {
		return nil, cache.ErrSerialize.Wrap(err)
	}
	if err := s.store.Set(ctx, key, payload, s.cfg.PropertyTTL); err != nil {
		return nil, err
	}

	s.log.InfoCtx(ctx, "cached property",
		zap.String("key", key),
		zap.Duration("ttl", s.cfg.PropertyTTL))

	return p, nil
}

// InvalidateProperties deletes the collection cache key.
// Idempotent: deleting an absent key is a no-op.
//
// Contract: any collaborator that creates, updates or deletes a property
// MUST call this to bound staleness. The service does not enforce the
// invocation; the write helpers below honor it in-process.
func (s *CacheService) InvalidateProperties(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyAllProperties); err != nil {
		return err
	}
	s.log.InfoCtx(ctx, "invalidated cache", zap.String("key", KeyAllProperties))
	return nil
}

// WarmCache preloads the collection cache and returns the number of
// records cached. Safe to call repeatedly; each call runs the full
// fetch-all logic, including a possible miss-driven store query.
func (s *CacheService) WarmCache(ctx context.Context) (int, error) {
	s.log.InfoCtx(ctx, "warming properties cache")

	properties, err := s.GetAllProperties(ctx)
	if err != nil {
		return 0, err
	}

	s.log.InfoCtx(ctx, "cache warmed", zap.Int("count", len(properties)))
	return len(properties), nil
}

// Stats reports the current collection-cache state.
// The presence check is a real cache get and is therefore counted by the
// backend as a hit or miss event itself.
func (s *CacheService) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{
		CacheKey:     KeyAllProperties,
		CacheTimeout: int(s.cfg.AllPropertiesTTL.Seconds()),
	}

	data, err := s.store.Get(ctx, KeyAllProperties)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return stats, nil
		}
		return nil, err
	}

	var properties []Property
	if err := s.serializer.Deserialize(data, &properties); err != nil {
		return nil, cache.ErrDeserialize.Wrap(err)
	}

	stats.AllPropertiesCached = true
	stats.AllPropertiesCount = len(properties)
	return stats, nil
}

// CreateProperty inserts a record and invalidates the collection cache
func (s *CacheService) CreateProperty(ctx context.Context, p *Property) error {
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	return s.InvalidateProperties(ctx)
}

// UpdateProperty saves a record and invalidates both the collection cache
// and the record's own cache entry
func (s *CacheService) UpdateProperty(ctx context.Context, p *Property) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, PropertyKey(p.ID)); err != nil {
		return err
	}
	return s.InvalidateProperties(ctx)
}

// DeleteProperty removes a record and invalidates both the collection
// cache and the record's own cache entry
func (s *CacheService) DeleteProperty(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, PropertyKey(id)); err != nil {
		return err
	}
	return s.InvalidateProperties(ctx)
}
