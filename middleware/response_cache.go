package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KOMKZ/property-catalog/cache"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ResponseCacheHeader reports HIT or MISS to the client
	ResponseCacheHeader = "X-Response-Cache"

	// responseCachePrefix key family of cached responses, distinct from the
	// data-cache keys so a purge never touches the underlying entries
	responseCachePrefix = "view:"
)

// ResponseCacheConfig response cache configuration
type ResponseCacheConfig struct {
	// TTL lifetime of a cached response (default 15m)
	TTL time.Duration

	// KeyPrefix key prefix of cached responses (default "view:")
	KeyPrefix string
}

// DefaultResponseCacheConfig default configuration
func DefaultResponseCacheConfig() ResponseCacheConfig {
	return ResponseCacheConfig{
		TTL:       15 * time.Minute,
		KeyPrefix: responseCachePrefix,
	}
}

// cachedResponse the stored wire form of a response
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ResponseCache caches entire successful GET responses in the cache
// backend for a fixed duration.
//
// This is a second caching tier on top of the data cache: a cached
// response can outlive an invalidation of the underlying data key, so the
// worst-case staleness of a wrapped endpoint is the sum of both TTLs.
// Write handlers call Purge to drop the tier along with the data cache.
type ResponseCache struct {
	store      cache.Store
	serializer cache.Serializer
	cfg        ResponseCacheConfig
	log        logger.Logger
}

// NewResponseCache creates the response cache
func NewResponseCache(store cache.Store, cfg ResponseCacheConfig, log logger.Logger) *ResponseCache {
	if cfg.TTL == 0 {
		cfg.TTL = 15 * time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = responseCachePrefix
	}
	return &ResponseCache{
		store:      store,
		serializer: cache.NewJSONSerializer(),
		cfg:        cfg,
		log:        log,
	}
}

// Handler returns the caching middleware.
// Only GET requests are cached, and only 200 responses are stored.
// Cache backend failures degrade to a pass-through with a warning: the
// response cache must never take the endpoint down.
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rc.cacheKey(c)

		data, err := rc.store.Get(ctx, key)
		if err == nil {
			var cached cachedResponse
			if err := rc.serializer.Deserialize(data, &cached); err == nil {
				c.Writer.Header().Set(ResponseCacheHeader, "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
			rc.log.WarnCtx(ctx, "corrupt response cache entry, serving fresh",
				zap.String("key", key))
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			rc.log.WarnCtx(ctx, "response cache unavailable, serving fresh",
				zap.String("key", key), zap.Error(err))
		}

		c.Writer.Header().Set(ResponseCacheHeader, "MISS")
		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}

		payload, err := rc.serializer.Serialize(cachedResponse{
			Status:      c.Writer.Status(),
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        writer.buf.Bytes(),
		})
		if err != nil {
			rc.log.WarnCtx(ctx, "failed to serialize response for cache", zap.Error(err))
			return
		}
		if err := rc.store.Set(ctx, key, payload, rc.cfg.TTL); err != nil {
			rc.log.WarnCtx(ctx, "failed to store response cache entry",
				zap.String("key", key), zap.Error(err))
		}
	}
}

// Purge drops all cached responses
func (rc *ResponseCache) Purge(ctx context.Context) error {
	return rc.store.DeleteByPrefix(ctx, rc.cfg.KeyPrefix)
}

// cacheKey builds the cache key from method, path and query
func (rc *ResponseCache) cacheKey(c *gin.Context) string {
	key := rc.cfg.KeyPrefix + c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		key += "?" + raw
	}
	return key
}

// bodyCaptureWriter duplicates the response body into a buffer while
// streaming it to the client
type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

// Write implements io.Writer
func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString implements io.StringWriter
func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
