package server

import (
	"time"

	"github.com/KOMKZ/property-catalog/cache"
	"github.com/KOMKZ/property-catalog/httpx"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/KOMKZ/property-catalog/middleware"
	"github.com/KOMKZ/property-catalog/property"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PropertyHandler HTTP handlers of the property catalog
type PropertyHandler struct {
	svc       *property.CacheService
	metrics   *cache.MetricsReader
	respCache *middleware.ResponseCache
	cacheCfg  property.CacheConfig
	log       logger.Logger
}

// NewPropertyHandler creates the handler set
func NewPropertyHandler(svc *property.CacheService, metrics *cache.MetricsReader,
	respCache *middleware.ResponseCache, cacheCfg property.CacheConfig, log logger.Logger) *PropertyHandler {
	cacheCfg.ApplyDefaults()
	return &PropertyHandler{
		svc:       svc,
		metrics:   metrics,
		respCache: respCache,
		cacheCfg:  cacheCfg,
		log:       log,
	}
}

// cacheInfo declares the caching policy of the list endpoint in the payload
type cacheInfo struct {
	CacheKey     string `json:"cache_key"`
	CacheTimeout int    `json:"cache_timeout"` // seconds
}

type listPropertiesResponse struct {
	Properties []property.Property `json:"properties"`
	Count      int                 `json:"count"`
	Cached     bool                `json:"cached"`
	CacheInfo  cacheInfo           `json:"cache_info"`
}

// ListProperties GET /properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	properties, err := h.svc.GetAllProperties(c.Request.Context())
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, listPropertiesResponse{
		Properties: properties,
		Count:      len(properties),
		Cached:     true,
		CacheInfo: cacheInfo{
			CacheKey:     property.KeyAllProperties,
			CacheTimeout: int(h.cacheCfg.AllPropertiesTTL.Seconds()),
		},
	})
}

type getPropertyRequest struct {
	ID uint64 `uri:"id"`
}

// GetProperty GET /properties/:id
func (h *PropertyHandler) GetProperty() gin.HandlerFunc {
	return httpx.Wrap(func(c *gin.Context, req *getPropertyRequest) (*property.Property, error) {
		if req.ID == 0 {
			return nil, property.ErrInvalidPropertyID
		}
		return h.svc.GetPropertyByID(c.Request.Context(), req.ID)
	})
}

type cacheStatsResponse struct {
	property.CacheStats
	Timestamp string `json:"timestamp"`
}

// CacheStats GET /properties/cache/stats
func (h *PropertyHandler) CacheStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, cacheStatsResponse{
		CacheStats: *stats,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

type warmCacheResponse struct {
	Message          string `json:"message"`
	PropertiesCached int    `json:"properties_cached"`
	Timestamp        string `json:"timestamp"`
}

// WarmCache POST /properties/cache/warm
func (h *PropertyHandler) WarmCache(c *gin.Context) {
	count, err := h.svc.WarmCache(c.Request.Context())
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, warmCacheResponse{
		Message:          "cache warmed successfully",
		PropertiesCached: count,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})
}

// BackendMetrics GET /properties/cache/metrics
func (h *PropertyHandler) BackendMetrics(c *gin.Context) {
	httpx.OkJson(c, h.metrics.Snapshot(c.Request.Context()))
}

type createPropertyRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
}

// CreateProperty POST /properties
func (h *PropertyHandler) CreateProperty() gin.HandlerFunc {
	return httpx.Wrap(func(c *gin.Context, req *createPropertyRequest) (*property.Property, error) {
		p := &property.Property{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Location:    req.Location,
		}
		if err := h.svc.CreateProperty(c.Request.Context(), p); err != nil {
			return nil, err
		}
		h.purgeResponseCache(c)
		return p, nil
	})
}

type updatePropertyRequest struct {
	ID          uint64          `uri:"id" json:"-"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
}

// UpdateProperty PUT /properties/:id
func (h *PropertyHandler) UpdateProperty() gin.HandlerFunc {
	return httpx.Wrap(func(c *gin.Context, req *updatePropertyRequest) (*property.Property, error) {
		if req.ID == 0 {
			return nil, property.ErrInvalidPropertyID
		}
		ctx := c.Request.Context()

		p, err := h.svc.GetPropertyByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}

		p.Title = req.Title
		p.Description = req.Description
		p.Price = req.Price
		p.Location = req.Location

		if err := h.svc.UpdateProperty(ctx, p); err != nil {
			return nil, err
		}
		h.purgeResponseCache(c)
		return p, nil
	})
}

type deletePropertyRequest struct {
	ID uint64 `uri:"id"`
}

type deletePropertyResponse struct {
	Message string `json:"message"`
}

// DeleteProperty DELETE /properties/:id
func (h *PropertyHandler) DeleteProperty() gin.HandlerFunc {
	return httpx.Wrap(func(c *gin.Context, req *deletePropertyRequest) (*deletePropertyResponse, error) {
		if req.ID == 0 {
			return nil, property.ErrInvalidPropertyID
		}
		if err := h.svc.DeleteProperty(c.Request.Context(), req.ID); err != nil {
			return nil, err
		}
		h.purgeResponseCache(c)
		return &deletePropertyResponse{Message: "property deleted"}, nil
	})
}

// purgeResponseCache drops cached list responses after a write.
// A purge failure only extends staleness up to the response TTL, so it is
// logged and swallowed rather than failing the write.
func (h *PropertyHandler) purgeResponseCache(c *gin.Context) {
	if h.respCache == nil {
		return
	}
	if err := h.respCache.Purge(c.Request.Context()); err != nil {
		h.log.WarnCtx(c.Request.Context(), "failed to purge response cache", zap.Error(err))
	}
}
