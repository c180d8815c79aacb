package server

import (
	"github.com/KOMKZ/property-catalog/httpx"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/KOMKZ/property-catalog/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the standard middleware chain and
// the property routes. The response cache wraps only the collection
// endpoint; stats, warm and metrics must always observe live state.
func NewRouter(cfg Config, handler *PropertyHandler, respCache *middleware.ResponseCache) *gin.Engine {
	gin.DefaultWriter = logger.NewGinLogWriter("gin")
	gin.DefaultErrorWriter = logger.NewGinLogWriter("gin")
	gin.SetMode(cfg.Mode)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.TraceID(middleware.DefaultTraceConfig()))
	engine.Use(middleware.RequestLog())
	engine.Use(middleware.Recovery())

	engine.NoRoute(httpx.NoRouteHandler())
	engine.NoMethod(httpx.NoMethodHandler())

	properties := engine.Group("/properties")
	{
		if respCache != nil {
			properties.GET("", respCache.Handler(), handler.ListProperties)
		} else {
			properties.GET("", handler.ListProperties)
		}
		properties.GET("/cache/stats", handler.CacheStats)
		properties.POST("/cache/warm", handler.WarmCache)
		properties.GET("/cache/metrics", handler.BackendMetrics)
		properties.GET("/:id", handler.GetProperty())

		properties.POST("", handler.CreateProperty())
		properties.PUT("/:id", handler.UpdateProperty())
		properties.DELETE("/:id", handler.DeleteProperty())
	}

	return engine
}
