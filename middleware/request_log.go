package middleware

import (
	"time"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogConfig HTTP request log configuration
type RequestLogConfig struct {
	// SkipPaths paths to skip (e.g. health checks)
	SkipPaths []string
}

// DefaultRequestLogConfig default request log configuration
func DefaultRequestLogConfig() RequestLogConfig {
	return RequestLogConfig{
		SkipPaths: []string{},
	}
}

// RequestLog structured HTTP request logging middleware.
// Replaces gin.Logger(): status-classed levels (500+ error, 400+ warn,
// otherwise info) with trace-id association through the request context.
func RequestLog() gin.HandlerFunc {
	return RequestLogWithConfig(DefaultRequestLogConfig())
}

// RequestLogWithConfig creates the request log middleware with custom configuration
func RequestLogWithConfig(cfg RequestLogConfig) gin.HandlerFunc {
	skipPathsMap := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPathsMap[path] = true
	}

	return func(c *gin.Context) {
		if skipPathsMap[c.Request.URL.Path] {
			c.Next()
			return
		}

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("body_size", c.Writer.Size()),
		}

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			fields = append(fields, zap.String("error", errorMessage))
		}

		ctx := c.Request.Context()
		switch {
		case statusCode >= 500:
			logger.ErrorCtx(ctx, "http", "HTTP request", fields...)
		case statusCode >= 400:
			logger.WarnCtx(ctx, "http", "HTTP request", fields...)
		default:
			logger.InfoCtx(ctx, "http", "HTTP request", fields...)
		}
	}
}
