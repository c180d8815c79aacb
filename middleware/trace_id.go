// Package middleware provides the gin middlewares of the HTTP surface:
// trace-id propagation, panic recovery, request logging, and the
// response-level cache.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TraceIDKeyDefault default key of the TraceID in the context
	TraceIDKeyDefault = "trace_id"

	// TraceIDHeaderDefault default HTTP header carrying the TraceID
	TraceIDHeaderDefault = "X-Trace-ID"
)

// TraceConfig TraceID middleware configuration
type TraceConfig struct {
	// TraceIDKey key stored in the context (default "trace_id")
	TraceIDKey string

	// TraceIDHeader key in the HTTP header (default "X-Trace-ID")
	TraceIDHeader string

	// EnableResponseHeader whether to write the TraceID into the response header (default true)
	EnableResponseHeader bool

	// Generator custom TraceID generator (default UUID)
	Generator func() string
}

// DefaultTraceConfig default configuration
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		TraceIDKey:           TraceIDKeyDefault,
		TraceIDHeader:        TraceIDHeaderDefault,
		EnableResponseHeader: true,
		Generator:            func() string { return uuid.New().String() },
	}
}

// TraceID extracts or generates a trace id per request and injects it into
// both gin.Context and the request context. When an OpenTelemetry span is
// active its trace id takes priority.
//
// Usage:
//
//	engine.Use(middleware.TraceID(middleware.DefaultTraceConfig()))
func TraceID(cfg TraceConfig) gin.HandlerFunc {
	if cfg.TraceIDKey == "" {
		cfg.TraceIDKey = TraceIDKeyDefault
	}
	if cfg.TraceIDHeader == "" {
		cfg.TraceIDHeader = TraceIDHeaderDefault
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())

		var traceID string
		if span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		} else {
			traceID = c.GetHeader(cfg.TraceIDHeader)
			if traceID == "" {
				traceID = cfg.Generator()
			}
			ctx := context.WithValue(c.Request.Context(), cfg.TraceIDKey, traceID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Set(cfg.TraceIDKey, traceID)

		if cfg.EnableResponseHeader {
			c.Writer.Header().Set(cfg.TraceIDHeader, traceID)
		}

		c.Next()
	}
}

// GetTraceID retrieves the TraceID from gin.Context (default key)
func GetTraceID(c *gin.Context) string {
	traceID, exists := c.Get(TraceIDKeyDefault)
	if !exists {
		return ""
	}
	if id, ok := traceID.(string); ok {
		return id
	}
	return ""
}
