package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the logging interface services depend on.
// Implemented by CtxZapLogger (production) and TestLogger (tests).
type Logger interface {
	DebugCtx(ctx context.Context, msg string, fields ...zap.Field)
	InfoCtx(ctx context.Context, msg string, fields ...zap.Field)
	WarnCtx(ctx context.Context, msg string, fields ...zap.Field)
	ErrorCtx(ctx context.Context, msg string, fields ...zap.Field)
}

// CtxZapLogger context-aware zap logger wrapper.
// The module is bound at creation time; callers only pass ctx.
// Obtain instances through GetLogger() or Manager.Logger().
type CtxZapLogger struct {
	base   *zap.Logger
	module string
	cfg    *Config
}

// DebugCtx logs at Debug level (automatically extracts TraceID)
func (l *CtxZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Debug(msg, l.enrichFields(ctx, fields)...)
}

// InfoCtx logs at Info level (automatically extracts TraceID)
func (l *CtxZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Info(msg, l.enrichFields(ctx, fields)...)
}

// WarnCtx logs at Warn level (automatically extracts TraceID)
func (l *CtxZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Warn(msg, l.enrichFields(ctx, fields)...)
}

// ErrorCtx logs at Error level (automatically extracts TraceID)
func (l *CtxZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Error(msg, l.enrichFields(ctx, fields)...)
}

// Debug convenience method without context
func (l *CtxZapLogger) Debug(msg string, fields ...zap.Field) {
	l.DebugCtx(context.Background(), msg, fields...)
}

// Info convenience method without context
func (l *CtxZapLogger) Info(msg string, fields ...zap.Field) {
	l.InfoCtx(context.Background(), msg, fields...)
}

// Warn convenience method without context
func (l *CtxZapLogger) Warn(msg string, fields ...zap.Field) {
	l.WarnCtx(context.Background(), msg, fields...)
}

// Error convenience method without context
func (l *CtxZapLogger) Error(msg string, fields ...zap.Field) {
	l.ErrorCtx(context.Background(), msg, fields...)
}

// With returns a new logger with preset fields
func (l *CtxZapLogger) With(fields ...zap.Field) *CtxZapLogger {
	return &CtxZapLogger{
		base:   l.base.With(fields...),
		module: l.module,
		cfg:    l.cfg,
	}
}

// GetZapLogger exposes the underlying *zap.Logger (for third-party integrations)
func (l *CtxZapLogger) GetZapLogger() *zap.Logger {
	return l.base
}

// enrichFields adds app_name and trace_id
// The module field is already bound in Manager.Logger()
func (l *CtxZapLogger) enrichFields(ctx context.Context, fields []zap.Field) []zap.Field {
	enriched := make([]zap.Field, 0, len(fields)+2)

	if l.cfg != nil && l.cfg.AppName != "" {
		enriched = append(enriched, zap.String("app_name", l.cfg.AppName))
	}

	if l.cfg != nil && l.cfg.EnableTraceID {
		if traceID := extractTraceIDFromContext(ctx, l.cfg); traceID != "" {
			fieldName := l.cfg.TraceIDFieldName
			if fieldName == "" {
				fieldName = "trace_id"
			}
			enriched = append(enriched, zap.String(fieldName, traceID))
		}
	}

	return append(enriched, fields...)
}

// extractTraceIDFromContext extracts the TraceID from the context.
// Priority: OpenTelemetry span context, then the configured context key.
func extractTraceIDFromContext(ctx context.Context, cfg *Config) string {
	if ctx == nil {
		return ""
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}

	key := "trace_id"
	if cfg != nil && cfg.TraceIDKey != "" {
		key = cfg.TraceIDKey
	}
	if val := ctx.Value(key); val != nil {
		if traceID, ok := val.(string); ok {
			return traceID
		}
	}

	return ""
}
