package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestLogger records log entries in memory so unit tests can assert on them
type TestLogger struct {
	mu   sync.RWMutex
	logs []LogEntry
}

// LogEntry a recorded log line
type LogEntry struct {
	Level   string
	Message string
	TraceID string
	Fields  map[string]interface{}
}

// NewTestLogger creates a test logger (records to memory)
// Usage:
//
//	log := logger.NewTestLogger()
//	svc := property.NewCacheService(store, repo, cfg, log)
//	svc.GetAllProperties(ctx)
//	assert.True(t, log.HasLog("INFO", "cache MISS"))
func NewTestLogger() *TestLogger {
	return &TestLogger{
		logs: make([]LogEntry, 0),
	}
}

func (t *TestLogger) record(ctx context.Context, level, msg string, fields []zap.Field) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logs = append(t.logs, LogEntry{
		Level:   level,
		Message: msg,
		TraceID: extractTraceIDFromContext(ctx, nil),
		Fields:  extractFieldsMap(fields),
	})
}

// DebugCtx records a Debug entry
func (t *TestLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "DEBUG", msg, fields)
}

// InfoCtx records an Info entry
func (t *TestLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "INFO", msg, fields)
}

// WarnCtx records a Warn entry
func (t *TestLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "WARN", msg, fields)
}

// ErrorCtx records an Error entry
func (t *TestLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record(ctx, "ERROR", msg, fields)
}

// HasLog checks for an entry with the given level and message
func (t *TestLogger) HasLog(level, message string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, log := range t.logs {
		if log.Level == level && log.Message == message {
			return true
		}
	}
	return false
}

// HasLogWithField checks for an entry with the given level, message and field value
func (t *TestLogger) HasLogWithField(level, message, fieldKey string, fieldValue interface{}) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, log := range t.logs {
		if log.Level == level && log.Message == message {
			if val, exists := log.Fields[fieldKey]; exists && val == fieldValue {
				return true
			}
		}
	}
	return false
}

// CountLogs counts entries of the given level
func (t *TestLogger) CountLogs(level string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, log := range t.logs {
		if log.Level == level {
			count++
		}
	}
	return count
}

// Logs returns a copy of all recorded entries
func (t *TestLogger) Logs() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	logs := make([]LogEntry, len(t.logs))
	copy(logs, t.logs)
	return logs
}

// Clear removes all recorded entries (for test isolation)
func (t *TestLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = t.logs[:0]
}

// extractFieldsMap converts zap fields to a plain map for assertions
func extractFieldsMap(fields []zap.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	result := make(map[string]interface{}, len(enc.Fields))
	for k, v := range enc.Fields {
		result[k] = v
	}
	return result
}
