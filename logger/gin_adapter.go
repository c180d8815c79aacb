package logger

import (
	"strings"
)

// GinLogWriter adapts Gin's text logs to the structured logger
// (implements io.Writer, assigned to gin.DefaultWriter)
type GinLogWriter struct {
	module string
}

// NewGinLogWriter creates a Gin log adapter
// module: log module name, to distinguish log origins (e.g. "gin-route", "gin-internal")
func NewGinLogWriter(module string) *GinLogWriter {
	return &GinLogWriter{module: module}
}

// Write implements io.Writer; classifies Gin output by its prefix
func (w *GinLogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return len(p), nil
	}

	switch {
	case strings.Contains(msg, "[GIN-debug]"):
		GetLogger(w.module).Debug(msg)
	case strings.Contains(msg, "[Recovery]") || strings.Contains(msg, "panic recovered"):
		GetLogger(w.module).Error(msg)
	default:
		GetLogger(w.module).Info(msg)
	}

	return len(p), nil
}
