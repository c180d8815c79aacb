// Package logger provides a context-aware zap logger with module scoping,
// trace-id enrichment and file rotation.
package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager builds and caches module-scoped loggers
type Manager struct {
	cfg     Config
	base    *zap.Logger
	loggers map[string]*CtxZapLogger
	mu      sync.RWMutex
}

var (
	stdMu sync.RWMutex
	std   *Manager
)

// NewManager creates a logger manager from config
func NewManager(cfg Config) (*Manager, error) {
	cfg.ApplyDefaults()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "ts"

	var encoder zapcore.Encoder
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	level := cfg.zapLevel()
	cores := make([]zapcore.Core, 0, 2)

	if cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}

	if cfg.EnableFile {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "catalog.log"),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, sink, level))
	}

	if len(cores) == 0 {
		cores = append(cores, zapcore.NewNopCore())
	}

	opts := []zap.Option{}
	if cfg.EnableCaller {
		// skip the CtxZapLogger wrapper frame
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	base := zap.New(zapcore.NewTee(cores...), opts...)

	return &Manager{
		cfg:     cfg,
		base:    base,
		loggers: make(map[string]*CtxZapLogger),
	}, nil
}

// Logger returns a module-scoped logger (cached per module)
func (m *Manager) Logger(module string) *CtxZapLogger {
	m.mu.RLock()
	if l, ok := m.loggers[module]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[module]; ok {
		return l
	}
	l := &CtxZapLogger{
		base:   m.base.With(zap.String("module", module)),
		module: module,
		cfg:    &m.cfg,
	}
	m.loggers[module] = l
	return l
}

// Sync flushes buffered log entries
func (m *Manager) Sync() error {
	return m.base.Sync()
}

// Init installs the global manager used by GetLogger and the package-level helpers
func Init(cfg Config) error {
	m, err := NewManager(cfg)
	if err != nil {
		return err
	}
	stdMu.Lock()
	std = m
	stdMu.Unlock()
	return nil
}

// GetLogger returns a module-scoped logger from the global manager.
// Before Init it falls back to a console-only manager with defaults,
// so library code can always log.
func GetLogger(module string) *CtxZapLogger {
	stdMu.RLock()
	m := std
	stdMu.RUnlock()

	if m == nil {
		stdMu.Lock()
		if std == nil {
			std, _ = NewManager(DefaultConfig())
		}
		m = std
		stdMu.Unlock()
	}
	return m.Logger(module)
}

// Sync flushes the global manager
func Sync() error {
	stdMu.RLock()
	defer stdMu.RUnlock()
	if std == nil {
		return nil
	}
	return std.Sync()
}

// Package-level convenience helpers (used by adapters and middleware)

// DebugCtx logs at Debug level through the named module logger
func DebugCtx(ctx context.Context, module, msg string, fields ...zap.Field) {
	GetLogger(module).DebugCtx(ctx, msg, fields...)
}

// InfoCtx logs at Info level through the named module logger
func InfoCtx(ctx context.Context, module, msg string, fields ...zap.Field) {
	GetLogger(module).InfoCtx(ctx, msg, fields...)
}

// WarnCtx logs at Warn level through the named module logger
func WarnCtx(ctx context.Context, module, msg string, fields ...zap.Field) {
	GetLogger(module).WarnCtx(ctx, msg, fields...)
}

// ErrorCtx logs at Error level through the named module logger
func ErrorCtx(ctx context.Context, module, msg string, fields ...zap.Field) {
	GetLogger(module).ErrorCtx(ctx, msg, fields...)
}
