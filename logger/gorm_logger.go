package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// sqlModule module name for all database logs
const sqlModule = "sql"

// GormLogger custom GORM logger (implements gorm logger.Interface)
type GormLogger struct {
	slowThreshold time.Duration
	logLevel      gormlogger.LogLevel
}

// GormLoggerConfig GORM logger configuration
type GormLoggerConfig struct {
	SlowThreshold time.Duration // Slow query threshold, default 200ms
	LogLevel      gormlogger.LogLevel
}

// DefaultGormLoggerConfig default configuration
func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormlogger.Info,
	}
}

// NewGormLogger creates the custom GORM logger
func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	if cfg.SlowThreshold == 0 {
		cfg.SlowThreshold = 200 * time.Millisecond
	}
	return &GormLogger{
		slowThreshold: cfg.SlowThreshold,
		logLevel:      cfg.LogLevel,
	}
}

// LogMode sets the log level (implements gorm logger.Interface)
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// Info logs at Info level (implements gorm logger.Interface)
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		DebugCtx(ctx, sqlModule, fmt.Sprintf(msg, data...))
	}
}

// Warn logs at Warn level (implements gorm logger.Interface)
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		WarnCtx(ctx, sqlModule, fmt.Sprintf(msg, data...))
	}
}

// Error logs at Error level (implements gorm logger.Interface)
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		ErrorCtx(ctx, sqlModule, fmt.Sprintf(msg, data...))
	}
}

// Trace records SQL execution (implements gorm logger.Interface)
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
		// RecordNotFound is normal business flow, not an execution error
		if !errors.Is(err, gormlogger.ErrRecordNotFound) {
			fields = append(fields, zap.Error(err))
			ErrorCtx(ctx, sqlModule, "SQL execution error", fields...)
		} else {
			DebugCtx(ctx, sqlModule, "SQL executed", fields...)
		}

	case elapsed > l.slowThreshold && l.slowThreshold != 0 && l.logLevel >= gormlogger.Warn:
		fields = append(fields, zap.Duration("threshold", l.slowThreshold))
		WarnCtx(ctx, sqlModule, "slow query detected", fields...)

	case l.logLevel >= gormlogger.Info:
		DebugCtx(ctx, sqlModule, "SQL executed", fields...)
	}
}
