package logger

import (
	"go.uber.org/zap/zapcore"
)

// Config logger configuration (shared by all modules)
type Config struct {
	Level    string `mapstructure:"level"`
	AppName  string `mapstructure:"app_name"` // Application name (injected into every log line)
	Encoding string `mapstructure:"encoding"` // json or console

	EnableConsole bool   `mapstructure:"enable_console"`
	EnableFile    bool   `mapstructure:"enable_file"`
	LogDir        string `mapstructure:"log_dir"`

	// File rotation configuration
	MaxSize    int  `mapstructure:"max_size"` // Maximum size of a single file (MB)
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"` // Days to retain
	Compress   bool `mapstructure:"compress"`

	EnableCaller bool `mapstructure:"enable_caller"`

	// Trace ID configuration
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`        // key in context (default "trace_id")
	TraceIDFieldName string `mapstructure:"trace_id_field_name"` // log field name (default "trace_id")
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:            "info",
		Encoding:         "json",
		EnableConsole:    true,
		EnableFile:       false,
		LogDir:           "logs",
		MaxSize:          100,
		MaxBackups:       3,
		MaxAge:           28,
		Compress:         true,
		EnableCaller:     true,
		EnableTraceID:    true,
		TraceIDKey:       "trace_id",
		TraceIDFieldName: "trace_id",
	}
}

// ApplyDefaults fills unset fields
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Encoding == "" {
		c.Encoding = "json"
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	if c.MaxSize == 0 {
		c.MaxSize = 100
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 3
	}
	if c.MaxAge == 0 {
		c.MaxAge = 28
	}
	if c.TraceIDKey == "" {
		c.TraceIDKey = "trace_id"
	}
	if c.TraceIDFieldName == "" {
		c.TraceIDFieldName = "trace_id"
	}
}

// zapLevel parses the configured level, falling back to Info
func (c *Config) zapLevel() zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
