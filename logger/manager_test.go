package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager(Config{})
	require.NoError(t, err)

	log := m.Logger("test")
	assert.NotNil(t, log)

	// Same module returns the cached instance
	assert.Same(t, log, m.Logger("test"))
	assert.NotSame(t, log, m.Logger("other"))
}

func TestConfig_ZapLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"bogus", "info"}, // fallback
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Level: tt.level}
			assert.Equal(t, tt.want, cfg.zapLevel().String())
		})
	}
}

func TestGetLogger_BeforeInit(t *testing.T) {
	// Must not panic even without Init
	log := GetLogger("uninitialized")
	assert.NotNil(t, log)
	log.InfoCtx(context.Background(), "works before Init")
}

func TestExtractTraceIDFromContext(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("from context key", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), "trace_id", "abc-123")
		assert.Equal(t, "abc-123", extractTraceIDFromContext(ctx, &cfg))
	})

	t.Run("custom key", func(t *testing.T) {
		custom := cfg
		custom.TraceIDKey = "request_id"
		ctx := context.WithValue(context.Background(), "request_id", "req-9")
		assert.Equal(t, "req-9", extractTraceIDFromContext(ctx, &custom))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, "", extractTraceIDFromContext(context.Background(), &cfg))
	})
}

func TestTestLogger(t *testing.T) {
	log := NewTestLogger()
	ctx := context.WithValue(context.Background(), "trace_id", "t-1")

	log.InfoCtx(ctx, "cache HIT", zap.String("key", "all_properties"))
	log.WarnCtx(ctx, "property not found", zap.Uint64("id", 7))

	assert.True(t, log.HasLog("INFO", "cache HIT"))
	assert.True(t, log.HasLogWithField("INFO", "cache HIT", "key", "all_properties"))
	assert.False(t, log.HasLog("ERROR", "cache HIT"))
	assert.Equal(t, 1, log.CountLogs("WARN"))

	entries := log.Logs()
	require.Len(t, entries, 2)
	assert.Equal(t, "t-1", entries[0].TraceID)

	log.Clear()
	assert.Empty(t, log.Logs())
}
