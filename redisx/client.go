package redisx

import (
	"context"
	"fmt"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Connect creates the Redis client and verifies the connection.
// log: business logger (must not be nil)
func Connect(cfg Config, log *logger.CtxZapLogger) (*redis.Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	log.DebugCtx(ctx, "redis connection successful",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB))

	return client, nil
}

// HealthCheck pings the backend
func HealthCheck(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}
