// Command catalog runs the property catalog service: a cache-aside read
// path over a relational store with a Redis cache backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KOMKZ/property-catalog/cache"
	"github.com/KOMKZ/property-catalog/config"
	"github.com/KOMKZ/property-catalog/database"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/KOMKZ/property-catalog/middleware"
	"github.com/KOMKZ/property-catalog/property"
	"github.com/KOMKZ/property-catalog/redisx"
	"github.com/KOMKZ/property-catalog/server"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "catalog",
		Short:        "Property catalog service with a cache-aside Redis layer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(serveCmd(), warmCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime holds the wired components shared by the commands
type runtime struct {
	cfg    *config.AppConfig
	db     *gorm.DB
	client *redis.Client
	svc    *property.CacheService
}

// setup loads configuration and connects the store and the cache backend
func setup() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log := logger.GetLogger("catalog")

	db, err := database.Connect(cfg.Database, logger.GetLogger("database"))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&property.Property{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	client, err := redisx.Connect(cfg.Redis, logger.GetLogger("redis"))
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	store := cache.NewRedisStore("properties", client, "")
	repo := property.NewGormRepository(db)
	svc := property.NewCacheService(store, repo, cfg.Cache, log)

	return &runtime{cfg: cfg, db: db, client: client, svc: svc}, nil
}

// teardown closes external connections and flushes logs
func (rt *runtime) teardown() {
	if rt.client != nil {
		_ = rt.client.Close()
	}
	if rt.db != nil {
		_ = database.Close(rt.db)
	}
	_ = logger.Sync()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.teardown()

			log := logger.GetLogger("catalog")

			store := cache.NewRedisStore("views", rt.client, "")
			respCache := middleware.NewResponseCache(store, middleware.ResponseCacheConfig{
				TTL: rt.cfg.Cache.ViewTTL,
			}, log)
			metrics := cache.NewMetricsReader(rt.client, logger.GetLogger("cache"))

			handler := server.NewPropertyHandler(rt.svc, metrics, respCache, rt.cfg.Cache, log)
			engine := server.NewRouter(rt.cfg.Server, handler, respCache)

			srv := server.New(rt.cfg.Server, engine)
			if err := srv.Start(); err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			sig := <-quit

			log.InfoCtx(context.Background(), "signal received, shutting down",
				zap.String("signal", sig.String()))

			return srv.ShutdownWithTimeout()
		},
	}
}

func warmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Preload the properties cache and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.teardown()

			count, err := rt.svc.WarmCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("warm cache: %w", err)
			}

			fmt.Printf("cache warmed: %d properties\n", count)
			return nil
		},
	}
}
