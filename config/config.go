package config

import (
	"strings"

	"github.com/KOMKZ/property-catalog/database"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/KOMKZ/property-catalog/property"
	"github.com/KOMKZ/property-catalog/redisx"
	"github.com/KOMKZ/property-catalog/server"
	"github.com/spf13/viper"
)

// AppConfig aggregate application configuration
type AppConfig struct {
	Server   server.Config        `mapstructure:"server"`
	Logger   logger.Config        `mapstructure:"logger"`
	Database database.Config      `mapstructure:"database"`
	Redis    redisx.Config        `mapstructure:"redis"`
	Cache    property.CacheConfig `mapstructure:"cache"`
}

// Default returns the application configuration with all defaults applied
func Default() *AppConfig {
	return &AppConfig{
		Server:   server.DefaultConfig(),
		Logger:   logger.DefaultConfig(),
		Database: database.DefaultConfig(),
		Redis:    redisx.DefaultConfig(),
		Cache:    property.DefaultCacheConfig(),
	}
}

// Load reads the configuration file at path, overlays CATALOG_* environment
// variables, and validates the result. An empty path falls back to a
// config.yaml lookup in the working directory and ./config.
//
// Unmarshalling starts from the defaults, so keys absent from the file keep
// their default values, including booleans that default to true.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Logger.ApplyDefaults()
	cfg.Redis.ApplyDefaults()
	cfg.Cache.ApplyDefaults()

	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Redis.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
