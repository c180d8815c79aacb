// Package server assembles the HTTP transport: the gin engine, the
// property routes, and the lifecycle of the listening server.
package server

import (
	"fmt"
	"time"
)

// Config HTTP server configuration
type Config struct {
	// Addr listen address (default ":8080")
	Addr string `mapstructure:"addr"`

	// Mode gin mode: debug, release, test (default "release")
	Mode string `mapstructure:"mode"`

	// ReadTimeout request read timeout (default 10s)
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout response write timeout (default 10s)
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout graceful shutdown deadline (default 10s)
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Mode:            "release",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	switch c.Mode {
	case "":
		c.Mode = "release"
	case "debug", "release", "test":
	default:
		return fmt.Errorf("mode must be debug, release or test, got: %s", c.Mode)
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return nil
}
