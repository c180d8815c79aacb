package property

import (
	"time"

	"github.com/KOMKZ/property-catalog/cache"
)

// CacheConfig TTL policy for the property cache keys
type CacheConfig struct {
	// AllPropertiesTTL TTL of the full-collection entry (default 1h)
	AllPropertiesTTL time.Duration `mapstructure:"all_properties_ttl"`

	// PropertyTTL TTL of single-record entries (default 30m)
	PropertyTTL time.Duration `mapstructure:"property_ttl"`

	// ViewTTL TTL of the response-level cache on the collection endpoint
	// (default 15m). Independent of AllPropertiesTTL; worst-case staleness
	// of the collection endpoint is bounded by the sum of both.
	ViewTTL time.Duration `mapstructure:"view_ttl"`
}

// DefaultCacheConfig returns the default TTL policy
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		AllPropertiesTTL: time.Hour,
		PropertyTTL:      30 * time.Minute,
		ViewTTL:          15 * time.Minute,
	}
}

// ApplyDefaults fills unset TTLs
func (c *CacheConfig) ApplyDefaults() {
	def := DefaultCacheConfig()
	if c.AllPropertiesTTL == 0 {
		c.AllPropertiesTTL = def.AllPropertiesTTL
	}
	if c.PropertyTTL == 0 {
		c.PropertyTTL = def.PropertyTTL
	}
	if c.ViewTTL == 0 {
		c.ViewTTL = def.ViewTTL
	}
}

// Validate validates the TTL policy
func (c *CacheConfig) Validate() error {
	if c.AllPropertiesTTL < 0 || c.PropertyTTL < 0 || c.ViewTTL < 0 {
		return cache.ErrConfigInvalid.WithMsg("cache TTLs must not be negative")
	}
	return nil
}
