package config

import (
	"fmt"
	"time"
)

// Config represents the application configuration
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CacheConfig contains content-cache and response-cache settings
type CacheConfig struct {
	Directory         string        `mapstructure:"directory" yaml:"directory"`
	ResponseCache     bool          `mapstructure:"response_cache" yaml:"response_cache"`
	ResponseDirectory string        `mapstructure:"response_directory" yaml:"response_directory"`
	ResponseTTL       time.Duration `mapstructure:"response_ttl" yaml:"response_ttl"`
}

// HTTPConfig contains HTTP client settings
type HTTPConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for invalid
// values.
func (c *Config) Validate() error {
	if c.Cache.Directory == "" {
		c.Cache.Directory = CacheDir()
	}
	if c.HTTP.Timeout < time.Second {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must not be negative")
	}
	if c.HTTP.MaxRetries == 0 {
		c.HTTP.MaxRetries = DefaultMaxRetries
	}
	if c.Cache.ResponseTTL < time.Minute {
		c.Cache.ResponseTTL = DefaultResponseTTL
	}
	return nil
}
