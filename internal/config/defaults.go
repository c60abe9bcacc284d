package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultResponseTTL = 24 * time.Hour

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docfetch"
	}
	return filepath.Join(home, ".docfetch")
}

// CacheDir returns the content cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ResponseCacheDir returns the response cache directory path
func ResponseCacheDir() string {
	return filepath.Join(ConfigDir(), "responses")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Directory:         CacheDir(),
			ResponseCache:     true,
			ResponseDirectory: ResponseCacheDir(),
			ResponseTTL:       DefaultResponseTTL,
		},
		HTTP: HTTPConfig{
			Timeout:    DefaultTimeout,
			MaxRetries: DefaultMaxRetries,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
