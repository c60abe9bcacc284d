package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestNewLogger tests logger creation with options
func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		opts     LoggerOptions
		expected zerolog.Level
	}{
		{
			name:     "debug level",
			opts:     LoggerOptions{Level: "debug"},
			expected: zerolog.DebugLevel,
		},
		{
			name:     "warn level",
			opts:     LoggerOptions{Level: "warn"},
			expected: zerolog.WarnLevel,
		},
		{
			name:     "unknown level defaults to info",
			opts:     LoggerOptions{Level: "bogus"},
			expected: zerolog.InfoLevel,
		},
		{
			name:     "verbose overrides level",
			opts:     LoggerOptions{Level: "error", Verbose: true},
			expected: zerolog.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.opts)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

// TestLogger_WithComponent tests component field tagging
func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithComponent("cache").Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"cache"`)
	assert.Contains(t, buf.String(), `"hello"`)
}

// TestLogger_WithURL tests URL field tagging
func TestLogger_WithURL(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithURL("https://example.com/x").Info().Msg("fetching")

	assert.Contains(t, buf.String(), `"url":"https://example.com/x"`)
}

// TestNopLogger tests that the nop logger discards output
func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	// Must not panic and must be disabled
	logger.Info().Msg("dropped")
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
