package domain

import (
	"context"
	"time"
)

// Downloader materializes a remote source into a cache directory. It is
// responsible for creating dir and writing one or more files into it; on
// failure it must leave no partially written directory behind, so a later
// call can retry.
type Downloader interface {
	// Download fetches url and writes its file(s) under dir. title is the
	// caller-supplied display title and may be empty.
	Download(ctx context.Context, title, url, dir string) error
}

// Getter fetches a URL and returns the response. Implemented by the HTTP
// client; downloaders accept the interface so tests can substitute one.
type Getter interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// ResponseCache caches raw HTTP responses with a TTL. It sits below the
// on-disk content store: the directory layout stays the only observable
// cache signal, this layer only short-circuits repeated network GETs.
type ResponseCache interface {
	// Get retrieves a value, returning ErrCacheMiss when absent
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists
	Has(ctx context.Context, key string) bool
	// Delete removes a key
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Normalizer converts raw file bytes into unicode text based on file format.
type Normalizer interface {
	Normalize(path string, data []byte) (string, error)
}

// TranscriptClient retrieves video transcripts and titles by video identifier.
type TranscriptClient interface {
	// Transcript returns the full transcript text, timed lines joined with
	// single spaces in order.
	Transcript(ctx context.Context, videoID string) (string, error)
	// Title resolves a human-readable title for the video, or "" when the
	// page metadata has none.
	Title(ctx context.Context, videoID string) (string, error)
}
