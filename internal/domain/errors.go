package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss indicates a response-cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoVideoID indicates no video identifier could be extracted from a URL
	ErrNoVideoID = errors.New("no video ID in URL")

	// ErrNoTranscript indicates the video has no retrievable transcript
	ErrNoTranscript = errors.New("no transcript available")

	// ErrLocalPathMissing indicates a local URI does not exist on disk
	ErrLocalPathMissing = errors.New("local path does not exist")
)

// FetchError represents a transient failure while fetching a remote source.
// Callers absorb it into an empty result; it exists so "fetch failed" stays
// distinguishable from "legitimately empty".
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{URL: url, StatusCode: statusCode, Err: err}
}

// CloneError represents a failed git clone. Unlike other downloader failures
// it propagates to the caller: a half-cloned repository is an inconsistent
// cache state the caller must know about.
type CloneError struct {
	URL string
	Err error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone failed for %s: %v", e.URL, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// NewCloneError creates a new CloneError
func NewCloneError(url string, err error) *CloneError {
	return &CloneError{URL: url, Err: err}
}

// DecodeError represents a strict-decode failure on a declared-text format.
// Lossy formats never produce it.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed for %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case 429, 502, 503, 504:
			return true
		}
	}

	return false
}

// IsAbortive reports whether an error must abort the current fetch call.
// Only clone failures qualify; every other failure is absorbed as an empty
// result for its source.
func IsAbortive(err error) bool {
	var cloneErr *CloneError
	return errors.As(err, &cloneErr)
}
