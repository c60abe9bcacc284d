// Package fetcher implements the generic HTTP downloader: a timeout-bounded
// client with browser headers, retry on transient statuses, and an optional
// badger-backed response cache.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quantmind-br/docfetch-go/internal/domain"
)

// Ensure Client implements domain.Getter
var _ domain.Getter = (*Client)(nil)

// Client is an HTTP client for fetching remote documents.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	retrier      *Retrier
	cache        domain.ResponseCache
	cacheEnabled bool
	cacheTTL     time.Duration
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout     time.Duration
	MaxRetries  int
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.ResponseCache
	UserAgent   string
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		EnableCache: true,
		CacheTTL:    24 * time.Hour,
	}
}

// NewClient creates a new HTTP client. A zero timeout gets the default; an
// unbounded request could block a whole batch.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	retrierOpts := DefaultRetrierOptions()
	retrierOpts.MaxRetries = opts.MaxRetries
	retrier := NewRetrier(retrierOpts)

	return &Client{
		httpClient:   &http.Client{Timeout: opts.Timeout},
		userAgent:    opts.UserAgent,
		retrier:      retrier,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache && opts.Cache != nil,
		cacheTTL:     opts.CacheTTL,
	}
}

// cachedResponse is the envelope stored in the response cache. The content
// type must survive the round trip: extension dispatch depends on it.
type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Get fetches content from a URL, consulting the response cache first.
func (c *Client) Get(ctx context.Context, url string) (*domain.Response, error) {
	if c.cacheEnabled {
		if cached, err := c.getFromCache(ctx, url); err == nil && cached != nil {
			return cached, nil
		}
	}

	var resp *domain.Response
	err := c.retrier.Retry(ctx, func() error {
		var err error
		resp, err = c.doRequest(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && resp != nil {
		_ = c.saveToCache(ctx, url, resp)
	}

	return resp, nil
}

// doRequest performs the actual HTTP request
func (c *Client) doRequest(ctx context.Context, targetURL string) (*domain.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range BrowserHeaders(c.userAgent) {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection, TLS, and timeout failures all land here; the caller
		// treats them as one transient failure mode.
		return nil, domain.NewFetchError(targetURL, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fetchErr := domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
		if ShouldRetryStatus(resp.StatusCode) {
			return nil, &domain.RetryableError{Err: fetchErr}
		}
		return nil, fetchErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		Headers:     resp.Header,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         targetURL,
	}, nil
}

// getFromCache retrieves a response from the response cache
func (c *Client) getFromCache(ctx context.Context, url string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var entry cachedResponse
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	return &domain.Response{
		StatusCode:  http.StatusOK,
		Body:        entry.Body,
		ContentType: entry.ContentType,
		URL:         url,
		FromCache:   true,
	}, nil
}

// saveToCache saves a response to the response cache
func (c *Client) saveToCache(ctx context.Context, url string, resp *domain.Response) error {
	data, err := json.Marshal(cachedResponse{
		ContentType: resp.ContentType,
		Body:        resp.Body,
	})
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, url, data, c.cacheTTL)
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
