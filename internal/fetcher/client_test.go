package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantmind-br/docfetch-go/internal/cache"
	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientOptions() ClientOptions {
	opts := DefaultClientOptions()
	opts.EnableCache = false
	opts.MaxRetries = 2
	return opts
}

// TestClient_Get tests a successful fetch
func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer srv.Close()

	client := NewClient(newTestClientOptions())
	defer client.Close()

	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	assert.Contains(t, string(resp.Body), "hi")
	assert.False(t, resp.FromCache)
}

// TestClient_Get_NotFound tests the typed error on a 404
func TestClient_Get_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(newTestClientOptions())
	defer client.Close()

	_, err := client.Get(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, srv.URL, fetchErr.URL)
	assert.False(t, domain.IsAbortive(err))
}

// TestClient_Get_RetriesTransientStatus tests retry on 503
func TestClient_Get_RetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	opts := newTestClientOptions()
	opts.MaxRetries = 3
	client := NewClient(opts)
	defer client.Close()

	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(resp.Body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

// TestClient_Get_NoRetryOnClientError tests that a 404 is not retried
func TestClient_Get_NoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(newTestClientOptions())
	defer client.Close()

	_, err := client.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// TestClient_Get_ConnectionError tests transport failures
func TestClient_Get_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(newTestClientOptions())
	defer client.Close()

	_, err := client.Get(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 0, fetchErr.StatusCode)
}

// TestClient_ResponseCache tests the cache round trip
func TestClient_ResponseCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	respCache, err := cache.NewBadgerCache(cache.Options{InMemory: true})
	require.NoError(t, err)
	defer respCache.Close()

	opts := DefaultClientOptions()
	opts.EnableCache = true
	opts.Cache = respCache
	opts.CacheTTL = time.Hour
	client := NewClient(opts)
	defer client.Close()

	first, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Body, second.Body)
	// Content type survives the cache round trip
	assert.Equal(t, "application/json", second.ContentType)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// TestBrowserHeaders tests default header construction
func TestBrowserHeaders(t *testing.T) {
	headers := BrowserHeaders("")
	assert.Equal(t, DefaultUserAgent, headers["User-Agent"])
	assert.NotEmpty(t, headers["Accept"])

	custom := BrowserHeaders("my-agent/1.0")
	assert.Equal(t, "my-agent/1.0", custom["User-Agent"])
}
