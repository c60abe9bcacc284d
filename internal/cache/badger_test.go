package cache

import (
	"context"
	"testing"
	"time"

	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// TestBadgerCache_SetGet tests the basic round trip
func TestBadgerCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	url := "https://example.com/page"

	require.NoError(t, c.Set(ctx, url, []byte("body"), time.Hour))

	got, err := c.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), got)
	assert.True(t, c.Has(ctx, url))
}

// TestBadgerCache_Miss tests the cache-miss sentinel
func TestBadgerCache_Miss(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "https://example.com/absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.False(t, c.Has(ctx, "https://example.com/absent"))
}

// TestBadgerCache_Delete tests key removal
func TestBadgerCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	url := "https://example.com/page"

	require.NoError(t, c.Set(ctx, url, []byte("body"), 0))
	require.NoError(t, c.Delete(ctx, url))

	_, err := c.Get(ctx, url)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

// TestBadgerCache_KeyNormalization tests that equivalent URLs share an entry
func TestBadgerCache_KeyNormalization(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "https://EXAMPLE.com/page/", []byte("body"), time.Hour))

	got, err := c.Get(ctx, "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), got)
}
