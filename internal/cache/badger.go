package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quantmind-br/docfetch-go/internal/domain"
)

// Ensure BadgerCache implements domain.ResponseCache
var _ domain.ResponseCache = (*BadgerCache)(nil)

// BadgerCache is a response cache backed by BadgerDB.
type BadgerCache struct {
	db *badger.DB
}

// Options contains response-cache configuration options
type Options struct {
	Directory string
	InMemory  bool
}

// NewBadgerCache creates a new BadgerDB response cache.
func NewBadgerCache(opts Options) (*BadgerCache, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			opts.Directory = filepath.Join(homeDir, ".docfetch", "responses")
		}
		if err := os.MkdirAll(opts.Directory, 0755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	badgerOpts = badgerOpts.WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &BadgerCache{db: db}, nil
}

// Get retrieves a value, returning domain.ErrCacheMiss when absent.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, error) {
	cacheKey := ResponseKey(key)

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return domain.ErrCacheMiss
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores a value with TTL.
func (c *BadgerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cacheKey := ResponseKey(key)

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(cacheKey), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Has checks if a key exists.
func (c *BadgerCache) Has(ctx context.Context, key string) bool {
	cacheKey := ResponseKey(key)

	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(cacheKey))
		return err
	})
	return err == nil
}

// Delete removes a key.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	cacheKey := ResponseKey(key)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(cacheKey))
	})
}

// Close releases cache resources.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
