package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

// ErrMiss is returned by Store implementations when a key is absent.
var ErrMiss = errors.New("cache: miss")

// Store is the raw key/value contract (GET / SETEX / DEL). The redis client
// is the production implementation; tests plug in an in-memory one.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetEX(ctx context.Context, key string, ttl time.Duration, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Cache is a read-through cache over JSON snapshots. It is never a source of
// truth: every failure is logged and reported as a miss so callers fall back
// to the database.
type Cache struct {
	store Store
	ttl   time.Duration
}

func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Get unmarshals the cached snapshot for key into dest and reports whether it
// was a hit. An empty key is a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if key == "" {
		return false
	}

	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			log.Printf("cache get %q: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("cache decode %q: %v", key, err)
		return false
	}

	return true
}

// Set stores value under key with the configured TTL. Failures are logged and
// swallowed.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache encode %q: %v", key, err)
		return
	}

	if err := c.store.SetEX(ctx, key, c.ttl, string(raw)); err != nil {
		log.Printf("cache set %q: %v", key, err)
	}
}

// Invalidate deletes the given keys. Writes must not fail on a dead cache, so
// errors are logged and swallowed; TTL expiry is the backstop.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		log.Printf("cache invalidate %v: %v", keys, err)
	}
}
