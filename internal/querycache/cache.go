// Package querycache caches query results keyed by resource signature.
//
// It deduplicates concurrent identical fetches, applies a staleness window
// before silently refetching, and invalidates dependent keys after
// mutations according to a static dependency table.
package querycache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/log"
)

// DefaultTTL is the staleness window applied when none is configured
const DefaultTTL = 5 * time.Minute

// entry is a cached query result
type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Cache is the query cache.
//
// At most one loader runs per key at any time: callers arriving while a
// fetch for the same key is in flight attach to it and receive the same
// result. A caller whose context ends stops waiting, but the shared flight
// keeps running for the other consumers and still populates the cache.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	group singleflight.Group

	ttl    time.Duration
	logger *log.Logger

	// now is replaceable in tests
	now func() time.Time
}

// New creates a cache with the given staleness window.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, logger *log.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch returns the cached value for key, or runs loader to produce it.
//
// A fresh cached value short-circuits without invoking loader. A failed
// load is retried exactly once when the failure is retryable, is never
// cached, and leaves any previous value in place.
func Fetch[T any](ctx context.Context, c *Cache, key string, loader func(context.Context) (T, error)) (T, error) {
	value, err := c.fetch(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return value.(T), nil
}

// Prefetch warms the cache for key, discarding the value.
func Prefetch[T any](ctx context.Context, c *Cache, key string, loader func(context.Context) (T, error)) error {
	_, err := Fetch(ctx, c, key, loader)
	return err
}

func (c *Cache) fetch(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// The flight is shared; it must not die with the caller that
		// happened to start it.
		value, err := c.load(context.WithoutCancel(ctx), key, loader)
		if err != nil {
			return nil, err
		}

		c.store(key, value)
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load runs the loader with the single-retry policy.
// No backoff, no jitter: the backing API is assumed reliable.
func (c *Cache) load(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	value, err := loader(ctx)
	if err == nil {
		return value, nil
	}

	if !api.IsRetryable(err) {
		return nil, err
	}

	c.logger.Debug("retrying failed load", "key", key)
	return loader(ctx)
}

// lookup returns the cached value when present, fresh, and not invalidated.
func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}

	return e.value, true
}

func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		value:     value,
		fetchedAt: c.now(),
	}
}

// Invalidate marks every entry matching one of the given keys stale.
// A key matches exactly or as a prefix, so "tasks" covers both the bare
// collection and every filtered variant under it.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for cached, e := range c.entries {
		for _, key := range keys {
			if cached == key || strings.HasPrefix(cached, key) {
				e.stale = true
				break
			}
		}
	}
}

// InvalidateAll marks every entry stale.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.stale = true
	}
}

// Peek returns the cached value for key even when stale.
// It never triggers a load; absent keys report ok=false.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Stats is a point-in-time summary of cache contents
type Stats struct {
	Entries int
	Stale   int
}

// Stats reports how many entries are cached and how many are marked stale.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Entries: len(c.entries)}
	for _, e := range c.entries {
		if e.stale {
			stats.Stale++
		}
	}
	return stats
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
