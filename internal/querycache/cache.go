package querycache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	key       Key
	value     any
	expiresAt time.Time
}

// Cache holds the results of read queries until they expire or are
// invalidated by a mutation. Construct one per process and pass it to the
// services that read through it.
type Cache struct {
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu         sync.Mutex
	entries    map[string]*entry
	generation uint64

	group singleflight.Group

	hits   int64
	misses int64
}

type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

func New(ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Fetch returns the cached value for key or loads it with fn. Concurrent
// fetches of the same key share one call to fn. Errors are not cached.
//
// The shared load keeps the values of the first caller's ctx but not its
// cancellation: a caller that goes away returns ctx.Err() on its own while
// the others still receive the result.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := c.lookup(key); ok {
		if t, ok := v.(T); ok {
			atomic.AddInt64(&c.hits, 1)
			return t, nil
		}
	}
	atomic.AddInt64(&c.misses, 1)

	gen := c.currentGeneration()
	flightKey := fmt.Sprintf("%s#%d", key.String(), gen)

	ch := c.group.DoChan(flightKey, func() (any, error) {
		res, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, res, gen)
		return res, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}

	t, ok := res.Val.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: unexpected type %T for key %v", res.Val, key.Parts)
	}
	return t, nil
}

// Invalidate drops every entry, in any scope, whose parts start with prefix.
// Fetches that started before the call will not store their result.
func (c *Cache) Invalidate(prefix ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	removed := 0
	for k, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, k)
			removed++
		}
	}

	c.logger.Debug("cache invalidated",
		zap.Strings("prefix", prefix),
		zap.Int("removed", removed),
	)
	return removed
}

// Sweep removes expired entries.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()

	return Stats{
		Entries: n,
		Hits:    atomic.LoadInt64(&c.hits),
		Misses:  atomic.LoadInt64(&c.misses),
	}
}

func (c *Cache) lookup(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key.String())
		return nil, false
	}
	return e.value, true
}

func (c *Cache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Cache) store(key Key, value any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.entries[key.String()] = &entry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}
