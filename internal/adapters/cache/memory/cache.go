package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nuvora-hq/crm-cli/internal/ports"
)

// DefaultStaleAfter is the staleness horizon: a cached value older
// than this is still returned immediately but triggers a background
// refresh on read.
const DefaultStaleAfter = 5 * time.Minute

type entry struct {
	value     any
	fetchedAt time.Time
	// gen is the key's generation at fetch start. An entry whose gen
	// trails the key's current generation was invalidated while the
	// fetch was in flight and must not satisfy the next read.
	gen uint64
}

// Cache is an in-process key-addressed fetch cache. Concurrent reads
// of one key share a single in-flight fetch; invalidation bumps a
// per-key generation so it is never lost to a racing fetch.
type Cache struct {
	staleAfter time.Duration
	clock      ports.Clock

	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	group   singleflight.Group
}

var _ ports.QueryCache = (*Cache)(nil)

func New(staleAfter time.Duration, clock ports.Clock) *Cache {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Cache{
		staleAfter: staleAfter,
		clock:      clock,
		entries:    map[string]*entry{},
		gens:       map[string]uint64{},
	}
}

func (c *Cache) Read(ctx context.Context, key string, fetch ports.Fetcher) (any, error) {
	c.mu.Lock()
	if _, ok := c.gens[key]; !ok {
		c.gens[key] = 1
	}

	e := c.entries[key]
	if e != nil && e.gen == c.gens[key] {
		age := c.clock.Now().Sub(e.fetchedAt)
		value := e.value
		c.mu.Unlock()

		if age < c.staleAfter {
			return value, nil
		}

		// Stale-while-revalidate: hand the cached value back without
		// blocking and refresh off the caller's flow.
		go func(ctx context.Context) {
			_, _ = c.fetch(ctx, key, fetch)
		}(context.WithoutCancel(ctx))

		return value, nil
	}
	c.mu.Unlock()

	return c.fetch(ctx, key, fetch)
}

func (c *Cache) fetch(ctx context.Context, key string, fetch ports.Fetcher) (any, error) {
	value, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		gen := c.gens[key]
		c.mu.Unlock()

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &entry{value: value, fetchedAt: c.clock.Now(), gen: gen}
		c.mu.Unlock()

		return value, nil
	})

	return value, err
}

// Invalidate marks every entry under prefix as needing a fresh fetch.
// Matching follows the key scheme: the prefix itself or any key below
// a "/" separator.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.gens {
		if matchesPrefix(key, prefix) {
			c.gens[key]++
		}
	}
}

// Clear drops every entry unconditionally. In-flight fetches may still
// complete but their results land with a trailing generation and are
// never served.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]*entry{}
	for key := range c.gens {
		c.gens[key]++
	}
}

func matchesPrefix(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}
