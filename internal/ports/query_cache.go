package ports

import "context"

// Fetcher produces the value for a cache key on miss or refresh.
type Fetcher func(ctx context.Context) (any, error)

// QueryCache is a key-addressed cache of fetch results. Reads of the
// same key deduplicate onto one in-flight fetch; stale entries are
// returned immediately and refreshed in the background. Reads are the
// only refresh trigger.
type QueryCache interface {
	// Read returns the cached value for key, fetching when the entry
	// is missing or invalidated.
	Read(ctx context.Context, key string, fetch Fetcher) (any, error)
	// Invalidate marks every entry whose key starts with prefix as
	// needing a fresh fetch on next read.
	Invalidate(prefix string)
	// Clear drops every entry unconditionally.
	Clear()
}
