package platforms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cptracker/internal/models"
)

// DefaultCacheTTL matches the upstream platforms' informal rate limits.
const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	data      models.PlatformData
	fetchedAt time.Time
}

// FetchCache memoizes adapter responses per platform+handle for a fixed TTL.
// Failed fetches are never cached, so every call after a failure retries the
// upstream. Concurrent misses for the same key may both fetch; persistence
// is deduplicated downstream, so the race is accepted.
type FetchCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewFetchCache(ttl time.Duration) *FetchCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &FetchCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(platform models.Platform, handle string) string {
	return fmt.Sprintf("%s:%s", platform, handle)
}

// GetOrFetch returns the cached payload when it is still fresh, otherwise
// invokes fetch and stores the result under a new timestamp.
func (c *FetchCache) GetOrFetch(ctx context.Context, platform models.Platform, handle string,
	fetch func(ctx context.Context) (models.PlatformData, error)) (models.PlatformData, error) {

	key := cacheKey(platform, handle)

	c.mu.Lock()
	entry, ok := c.entries[key]
	fresh := ok && c.now().Sub(entry.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		return entry.data, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		return models.PlatformData{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, fetchedAt: c.now()}
	c.mu.Unlock()

	return data, nil
}
