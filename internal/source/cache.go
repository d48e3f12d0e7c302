package source

import (
	"context"
	"sync"
	"time"

	"memehub/pkg/models"
)

// cachedSource memoizes another source's Fetch for a TTL. Reddit gets
// a longer window than the merged catalog so the fan-out over all
// subreddit listings does not run on every catalog refresh. A stale
// result is served when the upstream fails.
type cachedSource struct {
	inner Source
	ttl   time.Duration

	mu        sync.Mutex
	records   []models.TemplateRecord
	fetchedAt time.Time
}

// Cached wraps src with a TTL memo. A non-positive ttl returns src
// unchanged.
func Cached(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &cachedSource{inner: src, ttl: ttl}
}

func (c *cachedSource) Name() string { return c.inner.Name() }

func (c *cachedSource) Fetch(ctx context.Context) ([]models.TemplateRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.records != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.records, nil
	}

	recs, err := c.inner.Fetch(ctx)
	if err != nil {
		if c.records != nil {
			return c.records, nil
		}
		return nil, err
	}
	c.records = recs
	c.fetchedAt = time.Now()
	return recs, nil
}
