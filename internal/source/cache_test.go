package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub/pkg/models"
)

type countingSource struct {
	calls int
	recs  []models.TemplateRecord
	err   error
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Fetch(ctx context.Context) ([]models.TemplateRecord, error) {
	c.calls++
	return c.recs, c.err
}

func TestCachedServesWithinTTL(t *testing.T) {
	inner := &countingSource{recs: []models.TemplateRecord{{ID: "x", URL: "u"}}}
	src := Cached(inner, time.Minute)

	for i := 0; i < 3; i++ {
		recs, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedServesStaleOnUpstreamFailure(t *testing.T) {
	inner := &countingSource{recs: []models.TemplateRecord{{ID: "x", URL: "u"}}}
	cached := &cachedSource{inner: inner, ttl: time.Minute}

	_, err := cached.Fetch(context.Background())
	require.NoError(t, err)

	// expire the entry and break the upstream
	cached.fetchedAt = time.Now().Add(-time.Hour)
	inner.err = errors.New("upstream down")

	recs, err := cached.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedZeroTTLPassthrough(t *testing.T) {
	inner := &countingSource{}
	assert.Same(t, Source(inner), Cached(inner, 0))
}

func TestCuratedNeverFails(t *testing.T) {
	recs, err := NewCurated().Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEmpty(t, r.URL)
		assert.NotEmpty(t, r.Name)
		assert.Equal(t, models.SourceCustom, r.Source)
	}
}

func TestFallbackNotEmpty(t *testing.T) {
	recs := Fallback()
	assert.NotEmpty(t, recs)
	seen := make(map[string]struct{})
	for _, r := range recs {
		_, dup := seen[r.URL]
		assert.False(t, dup, "duplicate fallback url %s", r.URL)
		seen[r.URL] = struct{}{}
	}
}
