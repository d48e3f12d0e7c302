package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub/pkg/database"
	"memehub/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := database.MustOpen(database.Config{Path: ":memory:"})
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewStore(db)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := []models.TemplateRecord{
		{
			ID: "a", Name: "Alpha", URL: "https://example.com/a.jpg",
			Category: "reaction", Tags: []string{"alpha", "template"},
			Popularity: 50, Source: models.SourceImgflip, Media: models.MediaImage,
		},
		{
			ID: "b", Name: "Beta", URL: "https://example.com/b.mp4",
			Category: "template", Tags: []string{"beta"},
			Popularity: 90, Source: models.SourceReddit, Media: models.MediaVideo,
			Subreddit: "memes", Upvotes: 321, Author: "tester",
			Permalink: "https://reddit.com/r/memes/x", Thumbnail: "https://thumb/x.jpg",
		},
	}
	require.NoError(t, store.SaveSnapshot(ctx, in))

	out, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// popularity descending
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, models.SourceReddit, out[0].Source)
	assert.Equal(t, models.MediaVideo, out[0].Media)
	assert.Equal(t, []string{"beta"}, out[0].Tags)
	assert.Equal(t, 321, out[0].Upvotes)
	assert.Equal(t, "a", out[1].ID)
}

func TestSaveSnapshotReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, []models.TemplateRecord{
		{ID: "old", Name: "Old", URL: "https://example.com/old.jpg"},
	}))
	require.NoError(t, store.SaveSnapshot(ctx, []models.TemplateRecord{
		{ID: "new", Name: "New", URL: "https://example.com/new.jpg"},
	}))

	out, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].ID)
}

func TestProbeCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok := store.ProbeResult(ctx, "https://example.com/x.jpg", time.Hour)
	assert.False(t, ok, "unknown url has no cached probe")

	require.NoError(t, store.SetProbeResult(ctx, "https://example.com/x.jpg", true))

	reachable, ok := store.ProbeResult(ctx, "https://example.com/x.jpg", time.Hour)
	assert.True(t, ok)
	assert.True(t, reachable)

	// an expired entry reads as missing
	_, ok = store.ProbeResult(ctx, "https://example.com/x.jpg", -time.Second)
	assert.False(t, ok)

	require.NoError(t, store.SetProbeResult(ctx, "https://example.com/x.jpg", false))
	reachable, ok = store.ProbeResult(ctx, "https://example.com/x.jpg", time.Hour)
	assert.True(t, ok)
	assert.False(t, reachable)
}

func TestHandoffReadOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.TakeHandoff(ctx, "selected")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetHandoff(ctx, "selected", `{"id":"drake"}`))

	value, ok, err := store.TakeHandoff(ctx, "selected")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"drake"}`, value)

	// consumed by the first read
	_, ok, err = store.TakeHandoff(ctx, "selected")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandoffOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetHandoff(ctx, "selected", `"first"`))
	require.NoError(t, store.SetHandoff(ctx, "selected", `"second"`))

	value, ok, err := store.TakeHandoff(ctx, "selected")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"second"`, value)
}
