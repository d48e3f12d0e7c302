package compose

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub/pkg/models"
)

// fakeFrames hands out blank frames and records every requested
// position.
type fakeFrames struct {
	mu     sync.Mutex
	w, h   int
	dur    time.Duration
	asked  []time.Duration
	closed bool
}

func (f *fakeFrames) Size() (int, int)        { return f.w, f.h }
func (f *fakeFrames) Duration() time.Duration { return f.dur }

func (f *fakeFrames) FrameAt(t time.Duration) (image.Image, error) {
	f.mu.Lock()
	f.asked = append(f.asked, t)
	f.mu.Unlock()
	return image.NewRGBA(image.Rect(0, 0, f.w, f.h)), nil
}

func (f *fakeFrames) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

type videoLoader struct {
	src FrameSource
}

func (l *videoLoader) LoadImage(ctx context.Context, url string) (image.Image, error) {
	return nil, assert.AnError
}

func (l *videoLoader) LoadVideo(ctx context.Context, url string) (FrameSource, error) {
	return l.src, nil
}

func videoRecord() models.TemplateRecord {
	return models.TemplateRecord{
		ID:    "vid-1",
		Name:  "Video Template",
		URL:   "https://example.com/v.mp4",
		Media: models.MediaVideo,
	}
}

func newVideoSurface(t *testing.T, src *fakeFrames) *Surface {
	t.Helper()
	s := NewSurface()
	require.NoError(t, s.SetTemplate(context.Background(), videoRecord(), &videoLoader{src: src}))
	return s
}

func TestVideoTemplateLocksNaturalSize(t *testing.T) {
	src := &fakeFrames{w: 640, h: 360, dur: 2 * time.Second}
	s := newVideoSurface(t, src)

	assert.Equal(t, StateReady, s.State())
	w, h := s.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)
	assert.Equal(t, 2*time.Second, s.VideoDuration())
	assert.Equal(t, time.Duration(0), s.Position())
}

func TestSeekClampsToDuration(t *testing.T) {
	src := &fakeFrames{w: 64, h: 64, dur: time.Second}
	s := newVideoSurface(t, src)

	require.NoError(t, s.Seek(5*time.Second))
	assert.Equal(t, time.Second, s.Position())

	require.NoError(t, s.Seek(-time.Second))
	assert.Equal(t, time.Duration(0), s.Position())
}

func TestSeekWithoutVideo(t *testing.T) {
	s := NewSurface()
	assert.ErrorIs(t, s.Seek(time.Second), ErrNoVideo)
	assert.ErrorIs(t, s.Play(nil), ErrNoVideo)
}

func TestPlayPause(t *testing.T) {
	src := &fakeFrames{w: 64, h: 64, dur: 10 * time.Second}
	s := newVideoSurface(t, src)

	frames := make(chan time.Duration, 64)
	require.NoError(t, s.Play(func(pos time.Duration) { frames <- pos }))
	assert.True(t, s.Playing())

	// wait for a few ticks
	var got []time.Duration
	deadline := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case pos := <-frames:
			got = append(got, pos)
		case <-deadline:
			t.Fatal("no frames delivered")
		}
	}

	s.Pause()
	assert.False(t, s.Playing())

	// position advances monotonically while playing
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i], got[i-1])
	}
	assert.Greater(t, s.Position(), time.Duration(0))
}

func TestPlayTwiceIsNoop(t *testing.T) {
	src := &fakeFrames{w: 64, h: 64, dur: 10 * time.Second}
	s := newVideoSurface(t, src)

	require.NoError(t, s.Play(nil))
	require.NoError(t, s.Play(nil))
	s.Pause()
	s.Pause()
}

func TestNewTemplateStopsPlaybackAndClosesSource(t *testing.T) {
	src := &fakeFrames{w: 64, h: 64, dur: 10 * time.Second}
	s := newVideoSurface(t, src)

	require.NoError(t, s.Play(nil))

	require.NoError(t, s.SetTemplate(context.Background(), imageRecord(),
		&stubLoader{w: 10, h: 10, c: color.White}))

	assert.False(t, s.Playing())
	src.mu.Lock()
	defer src.mu.Unlock()
	assert.True(t, src.closed)
}
