package compose

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// HTTPLoader fetches template media over HTTP. Images decode in
// memory; videos are spooled to a temp file because the ffmpeg
// demuxer needs a seekable path.
type HTTPLoader struct {
	Client  *http.Client
	MaxSize int64
}

func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{
		Client:  &http.Client{Timeout: 30 * time.Second},
		MaxSize: 50 << 20,
	}
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "memehub/1.0")
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (l *HTTPLoader) LoadImage(ctx context.Context, url string) (image.Image, error) {
	body, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	img, _, err := image.Decode(io.LimitReader(body, l.MaxSize))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

func (l *HTTPLoader) LoadVideo(ctx context.Context, url string) (FrameSource, error) {
	body, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp("", "memehub-video-*.mp4")
	if err != nil {
		return nil, fmt.Errorf("spool video: %w", err)
	}
	if _, err := io.Copy(tmp, io.LimitReader(body, l.MaxSize)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("spool video %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	src, err := OpenVideoFile(tmp.Name(), true)
	if err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	return src, nil
}
