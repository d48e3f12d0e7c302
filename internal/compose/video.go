package compose

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// FrameSource yields decoded frames of a video template. Implementations
// are not safe for concurrent use; the surface serializes access.
type FrameSource interface {
	Size() (w, h int)
	Duration() time.Duration
	// FrameAt returns the frame covering position t. Sources may decode
	// forward cheaply and rewind on backward seeks.
	FrameAt(t time.Duration) (image.Image, error)
	Close() error
}

// Playback ticks at a fixed rate; decoded sources report their own
// frame rate but a shared cadence keeps the loop simple.
const playTick = 33 * time.Millisecond

var ErrNoVideo = errors.New("surface has no video template")

// Play starts advancing the video background. onFrame is invoked after
// each new frame is installed so the caller can re-render; it may be
// nil. Playback loops at the end and runs until Pause, a new template,
// or ClearTemplate.
func (s *Surface) Play(onFrame func(pos time.Duration)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.video == nil {
		return ErrNoVideo
	}
	if s.playing {
		return nil
	}
	stop := make(chan struct{})
	s.stop = stop
	s.playing = true

	go func() {
		ticker := time.NewTicker(playTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !s.advanceFrame(stop, onFrame) {
					return
				}
			}
		}
	}()
	return nil
}

func (s *Surface) advanceFrame(stop chan struct{}, onFrame func(time.Duration)) bool {
	s.mu.Lock()
	if s.stop != stop || s.video == nil {
		s.mu.Unlock()
		return false
	}
	pos := s.videoPos + playTick
	if d := s.video.Duration(); d > 0 && pos >= d {
		pos = 0
	}
	frame, err := s.video.FrameAt(pos)
	if err != nil {
		s.mu.Unlock()
		return true // transient decode error, keep the last frame up
	}
	s.videoPos = pos
	s.background = frame
	s.mu.Unlock()

	if onFrame != nil {
		onFrame(pos)
	}
	return true
}

// Pause stops playback. The current frame stays on the surface.
func (s *Surface) Pause() {
	s.mu.Lock()
	s.stopPlaybackLocked()
	s.mu.Unlock()
}

func (s *Surface) stopPlaybackLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.playing = false
}

func (s *Surface) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Seek jumps to position t, clamped to the video duration, and installs
// that frame as the background.
func (s *Surface) Seek(t time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.video == nil {
		return ErrNoVideo
	}
	if t < 0 {
		t = 0
	}
	if d := s.video.Duration(); d > 0 && t > d {
		t = d
	}
	frame, err := s.video.FrameAt(t)
	if err != nil {
		return fmt.Errorf("seek to %s: %w", t, err)
	}
	s.videoPos = t
	s.background = frame
	return nil
}

func (s *Surface) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoPos
}

func (s *Surface) VideoDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.video == nil {
		return 0
	}
	return s.video.Duration()
}
