package compose

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/zergon321/reisen"
)

// videoFile decodes frames from a media file through ffmpeg. Decoding
// is sequential; FrameAt counts frames forward from the last decoded
// position and rewinds the stream for backward seeks.
type videoFile struct {
	media   *reisen.Media
	stream  *reisen.VideoStream
	fps     float64
	dur     time.Duration
	nextIdx int
	last    *frameCache
	path    string
	cleanup bool
}

type frameCache struct {
	idx int
	img *reisen.VideoFrame
}

// OpenVideoFile opens path for frame extraction. When removeOnClose is
// set the file is deleted when the source closes, which is how
// downloaded templates are cleaned up.
func OpenVideoFile(path string, removeOnClose bool) (FrameSource, error) {
	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, fmt.Errorf("open media %s: %w", path, err)
	}
	streams := media.VideoStreams()
	if len(streams) == 0 {
		media.Close()
		return nil, fmt.Errorf("no video stream in %s", path)
	}
	if err := media.OpenDecode(); err != nil {
		media.Close()
		return nil, fmt.Errorf("open decoder: %w", err)
	}
	stream := streams[0]
	if err := stream.Open(); err != nil {
		media.CloseDecode()
		media.Close()
		return nil, fmt.Errorf("open video stream: %w", err)
	}

	fps, _ := stream.FrameRate()
	if fps <= 0 {
		fps = 30
	}
	dur, err := stream.Duration()
	if err != nil {
		dur = 0
	}
	return &videoFile{
		media:   media,
		stream:  stream,
		fps:     float64(fps),
		dur:     dur,
		path:    path,
		cleanup: removeOnClose,
	}, nil
}

func (v *videoFile) Size() (int, int) {
	return v.stream.Width(), v.stream.Height()
}

func (v *videoFile) Duration() time.Duration {
	return v.dur
}

func (v *videoFile) FrameAt(t time.Duration) (image.Image, error) {
	if t < 0 {
		t = 0
	}
	target := int(t.Seconds() * v.fps)
	if v.last != nil && v.last.idx == target {
		return v.last.img.Image(), nil
	}
	if target < v.nextIdx {
		if err := v.stream.Rewind(0); err != nil {
			return nil, fmt.Errorf("rewind: %w", err)
		}
		v.nextIdx = 0
		v.last = nil
	}

	var frame *reisen.VideoFrame
	for v.nextIdx <= target {
		f, err := v.readFrame()
		if err != nil {
			return nil, err
		}
		if f == nil {
			// End of stream before target, keep the final frame.
			break
		}
		frame = f
		v.nextIdx++
	}
	if frame == nil {
		if v.last != nil {
			return v.last.img.Image(), nil
		}
		return nil, fmt.Errorf("no frame at %s", t)
	}
	v.last = &frameCache{idx: v.nextIdx - 1, img: frame}
	return frame.Image(), nil
}

// readFrame pulls packets until the next frame of our video stream
// decodes. Returns nil at end of stream.
func (v *videoFile) readFrame() (*reisen.VideoFrame, error) {
	for {
		packet, gotPacket, err := v.media.ReadPacket()
		if err != nil {
			return nil, fmt.Errorf("read packet: %w", err)
		}
		if !gotPacket {
			return nil, nil
		}
		if packet.Type() != reisen.StreamVideo {
			continue
		}
		s, ok := v.media.Streams()[packet.StreamIndex()].(*reisen.VideoStream)
		if !ok || s != v.stream {
			continue
		}
		frame, gotFrame, err := s.ReadVideoFrame()
		if err != nil {
			return nil, fmt.Errorf("decode frame: %w", err)
		}
		if !gotFrame {
			return nil, nil
		}
		if frame == nil {
			continue
		}
		return frame, nil
	}
}

func (v *videoFile) Close() error {
	v.stream.Close()
	v.media.CloseDecode()
	v.media.Close()
	if v.cleanup {
		os.Remove(v.path)
	}
	return nil
}
