package compose

import (
	"context"
	"fmt"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"memehub/pkg/models"
)

// State tracks what the surface background currently holds.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Position names the quick text placements.
type Position string

const (
	PositionTop    Position = "top"
	PositionMiddle Position = "middle"
	PositionBottom Position = "bottom"
)

const (
	defaultWidth  = 800
	defaultHeight = 600

	duplicateShift = 20
	edgeInset      = 50
)

// Loader resolves a template URL into decoded media. HTTPLoader is the
// production implementation; tests substitute their own.
type Loader interface {
	LoadImage(ctx context.Context, url string) (image.Image, error)
	LoadVideo(ctx context.Context, url string) (FrameSource, error)
}

type dragState struct {
	id      string
	offsetX float64
	offsetY float64
}

// Surface is the compositing canvas: one background (image or video
// frame) plus an ordered stack of text layers. Layer z-indexes are
// always a dense permutation 1..N.
type Surface struct {
	mu sync.Mutex

	state         State
	width, height int
	template      *models.TemplateRecord
	background    image.Image
	loadErr       error

	video    FrameSource
	videoPos time.Duration
	playing  bool
	stop     chan struct{}

	layers []models.TextLayer
	grid   bool
	drag   *dragState
}

func NewSurface() *Surface {
	return &Surface{
		state:  StateEmpty,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) Template() *models.TemplateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

func (s *Surface) SetGrid(on bool) {
	s.mu.Lock()
	s.grid = on
	s.mu.Unlock()
}

func (s *Surface) Grid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// SetTemplate loads rec's media through loader and installs it as the
// background. The surface passes through Loading and ends Ready or
// Error; layers survive either way, and on failure the previous
// background is discarded so the error placeholder is unambiguous.
func (s *Surface) SetTemplate(ctx context.Context, rec models.TemplateRecord, loader Loader) error {
	s.mu.Lock()
	s.stopPlaybackLocked()
	if s.video != nil {
		s.video.Close()
		s.video = nil
	}
	s.state = StateLoading
	s.template = &rec
	s.background = nil
	s.loadErr = nil
	s.videoPos = 0
	s.mu.Unlock()

	var (
		img image.Image
		src FrameSource
		err error
	)
	if rec.Media == models.MediaVideo {
		src, err = loader.LoadVideo(ctx, rec.URL)
	} else {
		img, err = loader.LoadImage(ctx, rec.URL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.loadErr = err
		return fmt.Errorf("load template %s: %w", rec.ID, err)
	}
	if src != nil {
		s.video = src
		w, h := src.Size()
		s.width, s.height = w, h
		first, ferr := src.FrameAt(0)
		if ferr != nil {
			src.Close()
			s.video = nil
			s.state = StateError
			s.loadErr = ferr
			return fmt.Errorf("decode first frame of %s: %w", rec.ID, ferr)
		}
		s.background = first
	} else {
		b := img.Bounds()
		s.width, s.height = b.Dx(), b.Dy()
		s.background = img
	}
	s.state = StateReady
	return nil
}

// ClearTemplate drops the background and returns to Empty. Layers are
// kept so switching templates does not lose work.
func (s *Surface) ClearTemplate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPlaybackLocked()
	if s.video != nil {
		s.video.Close()
		s.video = nil
	}
	s.state = StateEmpty
	s.template = nil
	s.background = nil
	s.loadErr = nil
	s.width, s.height = defaultWidth, defaultHeight
}

func (s *Surface) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Surface) defaultLayer(text string, x, y float64) models.TextLayer {
	return models.TextLayer{
		ID:          uuid.NewString(),
		Text:        text,
		X:           x,
		Y:           y,
		FontSize:    32,
		FontName:    "Impact",
		Color:       "#ffffff",
		Background:  "transparent",
		BorderColor: "#000000",
		BorderWidth: 2,
		Rotation:    0,
		Opacity:     1,
		Align:       models.AlignCenter,
		Bold:        true,
		Effect:      models.EffectNone,
		ZIndex:      len(s.layers) + 1,
	}
}

// AddLayer appends a new layer centered on the surface.
func (s *Surface) AddLayer(text string) models.TextLayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.defaultLayer(text, float64(s.width)/2, float64(s.height)/2)
	s.layers = append(s.layers, l)
	return l
}

// AddLayerAt places a new layer at one of the quick positions.
func (s *Surface) AddLayerAt(text string, pos Position) models.TextLayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	x := float64(s.width) / 2
	y := float64(s.height) / 2
	switch pos {
	case PositionTop:
		y = edgeInset
	case PositionBottom:
		y = float64(s.height) - edgeInset
	}
	l := s.defaultLayer(text, x, y)
	s.layers = append(s.layers, l)
	return l
}

// UpdateLayer applies mutate to the layer with the given id. ID and
// ZIndex changes made by mutate are ignored; ordering moves go through
// MoveLayer.
func (s *Surface) UpdateLayer(id string, mutate func(*models.TextLayer)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layers {
		if s.layers[i].ID == id {
			keptID, keptZ := s.layers[i].ID, s.layers[i].ZIndex
			mutate(&s.layers[i])
			s.layers[i].ID, s.layers[i].ZIndex = keptID, keptZ
			return true
		}
	}
	return false
}

func (s *Surface) Layer(id string) (models.TextLayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layers {
		if s.layers[i].ID == id {
			return s.layers[i], true
		}
	}
	return models.TextLayer{}, false
}

// Layers returns a copy of the stack sorted by ascending z-index.
func (s *Surface) Layers() []models.TextLayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLayersLocked()
}

func (s *Surface) sortedLayersLocked() []models.TextLayer {
	out := make([]models.TextLayer, len(s.layers))
	copy(out, s.layers)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// DeleteLayer removes a layer and renumbers the rest so z-indexes stay
// a dense 1..N permutation.
func (s *Surface) DeleteLayer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.layers {
		if s.layers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	removed := s.layers[idx].ZIndex
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	for i := range s.layers {
		if s.layers[i].ZIndex > removed {
			s.layers[i].ZIndex--
		}
	}
	if s.drag != nil && s.drag.id == id {
		s.drag = nil
	}
	return true
}

// DuplicateLayer copies a layer with a fresh id, shifted down-right,
// placed on top of the stack.
func (s *Surface) DuplicateLayer(id string) (models.TextLayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layers {
		if s.layers[i].ID == id {
			dup := s.layers[i]
			dup.ID = uuid.NewString()
			dup.X += duplicateShift
			dup.Y += duplicateShift
			dup.ZIndex = len(s.layers) + 1
			s.layers = append(s.layers, dup)
			return dup, true
		}
	}
	return models.TextLayer{}, false
}

// MoveLayer shifts a layer one step in the stack. dir > 0 moves toward
// the front, dir < 0 toward the back. Returns false when the layer is
// unknown or already at that boundary.
func (s *Surface) MoveLayer(id string, dir int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir == 0 {
		return false
	}
	var cur *models.TextLayer
	for i := range s.layers {
		if s.layers[i].ID == id {
			cur = &s.layers[i]
			break
		}
	}
	if cur == nil {
		return false
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	target := cur.ZIndex + step
	if target < 1 || target > len(s.layers) {
		return false
	}
	for i := range s.layers {
		if s.layers[i].ZIndex == target && s.layers[i].ID != id {
			s.layers[i].ZIndex = cur.ZIndex
			break
		}
	}
	cur.ZIndex = target
	return true
}

// HitTest returns the id of the topmost layer whose measured bounds
// contain (x, y).
func (s *Surface) HitTest(x, y float64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hitTestLocked(x, y)
}

func (s *Surface) hitTestLocked(x, y float64) (string, bool) {
	stack := s.sortedLayersLocked()
	for i := len(stack) - 1; i >= 0; i-- {
		l := stack[i]
		face := faceFor(l.Bold, l.Italic, l.FontSize)
		w := measure(face, l.Text)
		h := l.FontSize
		if x >= l.X-w/2 && x <= l.X+w/2 && y >= l.Y-h/2 && y <= l.Y+h/2 {
			return l.ID, true
		}
	}
	return "", false
}

// StartDrag begins dragging the topmost layer under (x, y), recording
// the grab offset so the layer does not jump to the pointer.
func (s *Surface) StartDrag(x, y float64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.hitTestLocked(x, y)
	if !ok {
		return "", false
	}
	for i := range s.layers {
		if s.layers[i].ID == id {
			s.drag = &dragState{
				id:      id,
				offsetX: x - s.layers[i].X,
				offsetY: y - s.layers[i].Y,
			}
			break
		}
	}
	return id, true
}

// DragTo moves the dragged layer so the grab point follows the pointer.
func (s *Surface) DragTo(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return false
	}
	for i := range s.layers {
		if s.layers[i].ID == s.drag.id {
			s.layers[i].X = x - s.drag.offsetX
			s.layers[i].Y = y - s.drag.offsetY
			return true
		}
	}
	return false
}

func (s *Surface) EndDrag() {
	s.mu.Lock()
	s.drag = nil
	s.mu.Unlock()
}

func (s *Surface) Dragging() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return "", false
	}
	return s.drag.id, true
}
