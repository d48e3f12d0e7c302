// Package comic holds the state of a comic strip draft: a panel grid
// and the bubbles placed inside each panel.
package comic

import (
	"sync"

	"github.com/google/uuid"

	"memehub/pkg/models"
)

const (
	MinPanels = 1
	MaxPanels = 8

	// Bubbles position in percent of the panel; the upper bound leaves
	// room for the bubble body so it cannot escape the panel.
	posMin = 0
	posMax = 85

	defaultPanelCount = 3
	defaultBubbleX    = 25
	defaultBubbleY    = 20
)

// Book is one comic strip in progress. All mutating calls addressing an
// unknown panel or bubble id return false and change nothing.
type Book struct {
	mu     sync.Mutex
	layout models.LayoutKind
	panels []models.Panel
}

func NewBook() *Book {
	b := &Book{layout: models.LayoutHorizontal}
	b.resetPanels(defaultPanelCount)
	return b
}

func (b *Book) resetPanels(n int) {
	b.panels = make([]models.Panel, n)
	for i := range b.panels {
		b.panels[i] = models.Panel{ID: uuid.NewString(), Bubbles: []models.Bubble{}}
	}
}

func (b *Book) Layout() models.LayoutKind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout
}

func (b *Book) SetLayout(kind models.LayoutKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch kind {
	case models.LayoutHorizontal, models.LayoutVertical, models.LayoutGrid:
		b.layout = kind
	}
}

// SetPanelCount resizes the strip to n panels, clamped to the allowed
// range. Every panel is rebuilt fresh; images and bubbles do not carry
// over. Setting the current count is also a full reset.
func (b *Book) SetPanelCount(n int) {
	if n < MinPanels {
		n = MinPanels
	}
	if n > MaxPanels {
		n = MaxPanels
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetPanels(n)
}

func (b *Book) PanelCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.panels)
}

// Panels returns a deep copy of the strip.
func (b *Book) Panels() []models.Panel {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Panel, len(b.panels))
	for i, p := range b.panels {
		cp := p
		cp.Bubbles = make([]models.Bubble, len(p.Bubbles))
		copy(cp.Bubbles, p.Bubbles)
		out[i] = cp
	}
	return out
}

func (b *Book) panel(id string) *models.Panel {
	for i := range b.panels {
		if b.panels[i].ID == id {
			return &b.panels[i]
		}
	}
	return nil
}

// SetPanelImage assigns a background image URL to a panel. An empty
// url clears it.
func (b *Book) SetPanelImage(panelID, url string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.panel(panelID)
	if p == nil {
		return false
	}
	p.Image = url
	return true
}

// AddBubble places a new bubble near the panel's top left corner.
func (b *Book) AddBubble(panelID string, kind models.BubbleKind, text string) (models.Bubble, bool) {
	if kind != models.BubbleSpeech && kind != models.BubbleThought {
		kind = models.BubbleSpeech
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.panel(panelID)
	if p == nil {
		return models.Bubble{}, false
	}
	bub := models.Bubble{
		ID:   uuid.NewString(),
		Kind: kind,
		Text: text,
		X:    defaultBubbleX,
		Y:    defaultBubbleY,
	}
	p.Bubbles = append(p.Bubbles, bub)
	return bub, true
}

func (b *Book) bubble(p *models.Panel, id string) *models.Bubble {
	for i := range p.Bubbles {
		if p.Bubbles[i].ID == id {
			return &p.Bubbles[i]
		}
	}
	return nil
}

func (b *Book) UpdateBubbleText(panelID, bubbleID, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.panel(panelID)
	if p == nil {
		return false
	}
	bub := b.bubble(p, bubbleID)
	if bub == nil {
		return false
	}
	bub.Text = text
	return true
}

// MoveBubble positions a bubble in panel-percentage space, clamped so
// it stays inside the panel.
func (b *Book) MoveBubble(panelID, bubbleID string, x, y float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.panel(panelID)
	if p == nil {
		return false
	}
	bub := b.bubble(p, bubbleID)
	if bub == nil {
		return false
	}
	bub.X = clamp(x)
	bub.Y = clamp(y)
	return true
}

func (b *Book) RemoveBubble(panelID, bubbleID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.panel(panelID)
	if p == nil {
		return false
	}
	for i := range p.Bubbles {
		if p.Bubbles[i].ID == bubbleID {
			p.Bubbles = append(p.Bubbles[:i], p.Bubbles[i+1:]...)
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < posMin {
		return posMin
	}
	if v > posMax {
		return posMax
	}
	return v
}
