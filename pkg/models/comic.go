package models

// BubbleKind is the shape of a comic text bubble.
type BubbleKind string

const (
	BubbleSpeech  BubbleKind = "speech"
	BubbleThought BubbleKind = "thought"
)

// LayoutKind is the arrangement of comic panels on the page.
type LayoutKind string

const (
	LayoutHorizontal LayoutKind = "horizontal"
	LayoutVertical   LayoutKind = "vertical"
	LayoutGrid       LayoutKind = "grid"
)

// Bubble is one speech or thought bubble inside a panel. X and Y are
// percentages of the panel size, so a bubble keeps its place when the
// panel is resized.
type Bubble struct {
	ID   string     `json:"id"`
	Kind BubbleKind `json:"type"`
	Text string     `json:"text"`
	X    float64    `json:"x"` // percent, 0..85
	Y    float64    `json:"y"` // percent, 0..85
}

// Panel is one cell of a comic strip: an optional background image and
// the bubbles laid over it.
type Panel struct {
	ID      string   `json:"id"`
	Image   string   `json:"image,omitempty"`
	Bubbles []Bubble `json:"bubbles"`
}
