package models

// Effect is the enumerated visual effect applied when a text layer is
// drawn. Rendering parameters (blur radius, offset) live with the
// compositing engine, keyed on this tag.
type Effect string

const (
	EffectNone        Effect = "none"
	EffectDropShadow  Effect = "drop-shadow"
	EffectOutline     Effect = "outline"
	EffectGlow        Effect = "glow"
	EffectEmboss      Effect = "emboss"
	EffectHeavyShadow Effect = "heavy-shadow"
)

// Alignment is horizontal text alignment within a layer.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// TextLayer is one styled caption on a compositing surface.
//
// ZIndex is a dense permutation of 1..N across the N layers of one
// surface: it controls both draw order (low first) and hit-test
// precedence (high wins). Position is unconstrained; a layer may sit
// entirely off-surface.
type TextLayer struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	FontSize    float64   `json:"font_size"`
	FontName    string    `json:"font_family"`
	Color       string    `json:"color"`            // fill, #RRGGBB
	Background  string    `json:"background_color"` // "" or "transparent" means none
	BorderColor string    `json:"border_color"`
	BorderWidth float64   `json:"border_width"`
	Rotation    float64   `json:"rotation"` // degrees
	Opacity     float64   `json:"opacity"`  // 0..1
	Align       Alignment `json:"text_align"`
	Bold        bool      `json:"bold"`
	Italic      bool      `json:"italic"`
	Effect      Effect    `json:"effect"`
	ZIndex      int       `json:"z_index"`

	// Declared box size, optional; measured bounds are used when zero.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}
