package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/blur"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"memehub/pkg/models"
)

const (
	gridPitch = 20

	bgPadX = 10 // horizontal padding each side of the text box
	bgPadY = 5  // vertical padding each side
)

var (
	emptyFill = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	errorFill = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x2a, A: 0xff}
	gridLine  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
)

// effectSpec carries the rendering parameters for one Effect tag.
type effectSpec struct {
	blurRadius float64
	offsetX    float64
	offsetY    float64
	stroke     float64
	useFill    bool // glow paints the underlay in the layer fill color
	emboss     bool
}

var effectSpecs = map[models.Effect]effectSpec{
	models.EffectDropShadow:  {blurRadius: 6, offsetX: 3, offsetY: 3},
	models.EffectHeavyShadow: {blurRadius: 8, offsetX: 4, offsetY: 4},
	models.EffectOutline:     {stroke: 3},
	models.EffectGlow:        {blurRadius: 15, useFill: true},
	models.EffectEmboss:      {emboss: true},
}

// Render composites the surface into a fresh RGBA image: background,
// then layers in ascending z-index, then the alignment grid. It never
// fails; Empty and Error states draw their placeholders.
func (s *Surface) Render() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

func (s *Surface) renderLocked() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))

	switch s.state {
	case StateReady:
		s.drawBackgroundLocked(dst)
	case StateError:
		fill(dst, errorFill)
		drawCentered(dst, "Template Not Available", 24, float64(s.height)/2-16)
		drawCentered(dst, "Try a different template", 16, float64(s.height)/2+16)
	default:
		fill(dst, emptyFill)
		drawCentered(dst, "No Template Selected", 24, float64(s.height)/2)
	}

	for _, l := range s.sortedLayersLocked() {
		drawLayer(dst, l)
	}

	if s.grid {
		drawGrid(dst)
	}
	return dst
}

// Export encodes the current composite as PNG. Valid in every state.
func (s *Surface) Export() ([]byte, error) {
	img := s.Render()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Surface) drawBackgroundLocked(dst *image.RGBA) {
	if s.background == nil {
		fill(dst, emptyFill)
		return
	}
	b := s.background.Bounds()
	if b.Dx() == s.width && b.Dy() == s.height {
		draw.Draw(dst, dst.Bounds(), s.background, b.Min, draw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.background, b, xdraw.Src, nil)
}

func fill(dst *image.RGBA, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawGrid(dst *image.RGBA) {
	b := dst.Bounds()
	for x := b.Min.X + gridPitch; x < b.Max.X; x += gridPitch {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			blend(dst, x, y, gridLine)
		}
	}
	for y := b.Min.Y + gridPitch; y < b.Max.Y; y += gridPitch {
		for x := b.Min.X; x < b.Max.X; x++ {
			blend(dst, x, y, gridLine)
		}
	}
}

func blend(dst *image.RGBA, x, y int, c color.NRGBA) {
	draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawCentered paints placeholder text horizontally centered at
// baseline-middle y in light gray.
func drawCentered(dst *image.RGBA, text string, size, y float64) {
	face := faceFor(true, false, size)
	w := measure(face, text)
	cx := float64(dst.Bounds().Dx())/2 - w/2
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(cx), Y: toFixed(y + size*0.35)},
	}
	d.DrawString(text)
}

// drawLayer renders one layer onto its own scratch image and then
// composites that onto dst, rotated about the layer anchor. The
// scratch image keeps effect underlays from bleeding between layers.
func drawLayer(dst *image.RGBA, l models.TextLayer) {
	if l.Text == "" || l.Opacity <= 0 {
		return
	}

	face := faceFor(l.Bold, l.Italic, l.FontSize)
	textW := measure(face, l.Text)
	textH := l.FontSize
	spec := effectSpecs[l.Effect]

	// Margin big enough for background padding, stroke and blur spill.
	margin := bgPadX + int(math.Ceil(spec.blurRadius*2+spec.offsetX+spec.stroke+l.BorderWidth)) + 2
	boxW := int(math.Ceil(textW)) + 2*margin
	boxH := int(math.Ceil(textH)) + 2*margin

	tmp := image.NewRGBA(image.Rect(0, 0, boxW, boxH))
	tx := float64(margin)
	metrics := face.Metrics()
	ascent := fromFixed(metrics.Ascent)
	descent := fromFixed(metrics.Descent)
	baseline := float64(boxH)/2 + (ascent-descent)/2

	bg := ParseColor(l.Background)
	if bg.A > 0 {
		rect := image.Rect(
			margin-bgPadX,
			int(float64(boxH)/2-textH/2)-bgPadY,
			margin+int(math.Ceil(textW))+bgPadX,
			int(float64(boxH)/2+textH/2)+bgPadY,
		)
		draw.Draw(tmp, rect, image.NewUniform(bg), image.Point{}, draw.Over)
	}

	fillColor := ParseColor(l.Color)
	drawEffect(tmp, face, l.Text, tx, baseline, spec, fillColor)

	if l.BorderWidth > 0 {
		strokeString(tmp, face, l.Text, tx, baseline, l.BorderWidth, ParseColor(l.BorderColor))
	}
	drawString(tmp, face, l.Text, tx, baseline, fillColor)

	if l.Opacity < 1 {
		applyOpacity(tmp, l.Opacity)
	}

	// Anchor inside tmp that must land on (l.X, l.Y).
	var ax float64
	switch l.Align {
	case models.AlignLeft:
		ax = float64(margin)
	case models.AlignRight:
		ax = float64(margin) + textW
	default:
		ax = float64(margin) + textW/2
	}
	ay := float64(boxH) / 2

	if l.Rotation == 0 {
		off := image.Pt(int(math.Round(l.X-ax)), int(math.Round(l.Y-ay)))
		draw.Draw(dst, tmp.Bounds().Add(off), tmp, image.Point{}, draw.Over)
		return
	}

	rad := l.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	aff := f64.Aff3{
		cos, -sin, l.X - cos*ax + sin*ay,
		sin, cos, l.Y - sin*ax - cos*ay,
	}
	xdraw.BiLinear.Transform(dst, aff, tmp, tmp.Bounds(), xdraw.Over, nil)
}

func drawEffect(dst *image.RGBA, face font.Face, text string, x, baseline float64, spec effectSpec, fillColor color.NRGBA) {
	switch {
	case spec.emboss:
		light := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3}
		dark := color.NRGBA{A: 0xb3}
		drawString(dst, face, text, x-1, baseline-1, light)
		drawString(dst, face, text, x+1, baseline+1, dark)
	case spec.stroke > 0:
		strokeString(dst, face, text, x, baseline, spec.stroke, color.NRGBA{A: 0xff})
	case spec.blurRadius > 0:
		under := color.NRGBA{A: 0xff}
		if spec.useFill {
			under = fillColor
		}
		layer := image.NewRGBA(dst.Bounds())
		drawString(layer, face, text, x+spec.offsetX, baseline+spec.offsetY, under)
		blurred := blur.Gaussian(layer, spec.blurRadius)
		draw.Draw(dst, dst.Bounds(), blurred, dst.Bounds().Min, draw.Over)
	}
}

func drawString(dst *image.RGBA, face font.Face, text string, x, baseline float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(baseline)},
	}
	d.DrawString(text)
}

// strokeString approximates a stroked outline by stamping the text at
// offsets around a circle of the stroke radius.
func strokeString(dst *image.RGBA, face font.Face, text string, x, baseline, width float64, c color.NRGBA) {
	if c.A == 0 || width <= 0 {
		return
	}
	steps := 16
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		drawString(dst, face, text, x+width*math.Cos(a), baseline+width*math.Sin(a), c)
	}
}

// applyOpacity scales every channel in place. Pixels are
// alpha-premultiplied, so all four channels scale together.
func applyOpacity(img *image.RGBA, opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	for i := range img.Pix {
		img.Pix[i] = uint8(float64(img.Pix[i]) * opacity)
	}
}
