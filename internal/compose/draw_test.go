package compose

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub/pkg/models"
)

func TestExportAlwaysValid(t *testing.T) {
	s := NewSurface()

	// Empty state still exports a decodable PNG at the default size
	data, err := s.Export()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestExportErrorState(t *testing.T) {
	s := NewSurface()
	_ = s.SetTemplate(context.Background(), imageRecord(), &stubLoader{err: assert.AnError})
	require.Equal(t, StateError, s.State())

	data, err := s.Export()
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRenderDrawsBackground(t *testing.T) {
	s := NewSurface()
	red := color.NRGBA{R: 0xff, A: 0xff}
	require.NoError(t, s.SetTemplate(context.Background(), imageRecord(), &stubLoader{w: 64, h: 48, c: red}))

	img := s.Render()
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	r, g, b, a := img.At(32, 24).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestRenderGridOverlay(t *testing.T) {
	s := NewSurface()
	require.NoError(t, s.SetTemplate(context.Background(), imageRecord(), &stubLoader{w: 100, h: 100, c: color.Black}))

	plain := s.Render()
	s.SetGrid(true)
	gridded := s.Render()

	assert.False(t, samePixels(plain, gridded), "grid must change the composite")

	// a grid line pixel is lighter than the black background
	r0, _, _, _ := plain.At(20, 50).RGBA()
	r1, _, _, _ := gridded.At(20, 50).RGBA()
	assert.Greater(t, r1, r0)
}

func TestRenderLayerChangesPixels(t *testing.T) {
	s := NewSurface()
	require.NoError(t, s.SetTemplate(context.Background(), imageRecord(), &stubLoader{w: 200, h: 100, c: color.Black}))

	before := s.Render()
	s.AddLayer("HELLO")
	after := s.Render()

	assert.False(t, samePixels(before, after))
}

func TestBorderWidthChangesRendering(t *testing.T) {
	s := NewSurface()
	l := s.AddLayer("OUTLINED")

	s.UpdateLayer(l.ID, func(dst *models.TextLayer) { dst.BorderWidth = 0 })
	plain := s.Render()

	s.UpdateLayer(l.ID, func(dst *models.TextLayer) { dst.BorderWidth = 3 })
	stroked := s.Render()

	assert.False(t, samePixels(plain, stroked))
}

func TestEffectsChangeRendering(t *testing.T) {
	s := NewSurface()
	l := s.AddLayer("EFFECTS")
	s.UpdateLayer(l.ID, func(dst *models.TextLayer) { dst.BorderWidth = 0 })

	base := s.Render()
	for _, effect := range []models.Effect{
		models.EffectDropShadow,
		models.EffectOutline,
		models.EffectGlow,
		models.EffectEmboss,
		models.EffectHeavyShadow,
	} {
		s.UpdateLayer(l.ID, func(dst *models.TextLayer) { dst.Effect = effect })
		assert.False(t, samePixels(base, s.Render()), "effect %s must alter output", effect)
	}
}

func TestZeroOpacityLayerInvisible(t *testing.T) {
	s := NewSurface()
	l := s.AddLayer("GHOST")

	before := s.Render()
	s.UpdateLayer(l.ID, func(dst *models.TextLayer) { dst.Opacity = 0 })
	after := s.Render()

	// the layer with opacity 0 contributes nothing; removing it
	// changes nothing either
	s.DeleteLayer(l.ID)
	none := s.Render()
	assert.True(t, samePixels(after, none))
	assert.False(t, samePixels(before, after))
}

func TestRotationChangesRendering(t *testing.T) {
	s := NewSurface()
	l := s.AddLayer("TILTED")

	straight := s.Render()
	s.UpdateLayer(l.ID, func(dst *models.TextLayer) { dst.Rotation = 30 })
	tilted := s.Render()

	assert.False(t, samePixels(straight, tilted))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, ParseColor("#ff0000"))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ParseColor("#FFF"))
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, ParseColor("#11223344"))
	assert.Equal(t, color.NRGBA{}, ParseColor("transparent"))
	assert.Equal(t, color.NRGBA{}, ParseColor(""))
	assert.Equal(t, color.NRGBA{A: 0xff}, ParseColor("black"))
	// garbage falls back to opaque white
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ParseColor("#zz"))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ParseColor("bogus"))
}

func TestMeasureGrowsWithText(t *testing.T) {
	face := faceFor(true, false, 32)
	short := measure(face, "hi")
	long := measure(face, "a much longer caption")
	assert.Greater(t, long, short)
	assert.Greater(t, short, 0.0)
}

func samePixels(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	return bytes.Equal(a.Pix, b.Pix)
}
