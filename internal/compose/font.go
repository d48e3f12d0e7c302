package compose

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts offered to the UI. Rendering maps every family onto the
// embedded Go font by weight and slant, so output is identical across
// machines regardless of installed system fonts.
var FontFamilies = []string{
	"Impact", "Arial Black", "Arial", "Helvetica", "Times New Roman",
	"Courier New", "Verdana", "Georgia", "Comic Sans MS", "Trebuchet MS",
	"Tahoma", "Oswald", "Roboto", "Open Sans", "Lato", "Montserrat",
}

type faceKey struct {
	bold   bool
	italic bool
	size   int
}

var (
	fontMu    sync.Mutex
	sfnts     map[[2]bool]*opentype.Font
	faceCache = map[faceKey]font.Face{}
)

func loadFonts() {
	if sfnts != nil {
		return
	}
	sfnts = make(map[[2]bool]*opentype.Font, 4)
	for _, v := range []struct {
		key  [2]bool
		data []byte
	}{
		{[2]bool{false, false}, goregular.TTF},
		{[2]bool{true, false}, gobold.TTF},
		{[2]bool{false, true}, goitalic.TTF},
		{[2]bool{true, true}, gobolditalic.TTF},
	} {
		f, err := opentype.Parse(v.data)
		if err != nil {
			log.Printf("[compose] parse embedded font: %v", err)
			continue
		}
		sfnts[v.key] = f
	}
}

// faceFor returns a cached face for the given style at the given size.
func faceFor(bold, italic bool, size float64) font.Face {
	fontMu.Lock()
	defer fontMu.Unlock()

	loadFonts()

	key := faceKey{bold: bold, italic: italic, size: int(size)}
	if f, ok := faceCache[key]; ok {
		return f
	}

	sf := sfnts[[2]bool{bold, italic}]
	if sf == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	faceCache[key] = face
	return face
}

// measure returns the advance width of text in pixels.
func measure(face font.Face, text string) float64 {
	return fromFixed(font.MeasureString(face, text))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
