package text

import (
	"errors"

	"github.com/hubastard/batch2d/engine/core"
)

// ErrNoGlyphs is returned when a font source yields no drawable glyph.
var ErrNoGlyphs = errors.New("text: font has no glyphs")

// FallbackRune is drawn in place of runes the font does not cover.
const FallbackRune = '?'

// Bounds is an axis-aligned box.
type Bounds struct {
	Left, Bottom, Right, Top float64
}

func (b Bounds) Empty() bool { return b.Right <= b.Left || b.Top <= b.Bottom }

// Glyph holds the metrics of one rune.
//
// Plane is the quad relative to the pen on the baseline, in em units, Y up.
// Atlas is the same quad in atlas pixels. The atlas is uploaded top row
// first, so v grows with image rows and Atlas.Bottom is the larger row.
type Glyph struct {
	Rune    rune
	Advance float64 // em units
	Plane   Bounds
	Atlas   Bounds
}

// Metrics are vertical font metrics in em units. Descender is negative.
type Metrics struct {
	Ascender   float64
	Descender  float64
	LineHeight float64
}

type kernPair struct{ a, b rune }

// Font couples glyph metrics with the atlas texture they index into.
type Font struct {
	Metrics
	Atlas       core.Texture
	AtlasWidth  int
	AtlasHeight int

	glyphs  map[rune]Glyph
	kerning map[kernPair]float64
	close   func()
}

// NewFont builds a Font from precomputed metrics. kerning maps a pair of runes
// to an em-unit adjustment; it may be nil.
func NewFont(m Metrics, glyphs []Glyph, kerning map[[2]rune]float64, atlas core.Texture, atlasW, atlasH int) (*Font, error) {
	if len(glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	f := &Font{
		Metrics:     m,
		Atlas:       atlas,
		AtlasWidth:  atlasW,
		AtlasHeight: atlasH,
		glyphs:      make(map[rune]Glyph, len(glyphs)),
		kerning:     make(map[kernPair]float64, len(kerning)),
	}
	for _, g := range glyphs {
		f.glyphs[g.Rune] = g
	}
	for p, k := range kerning {
		if k != 0 {
			f.kerning[kernPair{p[0], p[1]}] = k
		}
	}
	return f, nil
}

// Glyph returns the glyph for r.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// GlyphCount reports how many runes the font covers.
func (f *Font) GlyphCount() int { return len(f.glyphs) }

// Kerning returns the pair adjustment between a and b in em units.
func (f *Font) Kerning(a, b rune) float64 { return f.kerning[kernPair{a, b}] }

// Advance returns the kerning-adjusted advance from r to next. next < 0 means
// r is the last rune of the run. Unknown runes advance by zero.
func (f *Font) Advance(r, next rune) float64 {
	g, ok := f.glyphs[r]
	if !ok {
		return 0
	}
	if next < 0 {
		return g.Advance
	}
	return g.Advance + f.Kerning(r, next)
}

// Close releases the atlas and any parser state owned by the font.
func (f *Font) Close() {
	if f == nil {
		return
	}
	if f.close != nil {
		f.close()
		f.close = nil
	}
	if f.Atlas != nil {
		f.Atlas.Release()
		f.Atlas = nil
	}
}
