package text

import (
	"unicode/utf8"

	"github.com/hubastard/batch2d/engine/colors"
)

// Properties control how a string is laid out and tinted.
type Properties struct {
	Color       colors.Color
	Kerning     float32 // extra advance after every rune, in layout units
	LineSpacing float32 // extra distance between lines, in layout units
}

// DefaultProperties draws white text with the font's own spacing.
func DefaultProperties() Properties { return Properties{Color: colors.White} }

// GlyphQuad is one positioned glyph in layout space (one unit = one line of
// ascender-to-descender height, Y up, origin on the first baseline).
type GlyphQuad struct {
	Rune         rune
	Min, Max     [2]float32
	UVMin, UVMax [2]float32
}

// Layout appends the quads for s to dst and returns the extended slice.
// Layout has no state: the same inputs always produce the same quads.
func Layout(dst []GlyphQuad, f *Font, s string, p Properties) []GlyphQuad {
	walk(f, s, p, func(q GlyphQuad) { dst = append(dst, q) })
	return dst
}

// Measure returns the pen extent of s: the widest line and the total height.
func Measure(f *Font, s string, p Properties) (width, height float32) {
	maxX, lines := walk(f, s, p, nil)
	if lines == 0 {
		return 0, 0
	}
	fs := scaleOf(f)
	step := fs*f.LineHeight + float64(p.LineSpacing)
	return float32(maxX), float32(fs*(f.Ascender-f.Descender) + float64(lines-1)*step)
}

func scaleOf(f *Font) float64 {
	h := f.Ascender - f.Descender
	if h <= 0 {
		return 1
	}
	return 1 / h
}

// walk runs the pen over s, calling emit for every visible glyph.
func walk(f *Font, s string, p Properties, emit func(GlyphQuad)) (maxX float64, lines int) {
	if f == nil || s == "" {
		return 0, 0
	}
	fs := scaleOf(f)
	kern := float64(p.Kerning)
	var spaceAdvance float64
	if sp, ok := f.Glyph(' '); ok {
		spaceAdvance = sp.Advance
	}
	texelW, texelH := 1.0, 1.0
	if f.AtlasWidth > 0 && f.AtlasHeight > 0 {
		texelW, texelH = 1/float64(f.AtlasWidth), 1/float64(f.AtlasHeight)
	}

	var x, y float64
	lines = 1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		next := rune(-1)
		if i < len(s) {
			next, _ = utf8.DecodeRuneInString(s[i:])
		}

		switch r {
		case '\r':
			continue
		case '\n':
			x = 0
			y -= fs*f.LineHeight + float64(p.LineSpacing)
			lines++
			continue
		case ' ':
			adv := spaceAdvance
			if next >= 0 {
				adv = f.Advance(' ', next)
			}
			x += fs*adv + kern
			maxX = max(maxX, x)
			continue
		case '\t':
			x += 4 * (fs*spaceAdvance + kern)
			maxX = max(maxX, x)
			continue
		}

		g, ok := f.Glyph(r)
		if !ok {
			if g, ok = f.Glyph(FallbackRune); !ok {
				continue
			}
		}

		if !g.Plane.Empty() && emit != nil {
			emit(GlyphQuad{
				Rune: g.Rune,
				Min: [2]float32{
					float32(g.Plane.Left*fs + x),
					float32(g.Plane.Bottom*fs + y),
				},
				Max: [2]float32{
					float32(g.Plane.Right*fs + x),
					float32(g.Plane.Top*fs + y),
				},
				UVMin: [2]float32{float32(g.Atlas.Left * texelW), float32(g.Atlas.Bottom * texelH)},
				UVMax: [2]float32{float32(g.Atlas.Right * texelW), float32(g.Atlas.Top * texelH)},
			})
		}

		x += fs*f.Advance(g.Rune, next) + kern
		maxX = max(maxX, x)
	}
	return maxX, lines
}
