package text

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/hubastard/batch2d/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// AtlasOptions control how a TTF is rasterised into a glyph atlas.
type AtlasOptions struct {
	SizePx      float64 // em size in atlas pixels
	Padding     int     // empty pixels around every glyph
	First, Last rune    // inclusive charset range
	MaxSize     int     // largest square atlas to try
	Filter      string  // "linear" | "nearest"
}

// DefaultAtlasOptions covers Basic Latin and Latin-1 at 48px.
func DefaultAtlasOptions() AtlasOptions {
	return AtlasOptions{
		SizePx:  48,
		Padding: 2,
		First:   0x20,
		Last:    0xFF,
		MaxSize: 4096,
		Filter:  "linear",
	}
}

// LoadDefault builds an atlas from the embedded Go Regular font.
func LoadDefault(dev core.Device) (*Font, error) {
	return LoadTTF(dev, goregular.TTF, DefaultAtlasOptions())
}

type measuredGlyph struct {
	r      rune
	x0, y0 int // pixel box relative to the pen, Y down
	w, h   int
	adv    float64
}

// LoadTTF builds a white glyph atlas (alpha coverage) from TTF/OTF bytes and
// uploads it as an RGBA texture.
func LoadTTF(dev core.Device, data []byte, opts AtlasOptions) (*Font, error) {
	if opts.SizePx <= 0 {
		opts.SizePx = DefaultAtlasOptions().SizePx
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultAtlasOptions().MaxSize
	}
	if opts.Last < opts.First || opts.Last == 0 {
		opts.First, opts.Last = DefaultAtlasOptions().First, DefaultAtlasOptions().Last
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: opts.SizePx, DPI: 72, Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	size := opts.SizePx
	m := face.Metrics()
	metrics := Metrics{
		Ascender:   fixedToFloat(m.Ascent) / size,
		Descender:  -fixedToFloat(m.Descent) / size,
		LineHeight: fixedToFloat(m.Height) / size,
	}

	var buf sfnt.Buffer
	measure := make([]measuredGlyph, 0, int(opts.Last-opts.First)+1)
	for r := opts.First; r <= opts.Last; r++ {
		if idx, err := ft.GlyphIndex(&buf, r); err != nil || idx == 0 {
			continue
		}
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		x0, y0 := br.Min.X.Floor(), br.Min.Y.Floor()
		x1, y1 := br.Max.X.Ceil(), br.Max.Y.Ceil()
		measure = append(measure, measuredGlyph{
			r: r, x0: x0, y0: y0, w: x1 - x0, h: y1 - y0,
			adv: fixedToFloat(adv),
		})
	}
	if len(measure) == 0 {
		_ = face.Close()
		return nil, ErrNoGlyphs
	}

	atlasSize, pos, err := packShelves(measure, opts.Padding, opts.MaxSize)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	mask := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face}

	glyphs := make([]Glyph, 0, len(measure))
	for _, g := range measure {
		gl := Glyph{Rune: g.r, Advance: g.adv / size}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			// The drawer's dot is the pen on the baseline.
			drawer.Dot = fixed.P(p.X-g.x0, p.Y-g.y0)
			drawer.DrawString(string(g.r))

			gl.Plane = Bounds{
				Left:   float64(g.x0) / size,
				Bottom: -float64(g.y0+g.h) / size,
				Right:  float64(g.x0+g.w) / size,
				Top:    -float64(g.y0) / size,
			}
			gl.Atlas = Bounds{
				Left:   float64(p.X),
				Bottom: float64(p.Y + g.h),
				Right:  float64(p.X + g.w),
				Top:    float64(p.Y),
			}
		}
		glyphs = append(glyphs, gl)
	}

	kerning := make(map[[2]rune]float64)
	for _, a := range measure {
		for _, b := range measure {
			if dx := face.Kern(a.r, b.r); dx != 0 {
				kerning[[2]rune{a.r, b.r}] = fixedToFloat(dx) / size
			}
		}
	}

	rgba := make([]byte, atlasSize*atlasSize*4)
	for i, a := range mask.Pix {
		rgba[i*4+0] = 255
		rgba[i*4+1] = 255
		rgba[i*4+2] = 255
		rgba[i*4+3] = a
	}
	filter := opts.Filter
	if filter == "" {
		filter = "linear"
	}
	tex, err := dev.CreateTexture(core.TextureDesc{
		Width: atlasSize, Height: atlasSize,
		Format:    core.TextureRGBA8,
		Pixels:    rgba,
		MinFilter: filter,
		MagFilter: filter,
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}

	f, err := NewFont(metrics, glyphs, kerning, tex, atlasSize, atlasSize)
	if err != nil {
		tex.Release()
		_ = face.Close()
		return nil, err
	}
	f.close = func() { _ = face.Close() }

	slog.Debug("font atlas built",
		"glyphs", len(glyphs),
		"kerningPairs", len(kerning),
		"atlas", atlasSize,
		"sizePx", size)
	return f, nil
}

// packShelves places glyphs in rows, doubling a square atlas from 256 until
// everything fits.
func packShelves(glyphs []measuredGlyph, padding, maxSize int) (int, map[rune]image.Point, error) {
	for atlasSize := 256; atlasSize <= maxSize; atlasSize *= 2 {
		pos, ok := tryPack(glyphs, padding, atlasSize)
		if ok {
			return atlasSize, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas too large (>%d)", maxSize)
}

func tryPack(glyphs []measuredGlyph, padding, atlasSize int) (map[rune]image.Point, bool) {
	x, y, rowH := padding, padding, 0
	pos := make(map[rune]image.Point, len(glyphs))
	for _, g := range glyphs {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if g.w+padding*2 > atlasSize || g.h+padding*2 > atlasSize {
			return nil, false
		}
		if x+g.w+padding > atlasSize {
			x = padding
			y += rowH + padding
			rowH = 0
		}
		if y+g.h+padding > atlasSize {
			return nil, false
		}
		pos[g.r] = image.Pt(x, y)
		x += g.w + padding
		rowH = max(rowH, g.h)
	}
	return pos, true
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
