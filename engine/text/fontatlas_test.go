package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/hubastard/batch2d/engine/gfx/record"
)

func TestLoadDefault(t *testing.T) {
	dev := record.New(0)
	f, err := LoadDefault(dev)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	defer f.Close()

	if f.GlyphCount() < 95 {
		t.Fatalf("only %d glyphs baked", f.GlyphCount())
	}
	if f.Ascender <= 0 || f.Descender >= 0 || f.LineHeight <= 0 {
		t.Fatalf("metrics = %+v", f.Metrics)
	}

	tex := f.Atlas.(*record.Texture)
	if tex.Desc.Width != f.AtlasWidth || len(tex.Desc.Pixels) != f.AtlasWidth*f.AtlasHeight*4 {
		t.Fatalf("atlas %dx%d with %d bytes", tex.Desc.Width, tex.Desc.Height, len(tex.Desc.Pixels))
	}

	for _, r := range "Ag?" {
		g, ok := f.Glyph(r)
		if !ok {
			t.Fatalf("glyph %q missing", r)
		}
		if g.Plane.Empty() || g.Advance <= 0 {
			t.Fatalf("glyph %q: %+v", r, g)
		}
		a := g.Atlas
		if a.Left < 0 || a.Top < 0 || a.Right > float64(f.AtlasWidth) || a.Bottom > float64(f.AtlasHeight) {
			t.Fatalf("glyph %q atlas box %+v outside %dx%d", r, a, f.AtlasWidth, f.AtlasHeight)
		}
		// Something was rasterised inside the box.
		covered := false
		for y := int(a.Top); y < int(a.Bottom) && !covered; y++ {
			for x := int(a.Left); x < int(a.Right); x++ {
				if tex.Desc.Pixels[(y*f.AtlasWidth+x)*4+3] != 0 {
					covered = true
					break
				}
			}
		}
		if !covered {
			t.Fatalf("glyph %q has no coverage in the atlas", r)
		}
	}
	if g, _ := f.Glyph('g'); g.Plane.Bottom >= 0 {
		t.Fatalf("descender glyph does not go below the baseline: %+v", g.Plane)
	}

	f.Close()
	if !tex.Released() {
		t.Fatal("Close did not release the atlas")
	}
}

func TestLoadTTFRange(t *testing.T) {
	dev := record.New(0)
	opts := DefaultAtlasOptions()
	opts.First, opts.Last = 'a', 'c'
	opts.Filter = "nearest"

	f, err := LoadTTF(dev, goregular.TTF, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if f.GlyphCount() != 3 {
		t.Fatalf("GlyphCount = %d", f.GlyphCount())
	}
	if _, ok := f.Glyph('d'); ok {
		t.Fatal("glyph outside the range was baked")
	}
	if desc := f.Atlas.(*record.Texture).Desc; desc.MinFilter != "nearest" {
		t.Fatalf("filter = %q", desc.MinFilter)
	}
}

func TestLoadTTFRejectsGarbage(t *testing.T) {
	if _, err := LoadTTF(record.New(0), []byte("not a font"), DefaultAtlasOptions()); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestPackShelves(t *testing.T) {
	glyphs := []measuredGlyph{{r: 'a', w: 100, h: 100}, {r: 'b', w: 100, h: 100}, {r: 'c', w: 100, h: 100}}
	size, pos, err := packShelves(glyphs, 2, 4096)
	if err != nil {
		t.Fatal(err)
	}
	if size != 256 {
		t.Fatalf("atlas size = %d", size)
	}
	// Two per row at 256: the third wraps.
	if pos['b'].X != 104 || pos['c'].Y != 104 {
		t.Fatalf("positions = %v", pos)
	}
	if _, _, err := packShelves([]measuredGlyph{{r: 'x', w: 600, h: 10}}, 0, 512); err == nil {
		t.Fatal("expected an error for a glyph larger than MaxSize")
	}
}
