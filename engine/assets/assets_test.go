package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/hubastard/batch2d/engine/gfx/record"
	"github.com/hubastard/batch2d/engine/text"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	// 2x2: top row red, bottom row blue.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
		img.Set(x, 1, color.NRGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadImageFlipsRows(t *testing.T) {
	fsys := fstest.MapFS{"tile.png": {Data: pngBytes(t)}}
	desc, err := LoadImage(fsys, "tile.png")
	if err != nil {
		t.Fatal(err)
	}
	if desc.Width != 2 || desc.Height != 2 || len(desc.Pixels) != 16 {
		t.Fatalf("desc = %dx%d, %d bytes", desc.Width, desc.Height, len(desc.Pixels))
	}
	// First uploaded row is the bottom of the image.
	if desc.Pixels[2] != 255 || desc.Pixels[0] != 0 {
		t.Fatalf("first row = %v, want blue", desc.Pixels[:4])
	}
	if desc.Pixels[8] != 255 || desc.Pixels[10] != 0 {
		t.Fatalf("last row = %v, want red", desc.Pixels[8:12])
	}
}

func TestLoadImageErrors(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("nope")}}
	if _, err := LoadImage(fsys, "missing.png"); err == nil {
		t.Fatal("missing file accepted")
	}
	if _, err := LoadImage(fsys, "bad.png"); err == nil {
		t.Fatal("garbage decoded")
	}
}

func TestLoadTextureFilter(t *testing.T) {
	dev := record.New(0)
	fsys := fstest.MapFS{"tile.png": {Data: pngBytes(t)}}
	tex, err := LoadTexture(dev, fsys, "tile.png", "nearest")
	if err != nil {
		t.Fatal(err)
	}
	desc := tex.(*record.Texture).Desc
	if desc.MinFilter != "nearest" || desc.MagFilter != "nearest" {
		t.Fatalf("filters = %q/%q", desc.MinFilter, desc.MagFilter)
	}
	if w, h := tex.Size(); w != 2 || h != 2 {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestLoadFont(t *testing.T) {
	dev := record.New(0)
	opts := text.DefaultAtlasOptions()
	opts.First, opts.Last = 'a', 'z'

	if _, err := LoadFont(dev, fstest.MapFS{}, "missing.ttf", opts); err == nil {
		t.Fatal("missing font accepted")
	}
	f, err := LoadFont(dev, fstest.MapFS{}, "", opts)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if f.GlyphCount() < 95 {
		t.Fatalf("default font has %d glyphs", f.GlyphCount())
	}
}
