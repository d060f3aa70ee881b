package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/hubastard/batch2d/engine/core"
)

// LoadImage decodes a PNG, BMP or WebP file from fsys into tightly packed
// RGBA8 pixels. Rows are flipped so the first row uploaded is the bottom of
// the image, matching texture coordinate v=0 at the bottom.
func LoadImage(fsys fs.FS, name string) (core.TextureDesc, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return core.TextureDesc{}, fmt.Errorf("open %q: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return core.TextureDesc{}, fmt.Errorf("decode image %q: %w", name, err)
	}
	return ImageDesc(img), nil
}

// ImageDesc converts img into a linear, clamped RGBA8 texture description.
func ImageDesc(img image.Image) core.TextureDesc {
	rgba := imageToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	// Repack in tight rows (stride == 4*w), bottom row first.
	out := make([]byte, w*h*4)
	row := w * 4
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+row]
		dst := (h - 1 - y) * row
		copy(out[dst:dst+row], src)
	}

	return core.TextureDesc{
		Width: w, Height: h,
		Format:    core.TextureRGBA8,
		Pixels:    out,
		MinFilter: "linear", MagFilter: "linear",
		WrapU: "clamp", WrapV: "clamp",
	}
}

// LoadTexture decodes name and uploads it. filter overrides both min and mag
// filters when non-empty; pixel art wants "nearest".
func LoadTexture(dev core.Device, fsys fs.FS, name, filter string) (core.Texture, error) {
	desc, err := LoadImage(fsys, name)
	if err != nil {
		return nil, err
	}
	if filter != "" {
		desc.MinFilter, desc.MagFilter = filter, filter
	}
	tex, err := dev.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", name, err)
	}
	return tex, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
