package renderer2d

import (
	"github.com/hubastard/batch2d/engine/colors"
	"github.com/hubastard/batch2d/engine/core"
)

// SubTexture2D describes a UV sub-rect of a full texture.
// Min is the bottom-left UV and Max the top-right, matching images that were
// flipped on load so v=0 is the bottom row.
type SubTexture2D struct {
	Texture  core.Texture
	Min, Max [2]float32
}

// FromPixels builds a subtexture from a pixel rect measured from the top-left
// of the source image, the way atlases are usually authored.
func FromPixels(tex core.Texture, x, y, w, h, atlasW, atlasH int) SubTexture2D {
	fw, fh := float32(atlasW), float32(atlasH)
	return SubTexture2D{
		Texture: tex,
		Min:     [2]float32{float32(x) / fw, 1 - float32(y+h)/fh},
		Max:     [2]float32{float32(x+w) / fw, 1 - float32(y)/fh},
	}
}

// FromGrid builds a subtexture from tile grid coordinates (cx,cy) of cell
// size (cw,ch), spanning sw x sh cells.
func FromGrid(tex core.Texture, cx, cy, cw, ch, sw, sh int) SubTexture2D {
	w, h := tex.Size()
	return FromPixels(tex, cx*cw, cy*ch, sw*cw, sh*ch, w, h)
}

// uvs maps the unit quad corners into the sub-rect.
func (s SubTexture2D) uvs() [4][2]float32 {
	return [4][2]float32{
		{s.Min[0], s.Min[1]},
		{s.Max[0], s.Min[1]},
		{s.Max[0], s.Max[1]},
		{s.Min[0], s.Max[1]},
	}
}

// Sprite is a drawable: a tinted texture, or a flat color when Texture is nil.
type Sprite struct {
	Color        colors.Color
	Texture      core.Texture
	TilingFactor float32
}
