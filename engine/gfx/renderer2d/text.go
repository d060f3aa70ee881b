package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/batch2d/engine/text"
)

// DrawString lays s out with font and writes one quad per visible glyph,
// transformed by transform. Layout units are one line height, so scale the
// transform by the desired text size. Glyphs go to the text pool and are
// never depth sorted.
func (rd *Renderer2D) DrawString(transform mgl32.Mat4, font *text.Font, s string, props text.Properties, pickID int32) {
	if font == nil || s == "" {
		return
	}
	rd.beginEncode()
	rd.glyphs = text.Layout(rd.glyphs[:0], font, s, props)
	if len(rd.glyphs) == 0 {
		return
	}

	texIndex := rd.slotFor(font.Atlas)
	for _, g := range rd.glyphs {
		if rd.textIndexCount >= rd.maxIndices {
			rd.splitIfFull("text", true)
			texIndex = rd.slotFor(font.Atlas)
		}
		pos := [vertsPerQuad][2]float32{
			{g.Min[0], g.Min[1]},
			{g.Max[0], g.Min[1]},
			{g.Max[0], g.Max[1]},
			{g.Min[0], g.Max[1]},
		}
		uv := [vertsPerQuad][2]float32{
			{g.UVMin[0], g.UVMin[1]},
			{g.UVMax[0], g.UVMin[1]},
			{g.UVMax[0], g.UVMax[1]},
			{g.UVMin[0], g.UVMax[1]},
		}
		var vs [vertsPerQuad]TextVertex
		for i := range vs {
			p := transform.Mul4x1(mgl32.Vec4{pos[i][0], pos[i][1], 0, 1})
			vs[i] = TextVertex{
				Position: [3]float32{p[0], p[1], p[2]},
				Color:    props.Color,
				TexCoord: uv[i],
				TexIndex: texIndex,
				PickID:   pickID,
			}
		}
		rd.texts.push(vs[:]...)
		rd.textIndexCount += indsPerQuad
		rd.stats.QuadCount++
		rd.stats.GlyphCount++
	}
}
