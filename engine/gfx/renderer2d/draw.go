package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/batch2d/engine/colors"
	"github.com/hubastard/batch2d/engine/core"
)

func translateScale(pos mgl32.Vec3, size mgl32.Vec2) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

func translateRotateScale(pos mgl32.Vec3, size mgl32.Vec2, rotation float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DZ(rotation)).
		Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

func corner(transform mgl32.Mat4, i int) [3]float32 {
	p := transform.Mul4x1(mgl32.Vec4{quadCorners[i][0], quadCorners[i][1], 0, 1})
	return [3]float32{p[0], p[1], p[2]}
}

// DrawQuad draws a flat colored unit quad transformed by transform.
func (rd *Renderer2D) DrawQuad(transform mgl32.Mat4, color colors.Color, pickID int32) {
	rd.drawQuad(transform, nil, &quadUVs, 1, color, pickID)
}

// DrawTexturedQuad draws tex on the unit quad, repeating it tiling times and
// multiplying by tint.
func (rd *Renderer2D) DrawTexturedQuad(transform mgl32.Mat4, tex core.Texture, tiling float32, tint colors.Color, pickID int32) {
	rd.drawQuad(transform, tex, &quadUVs, tiling, tint, pickID)
}

// DrawSubTexQuad draws an atlas sub-rect on the unit quad.
func (rd *Renderer2D) DrawSubTexQuad(transform mgl32.Mat4, sub SubTexture2D, tint colors.Color, pickID int32) {
	uvs := sub.uvs()
	rd.drawQuad(transform, sub.Texture, &uvs, 1, tint, pickID)
}

func (rd *Renderer2D) DrawQuadAt(pos mgl32.Vec3, size mgl32.Vec2, color colors.Color) {
	rd.DrawQuad(translateScale(pos, size), color, NoPick)
}

func (rd *Renderer2D) DrawTexturedQuadAt(pos mgl32.Vec3, size mgl32.Vec2, tex core.Texture, tiling float32, tint colors.Color) {
	rd.DrawTexturedQuad(translateScale(pos, size), tex, tiling, tint, NoPick)
}

// DrawRotatedQuad rotates around the quad center; rotation is in radians.
func (rd *Renderer2D) DrawRotatedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, color colors.Color) {
	rd.DrawQuad(translateRotateScale(pos, size, rotation), color, NoPick)
}

func (rd *Renderer2D) DrawRotatedTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, tex core.Texture, tiling float32, tint colors.Color) {
	rd.DrawTexturedQuad(translateRotateScale(pos, size, rotation), tex, tiling, tint, NoPick)
}

// DrawSprite draws s textured when it has a texture, flat colored otherwise.
func (rd *Renderer2D) DrawSprite(transform mgl32.Mat4, s Sprite, pickID int32) {
	if s.Texture != nil {
		tiling := s.TilingFactor
		if tiling == 0 {
			tiling = 1
		}
		rd.DrawTexturedQuad(transform, s.Texture, tiling, s.Color, pickID)
		return
	}
	rd.DrawQuad(transform, s.Color, pickID)
}

func (rd *Renderer2D) drawQuad(transform mgl32.Mat4, tex core.Texture, uvs *[4][2]float32, tiling float32, color colors.Color, pickID int32) {
	rd.beginEncode()
	rd.splitIfFull("quad", rd.quadIndexCount >= rd.maxIndices)
	texIndex := rd.slotFor(tex)

	var vs [vertsPerQuad]QuadVertex
	for i := range vs {
		vs[i] = QuadVertex{
			Position:     corner(transform, i),
			Color:        color,
			TexCoord:     uvs[i],
			TexIndex:     texIndex,
			TilingFactor: tiling,
			PickID:       pickID,
		}
	}
	if rd.alphaSorting && !color.Opaque() {
		rd.sorter.push(vs, transform[14])
	} else {
		rd.quads.push(vs[:]...)
	}
	rd.quadIndexCount += indsPerQuad
	rd.stats.QuadCount++
}

// DrawCircle draws a ring inscribed in the unit quad. thickness is 1 for a
// filled disc; fade softens the edges.
//
// Circles are written straight to their pool: they do not take part in
// transparency sorting, so translucent circles blend in submission order.
func (rd *Renderer2D) DrawCircle(transform mgl32.Mat4, color colors.Color, thickness, fade float32, pickID int32) {
	rd.drawCircle(transform, nil, 1, color, thickness, fade, pickID)
}

func (rd *Renderer2D) DrawTexturedCircle(transform mgl32.Mat4, tex core.Texture, tiling float32, tint colors.Color, thickness, fade float32, pickID int32) {
	rd.drawCircle(transform, tex, tiling, tint, thickness, fade, pickID)
}

func (rd *Renderer2D) drawCircle(transform mgl32.Mat4, tex core.Texture, tiling float32, color colors.Color, thickness, fade float32, pickID int32) {
	rd.beginEncode()
	rd.splitIfFull("circle", rd.circleIndexCount >= rd.maxIndices)
	texIndex := rd.slotFor(tex)

	var vs [vertsPerQuad]CircleVertex
	for i := range vs {
		vs[i] = CircleVertex{
			WorldPosition: corner(transform, i),
			LocalPosition: [2]float32{quadCorners[i][0] * 2, quadCorners[i][1] * 2},
			Color:         color,
			Thickness:     thickness,
			Fade:          fade,
			TexCoord:      quadUVs[i],
			TexIndex:      texIndex,
			TilingFactor:  tiling,
			PickID:        pickID,
		}
	}
	rd.circles.push(vs[:]...)
	rd.circleIndexCount += indsPerQuad
	rd.stats.QuadCount++
	rd.stats.CircleCount++
}

// DrawLine draws a segment with the current line width.
func (rd *Renderer2D) DrawLine(p0, p1 mgl32.Vec3, color colors.Color, pickID int32) {
	rd.beginEncode()
	rd.splitIfFull("line", rd.lines.remaining() < 2)
	rd.lines.push(
		LineVertex{Position: p0, Color: color, PickID: pickID},
		LineVertex{Position: p1, Color: color, PickID: pickID},
	)
	rd.stats.LineCount++
}

// DrawRect outlines the transformed unit quad with four lines.
func (rd *Renderer2D) DrawRect(transform mgl32.Mat4, color colors.Color, pickID int32) {
	var p [vertsPerQuad]mgl32.Vec3
	for i := range p {
		p[i] = corner(transform, i)
	}
	for i := range p {
		rd.DrawLine(p[i], p[(i+1)%vertsPerQuad], color, pickID)
	}
}

// DrawRectAt outlines an axis-aligned rect centered on pos.
func (rd *Renderer2D) DrawRectAt(pos mgl32.Vec3, size mgl32.Vec2, color colors.Color, pickID int32) {
	rd.DrawRect(translateScale(pos, size), color, pickID)
}
