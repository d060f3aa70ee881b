package scene

import "github.com/go-gl/mathgl/mgl32"

// OrthoCamera2D provides an orthographic camera with position, rotation, zoom.
// The camera looks down -Z; quads with a larger Z are nearer.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	Position                 mgl32.Vec3
	RotationRad              float32
	Zoom                     float32 // 1 = no zoom

	proj, view, vp mgl32.Mat4
	dirty          bool
}

// NewOrtho2D spans width x height world units centered on the origin.
func NewOrtho2D(width, height float32) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1, Zoom: 1}
	c.SetExtent(width, height)
	c.Recalculate()
	return c
}

// NewOrthoAspect spans [-aspect, aspect] x [-1, 1], the usual layout for
// world-space scenes that should not stretch with the window.
func NewOrthoAspect(aspect float32) *OrthoCamera2D {
	return NewOrtho2D(2*aspect, 2)
}

// SetExtent sets the visible width and height at zoom 1.
func (c *OrthoCamera2D) SetExtent(width, height float32) {
	c.Left, c.Right = -width*0.5, width*0.5
	c.Bottom, c.Top = -height*0.5, height*0.5
	c.dirty = true
}

func (c *OrthoCamera2D) Move(dx, dy float32) {
	c.Position[0] += dx
	c.Position[1] += dy
	c.dirty = true
}

func (c *OrthoCamera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }

func (c *OrthoCamera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

// Transform is the camera's world transform (inverse of the view).
func (c *OrthoCamera2D) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]).
		Mul4(mgl32.HomogRotate3DZ(c.RotationRad))
}

func (c *OrthoCamera2D) Projection() mgl32.Mat4 {
	c.update()
	return c.proj
}

func (c *OrthoCamera2D) View() mgl32.Mat4 {
	c.update()
	return c.view
}

func (c *OrthoCamera2D) ViewProjection() mgl32.Mat4 {
	c.update()
	return c.vp
}

// ScreenToWorld maps a framebuffer pixel (origin top-left) to world space.
func (c *OrthoCamera2D) ScreenToWorld(px, py float64, fbW, fbH int) mgl32.Vec2 {
	if fbW <= 0 || fbH <= 0 {
		return mgl32.Vec2{}
	}
	ndc := mgl32.Vec4{
		float32(px/float64(fbW))*2 - 1,
		1 - float32(py/float64(fbH))*2,
		0, 1,
	}
	w := c.ViewProjection().Inv().Mul4x1(ndc)
	return mgl32.Vec2{w[0], w[1]}
}

func (c *OrthoCamera2D) update() {
	if c.dirty {
		c.Recalculate()
	}
}

func (c *OrthoCamera2D) Recalculate() {
	z := c.Zoom
	c.proj = mgl32.Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)
	// view = R(-rot) * T(-pos)
	c.view = mgl32.HomogRotate3DZ(-c.RotationRad).
		Mul4(mgl32.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2]))
	c.vp = c.proj.Mul4(c.view)
	c.dirty = false
}
