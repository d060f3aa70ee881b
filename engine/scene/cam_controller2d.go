package scene

import "github.com/hubastard/batch2d/engine/core"

// OrthoController2D: WASD move, Q/E rotate, mouse wheel zoom. The visible
// height is 2/Zoom world units; resizing keeps it and adapts the width.
type OrthoController2D struct {
	MoveSpeed float32 // world units per second at zoom 1
	RotSpeed  float32 // radians per second
	ZoomStep  float32 // zoom factor per wheel notch
	Rotation  bool
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 1.5,
		RotSpeed:  2.0,
		ZoomStep:  1.1,
		Rotation:  true,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(in *core.Input, dt float32) {
	// Move slower when zoomed in so panning feels constant on screen.
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}

	if cc.Rotation {
		rot := cc.RotSpeed * dt
		if in.IsKeyDown(core.KeyQ) {
			cc.Camera.Rotate(rot)
		}
		if in.IsKeyDown(core.KeyE) {
			cc.Camera.Rotate(-rot)
		}
	}
}

// OnEvent handles wheel zoom and window resizes. It never consumes events.
func (cc *OrthoController2D) OnEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.EventScroll:
		z := cc.Camera.Zoom
		switch {
		case e.Yoff > 0:
			z *= cc.ZoomStep
		case e.Yoff < 0:
			z /= cc.ZoomStep
		}
		cc.Camera.SetZoom(z)
	case core.EventResize:
		if e.W > 0 && e.H > 0 {
			cc.Camera.SetExtent(2*float32(e.W)/float32(e.H), 2)
		}
	}
}
