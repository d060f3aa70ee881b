package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/batch2d/engine/core"
)

// near compares with an absolute tolerance; mgl32's ApproxEqual is relative
// and too strict around zero.
func near(a, b []float32) bool {
	for i := range a {
		tol := float32(1e-4) * (1 + abs(b[i]))
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return len(a) == len(b)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func nearVec(a, b mgl32.Vec2) bool { return near(a[:], b[:]) }
func nearMat(a, b mgl32.Mat4) bool { return near(a[:], b[:]) }

func project(m mgl32.Mat4, x, y float32) mgl32.Vec2 {
	p := m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return mgl32.Vec2{p[0], p[1]}
}

func TestOrthoCameraProjectsExtentToNDC(t *testing.T) {
	cam := NewOrtho2D(8, 4)
	tests := []struct {
		x, y float32
		want mgl32.Vec2
	}{
		{0, 0, mgl32.Vec2{0, 0}},
		{4, 2, mgl32.Vec2{1, 1}},
		{-4, -2, mgl32.Vec2{-1, -1}},
		{2, -1, mgl32.Vec2{0.5, -0.5}},
	}
	for _, tt := range tests {
		if got := project(cam.ViewProjection(), tt.x, tt.y); !nearVec(got, tt.want) {
			t.Errorf("(%v,%v) -> %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestOrthoCameraMoveZoomRotate(t *testing.T) {
	cam := NewOrthoAspect(1)
	cam.Move(1, 0)
	if got := project(cam.ViewProjection(), 1, 0); !nearVec(got, mgl32.Vec2{0, 0}) {
		t.Fatalf("camera target not centered: %v", got)
	}

	cam.SetZoom(2)
	if got := project(cam.ViewProjection(), 1.5, 0); !nearVec(got, mgl32.Vec2{1, 0}) {
		t.Fatalf("zoomed point = %v", got)
	}

	cam.SetZoom(0)
	if cam.Zoom != 0.05 {
		t.Fatalf("zoom not clamped: %v", cam.Zoom)
	}

	cam = NewOrthoAspect(1)
	cam.Rotate(mgl32.DegToRad(90))
	// With the camera turned left, world +Y appears to the right.
	if got := project(cam.ViewProjection(), 0, 1); !nearVec(got, mgl32.Vec2{1, 0}) {
		t.Fatalf("rotated point = %v", got)
	}
}

func TestViewIsInverseOfTransform(t *testing.T) {
	cam := NewOrtho2D(10, 10)
	cam.Move(3, -2)
	cam.Rotate(0.7)
	if !nearMat(cam.View().Mul4(cam.Transform()), mgl32.Ident4()) {
		t.Fatal("view * transform != identity")
	}
	want := cam.Projection().Mul4(cam.Transform().Inv())
	if !nearMat(cam.ViewProjection(), want) {
		t.Fatal("view-projection differs from projection * inverse(transform)")
	}
}

func TestScreenToWorld(t *testing.T) {
	cam := NewOrtho2D(800, 600)
	got := cam.ScreenToWorld(800, 0, 800, 600)
	if !nearVec(got, mgl32.Vec2{400, 300}) {
		t.Fatalf("top-right pixel = %v", got)
	}
	if got := cam.ScreenToWorld(1, 1, 0, 0); got != (mgl32.Vec2{}) {
		t.Fatalf("empty framebuffer = %v", got)
	}
}

func TestControllerInput(t *testing.T) {
	cam := NewOrthoAspect(1)
	cc := NewOrthoController2D(cam)
	in := core.NewInput()

	in.Handle(core.EventKey{Key: core.KeyD, Down: true})
	cc.Update(in, 1)
	if cam.Position[0] != cc.MoveSpeed {
		t.Fatalf("position after D = %v", cam.Position)
	}

	cc.OnEvent(core.EventScroll{Yoff: 1})
	if !mgl32.FloatEqual(cam.Zoom, cc.ZoomStep) {
		t.Fatalf("zoom after wheel = %v", cam.Zoom)
	}

	cc.OnEvent(core.EventResize{W: 400, H: 200})
	if cam.Right != 2 || cam.Top != 1 {
		t.Fatalf("extent after resize = %v..%v", cam.Right, cam.Top)
	}
}
