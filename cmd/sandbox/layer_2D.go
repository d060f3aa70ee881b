package main

import (
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/batch2d/engine/assets"
	"github.com/hubastard/batch2d/engine/colors"
	"github.com/hubastard/batch2d/engine/core"
	"github.com/hubastard/batch2d/engine/gfx/renderer2d"
	"github.com/hubastard/batch2d/engine/profiler"
	"github.com/hubastard/batch2d/engine/scene"
	"github.com/hubastard/batch2d/engine/text"
)

// ------- 2D world demo -------
type Layer2D struct {
	r2d    *renderer2d.Renderer2D
	font   *text.Font
	stats  *renderer2d.Statistics
	assets fs.FS

	cam     *scene.OrthoCamera2D
	ctrl    *scene.OrthoController2D
	checker core.Texture
	sprite  core.Texture // optional sprite.png from the assets dir
	tiles   renderer2d.SubTexture2D
	t       float32
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrthoAspect(float32(w) / float32(max(h, 1)))
	l.ctrl = scene.NewOrthoController2D(l.cam)

	var err error
	l.checker, err = e.Device.CreateTexture(checkerboard(64, 8))
	if err != nil {
		slog.Error("checkerboard texture", "error", err)
		e.Window.RequestClose()
		return
	}
	l.sprite, err = assets.LoadTexture(e.Device, l.assets, "sprite.png", "nearest")
	if err != nil {
		slog.Debug("no sprite, using the checkerboard", "error", err)
		l.sprite = l.checker
	}
	// Top-left quarter of the checkerboard.
	l.tiles = renderer2d.FromPixels(l.checker, 0, 0, 32, 32, 64, 64)
}

func (l *Layer2D) OnDetach(e *core.Engine) {
	if l.sprite != nil && l.sprite != l.checker {
		l.sprite.Release()
	}
	if l.checker != nil {
		l.checker.Release()
	}
}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e.Input, float32(dt))
	l.t += float32(dt)

	if e.Input.WasPressed(core.KeyEscape) {
		e.Window.RequestClose()
	}
	if e.Input.WasPressed(core.KeyT) {
		l.r2d.SetAlphaSorting(!l.r2d.AlphaSorting())
		slog.Info("alpha sorting", "enabled", l.r2d.AlphaSorting())
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("Layer2D.OnRender")()

	r := l.r2d
	r.ResetStats()
	r.BeginScene(l.cam)

	// Background grid of tinted quads.
	for y := -5; y < 5; y++ {
		for x := -5; x < 5; x++ {
			c := colors.Color{(float32(x) + 5) / 10, 0.4, (float32(y) + 5) / 10, 1}
			r.DrawQuadAt(mgl32.Vec3{float32(x)*0.2 + 0.1, float32(y)*0.2 + 0.1, -0.5}, mgl32.Vec2{0.18, 0.18}, c)
		}
	}

	r.DrawTexturedQuadAt(mgl32.Vec3{-1.4, 0.6, 0}, mgl32.Vec2{0.6, 0.6}, l.checker, 4, colors.White)
	r.DrawSubTexQuad(mgl32.Translate3D(-1.4, -0.1, 0).Mul4(mgl32.Scale3D(0.6, 0.6, 1)), l.tiles, colors.White, 1)
	r.DrawRotatedTexturedQuad(mgl32.Vec3{1.4, 0.6, 0}, mgl32.Vec2{0.5, 0.5}, l.t, l.sprite, 1, colors.White)
	r.DrawRotatedQuad(mgl32.Vec3{1.4, -0.1, 0}, mgl32.Vec2{0.4, 0.4}, -l.t*0.5, colors.Magenta)

	r.DrawCircle(mgl32.Translate3D(0, 0.75, 0).Mul4(mgl32.Scale3D(0.4, 0.4, 1)), colors.Yellow, 1, 0.005, 2)
	r.DrawCircle(mgl32.Translate3D(0, -0.75, 0).Mul4(mgl32.Scale3D(0.4, 0.4, 1)), colors.Cyan, 0.1, 0.01, 3)

	r.DrawLine(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 0}, colors.Red, 4)
	r.DrawRectAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec2{2.1, 2.1}, colors.White, 5)

	// Overlapping translucent quads at different depths; T toggles sorting.
	s := float32(math.Sin(float64(l.t)))
	r.DrawQuadAt(mgl32.Vec3{0.2 * s, 0, 0.5}, mgl32.Vec2{0.6, 0.6}, colors.Red.WithAlpha(0.5))
	r.DrawQuadAt(mgl32.Vec3{-0.2 * s, 0, 0.2}, mgl32.Vec2{0.6, 0.6}, colors.Blue.WithAlpha(0.5))
	r.DrawQuadAt(mgl32.Vec3{0, 0.2 * s, 0.3}, mgl32.Vec2{0.6, 0.6}, colors.Green.WithAlpha(0.5))

	r.DrawString(mgl32.Translate3D(-1.5, 1.1, 0).Mul4(mgl32.Scale3D(0.12, 0.12, 1)), l.font,
		"batch2d: quads, circles, lines, text", text.DefaultProperties(), 6)

	r.EndScene()
	*l.stats = r.Stats()
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	l.ctrl.OnEvent(ev)
	return false
}

// checkerboard builds a size x size texture with cell x cell squares.
func checkerboard(size, cell int) core.TextureDesc {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{0xee, 0xee, 0xee, 0xff}
	dark := color.RGBA{0x44, 0x44, 0x55, 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	desc := assets.ImageDesc(img)
	desc.MinFilter, desc.MagFilter = "nearest", "nearest"
	desc.WrapU, desc.WrapV = "repeat", "repeat"
	return desc
}
