package main

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/batch2d/engine/colors"
	"github.com/hubastard/batch2d/engine/core"
	"github.com/hubastard/batch2d/engine/gfx/renderer2d"
	"github.com/hubastard/batch2d/engine/profiler"
	"github.com/hubastard/batch2d/engine/scene"
	"github.com/hubastard/batch2d/engine/scratch"
	"github.com/hubastard/batch2d/engine/text"
)

const (
	overlayPad  = 16
	overlayLine = 18 // pixels per layout unit
)

// ------- Stats overlay in screen pixels, origin bottom-left -------
type LayerDebug struct {
	r2d   *renderer2d.Renderer2D
	font  *text.Font
	stats *renderer2d.Statistics
	flush *renderer2d.FlushInfo

	cam   *scene.OrthoCamera2D
	buf   *scratch.Buffer
	w, h  float32
	last  time.Time
	frame time.Duration
	tick  int
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.buf = scratch.New(4096)
	w, h := e.Window.FramebufferSize()
	l.resize(w, h)
}

func (l *LayerDebug) resize(w, h int) {
	l.w, l.h = float32(w), float32(h)
	l.cam = scene.NewOrtho2D(l.w, l.h)
	l.cam.Move(l.w/2, l.h/2)
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) { l.tick++ }

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerDebug.OnRender")()

	now := time.Now()
	if !l.last.IsZero() {
		l.frame = now.Sub(l.last)
	}
	l.last = now

	l.build(e.Device.Info())

	// Line height in layout units is about 1.25 em.
	lines := float32(l.buf.Lines())
	panelH := lines*1.25*overlayLine + 2*overlayPad
	panelW := float32(340)
	top := l.h - overlayPad

	l.r2d.BeginScene(l.cam)
	l.r2d.DrawQuadAt(mgl32.Vec3{overlayPad + panelW/2, top - panelH/2, 0}, mgl32.Vec2{panelW, panelH}, colors.Black.WithAlpha(0.5))

	props := text.DefaultProperties()
	for i := 0; i < l.buf.Lines(); i++ {
		y := top - overlayPad - float32(i+1)*1.25*overlayLine
		props.Color = colors.White
		if i == 0 || l.buf.Line(i)[0] != ' ' {
			props.Color = colors.Yellow
		}
		m := mgl32.Translate3D(2*overlayPad, y, 0.1).Mul4(mgl32.Scale3D(overlayLine, overlayLine, 1))
		l.r2d.DrawString(m, l.font, l.buf.Line(i), props, -1)
	}
	l.r2d.EndScene()
}

func (l *LayerDebug) build(gpu core.DeviceInfo) {
	b := l.buf
	s := l.stats
	ms := float64(l.frame.Microseconds()) / 1000

	b.Reset()
	b.S("Frame ").I(l.tick).End()
	b.S("  ").F(ms, 3).S(" ms (")
	if ms > 0 {
		b.F(1000/ms, 1)
	} else {
		b.C('-')
	}
	b.S(" FPS)").End()

	b.S("2D Renderer").End()
	b.S("  Draw calls: ").I(s.DrawCalls).End()
	b.S("  Quads: ").I(s.QuadCount).S("  Circles: ").I(s.CircleCount).End()
	b.S("  Lines: ").I(s.LineCount).S("  Glyphs: ").I(s.GlyphCount).End()
	b.S("  Vertices: ").I(s.TotalVertexCount()).S("  Indices: ").I(s.TotalIndexCount()).End()
	b.S("  Textures: ").I(s.TextureCount).End()
	b.S("  Alpha sorting: ").Bool(l.r2d.AlphaSorting()).S(" (").S(l.r2d.DepthOrder().String()).C(')').End()
	f := l.flush
	b.S("  Last flush: q").I(f.Quads).S(" c").I(f.Circles).S(" l").I(f.Lines).S(" g").I(f.Glyphs).S(" t").I(f.Textures).End()

	b.S("Memory").End()
	b.S("  Usage: ").F(float64(profiler.MemoryUsage())/(1<<20), 3).S(" MB").End()
	b.S("  Allocs: ").I(int(profiler.MemoryAllocs())).End()
	b.S("  Goroutines: ").I(profiler.NumGoroutine()).S("  CPUs: ").I(profiler.NumCPU()).End()

	b.S("GPU").End()
	b.S("  ").S(gpu.Vendor).End()
	b.S("  ").S(gpu.Renderer).End()
	b.S("  ").S(gpu.Version).End()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyP && v.Mods&core.ModCtrl != 0 {
			if path, err := profiler.OpenProfilerGraph(); err != nil {
				slog.Warn("profiler dump", "error", err)
			} else if path != "" {
				slog.Info("speedscope dump", "path", path)
			}
			return true
		}
	case core.EventResize:
		if v.W > 0 && v.H > 0 {
			l.resize(v.W, v.H)
		}
	}
	return false
}
