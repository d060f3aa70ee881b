package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hubastard/batch2d/engine/assets"
	"github.com/hubastard/batch2d/engine/core"
	glbackend "github.com/hubastard/batch2d/engine/gfx/gl"
	"github.com/hubastard/batch2d/engine/gfx/renderer2d"
	"github.com/hubastard/batch2d/engine/platform"
	"github.com/hubastard/batch2d/engine/profiler"
	"github.com/hubastard/batch2d/engine/text"
)

type App struct {
	cfg   Config
	r2d   *renderer2d.Renderer2D
	font  *text.Font
	stats renderer2d.Statistics
	flush renderer2d.FlushInfo // last flush of the world layer

	world *Layer2D
	debug *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(a.cfg.Profile)

	rcfg := a.cfg.Renderer
	rcfg.FlushHook = func(fi renderer2d.FlushInfo) { a.flush = fi }

	var err error
	a.r2d, err = renderer2d.New(e.Device, rcfg)
	if err != nil {
		slog.Error("create renderer", "error", err)
		os.Exit(1)
	}

	a.font, err = assets.LoadFont(e.Device, os.DirFS(a.cfg.Assets), a.cfg.Font.Path, a.cfg.AtlasOptions())
	if err != nil {
		slog.Error("load font", "error", err)
		os.Exit(1)
	}
	slog.Info("font ready", "glyphs", a.font.GlyphCount(), "atlas", a.font.AtlasWidth)

	a.world = &Layer2D{r2d: a.r2d, font: a.font, stats: &a.stats, assets: os.DirFS(a.cfg.Assets)}
	e.Layers.Push(e, a.world)

	a.debug = &LayerDebug{r2d: a.r2d, font: a.font, stats: &a.stats, flush: &a.flush}
	e.Layers.Push(e, a.debug)
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.font != nil {
		a.font.Close()
	}
	if a.r2d != nil {
		a.r2d.Shutdown()
	}
}

func main() {
	configPath := flag.String("config", ConfigFilename, "sandbox configuration file")
	flag.Parse()

	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	if l, err := cfg.level(); err == nil {
		level.Set(l)
	}
	renderer2d.SetLogger(slog.Default().With("component", "renderer2d"))

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newDevice := func(win core.Window, cfg core.Config) (core.Device, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(&App{cfg: cfg}, cfg.Core(), newWindow, newDevice); err != nil {
		slog.Error("run", "error", err)
		os.Exit(1)
	}
}
