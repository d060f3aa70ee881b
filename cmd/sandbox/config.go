package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/batch2d/engine/colors"
	"github.com/hubastard/batch2d/engine/core"
	"github.com/hubastard/batch2d/engine/gfx/renderer2d"
	"github.com/hubastard/batch2d/engine/text"
)

const ConfigFilename = "sandbox.yaml"

// Config is the sandbox's on-disk configuration. Missing keys keep their
// defaults.
type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Renderer renderer2d.Config `yaml:"renderer"`
	// DepthOrder is "ascending" or "descending".
	DepthOrder string     `yaml:"depth_order"`
	Font       FontConfig `yaml:"font"`
	LogLevel   string     `yaml:"log_level"`
	Assets     string     `yaml:"assets"` // directory for fonts and textures
	Profile    int        `yaml:"profile_samples"`
}

type WindowConfig struct {
	Title      string    `yaml:"title"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	VSync      bool      `yaml:"vsync"`
	ClearColor []float32 `yaml:"clear_color"`
	TickRate   int       `yaml:"tick_rate"`
}

type FontConfig struct {
	Path   string  `yaml:"path"` // empty: built-in Go Regular
	SizePx float64 `yaml:"size_px"`
	Filter string  `yaml:"filter"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:      "batch2d sandbox",
			Width:      1280,
			Height:     720,
			VSync:      true,
			ClearColor: append([]float32(nil), colors.DarkGray[:]...),
			TickRate:   60,
		},
		Renderer:   renderer2d.DefaultConfig(),
		DepthOrder: "ascending",
		Font:       FontConfig{SizePx: 48, Filter: "linear"},
		LogLevel:   "info",
		Assets:     ".",
		Profile:    1 << 10,
	}
}

// LoadConfig reads path on top of DefaultConfig. A missing file is not an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no sandbox config, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.resolve(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	slog.Info("loaded sandbox config", "path", path)
	return cfg, nil
}

func (c *Config) resolve() error {
	switch c.DepthOrder {
	case "", "ascending":
		c.Renderer.DepthOrder = renderer2d.DepthAscending
	case "descending":
		c.Renderer.DepthOrder = renderer2d.DepthDescending
	default:
		return fmt.Errorf("depth_order: unknown value %q", c.DepthOrder)
	}
	if n := len(c.Window.ClearColor); n != 0 && n != 4 {
		return fmt.Errorf("window.clear_color: want 4 components, got %d", n)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return c.Renderer.Validate()
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Core converts the window section to the engine's run config.
func (c Config) Core() core.Config {
	out := core.Config{
		Title:    c.Window.Title,
		Width:    c.Window.Width,
		Height:   c.Window.Height,
		VSync:    c.Window.VSync,
		TickRate: c.Window.TickRate,
	}
	copy(out.ClearColor[:], c.Window.ClearColor)
	return out
}

func (c Config) AtlasOptions() text.AtlasOptions {
	opts := text.DefaultAtlasOptions()
	if c.Font.SizePx > 0 {
		opts.SizePx = c.Font.SizePx
	}
	if c.Font.Filter != "" {
		opts.Filter = c.Font.Filter
	}
	return opts
}
