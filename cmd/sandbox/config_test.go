package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/batch2d/engine/gfx/renderer2d"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFilename)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1280 || cfg.Renderer.MaxQuads != renderer2d.DefaultMaxQuads {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
window:
  title: demo
  width: 640
  clear_color: [0.1, 0.2, 0.3, 1]
renderer:
  max_quads: 500
  max_texture_slots: 8
  alpha_sorting: false
depth_order: descending
font:
  size_px: 24
log_level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 640 || cfg.Window.Height != 720 {
		t.Fatalf("window = %+v", cfg.Window)
	}
	r := cfg.Renderer
	if r.MaxQuads != 500 || r.MaxTextureSlots != 8 || r.AlphaSorting || r.MaxLines != renderer2d.DefaultMaxLines {
		t.Fatalf("renderer = %+v", r)
	}
	if r.DepthOrder != renderer2d.DepthDescending {
		t.Fatalf("depth order = %v", r.DepthOrder)
	}
	if cc := cfg.Core().ClearColor; cc != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Fatalf("clear color = %v", cc)
	}
	if opts := cfg.AtlasOptions(); opts.SizePx != 24 || opts.Filter != "linear" {
		t.Fatalf("atlas options = %+v", opts)
	}
	if l, _ := cfg.level(); l.String() != "DEBUG" {
		t.Fatalf("level = %v", l)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"bad yaml", "window: [", "parse config"},
		{"depth order", "depth_order: sideways", "depth_order"},
		{"clear color", "window:\n  clear_color: [1, 2]", "clear_color"},
		{"log level", "log_level: loud", "log_level"},
		{"renderer", "renderer:\n  max_texture_slots: 1", "MaxTextureSlots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
