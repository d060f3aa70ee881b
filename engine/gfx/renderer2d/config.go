package renderer2d

import "strconv"

const (
	DefaultMaxQuads        = 20000
	DefaultMaxLines        = 10000
	DefaultMaxTextureSlots = 32
)

// FlushInfo describes one flush: how many primitives of each kind it
// submitted and how many texture slots were bound.
type FlushInfo struct {
	Quads    int
	Circles  int
	Lines    int
	Glyphs   int
	Textures int
}

// Config sizes the pools and selects batching policy. Zero fields take the
// defaults from DefaultConfig.
type Config struct {
	// MaxQuads bounds the quad, circle and text pools (each holds
	// MaxQuads*4 vertices between two flushes).
	MaxQuads int `yaml:"max_quads"`

	// MaxLines bounds the line pool (MaxLines*2 vertices).
	MaxLines int `yaml:"max_lines"`

	// MaxTextureSlots is clamped to what the device supports.
	MaxTextureSlots int `yaml:"max_texture_slots"`

	// AlphaSorting defers quads with alpha < 1 and draws them depth-sorted
	// after the opaque quads of the same batch.
	AlphaSorting bool `yaml:"alpha_sorting"`

	DepthOrder DepthOrder `yaml:"-"`

	LineWidth float32 `yaml:"line_width"`

	// FlushHook, when set, is called after every flush that submitted
	// something.
	FlushHook func(FlushInfo) `yaml:"-"`
}

// DefaultConfig returns the renderer defaults.
func DefaultConfig() Config {
	return Config{
		MaxQuads:        DefaultMaxQuads,
		MaxLines:        DefaultMaxLines,
		MaxTextureSlots: DefaultMaxTextureSlots,
		AlphaSorting:    true,
		DepthOrder:      DepthAscending,
		LineWidth:       2,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.MaxQuads == 0 {
		c.MaxQuads = d.MaxQuads
	}
	if c.MaxLines == 0 {
		c.MaxLines = d.MaxLines
	}
	if c.MaxTextureSlots == 0 {
		c.MaxTextureSlots = d.MaxTextureSlots
	}
	if c.LineWidth == 0 {
		c.LineWidth = d.LineWidth
	}
}

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if c.MaxQuads < 1 {
		return &ConfigError{Field: "MaxQuads", Reason: "must be positive"}
	}
	// Indices are uint32.
	if uint64(c.MaxQuads)*vertsPerQuad > 1<<32-1 {
		return &ConfigError{Field: "MaxQuads", Reason: "exceeds 32-bit index range"}
	}
	if c.MaxLines < 1 {
		return &ConfigError{Field: "MaxLines", Reason: "must be positive"}
	}
	if c.MaxTextureSlots < 2 {
		return &ConfigError{Field: "MaxTextureSlots", Reason: "must be at least 2 (slot 0 is reserved), got " + strconv.Itoa(c.MaxTextureSlots)}
	}
	if c.DepthOrder != DepthAscending && c.DepthOrder != DepthDescending {
		return &ConfigError{Field: "DepthOrder", Reason: "unknown order " + strconv.Itoa(int(c.DepthOrder))}
	}
	if c.LineWidth < 0 {
		return &ConfigError{Field: "LineWidth", Reason: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "renderer2d: invalid config." + e.Field + ": " + e.Reason
}
