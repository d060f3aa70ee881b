package assets

import (
	"fmt"
	"io/fs"

	"github.com/hubastard/batch2d/engine/core"
	"github.com/hubastard/batch2d/engine/text"
)

// LoadFont reads a TrueType/OpenType file from fsys and bakes its atlas.
// An empty name selects the built-in Go Regular face.
func LoadFont(dev core.Device, fsys fs.FS, name string, opts text.AtlasOptions) (*text.Font, error) {
	if name == "" {
		return text.LoadDefault(dev)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	f, err := text.LoadTTF(dev, data, opts)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	return f, nil
}
