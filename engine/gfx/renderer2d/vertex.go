package renderer2d

import (
	"fmt"
	"unsafe"

	"github.com/hubastard/batch2d/engine/core"
)

// NoPick marks a vertex that belongs to no pickable object.
const NoPick int32 = -1

// QuadVertex is the quad pool record.
type QuadVertex struct {
	Position     [3]float32
	Color        [4]float32
	TexCoord     [2]float32
	TexIndex     float32
	TilingFactor float32
	PickID       int32
}

// CircleVertex is the circle pool record. LocalPosition spans [-1,1] across
// the quad so the fragment shader can compute the distance to the rim.
type CircleVertex struct {
	WorldPosition [3]float32
	LocalPosition [2]float32
	Color         [4]float32
	Thickness     float32
	Fade          float32
	TexCoord      [2]float32
	TexIndex      float32
	TilingFactor  float32
	PickID        int32
}

type LineVertex struct {
	Position [3]float32
	Color    [4]float32
	PickID   int32
}

type TextVertex struct {
	Position [3]float32
	Color    [4]float32
	TexCoord [2]float32
	TexIndex float32
	PickID   int32
}

var (
	quadLayout = core.NewBufferLayout(
		core.BufferElement{Type: core.ShaderFloat3, Name: "a_Position"},
		core.BufferElement{Type: core.ShaderFloat4, Name: "a_Color"},
		core.BufferElement{Type: core.ShaderFloat2, Name: "a_TexCoord"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_TexIndex"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_TilingFactor"},
		core.BufferElement{Type: core.ShaderInt, Name: "a_PickID"},
	)
	circleLayout = core.NewBufferLayout(
		core.BufferElement{Type: core.ShaderFloat3, Name: "a_WorldPosition"},
		core.BufferElement{Type: core.ShaderFloat2, Name: "a_LocalPosition"},
		core.BufferElement{Type: core.ShaderFloat4, Name: "a_Color"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_Thickness"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_Fade"},
		core.BufferElement{Type: core.ShaderFloat2, Name: "a_TexCoord"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_TexIndex"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_TilingFactor"},
		core.BufferElement{Type: core.ShaderInt, Name: "a_PickID"},
	)
	lineLayout = core.NewBufferLayout(
		core.BufferElement{Type: core.ShaderFloat3, Name: "a_Position"},
		core.BufferElement{Type: core.ShaderFloat4, Name: "a_Color"},
		core.BufferElement{Type: core.ShaderInt, Name: "a_PickID"},
	)
	textLayout = core.NewBufferLayout(
		core.BufferElement{Type: core.ShaderFloat3, Name: "a_Position"},
		core.BufferElement{Type: core.ShaderFloat4, Name: "a_Color"},
		core.BufferElement{Type: core.ShaderFloat2, Name: "a_TexCoord"},
		core.BufferElement{Type: core.ShaderFloat, Name: "a_TexIndex"},
		core.BufferElement{Type: core.ShaderInt, Name: "a_PickID"},
	)
)

// checkLayout panics when a Go vertex struct and its GPU layout disagree.
func checkLayout(name string, size uintptr, l core.BufferLayout) {
	if int(size) != l.Stride {
		panic(fmt.Sprintf("renderer2d: %s vertex is %d bytes, layout stride is %d", name, size, l.Stride))
	}
}

func init() {
	checkLayout("quad", unsafe.Sizeof(QuadVertex{}), quadLayout)
	checkLayout("circle", unsafe.Sizeof(CircleVertex{}), circleLayout)
	checkLayout("line", unsafe.Sizeof(LineVertex{}), lineLayout)
	checkLayout("text", unsafe.Sizeof(TextVertex{}), textLayout)
}

// Canonical unit quad, counter-clockwise from bottom-left.
var (
	quadCorners = [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	quadUVs     = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
)

const (
	vertsPerQuad = 4
	indsPerQuad  = 6
)

// quadIndexTemplate returns 0,1,2,2,3,0 repeated for maxQuads quads, each
// offset by four vertices.
func quadIndexTemplate(maxQuads int) []uint32 {
	inds := make([]uint32, maxQuads*indsPerQuad)
	var offset uint32
	for i := 0; i < len(inds); i += indsPerQuad {
		inds[i+0] = offset + 0
		inds[i+1] = offset + 1
		inds[i+2] = offset + 2
		inds[i+3] = offset + 2
		inds[i+4] = offset + 3
		inds[i+5] = offset + 0
		offset += vertsPerQuad
	}
	return inds
}
