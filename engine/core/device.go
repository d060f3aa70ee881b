package core

// Resource is any GPU object owned by a Device.
type Resource interface {
	Release()
}

// Texture is an opaque texture handle. Handles are compared by identity, so a
// backend must hand out one value per texture and keep returning it.
type Texture interface {
	Resource
	Size() (width, height int)
}

type Pipeline interface {
	Resource
	Name() string
}

// Mesh is a dynamic vertex buffer with an optional static index buffer.
type Mesh interface {
	Resource
	Layout() BufferLayout
	MaxVertices() int
}

// UniformBuffer is bound to a fixed block binding point for its whole life.
type UniformBuffer interface {
	Resource
	Binding() uint32
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureRGB8
	TextureR8
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // may be nil for an uninitialised texture
	MinFilter     string // "nearest" | "linear"
	MagFilter     string
	WrapU, WrapV  string // "clamp" | "repeat"
}

type PipelineDesc struct {
	Name           string
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool

	// SamplerArray names a sampler2D array uniform that is filled once with
	// 0..SamplerCount-1 so slot i samples texture unit i.
	SamplerArray string
	SamplerCount int

	// UniformBlocks maps a std140 block name to its binding point.
	UniformBlocks map[string]uint32
}

type MeshDesc struct {
	Layout      BufferLayout
	MaxVertices int
	Indices     []uint32 // static; nil for non-indexed meshes
}

type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveLines:
		return "lines"
	default:
		return "unknown"
	}
}

// DrawCmd is one draw submission. Count is an index count for indexed meshes
// and a vertex count otherwise. Textures[i] is bound to texture unit i.
type DrawCmd struct {
	Pipe      Pipeline
	Mesh      Mesh
	Primitive Primitive
	Count     int
	Textures  []Texture
	Uniforms  []UniformBuffer
	LineWidth float32
}

type DeviceInfo struct {
	Vendor   string
	Renderer string
	Version  string
}

// Device is the narrow GPU surface the 2D batcher depends on.
type Device interface {
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	CreateUniformBuffer(size int, binding uint32) (UniformBuffer, error)

	// UpdateMesh uploads vertices to the start of the mesh's vertex buffer.
	// Only len(vertices) bytes are transferred.
	UpdateMesh(m Mesh, vertices []byte) error
	UpdateUniformBuffer(u UniformBuffer, data []byte) error

	Draw(cmd DrawCmd)

	Resize(w, h int)
	SetClearColor(c [4]float32)
	Clear()
	SetLineWidth(w float32)
	LineWidth() float32
	MaxTextureSlots() int
	Info() DeviceInfo
	Shutdown()
}
