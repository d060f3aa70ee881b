package renderer2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/batch2d/engine/colors"
	"github.com/hubastard/batch2d/engine/core"
	"github.com/hubastard/batch2d/engine/text"
)

// State is the flush engine state.
type State int

const (
	StateIdle State = iota
	StateAccumulating
	StateFlushing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateFlushing:
		return "flushing"
	default:
		return "unknown"
	}
}

// Camera supplies the combined view-projection for a scene.
type Camera interface {
	ViewProjection() mgl32.Mat4
}

// ProjectionCamera supplies a projection only; the view comes from the
// camera's world transform passed to BeginSceneWithTransform.
type ProjectionCamera interface {
	Projection() mgl32.Mat4
}

// Renderer2D batches quads, circles, lines and text into as few draw calls as
// the pool and texture slot limits allow. It is not safe for concurrent use;
// every call belongs on the render thread.
type Renderer2D struct {
	dev   core.Device
	cfg   Config
	white core.Texture // 1x1 white (slot 0)

	quadPipe, circlePipe, linePipe, textPipe core.Pipeline
	quadMesh, circleMesh, lineMesh, textMesh core.Mesh
	camera                                   core.UniformBuffer

	quads   pool[QuadVertex]
	circles pool[CircleVertex]
	lines   pool[LineVertex]
	texts   pool[TextVertex]

	maxIndices       int
	quadIndexCount   int
	circleIndexCount int
	textIndexCount   int

	slots  textureSlots
	sorter transparencySorter
	glyphs []text.GlyphQuad

	stats        Statistics
	state        State
	inScene      bool
	initialized  bool
	alphaSorting bool
	lineWidth    float32
}

// New creates the renderer: pipelines, meshes, the white texture and the
// camera buffer. Every pool is allocated here and never grows.
func New(dev core.Device, cfg Config) (*Renderer2D, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots := cfg.MaxTextureSlots
	if devSlots := dev.MaxTextureSlots(); devSlots < slots {
		Logger().Warn("texture slots clamped to device limit", "requested", slots, "device", devSlots)
		slots = devSlots
	}
	if slots < 2 {
		return nil, &ConfigError{Field: "MaxTextureSlots", Reason: fmt.Sprintf("device supports only %d texture units", slots)}
	}
	cfg.MaxTextureSlots = slots

	rd := &Renderer2D{
		dev:          dev,
		cfg:          cfg,
		maxIndices:   cfg.MaxQuads * indsPerQuad,
		quads:        newPool[QuadVertex]("quad", cfg.MaxQuads*vertsPerQuad),
		circles:      newPool[CircleVertex]("circle", cfg.MaxQuads*vertsPerQuad),
		lines:        newPool[LineVertex]("line", cfg.MaxLines*2),
		texts:        newPool[TextVertex]("text", cfg.MaxQuads*vertsPerQuad),
		sorter:       newTransparencySorter(cfg.MaxQuads),
		glyphs:       make([]text.GlyphQuad, 0, 256),
		alphaSorting: cfg.AlphaSorting,
		lineWidth:    cfg.LineWidth,
	}
	rd.sorter.order = cfg.DepthOrder

	if err := rd.createResources(slots); err != nil {
		rd.release()
		return nil, err
	}
	rd.slots = newTextureSlots(slots, rd.white)
	dev.SetLineWidth(rd.lineWidth)

	rd.initialized = true
	rd.StartBatch()
	Logger().Info("renderer2d created",
		"max_quads", cfg.MaxQuads,
		"max_lines", cfg.MaxLines,
		"texture_slots", slots,
		"alpha_sorting", cfg.AlphaSorting,
		"depth_order", cfg.DepthOrder.String(),
	)
	return rd, nil
}

func (rd *Renderer2D) createResources(slots int) error {
	var err error
	rd.white, err = rd.dev.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "repeat", WrapV: "repeat",
	})
	if err != nil {
		return fmt.Errorf("renderer2d: white texture: %w", err)
	}

	pipes := map[string]*core.Pipeline{
		pipelineQuad:   &rd.quadPipe,
		pipelineCircle: &rd.circlePipe,
		pipelineLine:   &rd.linePipe,
		pipelineText:   &rd.textPipe,
	}
	for _, src := range builtinShaders(slots) {
		desc := core.PipelineDesc{
			Name:           src.name,
			VertexSource:   src.vert,
			FragmentSource: src.frag,
			Blend:          true,
			UniformBlocks:  map[string]uint32{cameraBlock: cameraBinding},
		}
		if src.samplers {
			desc.SamplerArray = samplerArray
			desc.SamplerCount = slots
		}
		p, err := rd.dev.CreatePipeline(desc)
		if err != nil {
			return fmt.Errorf("renderer2d: pipeline %s: %w", src.name, err)
		}
		*pipes[src.name] = p
	}

	indices := quadIndexTemplate(rd.cfg.MaxQuads)
	meshes := []struct {
		name    string
		dst     *core.Mesh
		layout  core.BufferLayout
		verts   int
		indices []uint32
	}{
		{"quad", &rd.quadMesh, quadLayout, rd.quads.capacity(), indices},
		{"circle", &rd.circleMesh, circleLayout, rd.circles.capacity(), indices},
		{"line", &rd.lineMesh, lineLayout, rd.lines.capacity(), nil},
		{"text", &rd.textMesh, textLayout, rd.texts.capacity(), indices},
	}
	for _, m := range meshes {
		mesh, err := rd.dev.CreateMesh(core.MeshDesc{Layout: m.layout, MaxVertices: m.verts, Indices: m.indices})
		if err != nil {
			return fmt.Errorf("renderer2d: %s mesh: %w", m.name, err)
		}
		*m.dst = mesh
	}

	rd.camera, err = rd.dev.CreateUniformBuffer(int(unsafe.Sizeof(mgl32.Mat4{})), cameraBinding)
	if err != nil {
		return fmt.Errorf("renderer2d: camera buffer: %w", err)
	}
	return nil
}

func (rd *Renderer2D) release() {
	for _, r := range []core.Resource{
		rd.camera,
		rd.textMesh, rd.lineMesh, rd.circleMesh, rd.quadMesh,
		rd.textPipe, rd.linePipe, rd.circlePipe, rd.quadPipe,
		rd.white,
	} {
		if r != nil {
			r.Release()
		}
	}
	rd.camera = nil
	rd.quadMesh, rd.circleMesh, rd.lineMesh, rd.textMesh = nil, nil, nil, nil
	rd.quadPipe, rd.circlePipe, rd.linePipe, rd.textPipe = nil, nil, nil, nil
	rd.white = nil
}

// Shutdown releases every device resource. Calling it twice is a no-op.
func (rd *Renderer2D) Shutdown() {
	if !rd.initialized {
		return
	}
	rd.release()
	rd.initialized = false
	rd.inScene = false
	rd.state = StateIdle
	Logger().Info("renderer2d shut down")
}

// Initialized reports whether the renderer owns live device resources.
func (rd *Renderer2D) Initialized() bool { return rd.initialized }

// State reports the flush engine state.
func (rd *Renderer2D) State() State { return rd.state }

// BeginScene opens a frame with the camera's view-projection.
func (rd *Renderer2D) BeginScene(cam Camera) {
	rd.beginScene(cam.ViewProjection())
}

// BeginSceneWithTransform opens a frame whose view is the inverse of the
// camera's world transform.
func (rd *Renderer2D) BeginSceneWithTransform(cam ProjectionCamera, transform mgl32.Mat4) {
	rd.beginScene(cam.Projection().Mul4(transform.Inv()))
}

func (rd *Renderer2D) beginScene(viewProj mgl32.Mat4) {
	if !rd.initialized {
		panic("renderer2d: BeginScene after Shutdown")
	}
	if rd.inScene {
		panic("renderer2d: BeginScene called twice without EndScene")
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&viewProj[0])), unsafe.Sizeof(viewProj))
	if err := rd.dev.UpdateUniformBuffer(rd.camera, data); err != nil {
		panic(fmt.Sprintf("renderer2d: camera upload: %v", err))
	}
	rd.inScene = true
	rd.StartBatch()
}

// EndScene flushes whatever is pending and closes the frame.
func (rd *Renderer2D) EndScene() {
	if !rd.inScene {
		panic("renderer2d: EndScene without BeginScene")
	}
	rd.Flush()
	rd.inScene = false
}

func (rd *Renderer2D) Clear() { rd.dev.Clear() }

func (rd *Renderer2D) SetClearColor(c colors.Color) { rd.dev.SetClearColor([4]float32(c)) }

// SetLineWidth sets the width used by subsequent line flushes.
func (rd *Renderer2D) SetLineWidth(w float32) {
	rd.lineWidth = w
	rd.dev.SetLineWidth(w)
}

func (rd *Renderer2D) LineWidth() float32 { return rd.lineWidth }

// SetAlphaSorting toggles transparency deferral. Quads already deferred in
// the current batch are still merged at the next flush.
func (rd *Renderer2D) SetAlphaSorting(enabled bool) { rd.alphaSorting = enabled }

func (rd *Renderer2D) AlphaSorting() bool { return rd.alphaSorting }

func (rd *Renderer2D) SetDepthOrder(o DepthOrder) {
	if o != DepthAscending && o != DepthDescending {
		panic(fmt.Sprintf("renderer2d: unknown depth order %d", int(o)))
	}
	rd.sorter.order = o
}

func (rd *Renderer2D) DepthOrder() DepthOrder { return rd.sorter.order }

// Device returns the device the renderer submits to.
func (rd *Renderer2D) Device() core.Device { return rd.dev }

// WhiteTexture is the texture bound to slot 0.
func (rd *Renderer2D) WhiteTexture() core.Texture { return rd.white }
