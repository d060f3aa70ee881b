package glbackend

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/batch2d/engine/core"
)

// RendererGL implements core.Device on an OpenGL 3.3 core context. The
// context must be current on the calling (locked) thread.
type RendererGL struct {
	win       core.Window
	info      core.DeviceInfo
	maxSlots  int
	lineWidth float32
	clear     [4]float32

	// cached state to skip redundant GL calls
	program uint32
	blend   bool
	depth   bool
}

func NewRendererGL(win core.Window, cfg core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, lineWidth: 1, clear: cfg.ClearColor}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	if err := glError("init"); err != nil {
		return err
	}
	r.info = core.DeviceInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}

	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)
	r.maxSlots = int(units)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.blend = true
	gl.Disable(gl.DEPTH_TEST)

	slog.Info("gl device ready",
		"vendor", r.info.Vendor,
		"renderer", r.info.Renderer,
		"version", r.info.Version,
		"textureUnits", r.maxSlots)
	return nil
}

func (r *RendererGL) Shutdown() {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
	r.program = 0
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) SetClearColor(c [4]float32) { r.clear = c }

func (r *RendererGL) Clear() {
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (r *RendererGL) SetLineWidth(w float32) { r.lineWidth = w }
func (r *RendererGL) LineWidth() float32     { return r.lineWidth }
func (r *RendererGL) MaxTextureSlots() int   { return r.maxSlots }
func (r *RendererGL) Info() core.DeviceInfo  { return r.info }

// --- resources ---

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Name, err)
	}
	gl.UseProgram(prog)
	r.program = prog

	if desc.SamplerArray != "" && desc.SamplerCount > 0 {
		loc := gl.GetUniformLocation(prog, gl.Str(desc.SamplerArray+"\x00"))
		if loc >= 0 {
			samplers := make([]int32, desc.SamplerCount)
			for i := range samplers {
				samplers[i] = int32(i)
			}
			gl.Uniform1iv(loc, int32(len(samplers)), &samplers[0])
		}
	}
	for name, binding := range desc.UniformBlocks {
		idx := gl.GetUniformBlockIndex(prog, gl.Str(name+"\x00"))
		if idx == gl.INVALID_INDEX {
			slog.Warn("gl: uniform block not active", "pipeline", desc.Name, "block", name)
			continue
		}
		gl.UniformBlockBinding(prog, idx, binding)
	}
	if err := glError("create pipeline " + desc.Name); err != nil {
		gl.DeleteProgram(prog)
		return nil, err
	}
	return &pipeline{name: desc.Name, program: prog, blend: desc.Blend, depth: desc.DepthTest}, nil
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture: invalid size %dx%d", desc.Width, desc.Height)
	}
	internal, format, bpp, err := textureFormat(desc.Format)
	if err != nil {
		return nil, err
	}
	if desc.Pixels != nil && len(desc.Pixels) < desc.Width*desc.Height*bpp {
		return nil, fmt.Errorf("create texture: %d bytes for %dx%d", len(desc.Pixels), desc.Width, desc.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var pix unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pix = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, pix)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("create texture"); err != nil {
		gl.DeleteTextures(1, &id)
		return nil, err
	}
	return &texture{id: id, w: desc.Width, h: desc.Height}, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride == 0 || desc.MaxVertices <= 0 {
		return nil, fmt.Errorf("create mesh: empty layout or capacity")
	}
	m := &mesh{layout: desc.Layout, maxVerts: desc.MaxVertices, indexed: desc.Indices != nil}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, desc.MaxVertices*desc.Layout.Stride, nil, gl.DYNAMIC_DRAW)

	stride := int32(desc.Layout.Stride)
	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		if a.Integer {
			gl.VertexAttribIPointer(a.Location, int32(a.Components), glBaseType(a.Type), stride, gl.PtrOffset(a.Offset))
		} else {
			gl.VertexAttribPointer(a.Location, int32(a.Components), glBaseType(a.Type), false, stride, gl.PtrOffset(a.Offset))
		}
	}

	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		if len(desc.Indices) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.STATIC_DRAW)
		}
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("create mesh"); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func (r *RendererGL) CreateUniformBuffer(size int, binding uint32) (core.UniformBuffer, error) {
	u := &uniformBuffer{binding: binding, size: size}
	gl.GenBuffers(1, &u.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, u.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	if err := glError("create uniform buffer"); err != nil {
		u.Release()
		return nil, err
	}
	return u, nil
}

func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []byte) error {
	m, ok := cm.(*mesh)
	if !ok {
		return fmt.Errorf("update mesh: foreign mesh %T", cm)
	}
	if len(vertices) == 0 {
		return nil
	}
	if len(vertices) > m.maxVerts*m.layout.Stride {
		return fmt.Errorf("update mesh: %d bytes exceeds capacity %d", len(vertices), m.maxVerts*m.layout.Stride)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices), gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (r *RendererGL) UpdateUniformBuffer(cu core.UniformBuffer, data []byte) error {
	u, ok := cu.(*uniformBuffer)
	if !ok {
		return fmt.Errorf("update uniform buffer: foreign buffer %T", cu)
	}
	if len(data) > u.size {
		return fmt.Errorf("update uniform buffer: %d bytes exceeds %d", len(data), u.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p := cmd.Pipe.(*pipeline)
	m := cmd.Mesh.(*mesh)

	if r.program != p.program {
		gl.UseProgram(p.program)
		r.program = p.program
	}
	r.setBlend(p.blend)
	r.setDepth(p.depth)

	for i, t := range cmd.Textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, t.(*texture).id)
	}
	for _, u := range cmd.Uniforms {
		ub := u.(*uniformBuffer)
		gl.BindBufferBase(gl.UNIFORM_BUFFER, ub.binding, ub.id)
	}

	gl.BindVertexArray(m.vao)
	switch cmd.Primitive {
	case core.PrimitiveTriangles:
		gl.DrawElements(gl.TRIANGLES, int32(cmd.Count), gl.UNSIGNED_INT, nil)
	case core.PrimitiveLines:
		if cmd.LineWidth > 0 {
			gl.LineWidth(cmd.LineWidth)
		}
		gl.DrawArrays(gl.LINES, 0, int32(cmd.Count))
	default:
		panic(fmt.Sprintf("glbackend: unknown primitive %v", cmd.Primitive))
	}
	gl.BindVertexArray(0)
}

func (r *RendererGL) setBlend(on bool) {
	if r.blend == on {
		return
	}
	if on {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	r.blend = on
}

func (r *RendererGL) setDepth(on bool) {
	if r.depth == on {
		return
	}
	if on {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	r.depth = on
}

var _ core.Device = (*RendererGL)(nil)
