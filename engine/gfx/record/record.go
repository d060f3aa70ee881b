// Package record implements core.Device without a GPU. Every submission is
// kept in memory so tools and tests can inspect exactly what a real backend
// would have been asked to draw.
package record

import (
	"fmt"

	"github.com/hubastard/batch2d/engine/core"
)

type Texture struct {
	ID       int
	Desc     core.TextureDesc
	released bool
}

func (t *Texture) Size() (int, int) { return t.Desc.Width, t.Desc.Height }
func (t *Texture) Release()         { t.released = true }
func (t *Texture) Released() bool   { return t.released }

type Pipeline struct {
	Desc     core.PipelineDesc
	released bool
}

func (p *Pipeline) Name() string   { return p.Desc.Name }
func (p *Pipeline) Release()       { p.released = true }
func (p *Pipeline) Released() bool { return p.released }

type Mesh struct {
	Desc     core.MeshDesc
	data     []byte
	released bool
}

func (m *Mesh) Layout() core.BufferLayout { return m.Desc.Layout }
func (m *Mesh) MaxVertices() int          { return m.Desc.MaxVertices }
func (m *Mesh) Release()                  { m.released = true }
func (m *Mesh) Released() bool            { return m.released }

type UniformBuffer struct {
	binding  uint32
	data     []byte
	released bool
}

func (u *UniformBuffer) Binding() uint32 { return u.binding }
func (u *UniformBuffer) Release()        { u.released = true }
func (u *UniformBuffer) Data() []byte    { return u.data }

// Draw is a snapshot of one DrawCmd together with the bytes that were
// resident in its mesh and uniform buffers at submission time.
type Draw struct {
	Pipeline  string
	Primitive core.Primitive
	Count     int
	Textures  []core.Texture
	LineWidth float32
	Stride    int
	Vertices  []byte
	Uniforms  map[uint32][]byte
}

// VertexCount is the number of vertices referenced by the draw.
func (d Draw) VertexCount() int {
	if d.Stride == 0 {
		return 0
	}
	return len(d.Vertices) / d.Stride
}

// Device is a headless core.Device.
type Device struct {
	// Slots is reported by MaxTextureSlots.
	Slots int

	Draws   []Draw
	Uploads int
	Clears  int

	textures   int
	clearColor [4]float32
	lineWidth  float32
	width      int
	height     int
	shutdown   bool
}

// New returns a device that reports slots texture units.
func New(slots int) *Device {
	if slots <= 0 {
		slots = 32
	}
	return &Device{Slots: slots, lineWidth: 1}
}

// Reset forgets recorded draws and counters but keeps live resources.
func (d *Device) Reset() {
	d.Draws = d.Draws[:0]
	d.Uploads = 0
	d.Clears = 0
}

func (d *Device) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if desc.VertexSource == "" || desc.FragmentSource == "" {
		return nil, fmt.Errorf("record: pipeline %q: empty shader source", desc.Name)
	}
	return &Pipeline{Desc: desc}, nil
}

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("record: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	d.textures++
	return &Texture{ID: d.textures, Desc: desc}, nil
}

func (d *Device) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride == 0 {
		return nil, fmt.Errorf("record: mesh with empty layout")
	}
	return &Mesh{Desc: desc, data: make([]byte, 0, desc.MaxVertices*desc.Layout.Stride)}, nil
}

func (d *Device) CreateUniformBuffer(size int, binding uint32) (core.UniformBuffer, error) {
	return &UniformBuffer{binding: binding, data: make([]byte, size)}, nil
}

func (d *Device) UpdateMesh(m core.Mesh, vertices []byte) error {
	rm, ok := m.(*Mesh)
	if !ok {
		return fmt.Errorf("record: foreign mesh %T", m)
	}
	if limit := rm.Desc.MaxVertices * rm.Desc.Layout.Stride; len(vertices) > limit {
		return fmt.Errorf("record: upload of %d bytes exceeds mesh capacity %d", len(vertices), limit)
	}
	rm.data = append(rm.data[:0], vertices...)
	d.Uploads++
	return nil
}

func (d *Device) UpdateUniformBuffer(u core.UniformBuffer, data []byte) error {
	ru, ok := u.(*UniformBuffer)
	if !ok {
		return fmt.Errorf("record: foreign uniform buffer %T", u)
	}
	if len(data) > len(ru.data) {
		return fmt.Errorf("record: uniform upload of %d bytes exceeds %d", len(data), len(ru.data))
	}
	copy(ru.data, data)
	return nil
}

func (d *Device) Draw(cmd core.DrawCmd) {
	rm := cmd.Mesh.(*Mesh)
	dr := Draw{
		Pipeline:  cmd.Pipe.Name(),
		Primitive: cmd.Primitive,
		Count:     cmd.Count,
		Textures:  append([]core.Texture(nil), cmd.Textures...),
		LineWidth: cmd.LineWidth,
		Stride:    rm.Desc.Layout.Stride,
		Uniforms:  make(map[uint32][]byte, len(cmd.Uniforms)),
	}
	verts := cmd.Count
	if rm.Desc.Indices != nil {
		// Quads: 6 indices address 4 vertices.
		verts = cmd.Count / 6 * 4
	}
	n := verts * dr.Stride
	if n > len(rm.data) {
		n = len(rm.data)
	}
	dr.Vertices = append([]byte(nil), rm.data[:n]...)
	for _, u := range cmd.Uniforms {
		ru := u.(*UniformBuffer)
		dr.Uniforms[ru.binding] = append([]byte(nil), ru.data...)
	}
	d.Draws = append(d.Draws, dr)
}

func (d *Device) Resize(w, h int)              { d.width, d.height = w, h }
func (d *Device) SetClearColor(c [4]float32)   { d.clearColor = c }
func (d *Device) ClearColor() [4]float32       { return d.clearColor }
func (d *Device) Clear()                       { d.Clears++ }
func (d *Device) SetLineWidth(w float32)       { d.lineWidth = w }
func (d *Device) LineWidth() float32           { return d.lineWidth }
func (d *Device) MaxTextureSlots() int         { return d.Slots }
func (d *Device) Shutdown()                    { d.shutdown = true }
func (d *Device) IsShutdown() bool             { return d.shutdown }
func (d *Device) Size() (int, int)             { return d.width, d.height }
func (d *Device) Info() core.DeviceInfo {
	return core.DeviceInfo{Vendor: "grove", Renderer: "record", Version: "1"}
}

// DrawsFor returns the recorded draws issued with the named pipeline.
func (d *Device) DrawsFor(pipeline string) []Draw {
	var out []Draw
	for _, dr := range d.Draws {
		if dr.Pipeline == pipeline {
			out = append(out, dr)
		}
	}
	return out
}

var _ core.Device = (*Device)(nil)
