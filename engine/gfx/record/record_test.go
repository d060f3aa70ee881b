package record

import (
	"testing"

	"github.com/hubastard/batch2d/engine/core"
)

func TestDrawSnapshotsMesh(t *testing.T) {
	dev := New(0)
	layout := core.NewBufferLayout(core.BufferElement{Type: core.ShaderFloat, Name: "a_X"})
	mesh, err := dev.CreateMesh(core.MeshDesc{Layout: layout, MaxVertices: 8, Indices: []uint32{0, 1, 2, 2, 3, 0}})
	if err != nil {
		t.Fatal(err)
	}
	pipe, _ := dev.CreatePipeline(core.PipelineDesc{Name: "p", VertexSource: "v", FragmentSource: "f"})
	ub, _ := dev.CreateUniformBuffer(4, 3)

	first := make([]byte, 16)
	first[0] = 1
	if err := dev.UpdateMesh(mesh, first); err != nil {
		t.Fatal(err)
	}
	_ = dev.UpdateUniformBuffer(ub, []byte{9, 9, 9, 9})
	dev.Draw(core.DrawCmd{Pipe: pipe, Mesh: mesh, Count: 6, Uniforms: []core.UniformBuffer{ub}})

	second := make([]byte, 16)
	second[0] = 2
	_ = dev.UpdateMesh(mesh, second)

	d := dev.Draws[0]
	if d.Vertices[0] != 1 {
		t.Fatal("draw does not hold its own copy of the vertices")
	}
	if d.VertexCount() != 4 || d.Pipeline != "p" {
		t.Fatalf("draw = %+v", d)
	}
	if u := d.Uniforms[3]; len(u) != 4 || u[0] != 9 {
		t.Fatalf("uniform snapshot = %v", u)
	}
	if dev.Uploads != 2 {
		t.Fatalf("uploads = %d", dev.Uploads)
	}
}

func TestUpdateMeshRejectsOverflow(t *testing.T) {
	dev := New(0)
	layout := core.NewBufferLayout(core.BufferElement{Type: core.ShaderFloat4, Name: "a"})
	mesh, _ := dev.CreateMesh(core.MeshDesc{Layout: layout, MaxVertices: 1})
	if err := dev.UpdateMesh(mesh, make([]byte, 32)); err == nil {
		t.Fatal("expected capacity error")
	}
}

func TestCreateValidation(t *testing.T) {
	dev := New(0)
	if _, err := dev.CreateTexture(core.TextureDesc{}); err == nil {
		t.Fatal("zero-sized texture accepted")
	}
	if _, err := dev.CreatePipeline(core.PipelineDesc{Name: "empty"}); err == nil {
		t.Fatal("pipeline without sources accepted")
	}
	if dev.MaxTextureSlots() != 32 {
		t.Fatalf("default slots = %d", dev.MaxTextureSlots())
	}
}
