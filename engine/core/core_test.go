package core

import (
	"strings"
	"testing"
)

func TestShaderDataTypeTable(t *testing.T) {
	tests := []struct {
		typ        ShaderDataType
		name       string
		components int
		size       int
		integer    bool
	}{
		{ShaderFloat, "float", 1, 4, false},
		{ShaderFloat2, "vec2", 2, 8, false},
		{ShaderFloat3, "vec3", 3, 12, false},
		{ShaderFloat4, "vec4", 4, 16, false},
		{ShaderInt, "int", 1, 4, true},
		{ShaderInt2, "ivec2", 2, 8, true},
		{ShaderInt3, "ivec3", 3, 12, true},
		{ShaderInt4, "ivec4", 4, 16, true},
	}
	for _, tt := range tests {
		info := tt.typ.Info()
		if info.Name != tt.name || info.Components != tt.components || info.Size != tt.size || info.Integer != tt.integer {
			t.Errorf("%v: got %+v", tt.typ, info)
		}
		if tt.typ.String() != tt.name {
			t.Errorf("String() = %q", tt.typ.String())
		}
	}
}

func TestUnknownShaderDataTypePanics(t *testing.T) {
	defer func() {
		r := recover()
		if msg, _ := r.(string); !strings.Contains(msg, "unknown shader data type") {
			t.Fatalf("recovered %v", r)
		}
	}()
	ShaderDataType(42).Info()
}

func TestNewBufferLayout(t *testing.T) {
	l := NewBufferLayout(
		BufferElement{Type: ShaderFloat3, Name: "a_Position"},
		BufferElement{Type: ShaderFloat4, Name: "a_Color"},
		BufferElement{Type: ShaderInt, Name: "a_ID"},
	)
	if l.Stride != 32 {
		t.Fatalf("stride = %d", l.Stride)
	}
	want := []VertexAttrib{
		{Location: 0, Name: "a_Position", Type: ShaderFloat3, Components: 3, Offset: 0},
		{Location: 1, Name: "a_Color", Type: ShaderFloat4, Components: 4, Offset: 12},
		{Location: 2, Name: "a_ID", Type: ShaderInt, Components: 1, Offset: 28, Integer: true},
	}
	for i, a := range l.Attributes {
		if a != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, a, want[i])
		}
	}
}

func TestInputEdges(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeySpace, Down: true})
	if !in.IsKeyDown(KeySpace) || !in.WasPressed(KeySpace) {
		t.Fatal("press not recorded")
	}
	// Held keys are pressed only once.
	in.EndFrame()
	in.Handle(EventKey{Key: KeySpace, Down: true})
	if in.WasPressed(KeySpace) {
		t.Fatal("held key reported as a new press")
	}
	in.Handle(EventKey{Key: KeySpace, Down: false})
	if in.IsKeyDown(KeySpace) {
		t.Fatal("release not recorded")
	}

	in.Handle(EventScroll{Yoff: 1})
	in.Handle(EventScroll{Yoff: 2})
	in.Handle(EventMouseMove{X: 3, Y: 4})
	if in.Scroll() != 3 {
		t.Fatalf("scroll = %v", in.Scroll())
	}
	if x, y := in.Mouse(); x != 3 || y != 4 {
		t.Fatalf("mouse = %v,%v", x, y)
	}
	in.EndFrame()
	if in.Scroll() != 0 {
		t.Fatal("scroll not cleared at frame end")
	}
}

type recLayer struct {
	name    string
	log     *[]string
	handles bool
}

func (l *recLayer) OnAttach(*Engine)          { *l.log = append(*l.log, "attach "+l.name) }
func (l *recLayer) OnDetach(*Engine)          { *l.log = append(*l.log, "detach "+l.name) }
func (l *recLayer) OnUpdate(*Engine, float64) { *l.log = append(*l.log, "update "+l.name) }
func (l *recLayer) OnRender(*Engine, float64) { *l.log = append(*l.log, "render "+l.name) }
func (l *recLayer) OnEvent(*Engine, Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.handles
}

func TestLayerStackOrder(t *testing.T) {
	var log []string
	var ls LayerStack
	e := &Engine{}
	ls.Push(e, &recLayer{name: "world", log: &log})
	ls.Push(e, &recLayer{name: "overlay", log: &log, handles: true})

	ls.update(e, 0)
	ls.render(e, 0)
	if !ls.dispatch(e, EventCloseRequested{}) {
		t.Fatal("handled event not reported")
	}
	ls.detachAll(e)

	want := []string{
		"attach world", "attach overlay",
		"update world", "update overlay",
		"render world", "render overlay",
		"event overlay",
		"detach overlay", "detach world",
	}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v\nwant %v", log, want)
	}
	if ls.Len() != 0 {
		t.Fatalf("Len = %d", ls.Len())
	}
}
