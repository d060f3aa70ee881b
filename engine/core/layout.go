package core

import "fmt"

// ShaderDataType is the closed set of vertex attribute types.
type ShaderDataType int

const (
	ShaderFloat ShaderDataType = iota
	ShaderFloat2
	ShaderFloat3
	ShaderFloat4
	ShaderInt
	ShaderInt2
	ShaderInt3
	ShaderInt4
	shaderDataTypeCount
)

// ShaderTypeInfo describes how a ShaderDataType is laid out in memory.
type ShaderTypeInfo struct {
	Name       string
	Components int
	Size       int // bytes
	Integer    bool
}

var shaderTypeTable = [shaderDataTypeCount]ShaderTypeInfo{
	ShaderFloat:  {"float", 1, 4, false},
	ShaderFloat2: {"vec2", 2, 8, false},
	ShaderFloat3: {"vec3", 3, 12, false},
	ShaderFloat4: {"vec4", 4, 16, false},
	ShaderInt:    {"int", 1, 4, true},
	ShaderInt2:   {"ivec2", 2, 8, true},
	ShaderInt3:   {"ivec3", 3, 12, true},
	ShaderInt4:   {"ivec4", 4, 16, true},
}

// Info returns the layout description of t. Unknown types are a programming
// error and panic.
func (t ShaderDataType) Info() ShaderTypeInfo {
	if t < 0 || t >= shaderDataTypeCount {
		panic(fmt.Sprintf("core: unknown shader data type %d", int(t)))
	}
	return shaderTypeTable[t]
}

func (t ShaderDataType) String() string {
	if t < 0 || t >= shaderDataTypeCount {
		return fmt.Sprintf("ShaderDataType(%d)", int(t))
	}
	return shaderTypeTable[t].Name
}

// VertexAttrib is one resolved attribute of a BufferLayout.
type VertexAttrib struct {
	Location   uint32
	Name       string
	Type       ShaderDataType
	Components int
	Offset     int
	Integer    bool
}

// BufferLayout is an interleaved vertex layout. Build it with NewBufferLayout.
type BufferLayout struct {
	Stride     int
	Attributes []VertexAttrib
}

// BufferElement names an attribute before offsets are resolved.
type BufferElement struct {
	Type ShaderDataType
	Name string
}

// NewBufferLayout resolves locations, offsets and stride in declaration order.
func NewBufferLayout(elems ...BufferElement) BufferLayout {
	l := BufferLayout{Attributes: make([]VertexAttrib, 0, len(elems))}
	for i, e := range elems {
		info := e.Type.Info()
		l.Attributes = append(l.Attributes, VertexAttrib{
			Location:   uint32(i),
			Name:       e.Name,
			Type:       e.Type,
			Components: info.Components,
			Offset:     l.Stride,
			Integer:    info.Integer,
		})
		l.Stride += info.Size
	}
	return l
}
