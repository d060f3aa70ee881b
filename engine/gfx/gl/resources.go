package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/batch2d/engine/core"
)

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

type pipeline struct {
	name    string
	program uint32
	blend   bool
	depth   bool
}

func (p *pipeline) Name() string { return p.name }

func (p *pipeline) Release() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

type mesh struct {
	vao, vbo, ebo uint32
	layout        core.BufferLayout
	maxVerts      int
	indexed       bool
}

func (m *mesh) Layout() core.BufferLayout { return m.layout }
func (m *mesh) MaxVertices() int          { return m.maxVerts }

func (m *mesh) Release() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

type uniformBuffer struct {
	id      uint32
	binding uint32
	size    int
}

func (u *uniformBuffer) Binding() uint32 { return u.binding }

func (u *uniformBuffer) Release() {
	if u.id != 0 {
		gl.DeleteBuffers(1, &u.id)
		u.id = 0
	}
}

// GL component type per shader data type, indexed like core.ShaderDataType.
var glBaseTypes = [...]uint32{
	core.ShaderFloat:  gl.FLOAT,
	core.ShaderFloat2: gl.FLOAT,
	core.ShaderFloat3: gl.FLOAT,
	core.ShaderFloat4: gl.FLOAT,
	core.ShaderInt:    gl.INT,
	core.ShaderInt2:   gl.INT,
	core.ShaderInt3:   gl.INT,
	core.ShaderInt4:   gl.INT,
}

func glBaseType(t core.ShaderDataType) uint32 {
	_ = t.Info() // panics on unknown types
	return glBaseTypes[t]
}

func textureFormat(f core.TextureFormat) (internal int32, format uint32, bpp int, err error) {
	switch f {
	case core.TextureRGBA8:
		return gl.RGBA8, gl.RGBA, 4, nil
	case core.TextureRGB8:
		return gl.RGB8, gl.RGB, 3, nil
	case core.TextureR8:
		return gl.R8, gl.RED, 1, nil
	default:
		return 0, 0, 0, fmt.Errorf("unsupported texture format %d", f)
	}
}

func filter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
