package renderer2d

import (
	"strconv"
	"strings"
)

const (
	pipelineQuad   = "renderer2d.quad"
	pipelineCircle = "renderer2d.circle"
	pipelineLine   = "renderer2d.line"
	pipelineText   = "renderer2d.text"

	samplerArray       = "u_Textures"
	cameraBlock        = "Camera"
	cameraBinding      = 0
	maxSlotPlaceholder = "%MAX_TEXTURE_SLOTS%"
	samplePlaceholder  = "%SAMPLE_SLOT%"
)

const cameraGLSL = `
layout(std140) uniform Camera
{
	mat4 u_ViewProjection;
};
`

const quadVert = `#version 330 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec4 a_Color;
layout(location = 2) in vec2 a_TexCoord;
layout(location = 3) in float a_TexIndex;
layout(location = 4) in float a_TilingFactor;
layout(location = 5) in int a_PickID;
` + cameraGLSL + `
out vec4 v_Color;
out vec2 v_TexCoord;
flat out float v_TexIndex;
out float v_TilingFactor;
flat out int v_PickID;

void main()
{
	v_Color = a_Color;
	v_TexCoord = a_TexCoord;
	v_TexIndex = a_TexIndex;
	v_TilingFactor = a_TilingFactor;
	v_PickID = a_PickID;
	gl_Position = u_ViewProjection * vec4(a_Position, 1.0);
}
`

const quadFrag = `#version 330 core
layout(location = 0) out vec4 o_Color;
layout(location = 1) out int o_PickID;

in vec4 v_Color;
in vec2 v_TexCoord;
flat in float v_TexIndex;
in float v_TilingFactor;
flat in int v_PickID;

uniform sampler2D u_Textures[%MAX_TEXTURE_SLOTS%];
%SAMPLE_SLOT%
void main()
{
	vec4 color = sampleSlot(int(v_TexIndex), v_TexCoord * v_TilingFactor) * v_Color;
	if (color.a == 0.0)
		discard;
	o_Color = color;
	o_PickID = v_PickID;
}
`

const circleVert = `#version 330 core
layout(location = 0) in vec3 a_WorldPosition;
layout(location = 1) in vec2 a_LocalPosition;
layout(location = 2) in vec4 a_Color;
layout(location = 3) in float a_Thickness;
layout(location = 4) in float a_Fade;
layout(location = 5) in vec2 a_TexCoord;
layout(location = 6) in float a_TexIndex;
layout(location = 7) in float a_TilingFactor;
layout(location = 8) in int a_PickID;
` + cameraGLSL + `
out vec2 v_LocalPosition;
out vec4 v_Color;
out float v_Thickness;
out float v_Fade;
out vec2 v_TexCoord;
flat out float v_TexIndex;
out float v_TilingFactor;
flat out int v_PickID;

void main()
{
	v_LocalPosition = a_LocalPosition;
	v_Color = a_Color;
	v_Thickness = a_Thickness;
	v_Fade = a_Fade;
	v_TexCoord = a_TexCoord;
	v_TexIndex = a_TexIndex;
	v_TilingFactor = a_TilingFactor;
	v_PickID = a_PickID;
	gl_Position = u_ViewProjection * vec4(a_WorldPosition, 1.0);
}
`

const circleFrag = `#version 330 core
layout(location = 0) out vec4 o_Color;
layout(location = 1) out int o_PickID;

in vec2 v_LocalPosition;
in vec4 v_Color;
in float v_Thickness;
in float v_Fade;
in vec2 v_TexCoord;
flat in float v_TexIndex;
in float v_TilingFactor;
flat in int v_PickID;

uniform sampler2D u_Textures[%MAX_TEXTURE_SLOTS%];
%SAMPLE_SLOT%
void main()
{
	float dist = 1.0 - length(v_LocalPosition);
	float circle = smoothstep(0.0, v_Fade, dist);
	circle *= smoothstep(v_Thickness + v_Fade, v_Thickness, dist);
	if (circle == 0.0)
		discard;

	vec4 color = sampleSlot(int(v_TexIndex), v_TexCoord * v_TilingFactor) * v_Color;
	color.a *= circle;
	o_Color = color;
	o_PickID = v_PickID;
}
`

const lineVert = `#version 330 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec4 a_Color;
layout(location = 2) in int a_PickID;
` + cameraGLSL + `
out vec4 v_Color;
flat out int v_PickID;

void main()
{
	v_Color = a_Color;
	v_PickID = a_PickID;
	gl_Position = u_ViewProjection * vec4(a_Position, 1.0);
}
`

const lineFrag = `#version 330 core
layout(location = 0) out vec4 o_Color;
layout(location = 1) out int o_PickID;

in vec4 v_Color;
flat in int v_PickID;

void main()
{
	o_Color = v_Color;
	o_PickID = v_PickID;
}
`

const textVert = `#version 330 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec4 a_Color;
layout(location = 2) in vec2 a_TexCoord;
layout(location = 3) in float a_TexIndex;
layout(location = 4) in int a_PickID;
` + cameraGLSL + `
out vec4 v_Color;
out vec2 v_TexCoord;
flat out float v_TexIndex;
flat out int v_PickID;

void main()
{
	v_Color = a_Color;
	v_TexCoord = a_TexCoord;
	v_TexIndex = a_TexIndex;
	v_PickID = a_PickID;
	gl_Position = u_ViewProjection * vec4(a_Position, 1.0);
}
`

// Glyph atlases hold coverage in alpha.
const textFrag = `#version 330 core
layout(location = 0) out vec4 o_Color;
layout(location = 1) out int o_PickID;

in vec4 v_Color;
in vec2 v_TexCoord;
flat in float v_TexIndex;
flat in int v_PickID;

uniform sampler2D u_Textures[%MAX_TEXTURE_SLOTS%];
%SAMPLE_SLOT%
void main()
{
	float coverage = sampleSlot(int(v_TexIndex), v_TexCoord).a;
	if (coverage == 0.0)
		discard;
	o_Color = vec4(v_Color.rgb, v_Color.a * coverage);
	o_PickID = v_PickID;
}
`

// sampleSlotGLSL emits a sampler lookup by slot. GLSL 3.30 only allows
// constant indices into sampler arrays, hence the switch.
func sampleSlotGLSL(slots int) string {
	var b strings.Builder
	b.WriteString("vec4 sampleSlot(int slot, vec2 uv)\n{\n\tswitch (slot)\n\t{\n")
	for i := 0; i < slots; i++ {
		n := strconv.Itoa(i)
		b.WriteString("\tcase " + n + ": return texture(u_Textures[" + n + "], uv);\n")
	}
	b.WriteString("\t}\n\treturn vec4(1.0, 0.0, 1.0, 1.0);\n}\n")
	return b.String()
}

type shaderSource struct {
	name     string
	vert     string
	frag     string
	samplers bool
}

// builtinShaders returns the four batch pipelines sized for slots textures.
func builtinShaders(slots int) []shaderSource {
	r := strings.NewReplacer(
		maxSlotPlaceholder, strconv.Itoa(slots),
		samplePlaceholder, sampleSlotGLSL(slots),
	)
	return []shaderSource{
		{name: pipelineQuad, vert: quadVert, frag: r.Replace(quadFrag), samplers: true},
		{name: pipelineCircle, vert: circleVert, frag: r.Replace(circleFrag), samplers: true},
		{name: pipelineLine, vert: lineVert, frag: lineFrag},
		{name: pipelineText, vert: textVert, frag: r.Replace(textFrag), samplers: true},
	}
}
