package renderer

var floorVertexShader = `#version 330
layout(location = 0) in vec3 position;
layout(location = 1) in vec2 vUV;
uniform mat4 P;
uniform mat4 V;
uniform mat4 M;
out vec2 fUV;

void main()
{
	gl_Position = P * V * M * vec4(position, 1);
	fUV = vUV;
}
`

var floorFragmentShader = `#version 330
in vec2 fUV;
out vec4 color;
uniform sampler2D tex;

void main()
{
	color = texture(tex, fUV);
}
`
