package post

var VertexShader = `#version 330
out vec2 UV;

const vec2 data[4] = vec2[](
	vec2(-1.0,  1.0), vec2(-1.0, -1.0),
	vec2( 1.0,  1.0), vec2( 1.0, -1.0));

void main()
{
	gl_Position = vec4(data[gl_VertexID], 0.0, 1.0);
	UV = gl_Position.xy * 0.5 + 0.5;
}
`

// FragmentShader samples the captured color (tex[0]) and depth (tex[1]).
var FragmentShader = `#version 330
in vec2 UV;
out vec4 color;
uniform sampler2D tex[2];

void main()
{
	color = texture(tex[0], UV);
	float depth = texture(tex[1], UV).r;

	// ambient occlusion
	vec2 r = 4.0 / textureSize(tex[0], 0);
	float occlusion = 0.0;
	for (int i = -2; i < 3; i++)
	{
		for (int j = -2; j < 3; j++)
		{
			if (i == 0 && j == 0)
				continue;
			occlusion += 1.0 / (1.0 + pow(10.0 * min(depth - texture(tex[1], UV + vec2(i, j) * r).r, 0.0), 2.0)) / 24.0;
		}
	}
	color.rgb *= occlusion;

	// tone map
	color.rgb = pow(1.0 - exp(-1.3 * color.rgb), vec3(1.3));
}
`
