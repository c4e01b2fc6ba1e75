package renderer

import (
	"Atmos/internal/post"
	"Atmos/internal/sky"
)

// Full-screen passes generate their quad from gl_VertexID.
const quadVertices = 4

// floorVertices is a 60x60 quad at y=-1 with texture coordinates tiling five
// times. Each vertex is a position followed by a uv padded to vec3.
var floorVertices = []float32{
	30.0, -1.0, -30.0, 5.0, 0.0, 0.0,
	-30.0, -1.0, -30.0, 0.0, 0.0, 0.0,
	30.0, -1.0, 30.0, 5.0, 5.0, 0.0,
	-30.0, -1.0, 30.0, 0.0, 5.0, 0.0,
}

// NewSky adds the procedural sky. It is drawn without depth testing so later
// geometry always covers it.
func NewSky(scene *Scene, params sky.Params) (*Entity, error) {
	return NewEntity(scene, EntityDesc{
		Name:           "sky",
		VertexSource:   sky.VertexShader,
		FragmentSource: sky.FragmentShader,
		VertexCount:    quadVertices,
		Uniforms: map[string]float32{
			"cirrus":  params.Cirrus,
			"cumulus": params.Cumulus,
		},
	})
}

// NewPostProcess adds the post-process pass. The rest of the scene is drawn
// into its width x height framebuffer.
func NewPostProcess(scene *Scene, width, height int) (*Entity, error) {
	return NewEntity(scene, EntityDesc{
		Name:           "post",
		VertexSource:   post.VertexShader,
		FragmentSource: post.FragmentShader,
		VertexCount:    quadVertices,
		RenderTarget:   true,
		Width:          width,
		Height:         height,
	})
}

// NewFloor adds a ground quad textured with the bitmap at texturePath.
func NewFloor(scene *Scene, texturePath string) (*Entity, error) {
	return NewEntity(scene, EntityDesc{
		Name:           "floor",
		VertexSource:   floorVertexShader,
		FragmentSource: floorFragmentShader,
		TexturePaths:   []string{texturePath},
		Vertices:       floorVertices,
		VertexCount:    4,
		Layouts:        2,
		DepthTest:      true,
	})
}
