package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// OpenGL implements Device on an OpenGL 3.3 core context. The context must be
// current on the calling thread and gl.Init must already have succeeded.
type OpenGL struct {
	depthTest bool
}

var _ Device = (*OpenGL)(nil)

func NewOpenGL() *OpenGL {
	return &OpenGL{}
}

func (d *OpenGL) Init() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	d.depthTest = true
}

func (d *OpenGL) BindTarget(framebuffer Handle) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(framebuffer))
}

func (d *OpenGL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *OpenGL) SetDepthTest(enabled bool) {
	if enabled == d.depthTest {
		return
	}
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	d.depthTest = enabled
}

func (d *OpenGL) DrawStrip(vertexArray Handle, count int) {
	gl.BindVertexArray(uint32(vertexArray))
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, int32(count))
}

func (d *OpenGL) Err() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	// Drain the remaining flags so the next check starts clean.
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("gl error 0x%04X (%s)", code, errorName(code))
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	}
	return "unknown"
}
