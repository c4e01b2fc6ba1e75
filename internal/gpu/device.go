// Package gpu creates and drives the GPU objects entities are built from.
//
// Device is the seam between the scene code and the graphics API. OpenGL is the
// production implementation; gputest.Recorder stands in for it in tests.
package gpu

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle names a GPU object. Zero is never a valid object; as a render target it
// means the default (screen) framebuffer.
type Handle uint32

// Screen is the default framebuffer.
const Screen Handle = 0

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

type PixelFormat int

const (
	FormatRGBA PixelFormat = iota
	FormatDepth
)

// Framebuffer is an offscreen target with a sampleable color and depth texture.
type Framebuffer struct {
	ID    Handle
	Color Handle
	Depth Handle
}

var ErrIncompleteFramebuffer = errors.New("incomplete framebuffer")

type Device interface {
	// Init sets the global pipeline state every frame relies on.
	Init()

	CompileShader(source string, stage ShaderStage) (Handle, error)
	// LinkProgram links the given stages; an empty source skips that stage.
	LinkProgram(vertexSource, fragmentSource string) (Handle, error)
	UniformLocation(program Handle, name string) int32

	UploadTexture(width, height int, pixels []byte) Handle
	BlankTexture(width, height int, format PixelFormat) Handle
	MakeFramebuffer(width, height int) (Framebuffer, error)
	MakeBuffer(data []float32) Handle
	// MakeVertexArray describes layouts interleaved 3-float attributes stored in
	// buffer, attribute i at offset 3*i floats.
	MakeVertexArray(buffer Handle, layouts int) Handle

	UseProgram(program Handle)
	BindTexture(unit int, texture Handle)
	SetInt(location int32, v int32)
	SetFloat(location int32, v float32)
	SetMat4(location int32, m mgl32.Mat4)
	BindTarget(framebuffer Handle)
	Clear()
	SetDepthTest(enabled bool)
	DrawStrip(vertexArray Handle, count int)

	DeleteProgram(program Handle)
	DeleteTextures(textures ...Handle)
	DeleteBuffer(buffer Handle)
	DeleteFramebuffer(framebuffer Handle)
	DeleteVertexArray(vertexArray Handle)

	// Err reports and resets the pending API error state.
	Err() error
}
