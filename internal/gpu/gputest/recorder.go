// Package gputest provides a Device that records calls instead of issuing them,
// for testing scene and entity code without a graphics context.
package gputest

import (
	"Atmos/internal/gpu"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Draw is a snapshot of the pipeline state at the time of a DrawStrip call.
type Draw struct {
	VertexArray gpu.Handle
	Count       int
	Program     gpu.Handle
	Target      gpu.Handle
	DepthTest   bool
	// Textures maps texture unit to the bound texture.
	Textures map[int]gpu.Handle
	Floats   map[int32]float32
	Ints     map[int32]int32
	Mat4s    map[int32]mgl32.Mat4
}

// Recorder implements gpu.Device. Every created object gets a fresh handle and
// stays in the live set until its matching Delete call.
type Recorder struct {
	// CompileErr, when set, is returned for shaders whose source equals the key.
	CompileErr map[string]error
	// LinkErr, when non-nil, fails every LinkProgram call.
	LinkErr error
	// FramebufferErr, when non-nil, fails every MakeFramebuffer call.
	FramebufferErr error
	// Uniforms assigns locations to uniform names; unknown names resolve to -1.
	Uniforms map[string]int32
	// PendingErr is returned, once, from the next Err call.
	PendingErr error

	Calls  []string
	Draws  []Draw
	Clears []gpu.Handle

	next      gpu.Handle
	live      map[gpu.Handle]string
	program   gpu.Handle
	target    gpu.Handle
	depthTest bool
	textures  map[int]gpu.Handle
	uniforms  map[gpu.Handle]*uniformState
}

// uniformState is the uniform storage of one program, as GL keeps it.
type uniformState struct {
	floats map[int32]float32
	ints   map[int32]int32
	mat4s  map[int32]mgl32.Mat4
}

var _ gpu.Device = (*Recorder)(nil)

// StandardUniforms resolves the locations every entity asks for.
var StandardUniforms = map[string]int32{
	"P":    0,
	"V":    1,
	"M":    2,
	"time": 3,
	"tex":  4,
}

func NewRecorder() *Recorder {
	uniforms := make(map[string]int32, len(StandardUniforms))
	for k, v := range StandardUniforms {
		uniforms[k] = v
	}
	return &Recorder{
		Uniforms:  uniforms,
		live:      make(map[gpu.Handle]string),
		textures:  make(map[int]gpu.Handle),
		uniforms:  make(map[gpu.Handle]*uniformState),
		depthTest: true,
	}
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) create(kind string) gpu.Handle {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) release(kind string, h gpu.Handle) {
	if h == 0 {
		return
	}
	if got, ok := r.live[h]; ok && got == kind {
		delete(r.live, h)
	}
}

// Live lists the kinds of objects that were created and never deleted.
func (r *Recorder) Live() []string {
	var kinds []string
	for _, k := range r.live {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Target is the currently bound render target.
func (r *Recorder) Target() gpu.Handle { return r.target }

// DepthTest reports the current depth test state.
func (r *Recorder) DepthTest() bool { return r.depthTest }

func (r *Recorder) Init() {
	r.depthTest = true
	r.record("Init")
}

func (r *Recorder) CompileShader(source string, stage gpu.ShaderStage) (gpu.Handle, error) {
	if err, ok := r.CompileErr[source]; ok {
		return 0, err
	}
	r.record("CompileShader(%s)", stage)
	return r.create("shader"), nil
}

func (r *Recorder) LinkProgram(vertexSource, fragmentSource string) (gpu.Handle, error) {
	for _, src := range []struct {
		source string
		stage  gpu.ShaderStage
	}{{vertexSource, gpu.VertexStage}, {fragmentSource, gpu.FragmentStage}} {
		if src.source == "" {
			continue
		}
		s, err := r.CompileShader(src.source, src.stage)
		if err != nil {
			return 0, err
		}
		r.release("shader", s)
	}
	if r.LinkErr != nil {
		return 0, r.LinkErr
	}
	h := r.create("program")
	r.record("LinkProgram(%d)", h)
	return h, nil
}

func (r *Recorder) UniformLocation(program gpu.Handle, name string) int32 {
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) UploadTexture(width, height int, pixels []byte) gpu.Handle {
	h := r.create("texture")
	r.record("UploadTexture(%d, %dx%d, %d bytes)", h, width, height, len(pixels))
	return h
}

func (r *Recorder) BlankTexture(width, height int, format gpu.PixelFormat) gpu.Handle {
	h := r.create("texture")
	r.record("BlankTexture(%d, %dx%d)", h, width, height)
	return h
}

func (r *Recorder) MakeFramebuffer(width, height int) (gpu.Framebuffer, error) {
	if r.FramebufferErr != nil {
		return gpu.Framebuffer{}, r.FramebufferErr
	}
	fb := gpu.Framebuffer{
		Color: r.BlankTexture(width, height, gpu.FormatRGBA),
		Depth: r.BlankTexture(width, height, gpu.FormatDepth),
		ID:    r.create("framebuffer"),
	}
	r.record("MakeFramebuffer(%d)", fb.ID)
	return fb, nil
}

func (r *Recorder) MakeBuffer(data []float32) gpu.Handle {
	h := r.create("buffer")
	r.record("MakeBuffer(%d, %d floats)", h, len(data))
	return h
}

func (r *Recorder) MakeVertexArray(buffer gpu.Handle, layouts int) gpu.Handle {
	h := r.create("vertexArray")
	r.record("MakeVertexArray(%d, buffer %d, %d layouts)", h, buffer, layouts)
	return h
}

func (r *Recorder) UseProgram(program gpu.Handle) {
	r.program = program
	r.record("UseProgram(%d)", program)
}

func (r *Recorder) BindTexture(unit int, texture gpu.Handle) {
	r.textures[unit] = texture
	r.record("BindTexture(%d, %d)", unit, texture)
}

// current returns the uniform storage of the program in use.
func (r *Recorder) current() *uniformState {
	u, ok := r.uniforms[r.program]
	if !ok {
		u = &uniformState{
			floats: make(map[int32]float32),
			ints:   make(map[int32]int32),
			mat4s:  make(map[int32]mgl32.Mat4),
		}
		r.uniforms[r.program] = u
	}
	return u
}

func (r *Recorder) SetInt(location int32, v int32) {
	r.current().ints[location] = v
}

func (r *Recorder) SetFloat(location int32, v float32) {
	r.current().floats[location] = v
}

func (r *Recorder) SetMat4(location int32, m mgl32.Mat4) {
	r.current().mat4s[location] = m
}

func (r *Recorder) BindTarget(framebuffer gpu.Handle) {
	r.target = framebuffer
	r.record("BindTarget(%d)", framebuffer)
}

func (r *Recorder) Clear() {
	r.Clears = append(r.Clears, r.target)
	r.record("Clear(%d)", r.target)
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.depthTest = enabled
	r.record("SetDepthTest(%t)", enabled)
}

func (r *Recorder) DrawStrip(vertexArray gpu.Handle, count int) {
	u := r.current()
	d := Draw{
		VertexArray: vertexArray,
		Count:       count,
		Program:     r.program,
		Target:      r.target,
		DepthTest:   r.depthTest,
		Textures:    make(map[int]gpu.Handle, len(r.textures)),
		Floats:      make(map[int32]float32, len(u.floats)),
		Ints:        make(map[int32]int32, len(u.ints)),
		Mat4s:       make(map[int32]mgl32.Mat4, len(u.mat4s)),
	}
	for k, v := range r.textures {
		d.Textures[k] = v
	}
	for k, v := range u.floats {
		d.Floats[k] = v
	}
	for k, v := range u.ints {
		d.Ints[k] = v
	}
	for k, v := range u.mat4s {
		d.Mat4s[k] = v
	}
	r.Draws = append(r.Draws, d)
	r.record("DrawStrip(%d, %d)", vertexArray, count)
}

func (r *Recorder) DeleteProgram(program gpu.Handle) {
	delete(r.uniforms, program)
	r.release("program", program)
	r.record("DeleteProgram(%d)", program)
}

func (r *Recorder) DeleteTextures(textures ...gpu.Handle) {
	for _, t := range textures {
		r.release("texture", t)
	}
	r.record("DeleteTextures(%v)", textures)
}

func (r *Recorder) DeleteBuffer(buffer gpu.Handle) {
	r.release("buffer", buffer)
	r.record("DeleteBuffer(%d)", buffer)
}

func (r *Recorder) DeleteFramebuffer(framebuffer gpu.Handle) {
	r.release("framebuffer", framebuffer)
	r.record("DeleteFramebuffer(%d)", framebuffer)
}

func (r *Recorder) DeleteVertexArray(vertexArray gpu.Handle) {
	r.release("vertexArray", vertexArray)
	r.record("DeleteVertexArray(%d)", vertexArray)
}

func (r *Recorder) Err() error {
	err := r.PendingErr
	r.PendingErr = nil
	return err
}
