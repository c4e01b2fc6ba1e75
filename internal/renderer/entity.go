package renderer

import (
	"Atmos/internal/gpu"
	"Atmos/internal/logger"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MaxTextures is the number of texture slots an entity can own.
const MaxTextures = 16

var (
	ErrTooManyTextures = errors.New("too many textures")
	ErrShortVertexData = errors.New("vertex data shorter than vertex count")
	ErrVertexLayout    = errors.New("negative vertex or layout count")
	ErrTargetSize      = errors.New("render target needs a positive size")
)

// EntityDesc describes an entity to build.
type EntityDesc struct {
	Name           string
	VertexSource   string
	FragmentSource string

	// TexturePaths are bitmap files bound to units 0.. in order. An empty path
	// leaves its slot unbound. Ignored for render targets.
	TexturePaths []string

	// Vertices holds VertexCount vertices of Layouts interleaved vec3 attributes.
	Vertices    []float32
	VertexCount int
	Layouts     int

	// RenderTarget gives the entity a Width x Height framebuffer whose color
	// and depth textures it samples in the second draw phase.
	RenderTarget  bool
	Width, Height int

	DepthTest bool

	// Uniforms are float uniforms set by name on every draw.
	Uniforms map[string]float32
}

func (desc *EntityDesc) validate() error {
	if len(desc.TexturePaths) > MaxTextures {
		return fmt.Errorf("%w: %d > %d", ErrTooManyTextures, len(desc.TexturePaths), MaxTextures)
	}
	if desc.VertexCount < 0 || desc.Layouts < 0 {
		return fmt.Errorf("%w: %d vertices, %d layouts", ErrVertexLayout, desc.VertexCount, desc.Layouts)
	}
	if want := desc.VertexCount * desc.Layouts * 3; len(desc.Vertices) < want {
		return fmt.Errorf("%w: have %d floats, want %d", ErrShortVertexData, len(desc.Vertices), want)
	}
	if desc.RenderTarget && (desc.Width <= 0 || desc.Height <= 0) {
		return fmt.Errorf("%w: %dx%d", ErrTargetSize, desc.Width, desc.Height)
	}
	return nil
}

// Entity is a drawable unit: geometry, a program, up to MaxTextures textures
// and optionally an offscreen framebuffer.
type Entity struct {
	Name string

	device      gpu.Device
	vertexCount int
	vertexArray gpu.Handle
	buffer      gpu.Handle
	program     gpu.Handle

	locP, locV, locM, locTex, locTime int32

	textures    []gpu.Handle
	framebuffer *gpu.Framebuffer
	depthTest   bool
	model       mgl32.Mat4
	uniforms    *UniformCache
	values      map[string]float32
	names       []string
	destroyed   bool
}

// NewEntity builds the entity's GPU objects and appends it to the scene. If any
// step fails, everything acquired so far is released.
func NewEntity(scene *Scene, desc EntityDesc) (*Entity, error) {
	if err := desc.validate(); err != nil {
		return nil, fmt.Errorf("entity %q: %w", desc.Name, err)
	}
	d := scene.device

	e := &Entity{
		Name:        desc.Name,
		device:      d,
		vertexCount: desc.VertexCount,
		depthTest:   desc.DepthTest,
		model:       mgl32.Ident4(),
		values:      make(map[string]float32, len(desc.Uniforms)),
	}

	var cleanup Unwind
	defer cleanup.Unwind()

	e.buffer = d.MakeBuffer(desc.Vertices[:desc.VertexCount*desc.Layouts*3])
	cleanup.Add(func() { d.DeleteBuffer(e.buffer) })
	e.vertexArray = d.MakeVertexArray(e.buffer, desc.Layouts)
	cleanup.Add(func() { d.DeleteVertexArray(e.vertexArray) })

	program, err := d.LinkProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", desc.Name, err)
	}
	e.program = program
	cleanup.Add(func() { d.DeleteProgram(e.program) })

	e.locP = d.UniformLocation(program, "P")
	e.locV = d.UniformLocation(program, "V")
	e.locM = d.UniformLocation(program, "M")
	e.locTex = d.UniformLocation(program, "tex")
	e.locTime = d.UniformLocation(program, "time")

	e.uniforms = NewUniformCache(d, program)
	for name, v := range desc.Uniforms {
		e.values[name] = v
	}
	e.names = maps.Keys(e.values)
	slices.Sort(e.names)

	if desc.RenderTarget {
		fb, err := d.MakeFramebuffer(desc.Width, desc.Height)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", desc.Name, err)
		}
		e.framebuffer = &fb
		e.textures = []gpu.Handle{fb.Color, fb.Depth}
		cleanup.Add(func() {
			d.DeleteFramebuffer(fb.ID)
			d.DeleteTextures(fb.Color, fb.Depth)
		})
	} else {
		e.textures = make([]gpu.Handle, len(desc.TexturePaths))
		cleanup.Add(func() { d.DeleteTextures(e.textures...) })
		for i, path := range desc.TexturePaths {
			if path == "" {
				continue
			}
			tex, err := gpu.LoadTexture(d, path)
			if err != nil {
				return nil, fmt.Errorf("entity %q: texture %d: %w", desc.Name, i, err)
			}
			e.textures[i] = tex
		}
	}

	cleanup.Discard()
	scene.add(e)

	logger.Log.Debug("Entity created",
		zap.String("name", e.Name),
		zap.Int("vertices", e.vertexCount),
		zap.Int("textures", len(e.textures)),
		zap.Bool("renderTarget", e.framebuffer != nil))

	return e, nil
}

// Framebuffer returns the entity's offscreen target, or nil.
func (e *Entity) Framebuffer() *gpu.Framebuffer {
	return e.framebuffer
}

func (e *Entity) Textures() []gpu.Handle {
	return slices.Clone(e.textures)
}

func (e *Entity) SetModel(m mgl32.Mat4) {
	e.model = m
}

// SetUniform sets a named float uniform uploaded on every draw.
func (e *Entity) SetUniform(name string, v float32) {
	if _, ok := e.values[name]; !ok {
		i, _ := slices.BinarySearch(e.names, name)
		e.names = slices.Insert(e.names, i, name)
	}
	e.values[name] = v
}

func (e *Entity) Uniform(name string) (float32, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Render draws the entity. A render target entity draws to the screen, sampling
// its own color and depth textures.
func (e *Entity) Render(p, v mgl32.Mat4, time float32) {
	d := e.device
	d.UseProgram(e.program)

	n := len(e.textures)
	if e.framebuffer != nil {
		n = 2
	}
	for i := 0; i < n; i++ {
		d.BindTexture(i, e.textures[i])
		if e.locTex != -1 {
			d.SetInt(e.locTex+int32(i), int32(i))
		}
	}

	if e.locP != -1 {
		d.SetMat4(e.locP, p)
	}
	if e.locV != -1 {
		d.SetMat4(e.locV, v)
	}
	if e.locM != -1 {
		d.SetMat4(e.locM, e.model)
	}
	if e.locTime != -1 {
		d.SetFloat(e.locTime, time)
	}
	for _, name := range e.names {
		e.uniforms.SetFloat(name, e.values[name])
	}

	if e.framebuffer != nil {
		d.BindTarget(gpu.Screen)
		d.Clear()
	}

	if !e.depthTest {
		d.SetDepthTest(false)
	}
	d.DrawStrip(e.vertexArray, e.vertexCount)
	if !e.depthTest {
		d.SetDepthTest(true)
	}
}

// Destroy releases every GPU object the entity owns. Safe to call twice.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	d := e.device
	d.DeleteProgram(e.program)
	d.DeleteTextures(e.textures...)
	d.DeleteBuffer(e.buffer)
	if e.framebuffer != nil {
		d.DeleteFramebuffer(e.framebuffer.ID)
	}
	d.DeleteVertexArray(e.vertexArray)
	e.uniforms.Clear()
}
