package sky

import (
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Noise is a deterministic 3D scalar field with values in [0,1].
type Noise interface {
	At(p mgl32.Vec3) float32
}

// Hash maps n to a pseudo-random value in [0,1).
func Hash(n float32) float32 {
	return fract(math32.Sin(n) * 43758.5453123)
}

// ValueNoise trilinearly interpolates Hash values at the corners of the unit
// lattice cell containing p. Cell corners are keyed by dot(floor(p), (1,157,113)).
type ValueNoise struct{}

func (ValueNoise) At(p mgl32.Vec3) float32 {
	fx, fy, fz := fract(p[0]), fract(p[1]), fract(p[2])
	n := math32.Floor(p[0]) + math32.Floor(p[1])*157 + math32.Floor(p[2])*113

	return mix(
		mix(mix(Hash(n+0), Hash(n+1), fx), mix(Hash(n+157), Hash(n+158), fx), fy),
		mix(mix(Hash(n+113), Hash(n+114), fx), mix(Hash(n+270), Hash(n+271), fx), fy),
		fz)
}

// PerlinNoise is gradient noise remapped to [0,1]. It gives softer, rounder
// clouds than ValueNoise.
type PerlinNoise struct {
	p *perlin.Perlin
}

// NewPerlinNoise seeds a Perlin field. alpha is the weight falloff between
// octaves, beta the frequency step, octaves the number of octaves.
func NewPerlinNoise(alpha, beta float64, octaves int32, seed int64) *PerlinNoise {
	return &PerlinNoise{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

func (n *PerlinNoise) At(p mgl32.Vec3) float32 {
	v := n.p.Noise3D(float64(p[0]), float64(p[1]), float64(p[2]))
	return mgl32.Clamp(float32(v)*0.5+0.5, 0, 1)
}
