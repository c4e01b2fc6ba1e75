// Package post is the full-screen pass drawn after the scene: screen-space
// ambient occlusion from the captured depth, then tone mapping.
package post

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Radius is the neighbourhood half-width in samples.
	Radius = 2
	// Spread is the distance between neighbourhood samples in texels.
	Spread = 4

	samples = (2*Radius+1)*(2*Radius+1) - 1
)

// DepthSampler is a depth texture sampled at normalized coordinates.
type DepthSampler interface {
	Size() (width, height int)
	DepthAt(u, v float32) float32
}

// DepthBuffer is a row-major depth image, bottom row first. Sampling is
// nearest-texel with clamp-to-edge, like the depth attachment it stands in for.
type DepthBuffer struct {
	Width, Height int
	Values        []float32
}

// FlatDepth returns a buffer with every texel at depth d.
func FlatDepth(width, height int, d float32) *DepthBuffer {
	values := make([]float32, width*height)
	for i := range values {
		values[i] = d
	}
	return &DepthBuffer{Width: width, Height: height, Values: values}
}

func (b *DepthBuffer) Size() (int, int) {
	return b.Width, b.Height
}

func (b *DepthBuffer) DepthAt(u, v float32) float32 {
	x := clampInt(int(math32.Floor(u*float32(b.Width))), 0, b.Width-1)
	y := clampInt(int(math32.Floor(v*float32(b.Height))), 0, b.Height-1)
	return b.Values[y*b.Width+x]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Occlusion is the ambient light factor at (u, v), in (0,1]. Neighbours
// farther from the camera than the center darken it, more so the larger the
// depth gap. A flat neighbourhood gives exactly 1.
func Occlusion(depth DepthSampler, u, v float32) float32 {
	w, h := depth.Size()
	ru, rv := Spread/float32(w), Spread/float32(h)
	center := depth.DepthAt(u, v)

	var sum float32
	for i := -Radius; i <= Radius; i++ {
		for j := -Radius; j <= Radius; j++ {
			if i == 0 && j == 0 {
				continue
			}
			d := depth.DepthAt(u+float32(i)*ru, v+float32(j)*rv)
			occ := 10 * math32.Min(center-d, 0)
			sum += 1 / (1 + occ*occ)
		}
	}
	return sum / samples
}

// ToneMap compresses an HDR color into [0,1). Negative channels map to 0.
func ToneMap(c mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i, x := range c {
		x = math32.Max(x, 0)
		out[i] = math32.Pow(1-math32.Exp(-1.3*x), 1.3)
	}
	return out
}

// Apply post-processes the color at (u, v).
func Apply(c mgl32.Vec3, depth DepthSampler, u, v float32) mgl32.Vec3 {
	return ToneMap(c.Mul(Occlusion(depth, u, v)))
}
