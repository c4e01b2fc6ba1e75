// Package sky holds the procedural sky: the GLSL program the sky entity draws
// with and a float32 CPU rendition of the same model for offline images and
// tests.
//
// The model is single-scattering Rayleigh and Mie with an empirical extinction
// term that fades to a dim night color as the sun sets, overlaid with one cirrus
// layer and three cumulus layers of fractal value noise.
package sky

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	Br = 0.0025 // Rayleigh coefficient
	Bm = 0.0003 // Mie coefficient
	G  = 0.98   // Mie asymmetry
)

var (
	Nitrogen = mgl32.Vec3{0.650, 0.570, 0.475}

	kr = mgl32.Vec3{
		Br / math32.Pow(Nitrogen[0], 4),
		Br / math32.Pow(Nitrogen[1], 4),
		Br / math32.Pow(Nitrogen[2], 4),
	}
	km = mgl32.Vec3{
		Bm / math32.Pow(Nitrogen[0], 0.84),
		Bm / math32.Pow(Nitrogen[1], 0.84),
		Bm / math32.Pow(Nitrogen[2], 0.84),
	}

	// octave rotation between fbm samples
	octave = mgl32.Mat3{0.0, 1.60, 1.20, -1.6, 0.72, -0.96, -1.2, -0.96, 1.28}
)

// Params are the cloud coverage controls, each in [0,1].
type Params struct {
	Cirrus  float32
	Cumulus float32

	// Clouds is the noise basis for the cloud layers. Nil means ValueNoise.
	Clouds Noise
}

func DefaultParams() Params {
	return Params{Cirrus: 0.4, Cumulus: 0.8}
}

// SunDirection is the sun position at time t. It moves on the y/z great circle.
func SunDirection(t float32) mgl32.Vec3 {
	return mgl32.Vec3{0, math32.Sin(t * 0.01), math32.Cos(t * 0.01)}
}

// FBM sums five octaves of n with weights 1/2, 1/4, 1/6, 1/12 and 1/24,
// rotating and scaling the sample point between octaves.
func FBM(n Noise, p mgl32.Vec3) float32 {
	var f float32
	f += n.At(p) / 2
	p = octave.Mul3x1(p).Mul(1.1)
	f += n.At(p) / 4
	p = octave.Mul3x1(p).Mul(1.2)
	f += n.At(p) / 6
	p = octave.Mul3x1(p).Mul(1.3)
	f += n.At(p) / 12
	p = octave.Mul3x1(p).Mul(1.4)
	f += n.At(p) / 24
	return f
}

// Color shades the view ray pos at time t. pos need not be normalized; its y
// component is used unnormalized as the elevation term. The second result is
// false for rays below the horizon, which the sky does not cover.
func Color(pos mgl32.Vec3, t float32, params Params) (mgl32.Vec3, bool) {
	if pos.Y() < 0 {
		return mgl32.Vec3{}, false
	}
	clouds := params.Clouds
	if clouds == nil {
		clouds = ValueNoise{}
	}
	sun := SunDirection(t)
	y := pos.Y()

	mu := pos.Normalize().Dot(sun.Normalize())
	rayleigh := 3.0 / (8.0 * 3.14) * (1 + mu*mu)
	phase := (1 - G*G) / (2 + G*G) / math32.Pow(1+G*G-2*G*mu, 1.5)

	horizon := math32.Exp(-y*16) + 0.1
	var dayExtinction mgl32.Vec3
	for i := range dayExtinction {
		inner := -math32.Exp(-((y+sun.Y()*4)*horizon/80)/Br) * horizon * kr[i] / Br
		dayExtinction[i] = math32.Exp(inner) * math32.Exp(-y*math32.Exp(-y*8)*4) * math32.Exp(-y*2) * 4
	}
	night := (1 - math32.Exp(sun.Y())) * 0.2
	nightExtinction := mgl32.Vec3{night, night, night}
	extinction := mix3(dayExtinction, nightExtinction, -sun.Y()*0.2+0.5)

	var c mgl32.Vec3
	for i := range c {
		mie := (kr[i] + km[i]*phase) / (Br + Bm)
		c[i] = rayleigh * mie * extinction[i]
	}

	// Cloud layers are projected onto a plane above the camera and weighted by
	// elevation, so they vanish on the horizon.
	if y > 0 {
		overY := pos.Mul(1 / y)

		density := smoothstep(1-params.Cirrus, 1, FBM(clouds, offset(overY.Mul(2), t*0.05))) * 0.3
		c = mix3(c, extinction.Mul(4), density*y)

		for i := 0; i < 3; i++ {
			density := smoothstep(1-params.Cumulus, 1, FBM(clouds, offset(overY.Mul(0.7+float32(i)*0.01), t*0.3)))
			c = mix3(c, extinction.Mul(density*5), math32.Min(density, 1)*y)
		}
	}

	dither := ValueNoise{}.At(pos.Mul(1000)) * 0.01
	return c.Add(mgl32.Vec3{dither, dither, dither}), true
}

func offset(p mgl32.Vec3, s float32) mgl32.Vec3 {
	return p.Add(mgl32.Vec3{s, s, s})
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t)}
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 >= edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}
