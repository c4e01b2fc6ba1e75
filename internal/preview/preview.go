// Package preview renders the sky and post-process passes on the CPU, for
// stills without a graphics context.
package preview

import (
	"Atmos/internal/logger"
	"Atmos/internal/post"
	"Atmos/internal/renderer"
	"Atmos/internal/sky"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrSize = errors.New("preview size must be positive")

type Options struct {
	Width, Height int
	Time          float32
	Camera        renderer.CameraState
	Sky           sky.Params

	// Workers bounds the rows rendered at once. Zero means GOMAXPROCS.
	Workers int
	// OnRow, if set, is called after each row completes. It may be called
	// concurrently.
	OnRow func()
}

// Rays reconstructs view rays the way the sky vertex stage does: clip-space
// points are unprojected and rotated back into world space.
type Rays struct {
	invP mgl32.Mat4
	rotT mgl32.Mat3
}

func NewRays(p, v mgl32.Mat4) Rays {
	return Rays{invP: p.Inv(), rotT: v.Mat3().Transpose()}
}

// At is the view ray through the normalized device coordinates (x, y).
func (r Rays) At(x, y float32) mgl32.Vec3 {
	return r.rotT.Mul3x1(r.invP.Mul4x1(mgl32.Vec4{x, y, 0, 1}).Vec3())
}

// Render draws one frame. Rows are shaded concurrently; the first error or a
// cancelled ctx stops the render.
func Render(ctx context.Context, opts Options) (*image.NRGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, opts.Width, opts.Height)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	w, h := opts.Width, opts.Height
	rays := NewRays(renderer.ProjectionMatrix(w, h), opts.Camera.ViewMatrix())
	// the sky writes no depth, so the post pass sees a cleared buffer
	depth := post.FlatDepth(w, h, 1)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for row := 0; row < h; row++ {
		row := row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// image rows run top-down, texture rows bottom-up
			v := 1 - (float32(row)+0.5)/float32(h)
			for col := 0; col < w; col++ {
				u := (float32(col) + 0.5) / float32(w)
				c, ok := sky.Color(rays.At(u*2-1, v*2-1), opts.Time, opts.Sky)
				if !ok {
					c = mgl32.Vec3{}
				}
				img.SetNRGBA(col, row, toNRGBA(post.Apply(c, depth, u, v)))
			}
			if opts.OnRow != nil {
				opts.OnRow()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Log.Debug("Preview rendered",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))

	return img, nil
}

func toNRGBA(c mgl32.Vec3) color.NRGBA {
	return color.NRGBA{channel(c[0]), channel(c[1]), channel(c[2]), 255}
}

func channel(x float32) uint8 {
	return uint8(mgl32.Clamp(x, 0, 1)*255 + 0.5)
}
