package engine

import (
	"Atmos/internal/config"
	"Atmos/internal/gpu"
	"Atmos/internal/logger"
	"Atmos/internal/renderer"
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Engine drives the frame loop: input, scene render, present.
type Engine struct {
	window      Window
	device      gpu.Device
	sensitivity float32
	timeScale   float32
	debug       bool

	frames uint64
}

func New(window Window, device gpu.Device, cfg config.Config) *Engine {
	return &Engine{
		window:      window,
		device:      device,
		sensitivity: cfg.Camera.Sensitivity,
		timeScale:   cfg.Sky.TimeScale,
		debug:       cfg.Debug,
	}
}

// CameraFromConfig is the camera state described by cfg.
func CameraFromConfig(cfg config.CameraConfig) renderer.CameraState {
	cam := renderer.DefaultCameraState()
	cam.Position = mgl32.Vec3(cfg.Position)
	cam.Yaw = cfg.Yaw
	cam.Pitch = cfg.Pitch
	cam.ClampPitch = cfg.ClampPitch
	return cam
}

// Frames is the number of frames presented so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Run renders scene until the window asks to close or ctx is done. The scene
// and window are left for the caller to tear down, in that order.
func (e *Engine) Run(ctx context.Context, scene *renderer.Scene) error {
	scene.Camera().SeedCursor(e.window.CursorPos())
	logger.Log.Info("Render loop started")

	for !e.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			logger.Log.Info("Render loop stopped", zap.Uint64("frames", e.frames), zap.Error(err))
			return nil
		}
		if err := e.Frame(scene); err != nil {
			return err
		}
	}

	logger.Log.Info("Render loop finished", zap.Uint64("frames", e.frames))
	return nil
}

// Frame applies input, renders and presents a single frame.
func (e *Engine) Frame(scene *renderer.Scene) error {
	x, y := e.window.CursorPos()
	scene.Camera().ApplyCursor(x, y, e.sensitivity)

	t := float32(e.window.Time()) * e.timeScale
	w, h := e.window.Size()
	if w > 0 && h > 0 {
		// minimized windows have no drawable area
		scene.Render(w, h, t)
	}

	if e.debug {
		if err := e.device.Err(); err != nil {
			logger.Log.Error("GPU error", zap.Uint64("frame", e.frames), zap.Error(err))
			return fmt.Errorf("frame %d: %w", e.frames, err)
		}
	}

	e.window.SwapBuffers()
	e.window.PollEvents()
	e.frames++
	return nil
}
