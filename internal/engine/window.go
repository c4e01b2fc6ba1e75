package engine

import (
	"Atmos/internal/config"
	"Atmos/internal/logger"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Window is what the frame loop needs from the platform window.
type Window interface {
	CursorPos() (x, y float64)
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	// Time is seconds since the window was opened.
	Time() float64
	// Size is the drawable size in pixels.
	Size() (width, height int)
}

// GLFWWindow is a glfw window with a current OpenGL 3.3 core context.
type GLFWWindow struct {
	window *glfw.Window
}

var _ Window = (*GLFWWindow)(nil)

// OpenWindow creates the window and makes its context current on the calling
// thread, which must stay locked to its OS thread.
func OpenWindow(cfg config.WindowConfig) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}
	setDarkTitleBar(window)
	glfw.SetTime(0)

	logger.Log.Info("Window opened",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	return &GLFWWindow{window: window}, nil
}

func (w *GLFWWindow) CursorPos() (float64, float64) {
	return w.window.GetCursorPos()
}

func (w *GLFWWindow) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *GLFWWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *GLFWWindow) Time() float64 {
	return glfw.GetTime()
}

func (w *GLFWWindow) Size() (int, int) {
	return w.window.GetFramebufferSize()
}

// Close destroys the window and shuts glfw down. GPU objects must be released
// before, while the context is still current.
func (w *GLFWWindow) Close() {
	w.window.Destroy()
	glfw.Terminate()
	logger.Log.Info("Window closed")
}
