// Command atmos opens a window and renders the procedural sky through the
// ambient occlusion and tone mapping pass. Moving the mouse turns the camera.
package main

import (
	"Atmos/internal/config"
	"Atmos/internal/engine"
	"Atmos/internal/gpu"
	"Atmos/internal/logger"
	"Atmos/internal/renderer"
	"Atmos/internal/sky"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"
)

func init() {
	// glfw and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "JSON or YAML config file")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	floor := flag.String("floor", "", "BMP texture for the floor; overrides floor.texture")
	debug := flag.Bool("debug", false, "check for GPU errors after every frame")
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *floor != "" {
		cfg.Floor.Texture = *floor
	}
	cfg.Debug = cfg.Debug || *debug

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Log.Fatal("Invalid configuration", zap.String("path", *configPath), zap.Error(cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Log.Fatal("Atmos failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config) error {
	window, err := engine.OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Close()

	device := gpu.NewOpenGL()
	device.Init()

	width, height := window.Size()
	scene, err := buildScene(device, cfg, width, height)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	return engine.New(window, device, cfg).Run(ctx, scene)
}

// buildScene adds the sky, the optional floor and the width x height
// post-process pass. The scene is destroyed if any entity fails.
func buildScene(device gpu.Device, cfg config.Config, width, height int) (*renderer.Scene, error) {
	scene := renderer.NewScene(device)
	*scene.Camera() = engine.CameraFromConfig(cfg.Camera)

	params := sky.Params{Cirrus: cfg.Sky.Cirrus, Cumulus: cfg.Sky.Cumulus}
	if _, err := renderer.NewSky(scene, params); err != nil {
		scene.Destroy()
		return nil, fmt.Errorf("sky: %w", err)
	}
	if cfg.Floor.Texture != "" {
		if _, err := renderer.NewFloor(scene, cfg.Floor.Texture); err != nil {
			scene.Destroy()
			return nil, fmt.Errorf("floor: %w", err)
		}
	}
	if _, err := renderer.NewPostProcess(scene, width, height); err != nil {
		scene.Destroy()
		return nil, fmt.Errorf("post-process: %w", err)
	}

	logger.Log.Info("Scene ready", zap.Int("entities", len(scene.Entities())))
	return scene, nil
}
