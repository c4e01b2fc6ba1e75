package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
	VSync  bool   `json:"vsync" yaml:"vsync"`
}

type CameraConfig struct {
	Position    [3]float32 `json:"position" yaml:"position"`
	Yaw         float32    `json:"yaw" yaml:"yaw"`
	Pitch       float32    `json:"pitch" yaml:"pitch"`
	Sensitivity float32    `json:"sensitivity" yaml:"sensitivity"`
	ClampPitch  bool       `json:"clamp_pitch" yaml:"clamp_pitch"`
}

type SkyConfig struct {
	Cirrus    float32 `json:"cirrus" yaml:"cirrus"`
	Cumulus   float32 `json:"cumulus" yaml:"cumulus"`
	TimeScale float32 `json:"time_scale" yaml:"time_scale"`
}

type FloorConfig struct {
	// Texture is a BMP file. The floor is only added when it is set.
	Texture string `json:"texture" yaml:"texture"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

type Config struct {
	Window WindowConfig `json:"window" yaml:"window"`
	Camera CameraConfig `json:"camera" yaml:"camera"`
	Sky    SkyConfig    `json:"sky" yaml:"sky"`
	Floor  FloorConfig  `json:"floor" yaml:"floor"`
	Log    LogConfig    `json:"log" yaml:"log"`
	// Debug checks the GL error state after every frame.
	Debug bool `json:"debug" yaml:"debug"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Atmos",
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 2, -3},
			Yaw:         3.14,
			Pitch:       0,
			Sensitivity: 0.01,
		},
		Sky: SkyConfig{
			Cirrus:    0.4,
			Cumulus:   0.8,
			TimeScale: 0.2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a JSON or YAML file on top of the defaults. Keys missing from the
// file keep their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json", "":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Sky.Cirrus < 0 || c.Sky.Cirrus > 1 {
		errs = append(errs, fmt.Errorf("sky.cirrus must be within [0, 1], got %v", c.Sky.Cirrus))
	}
	if c.Sky.Cumulus < 0 || c.Sky.Cumulus > 1 {
		errs = append(errs, fmt.Errorf("sky.cumulus must be within [0, 1], got %v", c.Sky.Cumulus))
	}
	if c.Sky.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("sky.time_scale must not be negative, got %v", c.Sky.TimeScale))
	}
	return errors.Join(errs...)
}
