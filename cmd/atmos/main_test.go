package main

import (
	"Atmos/internal/config"
	"Atmos/internal/gpu/gputest"
	"testing"
)

func TestBuildScene(t *testing.T) {
	rec := gputest.NewRecorder()
	cfg := config.Default()
	cfg.Camera.Yaw = 1

	scene, err := buildScene(rec, cfg, 800, 600)
	if err != nil {
		t.Fatalf("buildScene: %v", err)
	}
	entities := scene.Entities()
	if len(entities) != 2 || entities[0].Name != "sky" || entities[1].Name != "post" {
		t.Fatalf("entities = %v", entities)
	}
	if scene.Camera().Yaw != 1 {
		t.Errorf("camera yaw = %v, want 1", scene.Camera().Yaw)
	}
	if v, ok := entities[0].Uniform("cumulus"); !ok || v != cfg.Sky.Cumulus {
		t.Errorf("cumulus = %v, %v", v, ok)
	}

	scene.Destroy()
	if live := rec.Live(); len(live) != 0 {
		t.Errorf("leaked %v", live)
	}
}

func TestBuildSceneMissingFloor(t *testing.T) {
	rec := gputest.NewRecorder()
	cfg := config.Default()
	cfg.Floor.Texture = "does-not-exist.bmp"

	if _, err := buildScene(rec, cfg, 800, 600); err == nil {
		t.Fatal("missing floor texture did not fail")
	}
	if live := rec.Live(); len(live) != 0 {
		t.Errorf("leaked %v", live)
	}
}
