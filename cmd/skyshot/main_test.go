package main

import (
	atmosbmp "Atmos/internal/bmp"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesBMP(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sky.bmp")
	opts := options{output: out, width: 10, height: 6, time: 3, quiet: true}

	if err := run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	img, err := atmosbmp.Open(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Width != 10 || img.Height != 6 {
		t.Errorf("size = %dx%d, want 10x6", img.Width, img.Height)
	}
}

func TestRunWritesPNGWithPerlin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sky.png")
	opts := options{output: out, width: 8, height: 8, perlin: true, seed: 7, workers: 2, quiet: true}

	if err := run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("size = %dx%d, want 8x8", cfg.Width, cfg.Height)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sky.gif")
	if err := run(context.Background(), options{output: out, quiet: true}); err == nil {
		t.Fatal("expected an error for .gif output")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file was created")
	}
}
