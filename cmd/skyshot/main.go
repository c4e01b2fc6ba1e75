// Command skyshot renders a still of the sky on the CPU and writes it as PNG or
// BMP, chosen by the output file extension.
package main

import (
	"Atmos/internal/config"
	"Atmos/internal/engine"
	"Atmos/internal/logger"
	"Atmos/internal/preview"
	"Atmos/internal/sky"
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"
)

type options struct {
	config  string
	output  string
	width   int
	height  int
	time    float64
	perlin  bool
	seed    int64
	workers int
	quiet   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "JSON or YAML config file")
	flag.StringVar(&opts.output, "o", "sky.png", "output file (.png or .bmp)")
	flag.IntVar(&opts.width, "width", 0, "image width; defaults to the configured window width")
	flag.IntVar(&opts.height, "height", 0, "image height; defaults to the configured window height")
	flag.Float64Var(&opts.time, "time", 0, "sky time, as passed to the shaders")
	flag.BoolVar(&opts.perlin, "perlin", false, "use Perlin noise for the clouds")
	flag.Int64Var(&opts.seed, "seed", 1, "Perlin noise seed")
	flag.IntVar(&opts.workers, "workers", 0, "rows rendered in parallel; 0 uses every CPU")
	flag.BoolVar(&opts.quiet, "q", false, "no progress bar")
	flag.Parse()

	if err := logger.Init("info", false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		logger.Log.Fatal("skyshot failed", zap.Error(err))
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.width <= 0 {
		opts.width = cfg.Window.Width
	}
	if opts.height <= 0 {
		opts.height = cfg.Window.Height
	}
	encode, err := encoderFor(opts.output)
	if err != nil {
		return err
	}

	params := sky.Params{Cirrus: cfg.Sky.Cirrus, Cumulus: cfg.Sky.Cumulus}
	if opts.perlin {
		params.Clouds = sky.NewPerlinNoise(2, 2, 3, opts.seed)
	}

	var bar *progressbar.ProgressBar
	if opts.quiet {
		bar = progressbar.DefaultSilent(int64(opts.height))
	} else {
		bar = progressbar.Default(int64(opts.height), "rendering")
	}

	img, err := preview.Render(ctx, preview.Options{
		Width:   opts.width,
		Height:  opts.height,
		Time:    float32(opts.time),
		Camera:  engine.CameraFromConfig(cfg.Camera),
		Sky:     params,
		Workers: opts.workers,
		OnRow:   func() { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Log.Info("Image written",
		zap.String("path", opts.output),
		zap.Int("width", opts.width),
		zap.Int("height", opts.height))
	return nil
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", filepath.Ext(path))
}
