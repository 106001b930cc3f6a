package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/echoflaresat/pathcam/config"
	"github.com/echoflaresat/pathcam/imageio"
	"github.com/echoflaresat/pathcam/preview"
	"github.com/echoflaresat/pathcam/render"
	"github.com/echoflaresat/pathcam/scene"
	"github.com/echoflaresat/pathcam/sky"
)

type options struct {
	configPath, sceneName      *string
	width                      *int
	aspect                     *float64
	spp, depth, workers        *int
	seed                       *uint64
	center                     *bool
	out                        *string
	ppmBinary                  *bool
	jpegQuality                *int
	tile                       *string
	tileIndex                  *int
	timeStr                    *string
	lat, lon                   *float64
	showPreview, verbose, help *bool
}

func defineFlags(fs *flag.FlagSet) options {
	defaults := config.Default()
	return options{
		configPath: fs.String("config", "", "JSON file with render settings"),
		sceneName:  fs.String("scene", "default", "Scene preset name or JSON scene file"),

		width:   fs.Int("width", defaults.ImageWidth, "Output image width in pixels"),
		aspect:  fs.Float64("aspect", defaults.AspectRatio, "Aspect ratio (width / height)"),
		spp:     fs.Int("spp", defaults.SamplesPerPixel, "Samples per pixel"),
		depth:   fs.Int("depth", defaults.MaxDepth, "Maximum bounces per path"),
		seed:    fs.Uint64("seed", defaults.Seed, "Random seed; equal seeds give equal images"),
		workers: fs.Int("workers", defaults.Workers, "Rows rendered in parallel (0 = all CPUs)"),
		center:  fs.Bool("center", false, "Aim every sample at the pixel centre instead of jittering"),

		out:         fs.String("out", "image.ppm", "Output file (.ppm, .png, .tif, .jpg)"),
		ppmBinary:   fs.Bool("ppm-binary", false, "Write binary P6 instead of plain P3 PPM"),
		jpegQuality: fs.Int("jpeg-quality", 95, "JPEG quality (1-100)"),
		tile:        fs.String("tile", "", "Tile layout CxR; renders only tile -tile-index"),
		tileIndex:   fs.Int("tile-index", 0, "Tile to render, row by row from the top left"),

		timeStr: fs.String("time", "", "Daylight sky at this RFC3339 time (or \"now\")"),
		lat:     fs.Float64("lat", 0.0, "Observer latitude in degrees for the daylight sky"),
		lon:     fs.Float64("lon", 0.0, "Observer longitude in degrees for the daylight sky"),

		showPreview: fs.Bool("preview", false, "Show the result in the terminal"),
		verbose:     fs.Bool("v", false, "Debug logging"),
		help:        fs.Bool("h", false, "Show this help message"),
	}
}

func printHelp(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, `pathcam - Monte Carlo path tracer

Usage:
  %[1]s [options]

Scenes: %[2]v

`, fs.Name(), scene.Presets())

	printGroup(fs, "Scene", []string{"scene", "config"})
	printGroup(fs, "Rendering Options", []string{"width", "aspect", "spp", "depth", "seed", "workers", "center"})
	printGroup(fs, "Daylight Sky", []string{"time", "lat", "lon"})
	printGroup(fs, "Output", []string{"out", "ppm-binary", "jpeg-quality", "tile", "tile-index", "preview"})
	printGroup(fs, "Misc", []string{"v", "h"})
}

func printGroup(fs *flag.FlagSet, title string, keys []string) {
	out := fs.Output()
	fmt.Fprintf(out, "%s:\n", title)
	for _, name := range keys {
		if f := fs.Lookup(name); f != nil {
			fmt.Fprintf(out, "  -%-11s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(out)
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("pathcam: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("pathcam", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := defineFlags(fs)
	fs.Usage = func() { printHelp(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *opts.help {
		printHelp(fs)
		return flag.ErrHelp
	}

	level := slog.LevelInfo
	if *opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := buildConfig(fs, opts)
	if err != nil {
		return err
	}
	setup, err := loadSetup(*opts.sceneName, cfg.Seed)
	if err != nil {
		return err
	}
	if *opts.timeStr != "" {
		t, err := parseTime(*opts.timeStr)
		if err != nil {
			return err
		}
		setup.Sky = sky.Daylight(t, *opts.lat, *opts.lon)
		logger.Debug("daylight sky", "time", t, "elevation", sky.SunElevation(t, *opts.lat, *opts.lon))
	}

	renderOpts := render.OptionsFromConfig(cfg)
	if *opts.center {
		renderOpts.Sampling = render.SampleCenter
	}
	if *opts.jpegQuality < 1 || *opts.jpegQuality > 100 {
		return fmt.Errorf("jpeg quality %d outside 1-100", *opts.jpegQuality)
	}
	if *opts.tile != "" {
		cols, rows, err := render.ParseLayout(*opts.tile)
		if err != nil {
			return err
		}
		region, err := render.TileRegion(renderOpts.Width, renderOpts.Height, cols, rows, *opts.tileIndex)
		if err != nil {
			return err
		}
		renderOpts.Region = region
	}
	renderOpts.Progress = render.LogMilestones(logger, 10)

	logger.Info("rendering",
		"scene", setup.Name, "objects", setup.World.Len(),
		"width", renderOpts.Width, "height", renderOpts.Height,
		"spp", renderOpts.SamplesPerPixel, "depth", renderOpts.MaxDepth,
		"out", *opts.out)

	img, err := renderFrame(setup, cfg.AspectRatio, renderOpts, logger)
	if err != nil {
		return err
	}

	if err := imageio.Save(*opts.out, img, imageio.SaveOptions{
		PPMBinary:   *opts.ppmBinary,
		JPEGQuality: *opts.jpegQuality,
	}); err != nil {
		return fmt.Errorf("failed to write %s: %w", *opts.out, err)
	}
	logger.Info("wrote image", "path", *opts.out)

	if *opts.showPreview {
		return preview.Show(img)
	}
	return nil
}

// buildConfig layers the defaults, the optional JSON config file and the
// flags given on the command line, in that order.
func buildConfig(fs *flag.FlagSet, opts options) (config.Config, error) {
	cfg := config.Default()
	if *opts.configPath != "" {
		loaded, err := config.Load(*opts.configPath, cfg)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.ImageWidth = *opts.width
		case "aspect":
			cfg.AspectRatio = *opts.aspect
		case "spp":
			cfg.SamplesPerPixel = *opts.spp
		case "depth":
			cfg.MaxDepth = *opts.depth
		case "seed":
			cfg.Seed = *opts.seed
		case "workers":
			cfg.Workers = *opts.workers
		}
	})
	return cfg, cfg.Validate()
}

func loadSetup(name string, seed uint64) (scene.Setup, error) {
	if scene.IsSceneFile(name) {
		return scene.Load(name)
	}
	return scene.Preset(name, seed)
}

func parseTime(s string) (time.Time, error) {
	if s == "now" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return t, nil
}

// renderFrame builds the camera for setup and renders it, logging the
// render statistics.
func renderFrame(setup scene.Setup, aspectRatio float64, opts render.Options, logger *slog.Logger) (*image.NRGBA, error) {
	camera, err := render.NewCamera(render.ConfigFromView(setup.View, aspectRatio))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := render.RenderScene(camera, setup.World, setup.Sky, opts)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	pixels := img.Bounds().Dx() * img.Bounds().Dy()
	samples := pixels * opts.SamplesPerPixel
	logger.Info("render complete",
		"rows", img.Bounds().Dy(),
		"pixels", pixels,
		"samples", samples,
		"elapsed", elapsed.Round(time.Millisecond),
		"samplesPerSecond", int(float64(samples)/max(elapsed.Seconds(), 1e-9)))
	return img, nil
}
