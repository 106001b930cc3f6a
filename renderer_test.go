package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/echoflaresat/pathcam/imageio"
	"github.com/echoflaresat/pathcam/render"
	"github.com/echoflaresat/pathcam/scene"
)

func TestViews(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		scene string
		ext   string
		args  []string
	}{
		{"default", "png", nil},
		{"glass", "png", nil},
		{"mirror", "png", []string{"-center"}},
		{"cover", "tif", []string{"-depth", "4"}},
		{"mirror", "jpg", []string{"-jpeg-quality", "60"}},
		{"default", "ppm", []string{"-time", "2024-08-08T19:40:00Z", "-lat", "47", "-lon", "19"}},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, c.scene), func(t *testing.T) {
			out := filepath.Join(dir, fmt.Sprintf("%d.%s", i, c.ext))
			args := append([]string{"-scene", c.scene, "-width", "32", "-spp", "2", "-out", out}, c.args...)
			if err := run(args, io.Discard); err != nil {
				t.Fatalf("run: %v", err)
			}
			img, err := imageio.Load(out)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Bounds().Size(); got != image.Pt(32, 18) {
				t.Errorf("size = %v, want 32x18", got)
			}
		})
	}
}

func TestPlainPPMOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "image.ppm")
	args := []string{"-scene", "mirror", "-width", "20", "-spp", "1", "-depth", "1", "-center", "-out", out}
	if err := run(args, io.Discard); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if lines[0] != "P3" || lines[1] != "20 11" || lines[2] != "255" {
		t.Fatalf("header = %q", lines[:3])
	}
	if len(lines) != 3+20*11 {
		t.Errorf("got %d pixel lines, want %d", len(lines)-3, 20*11)
	}
}

// Tiles rendered separately and stitched must match the full frame.
func TestTilesStitchToFullFrame(t *testing.T) {
	dir := t.TempDir()
	base := []string{"-scene", "default", "-width", "30", "-spp", "3", "-depth", "5", "-seed", "9"}

	full := filepath.Join(dir, "full.png")
	if err := run(append(base, "-out", full), io.Discard); err != nil {
		t.Fatal(err)
	}

	var tiles []image.Image
	for k := 0; k < 6; k++ {
		path := filepath.Join(dir, fmt.Sprintf("tile%d.png", k))
		args := append(base, "-tile", "3x2", "-tile-index", fmt.Sprint(k), "-workers", fmt.Sprint(k+1), "-out", path)
		if err := run(args, io.Discard); err != nil {
			t.Fatalf("tile %d: %v", k, err)
		}
		tile, err := imageio.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		tiles = append(tiles, tile)
	}

	stitched, err := imageio.Stitch(tiles, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	expected, err := imageio.Load(full)
	if err != nil {
		t.Fatal(err)
	}
	if !imagesEqual(expected, stitched) {
		t.Error("stitched tiles differ from the full frame")
	}
}

func TestBuildConfigLayering(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "render.json")
	if err := os.WriteFile(cfgPath, []byte(`{"imageWidth": 50, "samplesPerPixel": 3, "seed": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := defineFlags(fs)
	if err := fs.Parse([]string{"-config", cfgPath, "-width", "30", "-depth", "7"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(fs, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ImageWidth != 30 {
		t.Errorf("width = %d, flag should win over file", cfg.ImageWidth)
	}
	if cfg.SamplesPerPixel != 3 || cfg.Seed != 5 {
		t.Errorf("spp = %d seed = %d, want file values 3 and 5", cfg.SamplesPerPixel, cfg.Seed)
	}
	if cfg.MaxDepth != 7 {
		t.Errorf("depth = %d, want 7", cfg.MaxDepth)
	}
	if cfg.AspectRatio != 16.0/9.0 {
		t.Errorf("aspect = %v, want default", cfg.AspectRatio)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	for name, args := range map[string][]string{
		"scene":  {"-scene", "nope"},
		"spp":    {"-spp", "0"},
		"tile":   {"-tile", "2x2", "-tile-index", "4"},
		"layout":  {"-tile", "two"},
		"quality": {"-jpeg-quality", "0"},
		"time":   {"-time", "yesterday"},
		"format": {"-width", "8", "-spp", "1", "-out", "x.bmp"},
	} {
		t.Run(name, func(t *testing.T) {
			if !strings.HasSuffix(args[len(args)-1], ".bmp") {
				args = append(args, "-out", out)
			}
			if err := run(args, io.Discard); err == nil {
				t.Errorf("run(%q) succeeded", args)
			}
		})
	}
}

func TestRenderFrameLogsStats(t *testing.T) {
	setup, err := scene.Preset("mirror", 1)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	opts := render.Options{Width: 16, Height: 9, SamplesPerPixel: 2, MaxDepth: 3, Seed: 1}
	if _, err := renderFrame(setup, 16.0/9.0, opts, logger); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "samples=288") {
		t.Errorf("stats line missing sample count:\n%s", buf.String())
	}
}

func imagesEqual(a, b image.Image) bool {
	var bufA, bufB bytes.Buffer
	_ = imageio.Encode(&bufA, a, imageio.PPM, imageio.SaveOptions{PPMBinary: true})
	_ = imageio.Encode(&bufB, b, imageio.PPM, imageio.SaveOptions{PPMBinary: true})
	return bytes.Equal(bufA.Bytes(), bufB.Bytes())
}
