package main

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/pathcam/imageio"
)

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	full := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			full.SetNRGBA(x, y, color.NRGBA{R: uint8(50 * x), G: uint8(60 * y), B: 9, A: 255})
		}
	}

	var paths []string
	for i, r := range []image.Rectangle{
		image.Rect(0, 0, 2, 2), image.Rect(2, 0, 5, 2),
		image.Rect(0, 2, 2, 4), image.Rect(2, 2, 5, 4),
	} {
		path := filepath.Join(dir, "tile"+string(rune('0'+i))+".png")
		if err := imageio.Save(path, full.SubImage(r), imageio.SaveOptions{}); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	out := filepath.Join(dir, "merged.ppm")
	if err := merge(2, 2, out, paths); err != nil {
		t.Fatal(err)
	}
	got, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != full.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), full.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if g, w := color.NRGBAModel.Convert(got.At(x, y)), full.NRGBAAt(x, y); g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}

	if err := merge(2, 2, out, paths[:3]); err == nil {
		t.Error("merge accepted a short tile list")
	}
}
