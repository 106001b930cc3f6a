// Command merge_tiles stitches tiles written by pathcam -tile into one image.
package main

import (
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/echoflaresat/pathcam/imageio"
	"github.com/echoflaresat/pathcam/render"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <cols>x<rows> <output.png> <tile1> <tile2> ...\n", os.Args[0])
		os.Exit(1)
	}

	cols, rows, err := render.ParseLayout(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	output := os.Args[2]
	if err := merge(cols, rows, output, os.Args[3:]); err != nil {
		log.Fatal(err)
	}
}

func merge(cols, rows int, output string, inputFiles []string) error {
	if len(inputFiles) != cols*rows {
		return fmt.Errorf("expected %d input files, got %d", cols*rows, len(inputFiles))
	}

	// the same tile may be listed more than once, e.g. a blank filler
	cache, err := imageio.NewCache(len(inputFiles))
	if err != nil {
		return err
	}
	tiles := make([]image.Image, 0, len(inputFiles))
	for _, path := range inputFiles {
		slog.Info("processing tile", "path", path)
		tile, err := cache.Get(path)
		if err != nil {
			return fmt.Errorf("could not load input file %q: %w", path, err)
		}
		tiles = append(tiles, tile)
	}

	canvas, err := imageio.Stitch(tiles, cols, rows)
	if err != nil {
		return err
	}

	slog.Info("creating image", "path", output, "width", canvas.Bounds().Dx(), "height", canvas.Bounds().Dy())
	return imageio.Save(output, canvas, imageio.SaveOptions{})
}
