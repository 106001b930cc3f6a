package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var ErrTileSize = errors.New("tile size mismatch")

// Stitch assembles a cols x rows grid of tiles, given row by row from the top
// left, into one image. Tiles in a column share a width and tiles in a row
// share a height; the first row and the first column define those sizes.
func Stitch(tiles []image.Image, cols, rows int) (*image.NRGBA, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrTileSize, cols, rows)
	}
	if len(tiles) != cols*rows {
		return nil, fmt.Errorf("%w: expected %d tiles, got %d", ErrTileSize, cols*rows, len(tiles))
	}

	xs := make([]int, cols+1)
	for col := 0; col < cols; col++ {
		xs[col+1] = xs[col] + tiles[col].Bounds().Dx()
	}
	ys := make([]int, rows+1)
	for row := 0; row < rows; row++ {
		ys[row+1] = ys[row] + tiles[row*cols].Bounds().Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, xs[cols], ys[rows]))
	for idx, tile := range tiles {
		col, row := idx%cols, idx/cols
		dst := image.Rect(xs[col], ys[row], xs[col+1], ys[row+1])
		if tile.Bounds().Size() != dst.Size() {
			return nil, fmt.Errorf("%w: tile %d is %v, expected %v",
				ErrTileSize, idx, tile.Bounds().Size(), dst.Size())
		}
		draw.Draw(canvas, dst, tile, tile.Bounds().Min, draw.Src)
	}
	return canvas, nil
}
