package render

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

var ErrInvalidTile = errors.New("invalid tile")

// ParseLayout parses a tile layout such as "3x2" into columns and rows.
func ParseLayout(s string) (cols, rows int, err error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: layout %q must look like 2x2", ErrInvalidTile, s)
	}
	cols, err1 := strconv.Atoi(parts[0])
	rows, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("%w: layout %q", ErrInvalidTile, s)
	}
	return cols, rows, nil
}

// TileRegion returns the pixel rectangle of tile index in a cols x rows grid
// over a width x height frame. Tiles are numbered row by row from the top
// left; when the size does not divide evenly some tiles are one pixel
// larger than others.
func TileRegion(width, height, cols, rows, index int) (image.Rectangle, error) {
	if cols < 1 || rows < 1 || cols > width || rows > height {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d grid over %dx%d image", ErrInvalidTile, cols, rows, width, height)
	}
	if index < 0 || index >= cols*rows {
		return image.Rectangle{}, fmt.Errorf("%w: index %d outside %dx%d grid", ErrInvalidTile, index, cols, rows)
	}
	col, row := index%cols, index/cols
	return image.Rect(
		col*width/cols, row*height/rows,
		(col+1)*width/cols, (row+1)*height/rows,
	), nil
}
