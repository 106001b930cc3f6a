package render

import (
	"errors"
	"image"
	"testing"
)

func TestParseLayout(t *testing.T) {
	cols, rows, err := ParseLayout("3x2")
	if err != nil || cols != 3 || rows != 2 {
		t.Fatalf("ParseLayout(3x2) = %d, %d, %v", cols, rows, err)
	}
	for _, bad := range []string{"", "3", "3x", "x2", "0x2", "-1x1", "2x2x2", "axb"} {
		if _, _, err := ParseLayout(bad); !errors.Is(err, ErrInvalidTile) {
			t.Errorf("ParseLayout(%q) err = %v, want ErrInvalidTile", bad, err)
		}
	}
}

func TestTileRegionsCoverFrame(t *testing.T) {
	const width, height, cols, rows = 17, 10, 3, 4
	covered := make(map[image.Point]int)
	for k := 0; k < cols*rows; k++ {
		r, err := TileRegion(width, height, cols, rows, k)
		if err != nil {
			t.Fatal(err)
		}
		if r.Empty() {
			t.Fatalf("tile %d is empty", k)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}
	if len(covered) != width*height {
		t.Fatalf("tiles cover %d pixels, want %d", len(covered), width*height)
	}
	for p, n := range covered {
		if n != 1 {
			t.Fatalf("pixel %v covered %d times", p, n)
		}
	}
}

func TestTileRegionOrder(t *testing.T) {
	r, err := TileRegion(100, 50, 2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(50, 0, 100, 25); r != want {
		t.Errorf("tile 1 = %v, want %v", r, want)
	}
}

func TestTileRegionRejects(t *testing.T) {
	for _, tc := range []struct{ cols, rows, index int }{
		{2, 2, 4},
		{2, 2, -1},
		{0, 1, 0},
		{200, 1, 0},
	} {
		if _, err := TileRegion(100, 50, tc.cols, tc.rows, tc.index); !errors.Is(err, ErrInvalidTile) {
			t.Errorf("TileRegion(%+v) err = %v, want ErrInvalidTile", tc, err)
		}
	}
}
