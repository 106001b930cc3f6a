// Package preview shows a rendered frame in the terminal using half-block
// characters, two image rows per terminal cell.
package preview

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Show opens the terminal, draws img and waits for a key press. Resizing the
// terminal redraws the frame.
func Show(img image.Image) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	Draw(screen, img)
	screen.Show()
	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			Draw(screen, img)
			screen.Show()
		case *tcell.EventKey:
			return nil
		case nil:
			return nil
		}
	}
}

// Draw paints img scaled to fit the screen, keeping its aspect ratio. Each
// cell shows the upper pixel as foreground and the lower one as background.
func Draw(screen tcell.Screen, img image.Image) {
	screen.Clear()
	cols, rows := screen.Size()
	w, h := Fit(img.Bounds().Dx(), img.Bounds().Dy(), cols, rows)
	if w == 0 || h == 0 {
		return
	}

	b := img.Bounds()
	sample := func(x, y int) color.Color {
		sx := b.Min.X + x*b.Dx()/w
		sy := b.Min.Y + y*b.Dy()/h
		return img.At(sx, sy)
	}
	for cy := 0; cy < (h+1)/2; cy++ {
		for x := 0; x < w; x++ {
			style := tcell.StyleDefault.Foreground(toColor(sample(x, 2*cy)))
			if 2*cy+1 < h {
				style = style.Background(toColor(sample(x, 2*cy+1)))
			}
			screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}
}

// Fit returns the largest pixel size with the image's aspect ratio that fits
// into cols x rows cells, counting two pixels per cell vertically. The image
// is never enlarged.
func Fit(imgW, imgH, cols, rows int) (w, h int) {
	if imgW <= 0 || imgH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxH := 2 * rows
	w, h = imgW, imgH
	if w > cols {
		h = h * cols / w
		w = cols
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return max(w, 1), max(h, 1)
}

func toColor(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
