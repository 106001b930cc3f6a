package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/tiff"
)

// SaveOptions tunes the encoders used by Save.
type SaveOptions struct {
	// PPMBinary writes P6 instead of the plain-text P3 variant.
	PPMBinary   bool
	JPEGQuality int
}

// Save encodes img into path using the format implied by its extension.
func Save(path string, img image.Image, opts SaveOptions) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := Encode(w, img, format, opts); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts SaveOptions) error {
	switch format {
	case PPM:
		return WritePPM(w, img, opts.PPMBinary)
	case PNG:
		return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case JPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = 95
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// WritePPM writes img as a PPM with maxval 255. The plain variant (P3) puts
// one "r g b" triple per line, rows from top to bottom.
func WritePPM(w io.Writer, img image.Image, binary bool) error {
	b := img.Bounds()
	magic := "P3"
	if binary {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n255\n", magic, b.Dx(), b.Dy()); err != nil {
		return err
	}

	row := make([]byte, 0, b.Dx()*12)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row = row[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if binary {
				row = append(row, c.R, c.G, c.B)
			} else {
				row = fmt.Appendf(row, "%d %d %d\n", c.R, c.G, c.B)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
