package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode
	"io"
	"log/slog"
	"os"

	"github.com/echoflaresat/tiff"
	"golang.org/x/exp/mmap"
)

// Load decodes the image stored at path into memory. PPM files are parsed
// directly from a memory map; everything else is tried as TIFF first and then
// handed to the registered image codecs.
func Load(path string) (image.Image, error) {
	if format, err := FormatFor(path); err == nil && format == PPM {
		return loadPPM(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err == nil {
		// the TIFF decoder reads pixels from f on demand
		return materialize(img), nil
	}
	slog.Debug("not a TIFF, falling back to image codecs", "path", path, "error", err)

	// fallback to image codecs
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func materialize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func loadPPM(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	img, err := ReadPPM(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ReadPPM parses a plain (P3) or binary (P6) PPM image with maxval <= 255.
func ReadPPM(r io.Reader) (*image.NRGBA, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidPPM, magic)
	}

	var header [3]int
	for i := range header {
		if header[i], err = ppmInt(br); err != nil {
			return nil, err
		}
	}
	width, height, maxval := header[0], header[1], header[2]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidPPM, width, height)
	}
	if maxval < 1 || maxval > 255 {
		return nil, fmt.Errorf("%w: maxval %d", ErrInvalidPPM, maxval)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	scale := func(v int) uint8 { return uint8(v * 255 / maxval) }

	if magic == "P6" {
		// a single whitespace byte separates the header from the raster
		if _, err := br.ReadByte(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPPM, err)
		}
		row := make([]byte, width*3)
		for y := 0; y < height; y++ {
			if _, err := io.ReadFull(br, row); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidPPM, y, err)
			}
			for x := 0; x < width; x++ {
				img.SetNRGBA(x, y, color.NRGBA{
					R: scale(min(int(row[3*x]), maxval)),
					G: scale(min(int(row[3*x+1]), maxval)),
					B: scale(min(int(row[3*x+2]), maxval)),
					A: 255,
				})
			}
		}
		return img, nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]int
			for i := range rgb {
				v, err := ppmInt(br)
				if err != nil {
					return nil, err
				}
				if v > maxval {
					return nil, fmt.Errorf("%w: sample %d above maxval %d", ErrInvalidPPM, v, maxval)
				}
				rgb[i] = v
			}
			img.SetNRGBA(x, y, color.NRGBA{R: scale(rgb[0]), G: scale(rgb[1]), B: scale(rgb[2]), A: 255})
		}
	}
	return img, nil
}

// ppmToken returns the next whitespace-separated token, skipping # comments.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			return "", fmt.Errorf("%w: %v", ErrInvalidPPM, err)
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("%w: %v", ErrInvalidPPM, err)
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			if len(tok) > 0 {
				// leave the separator in place; P6 consumes it explicitly
				return string(tok), br.UnreadByte()
			}
		default:
			tok = append(tok, c)
		}
	}
}

func ppmInt(br *bufio.Reader) (int, error) {
	tok, err := ppmToken(br)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: bad number %q", ErrInvalidPPM, tok)
		}
		n = n*10 + int(c-'0')
		if n > 1<<24 {
			return 0, fmt.Errorf("%w: number %q too large", ErrInvalidPPM, tok)
		}
	}
	return n, nil
}
