// Package imageio reads and writes rendered frames.
package imageio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidPPM        = errors.New("invalid PPM data")
)

type Format int

const (
	PPM Format = iota
	PNG
	TIFF
	JPEG
)

func (f Format) String() string {
	switch f {
	case PPM:
		return "ppm"
	case PNG:
		return "png"
	case TIFF:
		return "tiff"
	case JPEG:
		return "jpeg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFor picks the image format from the file extension of path.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		return PPM, nil
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
