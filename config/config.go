// Package config holds the render settings that stay fixed for one render.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

var ErrInvalidConfig = errors.New("invalid render config")

// Config is read once before rendering starts.
type Config struct {
	ImageWidth      int     `json:"imageWidth"`
	AspectRatio     float64 `json:"aspectRatio"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxDepth        int     `json:"maxDepth"`
	// Seed drives every random draw of the render; equal seeds give equal images.
	Seed uint64 `json:"seed"`
	// Workers bounds the number of rows rendered at once; 0 uses GOMAXPROCS.
	Workers int `json:"workers,omitempty"`
}

func Default() Config {
	return Config{
		ImageWidth:      400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            1,
	}
}

// ImageHeight is the width divided by the aspect ratio, truncated.
func (c Config) ImageHeight() int {
	return int(float64(c.ImageWidth) / c.AspectRatio)
}

// Validate rejects settings the renderer cannot work with. Both image
// dimensions must be at least 2 because pixel coordinates are normalized by
// (size - 1).
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.AspectRatio) || c.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidConfig, c.AspectRatio)
	case c.ImageWidth < 2:
		return fmt.Errorf("%w: image width %d is below 2", ErrInvalidConfig, c.ImageWidth)
	case c.ImageHeight() < 2:
		return fmt.Errorf("%w: image height %d (width %d / aspect %v) is below 2",
			ErrInvalidConfig, c.ImageHeight(), c.ImageWidth, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d is below 1", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Load overlays the JSON file at path onto base. Fields missing from the
// file keep their base values.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}
