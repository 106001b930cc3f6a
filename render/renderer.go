package render

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/pathcam/colors"
	"github.com/echoflaresat/pathcam/config"
	"github.com/echoflaresat/pathcam/scene"
	"github.com/echoflaresat/pathcam/sky"
	"github.com/echoflaresat/pathcam/vectors"
)

var ErrInvalidOptions = errors.New("invalid render options")

// SampleMode selects where inside a pixel the camera rays are aimed.
type SampleMode int

const (
	// SampleJittered draws uniform offsets in [0,1) for every sample.
	SampleJittered SampleMode = iota
	// SampleCenter aims every sample at the pixel centre.
	SampleCenter
)

// Options controls a render. Width and Height describe the full frame even
// when only a Region of it is rendered.
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            uint64
	Workers         int // 0 means runtime.GOMAXPROCS(0)
	Sampling        SampleMode
	Region          image.Rectangle // empty means the full frame
	Progress        func(done, total int)
}

// OptionsFromConfig copies the image settings of cfg into render options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Width:           cfg.ImageWidth,
		Height:          cfg.ImageHeight(),
		SamplesPerPixel: cfg.SamplesPerPixel,
		MaxDepth:        cfg.MaxDepth,
		Seed:            cfg.Seed,
		Workers:         cfg.Workers,
	}
}

func (o Options) frame() image.Rectangle {
	return image.Rect(0, 0, o.Width, o.Height)
}

func (o Options) region() image.Rectangle {
	if o.Region.Empty() {
		return o.frame()
	}
	return o.Region
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) validate() error {
	switch {
	case o.Width < 2 || o.Height < 2:
		return fmt.Errorf("%w: image %dx%d must be at least 2x2", ErrInvalidOptions, o.Width, o.Height)
	case o.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidOptions, o.SamplesPerPixel)
	case o.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidOptions, o.MaxDepth)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	case !o.region().In(o.frame()):
		return fmt.Errorf("%w: region %v outside frame %v", ErrInvalidOptions, o.Region, o.frame())
	}
	return nil
}

// RowRNG returns the generator owned by the output row y of the full frame.
// Keying on the absolute row keeps renders identical across worker counts
// and tile splits.
func RowRNG(seed uint64, y int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(y)))
}

// RenderScene path traces the requested region of the frame. The returned
// image has the region's size with its origin at (0,0); row 0 is the top.
func RenderScene(camera Camera, world *scene.Scene, background sky.Sky, opts Options) (*image.NRGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	region := opts.region()
	img := image.NewNRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	progress := newProgress(region.Dy(), opts.Progress)

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for y := region.Min.Y; y < region.Max.Y; y++ {
		g.Go(func() error {
			rng := RowRNG(opts.Seed, y)
			j := opts.Height - 1 - y
			for x := region.Min.X; x < region.Max.X; x++ {
				sum := SamplePixel(camera, world, background, x, j, opts, rng)
				img.SetNRGBA(x-region.Min.X, y-region.Min.Y, colors.ToNRGBA(sum, opts.SamplesPerPixel))
			}
			progress.rowDone()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// SamplePixel returns the summed, unaveraged radiance of opts.SamplesPerPixel
// camera rays through pixel (i, j), with j counted from the bottom row.
func SamplePixel(camera Camera, world *scene.Scene, background sky.Sky, i, j int, opts Options, rng *rand.Rand) vectors.Vec3 {
	sum := colors.Black()
	for s := 0; s < opts.SamplesPerPixel; s++ {
		du, dv := 0.5, 0.5
		if opts.Sampling == SampleJittered {
			du = rng.Float64()
			dv = rng.Float64()
		}
		u := (float64(i) + du) / float64(opts.Width-1)
		v := (float64(j) + dv) / float64(opts.Height-1)
		r := camera.Ray(u, v, rng)
		sum = sum.Add(RayColor(r, world, background, opts.MaxDepth, rng))
	}
	return sum
}
