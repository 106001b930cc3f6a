package render

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/pathcam/scene"
	"github.com/echoflaresat/pathcam/vectors"
)

var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig holds the extrinsic and lens parameters of a thin-lens camera.
type CameraConfig struct {
	LookFrom    vectors.Vec3
	LookAt      vectors.Vec3
	Up          vectors.Vec3
	VFOV        float64 // degrees
	AspectRatio float64
	Aperture    float64
	FocusDist   float64
}

// ConfigFromView completes a scene's camera placement with the image aspect ratio.
func ConfigFromView(v scene.View, aspectRatio float64) CameraConfig {
	return CameraConfig{
		LookFrom:    v.LookFrom,
		LookAt:      v.LookAt,
		Up:          v.Up,
		VFOV:        v.VFOV,
		AspectRatio: aspectRatio,
		Aperture:    v.Aperture,
		FocusDist:   v.FocusDistance(),
	}
}

// Camera is a thin-lens camera. The focus plane sits FocusDist in front of
// the eye; rays start on a lens disk of radius LensRadius around Origin.
type Camera struct {
	Origin     vectors.Vec3
	LowerLeft  vectors.Vec3
	Horizontal vectors.Vec3
	Vertical   vectors.Vec3
	// U, V, W is the view basis: right, up and backwards.
	U, V, W    vectors.Vec3
	LensRadius float64
}

// NewCamera precomputes the view basis and the focus-plane rectangle.
func NewCamera(cfg CameraConfig) (Camera, error) {
	if err := cfg.validate(); err != nil {
		return Camera{}, err
	}

	theta := cfg.VFOV * math.Pi / 180.0
	h := math.Tan(theta / 2.0)
	viewportHeight := 2.0 * h
	viewportWidth := cfg.AspectRatio * viewportHeight

	w := cfg.LookFrom.Sub(cfg.LookAt).Unit()
	right := cfg.Up.Cross(w)
	if right.Length() < 1e-9 {
		right = w.Orthogonal() // fallback when up is parallel to the view direction
	}
	u := right.Unit()
	v := w.Cross(u)

	horizontal := u.Scale(cfg.FocusDist * viewportWidth)
	vertical := v.Scale(cfg.FocusDist * viewportHeight)
	lowerLeft := cfg.LookFrom.
		Sub(horizontal.Scale(0.5)).
		Sub(vertical.Scale(0.5)).
		Sub(w.Scale(cfg.FocusDist))

	return Camera{
		Origin:     cfg.LookFrom,
		LowerLeft:  lowerLeft,
		Horizontal: horizontal,
		Vertical:   vertical,
		U:          u,
		V:          v,
		W:          w,
		LensRadius: cfg.Aperture / 2.0,
	}, nil
}

func (cfg CameraConfig) validate() error {
	switch {
	case !(cfg.AspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidCamera, cfg.AspectRatio)
	case !(cfg.VFOV > 0 && cfg.VFOV < 180):
		return fmt.Errorf("%w: vertical field of view %v outside (0, 180)", ErrInvalidCamera, cfg.VFOV)
	case !(cfg.FocusDist > 0):
		return fmt.Errorf("%w: focus distance %v must be positive", ErrInvalidCamera, cfg.FocusDist)
	case !(cfg.Aperture >= 0):
		return fmt.Errorf("%w: aperture %v is negative", ErrInvalidCamera, cfg.Aperture)
	case cfg.LookFrom.Sub(cfg.LookAt).NearZero():
		return fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidCamera)
	}
	return nil
}

// Ray returns the camera ray through normalized sensor coordinates (s, t),
// where (0,0) is the lower-left corner. With a finite aperture the origin is
// jittered over the lens, so every call draws fresh randomness.
func (c Camera) Ray(s, t float64, rng *rand.Rand) vectors.Ray {
	origin := c.Origin
	if c.LensRadius > 0 {
		rd := vectors.RandomInUnitDisk(rng).Scale(c.LensRadius)
		origin = origin.Add(c.U.Scale(rd.X)).Add(c.V.Scale(rd.Y))
	}
	target := c.LowerLeft.Add(c.Horizontal.Scale(s)).Add(c.Vertical.Scale(t))
	return vectors.NewRay(origin, target.Sub(origin))
}
