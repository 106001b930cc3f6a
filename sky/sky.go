// Package sky provides the background radiance seen by rays that escape the scene.
package sky

import "github.com/echoflaresat/pathcam/vectors"

// Sky is a vertical gradient between a horizon and a zenith color.
type Sky struct {
	Horizon vectors.Vec3
	Zenith  vectors.Vec3
}

// Default is the white-to-light-blue sky.
func Default() Sky {
	return Sky{
		Horizon: vectors.New(1.0, 1.0, 1.0),
		Zenith:  vectors.New(0.5, 0.7, 1.0),
	}
}

// Color returns the radiance arriving along direction dir. The blend factor
// is t = 0.5*(unit.y + 1), so straight down is pure horizon color and
// straight up is pure zenith color.
func (s Sky) Color(dir vectors.Vec3) vectors.Vec3 {
	unit := dir.Unit()
	t := 0.5 * (unit.Y + 1.0)
	return vectors.Lerp(s.Horizon, s.Zenith, t)
}

// Mix returns lerp(s, o, t) applied to both gradient stops.
func (s Sky) Mix(o Sky, t float64) Sky {
	return Sky{
		Horizon: vectors.Lerp(s.Horizon, o.Horizon, t),
		Zenith:  vectors.Lerp(s.Zenith, o.Zenith, t),
	}
}
