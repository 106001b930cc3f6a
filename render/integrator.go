package render

import (
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/pathcam/colors"
	"github.com/echoflaresat/pathcam/scene"
	"github.com/echoflaresat/pathcam/sky"
	"github.com/echoflaresat/pathcam/vectors"
)

// TMin excludes intersections at the ray origin.
const TMin = 0.001

// RayColor estimates the radiance carried back along r by following one
// light path for at most depth bounces. Paths that run out of bounces or are
// absorbed contribute black; escaping paths pick up the sky color, weighted
// by the product of the attenuations met on the way.
func RayColor(r vectors.Ray, world *scene.Scene, background sky.Sky, depth int, rng *rand.Rand) vectors.Vec3 {
	throughput := colors.White()
	for ; depth > 0; depth-- {
		rec, ok := world.Hit(r, TMin, math.Inf(1))
		if !ok {
			return throughput.Mul(background.Color(r.Direction))
		}

		scattered, attenuation, ok := rec.Material.Scatter(r, rec, rng)
		if !ok {
			return colors.Black()
		}
		throughput = throughput.Mul(attenuation)
		r = scattered
	}
	return colors.Black()
}
