package vectors

import "math/rand/v2"

// RandomRange draws a uniform value in [min, max).
func RandomRange(rng *rand.Rand, min, max float64) float64 {
	return min + (max-min)*rng.Float64()
}

// RandomInUnitSphere rejection-samples a point from the [-1,1]³ cube until it
// falls strictly inside the unit sphere.
func RandomInUnitSphere(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: RandomRange(rng, -1, 1),
			Y: RandomRange(rng, -1, 1),
			Z: RandomRange(rng, -1, 1),
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a direction distributed uniformly on the unit sphere.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(rng)
		// points too close to the centre cannot be normalized reliably
		if p.LengthSquared() > 1e-24 {
			return p.Unit()
		}
	}
}

// RandomInUnitDisk returns a point inside the unit disk on the z = 0 plane.
func RandomInUnitDisk(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{X: RandomRange(rng, -1, 1), Y: RandomRange(rng, -1, 1)}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
