package material

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/pathcam/colors"
	"github.com/echoflaresat/pathcam/vectors"
)

// ShadowBias lifts diffuse and metal scatter origins off the surface so the
// new ray does not re-hit the point it left.
const ShadowBias = 1e-6

// Scatter computes the ray leaving the surface and its color attenuation.
// ok is false when the surface absorbs the ray.
func (m Material) Scatter(in vectors.Ray, rec HitRecord, rng *rand.Rand) (scattered vectors.Ray, attenuation vectors.Vec3, ok bool) {
	switch m.kind {
	case Diffuse:
		return m.scatterDiffuse(rec, rng)
	case Metal:
		return m.scatterMetal(in, rec, rng)
	case Dielectric:
		return m.scatterDielectric(in, rec, rng)
	default:
		panic(fmt.Sprintf("material: unknown kind %d", m.kind))
	}
}

func (m Material) scatterDiffuse(rec HitRecord, rng *rand.Rand) (vectors.Ray, vectors.Vec3, bool) {
	direction := rec.Normal.Add(vectors.RandomUnitVector(rng))
	if direction.NearZero() {
		direction = rec.Normal
	}
	return vectors.NewRay(biased(rec), direction), m.albedo, true
}

func (m Material) scatterMetal(in vectors.Ray, rec HitRecord, rng *rand.Rand) (vectors.Ray, vectors.Vec3, bool) {
	reflected := vectors.Reflect(in.Direction.Unit(), rec.Normal)
	if m.fuzz > 0 {
		reflected = reflected.Add(vectors.RandomInUnitSphere(rng).Scale(m.fuzz))
	}
	if reflected.Dot(rec.Normal) <= 0 {
		return vectors.Ray{}, colors.Black(), false
	}
	return vectors.NewRay(biased(rec), reflected), m.albedo, true
}

func (m Material) scatterDielectric(in vectors.Ray, rec HitRecord, rng *rand.Rand) (vectors.Ray, vectors.Vec3, bool) {
	ratio := m.ir
	if rec.FrontFace {
		ratio = 1.0 / m.ir
	}

	unit := in.Direction.Unit()
	cosTheta := math.Min(unit.Neg().Dot(rec.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction vectors.Vec3
	if ratio*sinTheta > 1.0 || Reflectance(cosTheta, m.ir) > rng.Float64() {
		direction = vectors.Reflect(unit, rec.Normal)
	} else {
		direction = vectors.Refract(unit, rec.Normal, ratio)
	}
	return vectors.NewRay(rec.Point, direction), colors.White(), true
}

// Reflectance is Schlick's approximation of the Fresnel reflectance for a
// boundary with refractive index ir at incidence cosine cosine.
func Reflectance(cosine, ir float64) float64 {
	r0 := (1 - ir) / (1 + ir)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

func biased(rec HitRecord) vectors.Vec3 {
	return rec.Point.Add(rec.Normal.Scale(ShadowBias))
}
