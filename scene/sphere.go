package scene

import (
	"fmt"
	"math"

	"github.com/echoflaresat/pathcam/material"
	"github.com/echoflaresat/pathcam/vectors"
)

// Sphere is an analytic sphere. A negative Radius flips the outward normal
// inward, which turns the sphere into the inner wall of a hollow shell.
type Sphere struct {
	Center   vectors.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere panics when radius is zero or NaN; such a sphere has no surface
// normal.
func NewSphere(center vectors.Vec3, radius float64, m material.Material) Sphere {
	if radius == 0 || math.IsNaN(radius) {
		panic(fmt.Sprintf("scene: sphere radius %v", radius))
	}
	return Sphere{Center: center, Radius: radius, Material: m}
}

// Hit returns the nearest intersection of r with the sphere whose parameter
// lies strictly inside (tMin, tMax).
func (s Sphere) Hit(r vectors.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	a := r.Direction.LengthSquared()
	if a == 0 {
		panic("scene: ray with zero direction")
	}

	// Quadratic |O + tD - C|² = r², with b = 2*halfB
	oc := r.Origin.Sub(s.Center)
	halfB := oc.Dot(r.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// near root first; the far root covers origins inside the sphere
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return material.HitRecord{}, false
		}
	}

	rec := material.HitRecord{
		T:        root,
		Point:    r.At(root),
		Material: s.Material,
	}
	outward := rec.Point.Sub(s.Center).Scale(1.0 / s.Radius)
	rec.SetFaceNormal(r, outward)
	return rec, true
}
