package vectors

import "math"

// Vec3 is a simple 3D vector with float64 components.
// It doubles as a point in space and as a linear RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// unitEpsilon is the length below which Unit leaves a vector untouched.
const unitEpsilon = 1e-12

// nearZeroEpsilon bounds every component of a vector reported by NearZero.
const nearZeroEpsilon = 1e-8

func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func Zero() Vec3 {
	return Vec3{X: 0.0, Y: 0.0, Z: 0.0}
}

// One returns (1,1,1), which is white when the vector is a color.
func One() Vec3 {
	return Vec3{X: 1.0, Y: 1.0, Z: 1.0}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product, used to attenuate colors.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the Euclidean length ||v||.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Unit returns v / ||v||.
// Vectors shorter than unitEpsilon are returned unchanged, so the zero
// vector stays zero instead of turning into NaNs.
func (v Vec3) Unit() Vec3 {
	n := v.Length()
	if n < unitEpsilon {
		return v
	}
	inv := 1.0 / n
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// NearZero reports whether every component is close to zero.
func (v Vec3) NearZero() bool {
	return math.Abs(v.X) < nearZeroEpsilon &&
		math.Abs(v.Y) < nearZeroEpsilon &&
		math.Abs(v.Z) < nearZeroEpsilon
}

// IsFinite is false when any component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Lerp returns a*(1-t) + b*t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Scale(1.0 - t).Add(b.Scale(t))
}

// Reflect mirrors v about the normal n: v - 2(v·n)n.
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with normal n using the
// vector form of Snell's law. etaiOverEtat is the ratio of refractive indices.
// The caller must have ruled out total internal reflection.
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(uv.Neg().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Scale(cosTheta)).Scale(etaiOverEtat)
	rOutParallel := n.Scale(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Orthogonal returns a unit vector that's perpendicular to v.
func (v Vec3) Orthogonal() Vec3 {
	if math.Abs(v.X) < 0.9 {
		// cross with X axis
		return v.Cross(Vec3{1, 0, 0}).Unit()
	}
	return v.Cross(Vec3{0, 1, 0}).Unit()
}

func Distance(v1, v2 Vec3) float64 {
	return v1.Sub(v2).Length()
}
