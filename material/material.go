// Package material holds the scattering models a surface can carry.
//
// The set of materials is closed: a Material is a tagged value whose Kind
// selects one of the scattering laws in Scatter.
package material

import (
	"fmt"
	"math"

	"github.com/echoflaresat/pathcam/colors"
	"github.com/echoflaresat/pathcam/vectors"
)

// Kind tags the scattering law of a Material.
type Kind uint8

const (
	Diffuse Kind = iota
	Metal
	Dielectric
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Metal:
		return "metal"
	case Dielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps the lowercase name used in scene files to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "diffuse", "lambertian":
		return Diffuse, nil
	case "metal":
		return Metal, nil
	case "dielectric", "glass":
		return Dielectric, nil
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

// Material is immutable once constructed; use the New* constructors, which
// clamp out-of-range parameters.
type Material struct {
	kind   Kind
	albedo vectors.Vec3
	fuzz   float64
	ir     float64
}

// NewDiffuse returns a Lambertian surface. Albedo channels are clamped to [0,1].
func NewDiffuse(albedo vectors.Vec3) Material {
	return Material{kind: Diffuse, albedo: colors.Clamp01(albedo)}
}

// NewMetal returns a reflective surface. fuzz 0 is a perfect mirror; values
// outside [0,1] are clamped.
func NewMetal(albedo vectors.Vec3, fuzz float64) Material {
	if math.IsNaN(fuzz) || fuzz < 0 {
		fuzz = 0
	}
	if fuzz > 1 {
		fuzz = 1
	}
	return Material{kind: Metal, albedo: colors.Clamp01(albedo), fuzz: fuzz}
}

// NewDielectric returns a clear refractive surface with refractive index ir.
// A non-positive or NaN index is replaced by 1 (vacuum).
func NewDielectric(ir float64) Material {
	if math.IsNaN(ir) || ir <= 0 {
		ir = 1
	}
	return Material{kind: Dielectric, ir: ir}
}

func (m Material) Kind() Kind { return m.kind }

func (m Material) Albedo() vectors.Vec3 { return m.albedo }

func (m Material) Fuzz() float64 { return m.fuzz }

// RefractiveIndex returns ir; it is zero for non-dielectric materials.
func (m Material) RefractiveIndex() float64 { return m.ir }

func (m Material) String() string {
	switch m.kind {
	case Metal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.albedo, m.fuzz)
	case Dielectric:
		return fmt.Sprintf("dielectric(ir=%g)", m.ir)
	default:
		return fmt.Sprintf("%s(albedo=%v)", m.kind, m.albedo)
	}
}
