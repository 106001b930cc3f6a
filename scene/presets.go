package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/echoflaresat/pathcam/material"
	"github.com/echoflaresat/pathcam/sky"
	"github.com/echoflaresat/pathcam/vectors"
)

var ErrUnknownPreset = errors.New("unknown scene preset")

var presets = map[string]func(seed uint64) Setup{
	"default": defaultSetup,
	"glass":   glassSetup,
	"cover":   coverSetup,
	"mirror":  mirrorSetup,
}

// Presets lists the names accepted by Preset.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds a named built-in scene. seed only affects scenes with
// randomly placed objects.
func Preset(name string, seed uint64) (Setup, error) {
	build, ok := presets[name]
	if !ok {
		return Setup{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownPreset, name, Presets())
	}
	return build(seed), nil
}

// unitView looks down -z from the origin through a 90° frustum.
func unitView() View {
	return View{
		LookFrom:  vectors.New(0, 0, 0),
		LookAt:    vectors.New(0, 0, -1),
		Up:        vectors.New(0, 1, 0),
		VFOV:      90,
		Aperture:  0,
		FocusDist: 1,
	}
}

// defaultSetup is a yellow ground, a matte red sphere between a fuzzy gold
// sphere and a mirror.
func defaultSetup(uint64) Setup {
	world := New(
		NewSphere(vectors.New(0, -100.5, -1), 100, material.NewDiffuse(vectors.New(0.8, 0.8, 0.0))),
		NewSphere(vectors.New(0, 0, -1), 0.5, material.NewDiffuse(vectors.New(0.7, 0.3, 0.3))),
		NewSphere(vectors.New(1, 0, -1), 0.5, material.NewMetal(vectors.New(0.8, 0.6, 0.2), 0.3)),
		NewSphere(vectors.New(-1, 0, -1), 0.5, material.NewMetal(vectors.New(0.8, 0.8, 0.8), 0.0)),
	)
	return Setup{Name: "default", World: world, View: unitView(), Sky: sky.Default()}
}

// glassSetup puts a hollow glass bubble next to a blue diffuse sphere, seen
// through a wide aperture focused on the middle sphere.
func glassSetup(uint64) Setup {
	glass := material.NewDielectric(1.5)
	world := New(
		NewSphere(vectors.New(0, -100.5, -1), 100, material.NewDiffuse(vectors.New(0.8, 0.8, 0.0))),
		NewSphere(vectors.New(0, 0, -1), 0.5, material.NewDiffuse(vectors.New(0.1, 0.2, 0.5))),
		NewSphere(vectors.New(-1, 0, -1), 0.5, glass),
		NewSphere(vectors.New(-1, 0, -1), -0.45, glass),
		NewSphere(vectors.New(1, 0, -1), 0.5, material.NewMetal(vectors.New(0.8, 0.6, 0.2), 0.0)),
	)
	view := View{
		LookFrom: vectors.New(3, 3, 2),
		LookAt:   vectors.New(0, 0, -1),
		Up:       vectors.New(0, 1, 0),
		VFOV:     20,
		Aperture: 2.0,
	}
	return Setup{Name: "glass", World: world, View: view, Sky: sky.Default()}
}

// mirrorSetup is a grey ground with a single mirror sphere.
func mirrorSetup(uint64) Setup {
	world := New(
		NewSphere(vectors.New(0, -100.5, -1), 100, material.NewDiffuse(vectors.New(0.5, 0.5, 0.5))),
		NewSphere(vectors.New(0, 0, -1), 0.5, material.NewMetal(vectors.New(0.8, 0.8, 0.8), 0.0)),
	)
	return Setup{Name: "mirror", World: world, View: unitView(), Sky: sky.Default()}
}

// coverSetup scatters small random spheres around three large ones.
func coverSetup(seed uint64) Setup {
	rng := rand.New(rand.NewPCG(seed, 0x636f766572))

	world := New(NewSphere(vectors.New(0, -1000, 0), 1000, material.NewDiffuse(vectors.New(0.5, 0.5, 0.5))))
	keepOut := vectors.New(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := rng.Float64()
			center := vectors.New(float64(a)+0.9*rng.Float64(), 0.2, float64(b)+0.9*rng.Float64())
			if vectors.Distance(center, keepOut) <= 0.9 {
				continue
			}

			var m material.Material
			switch {
			case choose < 0.8:
				albedo := randomColor(rng, 0, 1).Mul(randomColor(rng, 0, 1))
				m = material.NewDiffuse(albedo)
			case choose < 0.95:
				m = material.NewMetal(randomColor(rng, 0.5, 1), vectors.RandomRange(rng, 0, 0.5))
			default:
				m = material.NewDielectric(1.5)
			}
			world.Add(NewSphere(center, 0.2, m))
		}
	}

	world.Add(NewSphere(vectors.New(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(NewSphere(vectors.New(-4, 1, 0), 1.0, material.NewDiffuse(vectors.New(0.4, 0.2, 0.1))))
	world.Add(NewSphere(vectors.New(4, 1, 0), 1.0, material.NewMetal(vectors.New(0.7, 0.6, 0.5), 0.0)))

	view := View{
		LookFrom:  vectors.New(13, 2, 3),
		LookAt:    vectors.New(0, 0, 0),
		Up:        vectors.New(0, 1, 0),
		VFOV:      20,
		Aperture:  0.1,
		FocusDist: 10,
	}
	return Setup{Name: "cover", World: world, View: view, Sky: sky.Default()}
}

func randomColor(rng *rand.Rand, min, max float64) vectors.Vec3 {
	return vectors.New(
		vectors.RandomRange(rng, min, max),
		vectors.RandomRange(rng, min, max),
		vectors.RandomRange(rng, min, max),
	)
}
