package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/echoflaresat/pathcam/material"
	"github.com/echoflaresat/pathcam/sky"
	"github.com/echoflaresat/pathcam/vectors"
	"golang.org/x/exp/mmap"
)

var ErrInvalidScene = errors.New("invalid scene")

// vec is a JSON [x, y, z] triple.
type vec [3]float64

func (v vec) toVec3() vectors.Vec3 {
	return vectors.New(v[0], v[1], v[2])
}

type cameraCfg struct {
	LookFrom  vec     `json:"lookFrom"`
	LookAt    vec     `json:"lookAt"`
	Up        *vec    `json:"up,omitempty"` // defaults to +y
	VFOV      float64 `json:"vfov,omitempty"`
	Aperture  float64 `json:"aperture,omitempty"`
	FocusDist float64 `json:"focusDist,omitempty"` // 0 focuses on lookAt
}

type skyCfg struct {
	Horizon vec `json:"horizon"`
	Zenith  vec `json:"zenith"`
}

type materialCfg struct {
	Type   string  `json:"type"`
	Albedo vec     `json:"albedo,omitempty"`
	Fuzz   float64 `json:"fuzz,omitempty"`
	IR     float64 `json:"ir,omitempty"`
}

type sphereCfg struct {
	Center   vec         `json:"center"`
	Radius   float64     `json:"radius"`
	Material materialCfg `json:"material"`
}

type fileCfg struct {
	Name    string      `json:"name,omitempty"`
	Camera  *cameraCfg  `json:"camera,omitempty"`
	Sky     *skyCfg     `json:"sky,omitempty"`
	Spheres []sphereCfg `json:"spheres"`
}

// IsSceneFile reports whether arg names a scene file rather than a preset.
func IsSceneFile(arg string) bool {
	return strings.EqualFold(filepath.Ext(arg), ".json")
}

// Load reads a JSON scene file.
func Load(path string) (Setup, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return Setup{}, err
	}
	defer reader.Close()

	setup, err := Parse(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return Setup{}, fmt.Errorf("%s: %w", path, err)
	}
	if setup.Name == "" {
		setup.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return setup, nil
}

// Parse decodes a scene description. Unknown fields are rejected.
func Parse(r io.Reader) (Setup, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg fileCfg
	if err := dec.Decode(&cfg); err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return cfg.build()
}

func (cfg fileCfg) build() (Setup, error) {
	setup := Setup{
		Name:  cfg.Name,
		World: New(),
		View:  unitView(),
		Sky:   sky.Default(),
	}

	if c := cfg.Camera; c != nil {
		setup.View = View{
			LookFrom:  c.LookFrom.toVec3(),
			LookAt:    c.LookAt.toVec3(),
			Up:        vectors.New(0, 1, 0),
			VFOV:      c.VFOV,
			Aperture:  c.Aperture,
			FocusDist: c.FocusDist,
		}
		if c.Up != nil {
			setup.View.Up = c.Up.toVec3()
		}
		if setup.View.VFOV == 0 {
			setup.View.VFOV = 90
		}
	}

	if s := cfg.Sky; s != nil {
		setup.Sky = sky.Sky{Horizon: s.Horizon.toVec3(), Zenith: s.Zenith.toVec3()}
	}

	for i, sc := range cfg.Spheres {
		if sc.Radius == 0 {
			return Setup{}, fmt.Errorf("%w: sphere %d has zero radius", ErrInvalidScene, i)
		}
		m, err := sc.Material.build()
		if err != nil {
			return Setup{}, fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
		}
		setup.World.Add(NewSphere(sc.Center.toVec3(), sc.Radius, m))
	}
	return setup, nil
}

func (mc materialCfg) build() (material.Material, error) {
	kind, err := material.ParseKind(strings.ToLower(mc.Type))
	if err != nil {
		return material.Material{}, err
	}
	switch kind {
	case material.Metal:
		return material.NewMetal(mc.Albedo.toVec3(), mc.Fuzz), nil
	case material.Dielectric:
		return material.NewDielectric(mc.IR), nil
	default:
		return material.NewDiffuse(mc.Albedo.toVec3()), nil
	}
}
