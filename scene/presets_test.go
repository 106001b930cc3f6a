package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/echoflaresat/pathcam/material"
	"github.com/echoflaresat/pathcam/vectors"
)

func TestPresets(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			setup, err := Preset(name, 1)
			if err != nil {
				t.Fatal(err)
			}
			if setup.Name != name {
				t.Errorf("Name = %q", setup.Name)
			}
			if setup.World.Len() == 0 {
				t.Error("empty world")
			}
			if setup.View.FocusDistance() <= 0 {
				t.Errorf("focus distance = %v", setup.View.FocusDistance())
			}
		})
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := Preset("nope", 1); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestCoverIsSeeded(t *testing.T) {
	a, _ := Preset("cover", 7)
	b, _ := Preset("cover", 7)
	c, _ := Preset("cover", 8)

	if a.World.Len() != b.World.Len() {
		t.Fatal("same seed produced different sphere counts")
	}
	for i, o := range a.World.Objects() {
		if o != b.World.Objects()[i] {
			t.Fatalf("sphere %d differs for the same seed", i)
		}
	}
	if a.World.Objects()[1] == c.World.Objects()[1] {
		t.Error("different seeds produced the same first sphere")
	}
}

func TestGlassHasHollowShell(t *testing.T) {
	setup, _ := Preset("glass", 0)
	hollow := false
	for _, o := range setup.World.Objects() {
		if o.Radius < 0 && o.Material.Kind() == material.Dielectric {
			hollow = true
		}
	}
	if !hollow {
		t.Error("glass preset lost its negative-radius shell")
	}
}

const sceneJSON = `{
  "name": "pair",
  "camera": {"lookFrom": [0, 1, 3], "lookAt": [0, 0, -1], "vfov": 40, "aperture": 0.2},
  "sky": {"horizon": [1, 1, 1], "zenith": [0.2, 0.3, 0.9]},
  "spheres": [
    {"center": [0, -100.5, -1], "radius": 100, "material": {"type": "diffuse", "albedo": [0.5, 0.5, 0.5]}},
    {"center": [0, 0, -1], "radius": 0.5, "material": {"type": "metal", "albedo": [0.9, 0.9, 0.9], "fuzz": 2}},
    {"center": [1, 0, -1], "radius": -0.4, "material": {"type": "Glass", "ir": 1.5}}
  ]
}`

func TestParse(t *testing.T) {
	setup, err := Parse(strings.NewReader(sceneJSON))
	if err != nil {
		t.Fatal(err)
	}
	if setup.Name != "pair" || setup.World.Len() != 3 {
		t.Fatalf("name=%q spheres=%d", setup.Name, setup.World.Len())
	}
	if setup.View.Up != vectors.New(0, 1, 0) {
		t.Errorf("default up = %v", setup.View.Up)
	}
	if want := vectors.Distance(vectors.New(0, 1, 3), vectors.New(0, 0, -1)); math.Abs(setup.View.FocusDistance()-want) > 1e-12 {
		t.Errorf("focus distance = %v, want %v", setup.View.FocusDistance(), want)
	}
	if setup.Sky.Zenith != vectors.New(0.2, 0.3, 0.9) {
		t.Errorf("sky = %v", setup.Sky)
	}

	objs := setup.World.Objects()
	if objs[1].Material.Kind() != material.Metal || objs[1].Material.Fuzz() != 1 {
		t.Errorf("metal = %v", objs[1].Material)
	}
	if objs[2].Material.Kind() != material.Dielectric || objs[2].Radius != -0.4 {
		t.Errorf("glass = %v radius %v", objs[2].Material, objs[2].Radius)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":    `{"spheres": [], "lights": []}`,
		"unknown material": `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"type": "plasma"}}]}`,
		"zero radius":      `{"spheres": [{"center": [0,0,0], "radius": 0, "material": {"type": "diffuse"}}]}`,
		"not json":         `spheres:`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(body)); !errors.Is(err, ErrInvalidScene) {
				t.Errorf("err = %v, want ErrInvalidScene", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "three.json")
	if err := os.WriteFile(path, []byte(strings.Replace(sceneJSON, `"name": "pair",`, "", 1)), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsSceneFile(path) {
		t.Fatalf("IsSceneFile(%q) = false", path)
	}

	setup, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if setup.Name != "three" {
		t.Errorf("Name = %q, want file stem", setup.Name)
	}
	if setup.World.Len() != 3 {
		t.Errorf("spheres = %d", setup.World.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
