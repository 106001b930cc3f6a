// Package scene holds the surfaces a frame is rendered from and the ways to
// build them: named presets and JSON scene files.
package scene

import (
	"github.com/echoflaresat/pathcam/material"
	"github.com/echoflaresat/pathcam/sky"
	"github.com/echoflaresat/pathcam/vectors"
)

// Scene is an insertion-ordered list of spheres. It is built with Add and is
// read-only once rendering starts, so any number of workers may query it.
type Scene struct {
	objects []Sphere
}

func New(objects ...Sphere) *Scene {
	s := &Scene{}
	for _, o := range objects {
		s.Add(o)
	}
	return s
}

func (s *Scene) Add(o Sphere) {
	s.objects = append(s.objects, o)
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns the spheres in insertion order. The slice must not be modified.
func (s *Scene) Objects() []Sphere {
	return s.objects
}

// Hit returns the closest intersection along r inside (tMin, tMax). Each
// accepted hit tightens the upper bound for the remaining objects.
func (s *Scene) Hit(r vectors.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var (
		closest = tMax
		result  material.HitRecord
		found   bool
	)
	for _, o := range s.objects {
		if rec, ok := o.Hit(r, tMin, closest); ok {
			closest = rec.T
			result = rec
			found = true
		}
	}
	return result, found
}

// View places the camera. The aspect ratio comes from the render configuration.
type View struct {
	LookFrom vectors.Vec3
	LookAt   vectors.Vec3
	Up       vectors.Vec3
	VFOV     float64 // vertical field of view in degrees
	Aperture float64
	// FocusDist of zero focuses on LookAt.
	FocusDist float64
}

// FocusDistance resolves the zero FocusDist default.
func (v View) FocusDistance() float64 {
	if v.FocusDist > 0 {
		return v.FocusDist
	}
	return vectors.Distance(v.LookFrom, v.LookAt)
}

// Setup is everything a render needs besides the render settings.
type Setup struct {
	Name  string
	World *Scene
	View  View
	Sky   sky.Sky
}
