package material

import "github.com/echoflaresat/pathcam/vectors"

// HitRecord describes one ray/surface intersection. It is produced per query
// and consumed immediately by the integrator.
type HitRecord struct {
	Point  vectors.Vec3
	Normal vectors.Vec3 // always faces against the incoming ray
	T      float64
	// FrontFace is true when the ray arrived from the surface's outside.
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients the stored normal against r and records which side
// the ray came from. outward must point away from the surface's inside.
func (h *HitRecord) SetFaceNormal(r vectors.Ray, outward vectors.Vec3) {
	h.FrontFace = r.Direction.Dot(outward) < 0
	if h.FrontFace {
		h.Normal = outward
	} else {
		h.Normal = outward.Neg()
	}
}
