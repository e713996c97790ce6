package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is built once per intersection and consumed by shading.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  *Material // Material of the hit object
}

// NewHitRecord builds a hit record, orienting the normal against the ray.
// outwardNormal must be unit length and point away from the surface interior.
func NewHitRecord(ray core.Ray, point, outwardNormal core.Vec3, t float64, mat *Material) *HitRecord {
	frontFace := ray.Direction.Dot(outwardNormal) < 0
	normal := outwardNormal
	if !frontFace {
		normal = outwardNormal.Negate()
	}
	return &HitRecord{
		Point:     point,
		Normal:    normal,
		T:         t,
		FrontFace: frontFace,
		Material:  mat,
	}
}
