package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// scatterMetal mirrors the incoming direction about the normal and perturbs it
// by fuzz. A perturbed ray that ends up below the surface is still returned.
func scatterMetal(albedo core.Vec3, fuzz float64, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Unit(), hit.Normal)
	if fuzz > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(fuzz))
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: albedo,
	}, true
}
