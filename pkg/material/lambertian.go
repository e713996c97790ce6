package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// scatterLambertian bounces the ray toward normal + a random unit vector,
// which approximates a cosine-weighted diffuse lobe. It never absorbs.
func scatterLambertian(albedo core.Vec3, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: albedo,
	}, true
}
