package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear radiance arriving along ray
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}

// SkyGradient is the background seen by rays that escape the scene
type SkyGradient struct {
	Top    core.Vec3 // color straight up
	Bottom core.Vec3 // color straight down
}

// DefaultSkyGradient blends from white at the horizon-down to sky blue overhead
func DefaultSkyGradient() SkyGradient {
	return SkyGradient{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.White(),
	}
}

// Color returns the gradient color based on ray direction
func (s SkyGradient) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Unit()

	// Map the y-component from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return s.Bottom.Multiply(1.0 - t).Add(s.Top.Multiply(t))
}
