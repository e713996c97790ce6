package integrator

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floorHittable reports a hit on the plane y=0 for downward rays only,
// so a mirror bounce always escapes to the sky
type floorHittable struct {
	mat *material.Material
}

func (f floorHittable) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if ray.Direction.Y >= 0 {
		return nil, false
	}
	t := -ray.Origin.Y / ray.Direction.Y
	if !rayT.Surrounds(t) {
		return nil, false
	}
	return material.NewHitRecord(ray, ray.At(t), core.NewVec3(0, 1, 0), t, f.mat), true
}

// boxHittable encloses every ray: it always reports a hit one unit away
type boxHittable struct {
	mat *material.Material
}

func (b boxHittable) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	t := 1.0 / ray.Direction.Length()
	point := ray.At(t)
	return material.NewHitRecord(ray, point, ray.Direction.Unit().Negate(), t, b.mat), true
}

func newSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestSkyGradient(t *testing.T) {
	sky := DefaultSkyGradient()

	up := sky.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 10, 0)))
	assert.InDelta(t, 0.5, up.X, 1e-12)
	assert.InDelta(t, 0.7, up.Y, 1e-12)
	assert.InDelta(t, 1.0, up.Z, 1e-12)

	down := sky.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	assert.Equal(t, core.White(), down)

	horizon := sky.Color(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)))
	assert.InDelta(t, 0.75, horizon.X, 1e-12)
	assert.InDelta(t, 0.85, horizon.Y, 1e-12)
	assert.InDelta(t, 1.0, horizon.Z, 1e-12)
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	world := geometry.NewHittableList()
	result := NewPathTracingIntegrator(0).Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), world, newSampler())

	assert.Equal(t, OutcomeDepthExhausted, result.Outcome)
	assert.Equal(t, core.Black(), result.Color)
	assert.Equal(t, 0, result.Bounces)
}

func TestPathTracing_MissReturnsSky(t *testing.T) {
	world := geometry.NewHittableList()
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.3, 0.2, -1))
	pt := NewPathTracingIntegrator(10)

	result := pt.Trace(ray, world, newSampler())
	assert.Equal(t, OutcomeMiss, result.Outcome)
	assert.Equal(t, DefaultSkyGradient().Color(ray), result.Color)
	assert.Equal(t, 0, result.Bounces)
	assert.Equal(t, result.Color, pt.RayColor(ray, world, newSampler()))
}

func TestPathTracing_MirrorBounceTintsSky(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	world := floorHittable{mat: material.NewMetal(albedo, 0)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	result := NewPathTracingIntegrator(5).Trace(ray, world, newSampler())
	require.Equal(t, OutcomeMiss, result.Outcome)
	assert.Equal(t, 1, result.Bounces)

	// Straight-up reflection sees the top of the sky
	expected := albedo.MultiplyVec(DefaultSkyGradient().Top)
	assert.InDelta(t, expected.X, result.Color.X, 1e-12)
	assert.InDelta(t, expected.Y, result.Color.Y, 1e-12)
	assert.InDelta(t, expected.Z, result.Color.Z, 1e-12)
}

func TestPathTracing_AbsorbedIsBlack(t *testing.T) {
	world := floorHittable{mat: nil}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	result := NewPathTracingIntegrator(5).Trace(ray, world, newSampler())
	assert.Equal(t, OutcomeAbsorbed, result.Outcome)
	assert.Equal(t, core.Black(), result.Color)
	assert.Equal(t, 0, result.Bounces)
}

func TestPathTracing_EnclosedPathExhaustsDepth(t *testing.T) {
	world := boxHittable{mat: material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9))}
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	for _, depth := range []int{1, 3, 50} {
		result := NewPathTracingIntegrator(depth).Trace(ray, world, newSampler())
		assert.Equal(t, OutcomeDepthExhausted, result.Outcome)
		assert.Equal(t, core.Black(), result.Color)
		assert.Equal(t, depth, result.Bounces)
	}
}

func TestPathTracing_WithBackground(t *testing.T) {
	red := SkyGradient{Top: core.NewVec3(1, 0, 0), Bottom: core.NewVec3(1, 0, 0)}
	base := NewPathTracingIntegrator(3)
	pt := base.WithBackground(red)

	color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), geometry.NewHittableList(), newSampler())
	assert.Equal(t, core.NewVec3(1, 0, 0), color)
	assert.Equal(t, 3, pt.MaxDepth())
	assert.Equal(t, DefaultSkyGradient(), base.background, "original is unchanged")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "miss", OutcomeMiss.String())
	assert.Equal(t, "absorbed", OutcomeAbsorbed.String())
	assert.Equal(t, "depth-exhausted", OutcomeDepthExhausted.String())
}
