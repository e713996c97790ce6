package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSampler returns the same value for every dimension
type constSampler struct {
	value float64
}

func (c constSampler) Get1D() float64 { return c.value }
func (c constSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.value, c.value)
}
func (c constSampler) Get3D() core.Vec3 {
	return core.NewVec3(c.value, c.value, c.value)
}

func newSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func upFacingHit(mat *Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  mat,
	}
}

func TestNewHitRecord_OrientsNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	t.Run("ray against outward normal is front face", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
		rec := NewHitRecord(ray, core.NewVec3(0, 0, 1), outward, 4, nil)
		assert.True(t, rec.FrontFace)
		assert.Equal(t, outward, rec.Normal)
	})

	t.Run("ray along outward normal is back face", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
		rec := NewHitRecord(ray, core.NewVec3(0, 0, 1), outward, 1, nil)
		assert.False(t, rec.FrontFace)
		assert.Equal(t, outward.Negate(), rec.Normal)
		assert.Less(t, rec.Normal.Dot(ray.Direction), 0.0)
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "lambertian", KindLambertian.String())
	assert.Equal(t, "metal", KindMetal.String())
	assert.Equal(t, "dielectric", KindDielectric.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestConstructors(t *testing.T) {
	albedo := core.NewVec3(0.1, 0.2, 0.3)

	l := NewLambertian(albedo)
	assert.Equal(t, KindLambertian, l.Kind())
	assert.Equal(t, albedo, l.Albedo())

	m := NewMetal(albedo, 0.4)
	assert.Equal(t, KindMetal, m.Kind())
	assert.Equal(t, 0.4, m.Fuzz())

	d := NewDielectric(1.5)
	assert.Equal(t, KindDielectric, d.Kind())
	assert.Equal(t, 1.5, d.RefractiveIndex())
	assert.Equal(t, "dielectric(ior=1.5)", d.String())
}

func TestLambertian_AlwaysScattersWithAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.3)
	mat := NewLambertian(albedo)
	hit := upFacingHit(mat)
	sampler := newSampler(42)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 500; i++ {
		result, scattered := mat.Scatter(rayIn, hit, sampler)
		require.True(t, scattered)
		assert.Equal(t, albedo, result.Attenuation)
		assert.Equal(t, hit.Point, result.Scattered.Origin)
		// normal + unit vector never points below the tangent plane
		assert.GreaterOrEqual(t, result.Scattered.Direction.Dot(hit.Normal), 0.0)
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	mat := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	// A unit vector exactly opposite the normal cancels it
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(-1, -1, -1).Unit().Negate(),
		FrontFace: true,
		Material:  mat,
	}
	// 0.25 maps to (-0.5,-0.5,-0.5) in the rejection cube, i.e. -normal once normalized
	sampler := constSampler{value: 0.25}
	result, scattered := mat.Scatter(core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1)), hit, sampler)
	require.True(t, scattered)
	assert.Equal(t, hit.Normal, result.Scattered.Direction)
}

func TestMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedFuzz, NewMetal(albedo, tt.inputFuzz).Fuzz())
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees; direction length is irrelevant
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -3, -3))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
		Material:  metal,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, newSampler(42))
	require.True(t, didScatter)

	expected := core.NewVec3(0, -1, 1).Unit()
	assert.InDelta(t, 0, scatter.Scattered.Direction.Subtract(expected).Length(), 1e-10)
	assert.Equal(t, albedo, scatter.Attenuation)
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := upFacingHit(metal)
	mirror := core.NewVec3(1, 1, 0).Unit()
	sampler := newSampler(7)

	for i := 0; i < 200; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		require.True(t, ok)
		deviation := scatter.Scattered.Direction.Subtract(mirror).Length()
		assert.InDelta(t, 0.3, deviation, 1e-9, "perturbation has length fuzz")
	}
}

func TestMetal_GrazingFuzzMayPointIntoSurface(t *testing.T) {
	// Even a reflection perturbed below the surface is returned, not absorbed
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := upFacingHit(metal)
	sampler := newSampler(3)

	below := false
	for i := 0; i < 500; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		require.True(t, ok)
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			below = true
		}
	}
	assert.True(t, below, "expected at least one perturbed ray below the surface")
}

func TestNilMaterialAbsorbs(t *testing.T) {
	var mat *Material
	_, scattered := mat.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), upFacingHit(nil), newSampler(1))
	assert.False(t, scattered)
}
