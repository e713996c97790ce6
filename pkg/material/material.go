package material

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Kind identifies the scattering model of a Material
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material describes how light bounces off a surface. The set of kinds is
// closed; a Material is immutable once built and is shared by pointer between
// every primitive that uses it.
type Material struct {
	kind            Kind
	albedo          core.Vec3
	fuzz            float64
	refractiveIndex float64
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{kind: KindLambertian, albedo: albedo}
}

// NewMetal creates a reflective material; fuzz is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Material {
	return &Material{kind: KindMetal, albedo: albedo, fuzz: core.NewInterval(0, 1).Clamp(fuzz)}
}

// NewDielectric creates a clear refractive material such as glass (1.5) or water (1.33)
func NewDielectric(refractiveIndex float64) *Material {
	return &Material{kind: KindDielectric, refractiveIndex: refractiveIndex}
}

// Kind returns the scattering model
func (m *Material) Kind() Kind { return m.kind }

// Albedo returns the base color of lambertian and metal surfaces
func (m *Material) Albedo() core.Vec3 { return m.albedo }

// Fuzz returns the glossiness of a metal; 0 is a perfect mirror
func (m *Material) Fuzz() float64 { return m.fuzz }

// RefractiveIndex returns the index of refraction of a dielectric
func (m *Material) RefractiveIndex() float64 { return m.refractiveIndex }

// Scatter decides whether and how rayIn continues after hitting the surface.
// It returns false when the ray is absorbed. A nil material absorbs everything.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	if m == nil {
		return ScatterResult{}, false
	}
	switch m.kind {
	case KindLambertian:
		return scatterLambertian(m.albedo, hit, sampler)
	case KindMetal:
		return scatterMetal(m.albedo, m.fuzz, rayIn, hit, sampler)
	case KindDielectric:
		return scatterDielectric(m.refractiveIndex, rayIn, hit, sampler)
	default:
		panic(fmt.Sprintf("material: unknown kind %v", m.kind))
	}
}

func (m *Material) String() string {
	switch m.kind {
	case KindDielectric:
		return fmt.Sprintf("%v(ior=%g)", m.kind, m.refractiveIndex)
	case KindMetal:
		return fmt.Sprintf("%v(albedo=%v, fuzz=%g)", m.kind, m.albedo, m.fuzz)
	default:
		return fmt.Sprintf("%v(albedo=%v)", m.kind, m.albedo)
	}
}
