package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/lucasb-eyer/go-colorful"
)

// Grid extent of the small spheres along X and Z
const randomGridHalfSize = 11

// oklchAlbedo converts an OKLCH color to a linear RGB albedo
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchAlbedo(l, c, h float64) core.Vec3 {
	r, g, b := colorful.OkLch(l, c, h).Clamped().LinearRgb()
	return core.NewVec3(r, g, b)
}

// NewRandomSpheresScene creates a ground sphere covered in a grid of small
// randomly placed spheres of random materials, plus three large feature
// spheres. Every random choice is drawn from sampler.
func NewRandomSpheresScene(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Width = 800
	cameraConfig.VFov = 20
	cameraConfig.LookFrom = core.NewVec3(13, 2, 3)
	cameraConfig.LookAt = core.NewVec3(0, 0, 0)
	cameraConfig.SamplesPerPixel = 20
	cameraConfig.MaxDepth = 20
	cameraConfig.DefocusAngle = 0.6
	cameraConfig.FocusDistance = 10

	s := newScene("random-spheres", cameraConfig, cameraOverrides)

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// OKLCH keeps the random colors at a uniform perceived lightness
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	clearance := core.NewVec3(4, 0.2, 0)
	for a := -randomGridHalfSize; a < randomGridHalfSize; a++ {
		for b := -randomGridHalfSize; b < randomGridHalfSize; b++ {
			chooseMat := sampler.Get1D()
			offset := sampler.Get2D()
			center := core.NewVec3(float64(a)+0.9*offset.X, 0.2, float64(b)+0.9*offset.Y)

			// Keep the area around the large metal sphere clear
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var mat *material.Material
			switch {
			case chooseMat < 0.8:
				hue := 360 * sampler.Get1D()
				chroma := core.RandomRange(sampler, minChroma, maxChroma)
				mat = material.NewLambertian(oklchAlbedo(baseLightness, chroma, hue))
			case chooseMat < 0.95:
				albedo := core.RandomVec3InRange(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
