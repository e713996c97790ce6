package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList
	CameraConfig renderer.CameraConfig
}

// newScene creates an empty scene, merging the camera overrides in order so
// later overrides win
func newScene(name string, cameraConfig renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	for _, override := range cameraOverrides {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, override)
	}
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
	}
}

// Camera builds the camera described by the scene's camera config
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// NewDefaultScene creates the four sphere scene: a yellowish ground, a matte
// center sphere, and two metal spheres of differing fuzz
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Width = 800
	cameraConfig.FocusDistance = 1.0

	s := newScene("default", cameraConfig, cameraOverrides)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	left := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	right := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, left)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, right)

	return s
}

// NewTwoSpheresScene creates a ground sphere and a single matte sphere
func NewTwoSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Width = 800
	cameraConfig.FocusDistance = 1.0

	s := newScene("two-spheres", cameraConfig, cameraOverrides)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))

	return s
}

// addGlassSpheres populates the glass scene layout: a hollow glass bubble on
// the left, a matte sphere in the center and a fuzzy gold sphere on the right
func addGlassSpheres(s *Scene) {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	right := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	// Negative radius flips the normals, turning the inner sphere into the
	// inside surface of a glass shell
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.4, glass)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, right)
}

// NewGlassScene creates the glass bubble scene seen through a pinhole
func NewGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Width = 800
	cameraConfig.SamplesPerPixel = 50
	cameraConfig.MaxDepth = 20
	cameraConfig.FocusDistance = 1.0

	s := newScene("glass", cameraConfig, cameraOverrides)
	addGlassSpheres(s)
	return s
}

// NewDefocusScene creates the glass bubble scene viewed from above with a
// narrow field of view and a thin lens focused on the center sphere
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Width = 800
	cameraConfig.VFov = 20
	cameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	cameraConfig.LookAt = core.NewVec3(0, 0, -1)
	cameraConfig.SamplesPerPixel = 50
	cameraConfig.MaxDepth = 20
	cameraConfig.DefocusAngle = 10
	cameraConfig.FocusDistance = 3.4

	s := newScene("defocus", cameraConfig, cameraOverrides)
	addGlassSpheres(s)
	return s
}
