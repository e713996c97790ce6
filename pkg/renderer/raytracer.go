package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/rs/zerolog"
)

// Raytracer renders a world through a camera, one pixel at a time
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	sampler    core.Sampler
	integrator integrator.Integrator
	logger     zerolog.Logger
}

// Option configures a Raytracer
type Option func(*Raytracer)

// WithLogger sets the logger used for progress output
func WithLogger(logger zerolog.Logger) Option {
	return func(rt *Raytracer) {
		rt.logger = logger
	}
}

// WithIntegrator replaces the default path tracing integrator
func WithIntegrator(i integrator.Integrator) Option {
	return func(rt *Raytracer) {
		rt.integrator = i
	}
}

// NewRaytracer creates a raytracer. Unless overridden, rays are traced by a
// path tracing integrator bounded by the camera's max depth.
func NewRaytracer(world geometry.Hittable, camera *Camera, sampler core.Sampler, opts ...Option) *Raytracer {
	rt := &Raytracer{
		world:      world,
		camera:     camera,
		sampler:    sampler,
		integrator: integrator.NewPathTracingIntegrator(camera.MaxDepth()),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// SamplePixel returns the linear color of pixel (i, j) averaged over the
// camera's samples per pixel
func (rt *Raytracer) SamplePixel(i, j int) core.Vec3 {
	var ps PixelStats
	rt.samplePixel(i, j, &ps)
	return ps.Color()
}

func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats) {
	for s := 0; s < rt.camera.SamplesPerPixel(); s++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler))
	}
}

// RenderBounds renders the pixels within bounds into fb
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *Framebuffer) RenderStats {
	bounds = bounds.Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	stats := RenderStats{
		SamplesPerPixel: rt.camera.SamplesPerPixel(),
		MaxDepth:        rt.camera.MaxDepth(),
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		rt.logger.Debug().Int("remaining", bounds.Max.Y-j).Msg("scanlines")
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			rt.samplePixel(i, j, &ps)
			fb.Set(i, j, ps.Color())
			stats.add(RenderStats{TotalPixels: 1, TotalSamples: ps.SampleCount()})
		}
	}
	return stats
}

// Render renders the full image
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	start := time.Now()
	fb := NewFramebuffer(rt.camera.Width(), rt.camera.Height())

	rt.logger.Info().
		Int("width", fb.Width).
		Int("height", fb.Height).
		Int("samples", rt.camera.SamplesPerPixel()).
		Int("depth", rt.camera.MaxDepth()).
		Msg("rendering")

	stats := rt.RenderBounds(image.Rect(0, 0, fb.Width, fb.Height), fb)
	stats.Duration = time.Since(start)

	rt.logger.Info().
		Int("pixels", stats.TotalPixels).
		Int("samples", stats.TotalSamples).
		Dur("duration", stats.Duration).
		Msg("done")
	return fb, stats
}

// RenderTo renders the full image and hands it to sink
func (rt *Raytracer) RenderTo(sink ImageSink) (RenderStats, error) {
	fb, stats := rt.Render()
	if err := fb.WriteTo(sink); err != nil {
		return stats, fmt.Errorf("failed to write image: %w", err)
	}
	return stats, nil
}
