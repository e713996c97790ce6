package renderer

import (
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	AverageSamples  float64       // Average samples per pixel
	SamplesPerPixel int           // Samples requested per pixel
	MaxDepth        int           // Bounce budget per ray
	Duration        time.Duration // Wall time spent rendering
}

// add folds the statistics of another region into s
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates the samples of a single pixel as a running mean,
// so that averaging N identical samples yields exactly that sample
type PixelStats struct {
	mean  core.Vec3
	count int
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.count++
	delta := color.Subtract(ps.mean)
	ps.mean = ps.mean.Add(delta.Divide(float64(ps.count)))
}

// Color returns the current average color for this pixel, black before any sample
func (ps *PixelStats) Color() core.Vec3 {
	return ps.mean
}

// SampleCount returns the number of samples taken so far
func (ps *PixelStats) SampleCount() int {
	return ps.count
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image,
// with each channel read as a value in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
