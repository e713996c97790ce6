package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0
	// Expected average: 1.0 / 4 = 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, CalculateAverageLuminance(img), 0.0001)
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 1.0, CalculateAverageLuminance(img), 0.0001)
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}

func TestPixelStats_Empty(t *testing.T) {
	var ps PixelStats
	assert.Equal(t, 0, ps.SampleCount())
	assert.Equal(t, core.Black(), ps.Color())
}

func TestPixelStats_IdenticalSamplesAverageExactly(t *testing.T) {
	samples := []core.Vec3{
		core.NewVec3(0.1, 0.2, 0.3),
		core.NewVec3(0.7, 0.3, 0.3),
		core.NewVec3(1.0/3.0, 2.0/7.0, 0.9999),
	}

	for _, sample := range samples {
		for _, n := range []int{1, 2, 10, 1000} {
			var ps PixelStats
			for i := 0; i < n; i++ {
				ps.AddSample(sample)
			}
			assert.Equal(t, n, ps.SampleCount())
			assert.Equal(t, sample, ps.Color(), "average of %d identical samples", n)
		}
	}
}

func TestPixelStats_Mean(t *testing.T) {
	var ps PixelStats
	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	ps.AddSample(core.NewVec3(0, 0, 1))
	ps.AddSample(core.NewVec3(1, 1, 1))

	assertVecInDelta(t, core.NewVec3(0.5, 0.5, 0.5), ps.Color(), 1e-12)
}
