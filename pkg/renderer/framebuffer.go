package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ImageSink receives a finished image: width*height pixels of 3 bytes (RGB)
// in row-major order, top row first
type ImageSink interface {
	WriteRGB(width, height int, pix []uint8) error
}

// intensity is the range a channel is clamped to before quantization
var intensity = core.NewInterval(0, 1)

// LinearToGamma approximates gamma 2 with a square root.
// Non-positive and NaN inputs map to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// Quantize clamps a channel to [0,1] and scales it to a byte
func Quantize(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(math.Floor(255.999 * intensity.Clamp(x)))
}

// ToRGB8 converts a linear color to gamma-corrected 8-bit channels
func ToRGB8(c core.Vec3) [3]uint8 {
	return [3]uint8{
		Quantize(LinearToGamma(c.X)),
		Quantize(LinearToGamma(c.Y)),
		Quantize(LinearToGamma(c.Z)),
	}
}

// Framebuffer holds the final 8-bit RGB image
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel, row-major
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Set tone maps a linear color into pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	rgb := ToRGB8(c)
	offset := (y*fb.Width + x) * 3
	copy(fb.Pix[offset:offset+3], rgb[:])
}

// At returns the stored channels of pixel (x, y)
func (fb *Framebuffer) At(x, y int) [3]uint8 {
	offset := (y*fb.Width + x) * 3
	return [3]uint8{fb.Pix[offset], fb.Pix[offset+1], fb.Pix[offset+2]}
}

// ToImage converts the framebuffer to an opaque RGBA image
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			rgb := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// WriteTo hands the framebuffer to an image sink
func (fb *Framebuffer) WriteTo(sink ImageSink) error {
	return sink.WriteRGB(fb.Width, fb.Height, fb.Pix)
}
