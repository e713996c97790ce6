package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Format names an image encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ErrUnknownFormat is returned for unsupported image formats
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat validates a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPNG, FormatPPM:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// PNGSink encodes images as PNG
type PNGSink struct {
	w io.Writer
}

// NewPNGSink creates a PNG sink writing to w
func NewPNGSink(w io.Writer) *PNGSink {
	return &PNGSink{w: w}
}

// WriteRGB implements renderer.ImageSink
func (s *PNGSink) WriteRGB(width, height int, pix []uint8) error {
	if err := checkSize(width, height, pix); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 255})
		}
	}

	if err := png.Encode(s.w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// PPMSink encodes images as binary PPM (P6)
type PPMSink struct {
	w io.Writer
}

// NewPPMSink creates a PPM sink writing to w
func NewPPMSink(w io.Writer) *PPMSink {
	return &PPMSink{w: w}
}

// WriteRGB implements renderer.ImageSink
func (s *PPMSink) WriteRGB(width, height int, pix []uint8) error {
	if err := checkSize(width, height, pix); err != nil {
		return err
	}

	b := bufio.NewWriter(s.w)
	fmt.Fprintf(b, "P6\n%d %d\n255\n", width, height)
	if _, err := b.Write(pix); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	if err := b.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

func checkSize(width, height int, pix []uint8) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return fmt.Errorf("pixel buffer has %d bytes, want %d", len(pix), width*height*3)
	}
	return nil
}

// NewSink returns the sink for format writing to w
func NewSink(format Format, w io.Writer) (renderer.ImageSink, error) {
	switch format {
	case FormatPNG:
		return NewPNGSink(w), nil
	case FormatPPM:
		return NewPPMSink(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileSink writes the image to a file, creating parent directories as needed
type FileSink struct {
	Path   string
	Format Format
}

// NewFileSink creates a file sink. An empty format is inferred from the path.
func NewFileSink(path string, format Format) (*FileSink, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	return &FileSink{Path: path, Format: format}, nil
}

// WriteRGB implements renderer.ImageSink
func (s *FileSink) WriteRGB(width, height int, pix []uint8) (err error) {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing file: %w", cerr)
		}
	}()

	sink, err := NewSink(s.Format, file)
	if err != nil {
		return err
	}
	return sink.WriteRGB(width, height, pix)
}
