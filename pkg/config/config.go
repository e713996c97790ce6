package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

// ErrInvalid is returned when a configuration fails validation
var ErrInvalid = errors.New("invalid config")

// Camera holds camera overrides. Nil fields keep the scene's value.
type Camera struct {
	Width         *int      `yaml:"width,omitempty"`
	AspectRatio   *float64  `yaml:"aspectRatio,omitempty"`
	VFov          *float64  `yaml:"vfov,omitempty"`
	LookFrom      []float64 `yaml:"lookFrom,omitempty,flow"`
	LookAt        []float64 `yaml:"lookAt,omitempty,flow"`
	Up            []float64 `yaml:"up,omitempty,flow"`
	Samples       *int      `yaml:"samples,omitempty"`
	MaxDepth      *int      `yaml:"maxDepth,omitempty"`
	DefocusAngle  *float64  `yaml:"defocusAngle,omitempty"`
	FocusDistance *float64  `yaml:"focusDistance,omitempty"`
}

// Sky holds background gradient overrides as linear RGB triples
type Sky struct {
	Top    []float64 `yaml:"top,omitempty,flow"`
	Bottom []float64 `yaml:"bottom,omitempty,flow"`
}

// File is the top level configuration
type File struct {
	Scene  string `yaml:"scene"`
	Output string `yaml:"output"`
	Format string `yaml:"format"`
	Seed   int64  `yaml:"seed"`
	Camera Camera `yaml:"camera"`
	Sky    Sky    `yaml:"sky"`
}

// decodeInto decodes YAML over an existing configuration. Keys missing from
// data leave the current values untouched; unknown keys are rejected.
func decodeInto(f *File, data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Default returns the embedded default configuration
func Default() (*File, error) {
	f := &File{}
	if err := decodeInto(f, DEFAULT); err != nil {
		return nil, fmt.Errorf("invalid default config file: %w", err)
	}
	return f, nil
}

// Parse applies YAML data on top of the default configuration
func Parse(data []byte) (*File, error) {
	f, err := Default()
	if err != nil {
		return nil, err
	}
	if err := decodeInto(f, data); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads the provided configuration files in order on top of the default
// configuration. Later files win.
func Load(paths ...string) (*File, error) {
	f, err := Default()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not process config file %s: %w", path, err)
		}
		if err := decodeInto(f, data); err != nil {
			return nil, fmt.Errorf("could not merge config file %s: %w", path, err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func checkVec(name string, v []float64) error {
	if v == nil {
		return nil
	}
	if len(v) != 3 {
		return invalid("%s must have 3 components, got %d", name, len(v))
	}
	if !toVec3(v).IsFinite() {
		return invalid("%s must be finite, got %v", name, v)
	}
	return nil
}

// Validate checks the configuration for values the renderer cannot use
func (f *File) Validate() error {
	if f.Scene == "" {
		return invalid("scene must be set")
	}
	if f.Format != "" {
		if _, err := output.ParseFormat(f.Format); err != nil {
			return invalid("%v", err)
		}
	}

	c := f.Camera
	if c.Width != nil && *c.Width <= 0 {
		return invalid("camera.width must be positive, got %d", *c.Width)
	}
	if c.AspectRatio != nil && *c.AspectRatio <= 0 {
		return invalid("camera.aspectRatio must be positive, got %g", *c.AspectRatio)
	}
	if c.VFov != nil && (*c.VFov <= 0 || *c.VFov >= 180) {
		return invalid("camera.vfov must be in (0, 180), got %g", *c.VFov)
	}
	if c.Samples != nil && *c.Samples <= 0 {
		return invalid("camera.samples must be positive, got %d", *c.Samples)
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return invalid("camera.maxDepth must not be negative, got %d", *c.MaxDepth)
	}
	if c.DefocusAngle != nil && *c.DefocusAngle < 0 {
		return invalid("camera.defocusAngle must not be negative, got %g", *c.DefocusAngle)
	}
	if c.FocusDistance != nil && *c.FocusDistance <= 0 {
		return invalid("camera.focusDistance must be positive, got %g", *c.FocusDistance)
	}
	vectors := map[string][]float64{
		"camera.lookFrom": c.LookFrom,
		"camera.lookAt":   c.LookAt,
		"camera.up":       c.Up,
		"sky.top":         f.Sky.Top,
		"sky.bottom":      f.Sky.Bottom,
	}
	for name, v := range vectors {
		if err := checkVec(name, v); err != nil {
			return err
		}
	}
	return nil
}

func toVec3(v []float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Apply returns base with every set camera override applied. Unlike
// renderer.MergeCameraConfig, explicit zero values such as a defocus angle
// of 0 are honored.
func (f *File) Apply(base renderer.CameraConfig) renderer.CameraConfig {
	c := f.Camera
	result := base
	if c.Width != nil {
		result.Width = *c.Width
	}
	if c.AspectRatio != nil {
		result.AspectRatio = *c.AspectRatio
	}
	if c.VFov != nil {
		result.VFov = *c.VFov
	}
	if len(c.LookFrom) == 3 {
		result.LookFrom = toVec3(c.LookFrom)
	}
	if len(c.LookAt) == 3 {
		result.LookAt = toVec3(c.LookAt)
	}
	if len(c.Up) == 3 {
		result.Up = toVec3(c.Up)
	}
	if c.Samples != nil {
		result.SamplesPerPixel = *c.Samples
	}
	if c.MaxDepth != nil {
		result.MaxDepth = *c.MaxDepth
	}
	if c.DefocusAngle != nil {
		result.DefocusAngle = *c.DefocusAngle
	}
	if c.FocusDistance != nil {
		result.FocusDistance = *c.FocusDistance
	}
	return result
}

// Background returns base with the configured sky colors applied
func (f *File) Background(base integrator.SkyGradient) integrator.SkyGradient {
	result := base
	if len(f.Sky.Top) == 3 {
		result.Top = toVec3(f.Sky.Top)
	}
	if len(f.Sky.Bottom) == 3 {
		result.Bottom = toVec3(f.Sky.Bottom)
	}
	return result
}

// Marshal renders the configuration as YAML
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
