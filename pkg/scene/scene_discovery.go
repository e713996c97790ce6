package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene ID is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `yaml:"id"`          // Unique identifier
	DisplayName string `yaml:"displayName"` // Human readable name
	Description string `yaml:"description"` // Optional description
}

type builtin struct {
	description string
	build       func(sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtins = map[string]builtin{
	"default": {
		description: "Ground, matte center sphere and two metal spheres",
		build: func(_ core.Sampler, overrides ...renderer.CameraConfig) *Scene {
			return NewDefaultScene(overrides...)
		},
	},
	"two-spheres": {
		description: "Ground and a single matte sphere",
		build: func(_ core.Sampler, overrides ...renderer.CameraConfig) *Scene {
			return NewTwoSpheresScene(overrides...)
		},
	},
	"glass": {
		description: "Hollow glass bubble next to matte and metal spheres",
		build: func(_ core.Sampler, overrides ...renderer.CameraConfig) *Scene {
			return NewGlassScene(overrides...)
		},
	},
	"defocus": {
		description: "Glass scene seen through a thin lens",
		build: func(_ core.Sampler, overrides ...renderer.CameraConfig) *Scene {
			return NewDefocusScene(overrides...)
		},
	},
	"random-spheres": {
		description: "Grid of small random spheres around three large ones",
		build:       NewRandomSpheresScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, b := range builtins {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: b.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})

	return scenes
}

// New builds the scene registered under id. The sampler is only consumed by
// scenes with randomized content.
func New(id string, sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return b.build(sampler, cameraOverrides...), nil
}

// titleCase converts an ID-style string to title case
// e.g., "random-spheres" -> "Random Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
