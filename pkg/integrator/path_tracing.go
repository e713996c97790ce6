package integrator

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Outcome is the terminal state a traced path ended in
type Outcome uint8

const (
	// OutcomeMiss means the path escaped and picked up the sky color
	OutcomeMiss Outcome = iota
	// OutcomeAbsorbed means a material absorbed the path
	OutcomeAbsorbed
	// OutcomeDepthExhausted means the bounce budget ran out
	OutcomeDepthExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeDepthExhausted:
		return "depth-exhausted"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// TraceResult describes how a single camera path ended
type TraceResult struct {
	Color   core.Vec3
	Outcome Outcome
	Bounces int // number of scatter events along the path
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	maxDepth   int
	background SkyGradient
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// maxDepth bounds the number of surface interactions per path.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth:   maxDepth,
		background: DefaultSkyGradient(),
	}
}

// WithBackground returns a copy of the integrator using a different sky
func (pt *PathTracingIntegrator) WithBackground(background SkyGradient) *PathTracingIntegrator {
	clone := *pt
	clone.background = background
	return &clone
}

// MaxDepth returns the bounce budget
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, world, sampler).Color
}

// Trace follows ray through the scene. The recursion of the classic
// formulation is unrolled into a loop that carries the product of the
// attenuations seen so far.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world geometry.Hittable, sampler core.Sampler) TraceResult {
	throughput := core.White()
	current := ray

	for depth := pt.maxDepth; depth > 0; depth-- {
		bounces := pt.maxDepth - depth

		hit, isHit := world.Hit(current, core.RayInterval())
		if !isHit {
			return TraceResult{
				Color:   throughput.MultiplyVec(pt.background.Color(current)),
				Outcome: OutcomeMiss,
				Bounces: bounces,
			}
		}

		scatter, didScatter := hit.Material.Scatter(current, *hit, sampler)
		if !didScatter {
			return TraceResult{Color: core.Black(), Outcome: OutcomeAbsorbed, Bounces: bounces}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		current = scatter.Scattered
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return TraceResult{Color: core.Black(), Outcome: OutcomeDepthExhausted, Bounces: max(pt.maxDepth, 0)}
}
