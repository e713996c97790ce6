package core

import "math"

// HitEpsilon is the lower bound used for bounced rays so that a ray does not
// re-intersect the surface it just left
const HitEpsilon = 0.001

// Interval is a closed range of real numbers with Min <= Max
type Interval struct {
	Min, Max float64
}

// Universe spans the whole real line and is the default acceptance window
var Universe = Interval{Min: math.Inf(-1), Max: math.Inf(1)}

// Empty contains no values
var Empty = Interval{Min: math.Inf(1), Max: math.Inf(-1)}

// NewInterval creates an interval, ordering the bounds if necessary
func NewInterval(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Min: a, Max: b}
}

// RayInterval returns [HitEpsilon, +inf), the window used when tracing scene rays
func RayInterval() Interval {
	return Interval{Min: HitEpsilon, Max: math.Inf(1)}
}

// Size returns the length of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in [Min, Max]
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies strictly inside (Min, Max)
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp restricts x to [Min, Max]
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// WithMax returns a copy of the interval with a new upper bound
func (i Interval) WithMax(upper float64) Interval {
	return Interval{Min: i.Min, Max: upper}
}
