package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// HittableList is an ordered collection of objects that is itself hittable.
// Hit scans every member once and returns the globally nearest intersection,
// so insertion order never changes the result.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	l := &HittableList{}
	l.Add(objects...)
	return l
}

// Add appends objects to the list
func (l *HittableList) Add(objects ...Hittable) {
	l.objects = append(l.objects, objects...)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.objects = nil
}

// Objects returns the members in insertion order
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Len returns the number of members
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Hit returns the closest intersection among all members
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	window := rayT

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, window); isHit {
			closestHit = hit
			window = window.WithMax(hit.T)
		}
	}

	return closestHit, closestHit != nil
}
